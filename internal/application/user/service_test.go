package user

import (
	"context"
	"errors"
	"testing"

	"github.com/go-users-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if u, _ := args.Get(0).([]domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	return m.Called(ctx, userID, updates).Error(0)
}
func (m *mockUserStore) Delete(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func existing() *domain.User {
	return &domain.User{UserID: "u1", FirstName: "Ana", LastName: "García", Email: "ana@ipn.mx", Role: domain.RoleStudent}
}

func strPtr(s string) *string { return &s }

func TestUpdate_UserNotFound(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("Get", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	svc := NewService(repo)
	_, err := svc.Update(context.Background(), "ghost", domain.UpdateUserRequest{})

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdate_NoFields_ReturnsCurrentUser(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("Get", mock.Anything, "u1").Return(existing(), nil)

	svc := NewService(repo)
	u, err := svc.Update(context.Background(), "u1", domain.UpdateUserRequest{})

	require.NoError(t, err)
	assert.Equal(t, "ana@ipn.mx", u.Email)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_EmailTakenByAnotherUser_Conflict(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("Get", mock.Anything, "u1").Return(existing(), nil)
	repo.On("GetByEmail", mock.Anything, "otro@ipn.mx").
		Return(&domain.User{UserID: "u2", Email: "otro@ipn.mx"}, nil)

	svc := NewService(repo)
	_, err := svc.Update(context.Background(), "u1", domain.UpdateUserRequest{Email: strPtr("otro@ipn.mx")})

	assert.True(t, errors.Is(err, domain.ErrConflict))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_PartialFields(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("Get", mock.Anything, "u1").Return(existing(), nil)
	repo.On("Update", mock.Anything, "u1", mock.MatchedBy(func(m map[string]interface{}) bool {
		_, hasName := m[fieldFirstName]
		_, hasEmail := m[fieldEmail]
		return hasName && !hasEmail && len(m) == 1
	})).Return(nil)

	svc := NewService(repo)
	_, err := svc.Update(context.Background(), "u1", domain.UpdateUserRequest{FirstName: strPtr("Anabel")})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdate_InvalidRole(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("Get", mock.Anything, "u1").Return(existing(), nil)

	svc := NewService(repo)
	_, err := svc.Update(context.Background(), "u1", domain.UpdateUserRequest{Role: strPtr("wizard")})

	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestUpdate_ValidRoleChange(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("Get", mock.Anything, "u1").Return(existing(), nil)
	repo.On("Update", mock.Anything, "u1", mock.MatchedBy(func(m map[string]interface{}) bool {
		return m[fieldRole] == domain.RoleProfessor
	})).Return(nil)

	svc := NewService(repo)
	_, err := svc.Update(context.Background(), "u1", domain.UpdateUserRequest{Role: strPtr(domain.RoleProfessor)})

	require.NoError(t, err)
}

func TestDelete_NotFound(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("Delete", mock.Anything, "ghost").Return(false, nil)

	svc := NewService(repo)
	err := svc.Delete(context.Background(), "ghost")

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDelete_Removed(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("Delete", mock.Anything, "u1").Return(true, nil)

	svc := NewService(repo)
	require.NoError(t, svc.Delete(context.Background(), "u1"))
}
