package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-users-api/internal/domain"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldFirstName      = "first_name"
	fieldLastName       = "last_name"
	fieldSecondLastName = "second_last_name"
	fieldEmail          = "email"
	fieldBoleta         = "boleta"
	fieldRole           = "role"
)

type Service interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error)
	Delete(ctx context.Context, userID string) error
}

type userStore interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	Delete(ctx context.Context, userID string) (bool, error)
}

type service struct {
	repo userStore
}

func NewService(repo userStore) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.Get(ctx, userID)
}

// Update applies the supplied fields only; absent fields stay untouched.
// An email change is checked against the directory so two accounts can never
// share an address.
func (s *service) Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error) {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil && *req.FirstName != "" {
		updates[fieldFirstName] = *req.FirstName
	}
	if req.LastName != nil && *req.LastName != "" {
		updates[fieldLastName] = *req.LastName
	}
	if req.SecondLastName != nil {
		updates[fieldSecondLastName] = *req.SecondLastName
	}
	if req.Email != nil && *req.Email != "" {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != u.Email {
			if _, err := s.repo.GetByEmail(ctx, email); err == nil {
				return nil, fmt.Errorf("email already in use: %w", domain.ErrConflict)
			} else if !errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
			updates[fieldEmail] = email
		}
	}
	if req.Boleta != nil {
		updates[fieldBoleta] = *req.Boleta
	}
	if req.Role != nil && *req.Role != "" {
		switch *req.Role {
		case domain.RoleStudent, domain.RoleProfessor, domain.RoleAdmin:
			updates[fieldRole] = *req.Role
		default:
			return nil, fmt.Errorf("invalid role: %w", domain.ErrBadRequest)
		}
	}
	if len(updates) == 0 {
		return u, nil
	}
	if err := s.repo.Update(ctx, userID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID)
}

func (s *service) Delete(ctx context.Context, userID string) error {
	removed, err := s.repo.Delete(ctx, userID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	return nil
}
