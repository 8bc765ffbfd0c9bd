package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-users-api/internal/domain"
	"github.com/go-users-api/internal/pkg/code"
	"github.com/go-users-api/internal/pkg/id"
)

// SignUpResult reports a pending verification: the account exists but no
// session is issued until the mailed code comes back.
type SignUpResult struct {
	UserID  string `json:"id"`
	Message string `json:"message"`
}

// SignInResult reports that a confirmation code was mailed; the caller must
// complete the flow through VerifyCode.
type SignInResult struct {
	UserID string `json:"id"`
}

// VerifyResult carries the session credential minted after a successful
// code verification.
type VerifyResult struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"` // Unix seconds
}

type Service interface {
	SignUp(ctx context.Context, req domain.SignUpRequest) (*SignUpResult, error)
	SignIn(ctx context.Context, req domain.SignInRequest) (*SignInResult, error)
	VerifyCode(ctx context.Context, req domain.VerifyCodeRequest) (*VerifyResult, error)
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	SetEmailVerified(ctx context.Context, userID string, verified bool) error
}

type codeStore interface {
	Create(ctx context.Context, userID, code string, expiresAt int64) (*domain.VerificationCode, error)
	GetByCode(ctx context.Context, code string) (*domain.VerificationCode, error)
	DeleteByCode(ctx context.Context, code string) (bool, error)
	DeleteAllForUser(ctx context.Context, userID string) error
}

type mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type tokenIssuer interface {
	Issue(u *domain.User, expiry time.Time) (string, error)
}

type service struct {
	users         userStore
	codes         codeStore
	mailer        mailer
	tokens        tokenIssuer
	generator     *code.Generator
	notifyTimeout time.Duration
	locks         userLocks
}

type ServiceDeps struct {
	UserRepo      userStore
	CodeRepo      codeStore
	Mailer        mailer
	Tokens        tokenIssuer
	Generator     *code.Generator
	NotifyTimeout time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		users:         deps.UserRepo,
		codes:         deps.CodeRepo,
		mailer:        deps.Mailer,
		tokens:        deps.Tokens,
		generator:     deps.Generator,
		notifyTimeout: deps.NotifyTimeout,
		locks:         userLocks{locks: map[string]*sync.Mutex{}},
	}
}

func (s *service) SignUp(ctx context.Context, req domain.SignUpRequest) (*SignUpResult, error) {
	email := normalizeEmail(req.Email)

	existing, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		verified := existing.EmailVerified
		if verified {
			return nil, fmt.Errorf("email already in use: %w", domain.ErrConflict)
		}
		// Abandoned signup: reissue instead of failing, so retrying the
		// signup is idempotent for unverified accounts.
		c, err := s.issueCode(ctx, existing.UserID)
		if err != nil {
			return nil, err
		}
		subject, body := verificationEmail(existing, code.Format(c))
		s.notify(ctx, existing.Email, subject, body)
		return &SignUpResult{
			UserID:  existing.UserID,
			Message: "a new verification code has been sent to your email",
		}, nil
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	boleta := req.Boleta
	now := time.Now().UTC()
	u := &domain.User{
		UserID:         id.New(),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		SecondLastName: req.SecondLastName,
		Email:          email,
		Boleta:         &boleta,
		Role:           domain.RoleStudent,
		EmailVerified:  false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.users.Put(ctx, u); err != nil {
		return nil, err
	}

	c, err := s.issueCode(ctx, u.UserID)
	if err != nil {
		return nil, err
	}
	subject, body := verificationEmail(u, code.Format(c))
	s.notify(ctx, u.Email, subject, body)

	return &SignUpResult{
		UserID:  u.UserID,
		Message: "a verification code has been sent to your email",
	}, nil
}

func (s *service) SignIn(ctx context.Context, req domain.SignInRequest) (*SignInResult, error) {
	u, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("incorrect email: %w", domain.ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	if !u.EmailVerified {
		return nil, fmt.Errorf("account not verified: %w", domain.ErrUnauthorized)
	}

	c, err := s.issueCode(ctx, u.UserID)
	if err != nil {
		return nil, err
	}
	subject, body := signInEmail(u, code.Format(c))
	s.notify(ctx, u.Email, subject, body)

	return &SignInResult{UserID: u.UserID}, nil
}

func (s *service) VerifyCode(ctx context.Context, req domain.VerifyCodeRequest) (*VerifyResult, error) {
	if req.Code == "" || req.UserID == "" {
		return nil, fmt.Errorf("code and user id are required: %w", domain.ErrBadRequest)
	}

	u, err := s.users.Get(ctx, req.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	v, err := s.codes.GetByCode(ctx, req.Code)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("code not found or already used: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	// Ownership before expiry: a foreign code reveals nothing about its
	// validity window and stays consumable by its rightful owner.
	if v.UserID != u.UserID {
		return nil, fmt.Errorf("code does not belong to this user: %w", domain.ErrUnauthorized)
	}

	if s.generator.IsExpired(v.ExpiresAt) {
		if _, err := s.codes.DeleteByCode(ctx, req.Code); err != nil {
			slog.Warn("failed to delete expired code", "user_id", u.UserID, "err", err)
		}
		return nil, fmt.Errorf("code expired, request a new one: %w", domain.ErrExpired)
	}

	// First successful verification flips the flag; it never flips back.
	if !u.EmailVerified {
		if err := s.users.SetEmailVerified(ctx, u.UserID, true); err != nil {
			return nil, err
		}
	}

	// Single use, whether this confirmed a signup or a sign-in.
	if _, err := s.codes.DeleteByCode(ctx, req.Code); err != nil {
		slog.Warn("failed to delete consumed code", "user_id", u.UserID, "err", err)
	}

	expiry := s.generator.SessionExpiry()
	token, err := s.tokens.Issue(u, expiry)
	if err != nil {
		return nil, err
	}
	return &VerifyResult{AccessToken: token, ExpiresAt: expiry.Unix()}, nil
}

// issueCode invalidates any prior code for the user and stores a fresh one.
// The per-user lock serializes the invalidate+create pair, so two concurrent
// resends cannot leave two live codes behind.
func (s *service) issueCode(ctx context.Context, userID string) (string, error) {
	mu := s.locks.forUser(userID)
	mu.Lock()
	defer mu.Unlock()

	if err := s.codes.DeleteAllForUser(ctx, userID); err != nil {
		return "", err
	}
	c, err := s.generator.Generate()
	if err != nil {
		return "", err
	}
	if _, err := s.codes.Create(ctx, userID, c, s.generator.CodeExpiry().Unix()); err != nil {
		return "", err
	}
	return c, nil
}

// notify delivers an email, bounded by the configured timeout. Delivery
// failure does not undo the issuance that triggered it; the caller's flow
// still succeeds and the user can request a resend.
func (s *service) notify(ctx context.Context, to, subject, body string) {
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
	defer cancel()
	if err := s.mailer.Send(nctx, to, subject, body); err != nil {
		slog.Warn("failed to send notification email", "to", to, "err", err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// userLocks hands out one mutex per user id. Entries are never evicted; the
// user base is institution-sized and each entry is a bare mutex.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *userLocks) forUser(userID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if m, ok := l.locks[userID]; ok {
		return m
	}
	m := &sync.Mutex{}
	l.locks[userID] = m
	return m
}
