package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdugdh24/fourthmouse-backend/internal/domain"
	"github.com/gdugdh24/fourthmouse-backend/internal/repository"
	"github.com/gdugdh24/fourthmouse-backend/internal/usecase/credential"
	"github.com/go-playground/validator/v10"
)

const DefaultTokenTTL = 7 * 24 * time.Hour

var validate = validator.New()

// EventPublisher sends account events to the matching service.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

type AuthUseCase struct {
	accounts    repository.AccountRepository
	sessions    repository.SessionRepository
	credentials *credential.Manager
	publisher   EventPublisher
	logger      *slog.Logger
	jwtSecret   string
	tokenTTL    time.Duration
	now         func() time.Time
}

func NewAuthUseCase(
	accounts repository.AccountRepository,
	sessions repository.SessionRepository,
	credentials *credential.Manager,
	publisher EventPublisher,
	logger *slog.Logger,
	jwtSecret string,
	tokenTTL time.Duration,
) *AuthUseCase {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &AuthUseCase{
		accounts:    accounts,
		sessions:    sessions,
		credentials: credentials,
		publisher:   publisher,
		logger:      logger,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
		now:         time.Now,
	}
}

func (uc *AuthUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Account   *domain.Account `json:"account"`
	IsNew     bool            `json:"is_new"`
}

// ClientInfo describes the device a session is opened from.
type ClientInfo struct {
	DeviceInfo string
	IPAddress  string
}

type SignupRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Confirm  string `json:"confirm_password" binding:"required"`
}

func duplicateEmail() error {
	return domain.NewValidationError(domain.FieldEmail, domain.CodeDuplicate, "account with that email address already exists")
}

// Signup creates an account with a normalised, unique email and opens a session.
func (uc *AuthUseCase) Signup(ctx context.Context, req *SignupRequest, client ClientInfo) (*AuthResponse, error) {
	email := domain.NormalizeEmail(req.Email)

	verr := &domain.ValidationError{}
	if err := validate.Var(email, "required,email"); err != nil {
		verr.Add(&domain.FieldError{Field: domain.FieldEmail, Code: domain.CodeInvalid, Message: "please enter a valid email address"})
	}
	var pwErr *domain.ValidationError
	if errors.As(credential.ValidatePassword(req.Password, req.Confirm), &pwErr) {
		for i := range pwErr.Fields {
			verr.Add(&pwErr.Fields[i])
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if _, err := uc.accounts.GetByEmail(ctx, email); err == nil {
		return nil, duplicateEmail()
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := credential.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := domain.NewAccount(email, hash)
	if err := uc.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, duplicateEmail()
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	resp, err := uc.openSession(ctx, account, client)
	if err != nil {
		return nil, err
	}
	resp.IsNew = true
	return resp, nil
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (uc *AuthUseCase) Login(ctx context.Context, req *LoginRequest, client ClientInfo) (*AuthResponse, error) {
	account, err := uc.credentials.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return uc.openSession(ctx, account, client)
}

// Logout revokes the session behind token. Unknown tokens are ignored.
func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	if err := uc.sessions.DeleteByToken(ctx, hashToken(token)); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (uc *AuthUseCase) GetAccount(ctx context.Context, accountID int) (*domain.Account, error) {
	return uc.accounts.GetByID(ctx, accountID)
}

// DeleteAccount revokes every session of the account, then removes it.
// Matches, messages, ratings and reports referencing it are kept.
func (uc *AuthUseCase) DeleteAccount(ctx context.Context, accountID int) error {
	ok, err := uc.accounts.Exists(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to check account: %w", err)
	}
	if !ok {
		return domain.ErrAccountNotFound
	}

	if err := uc.sessions.DeleteByAccount(ctx, accountID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	if err := uc.accounts.Delete(ctx, accountID); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	event, err := domain.NewEvent(domain.EventAccountDeleted, accountID, nil)
	if err == nil {
		err = uc.publisher.Publish(ctx, event)
	}
	if err != nil {
		uc.logger.WarnContext(ctx, "account deletion event not published", "account_id", accountID, "error", err)
	}
	uc.logger.InfoContext(ctx, "account deleted", "account_id", accountID)
	return nil
}
