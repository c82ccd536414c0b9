package credential

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gdugdh24/fourthmouse-backend/internal/domain"
	"github.com/gdugdh24/fourthmouse-backend/internal/repository"
)

const (
	DefaultResetTokenTTL = time.Hour
	resetTokenBytes      = 16
)

// Mailer delivers one plain-text message.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type Manager struct {
	accounts repository.AccountRepository
	mailer   Mailer
	logger   *slog.Logger
	tokenTTL time.Duration
	now      func() time.Time
}

func NewManager(accounts repository.AccountRepository, mailer Mailer, logger *slog.Logger, tokenTTL time.Duration) *Manager {
	if tokenTTL <= 0 {
		tokenTTL = DefaultResetTokenTTL
	}
	return &Manager{
		accounts: accounts,
		mailer:   mailer,
		logger:   logger,
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

// SetClock replaces the time source used for token expiry.
func (m *Manager) SetClock(now func() time.Time) {
	m.now = now
}

func newResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// IssueResetToken stores a fresh token valid for the configured TTL,
// replacing any earlier one.
func (m *Manager) IssueResetToken(ctx context.Context, accountID int) (string, time.Time, error) {
	token, err := newResetToken()
	if err != nil {
		return "", time.Time{}, err
	}
	expiresAt := m.now().Add(m.tokenTTL)
	if err := m.accounts.SetResetToken(ctx, accountID, token, expiresAt); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to store reset token: %w", err)
	}
	return token, expiresAt, nil
}

// ConsumeResetToken clears a live token and returns its account. Unknown,
// used or expired tokens yield domain.ErrResetTokenInvalid.
func (m *Manager) ConsumeResetToken(ctx context.Context, token string) (*domain.Account, error) {
	return m.accounts.ConsumeResetToken(ctx, token, m.now(), "")
}

type ForgotPasswordResult struct {
	AccountID int
	Email     string
	Token     string
	ExpiresAt time.Time
	// NotifyErr is the mail failure, if any. The token stays valid.
	NotifyErr error
}

// ForgotPassword issues a reset token for email and mails the reset link.
// resetURL is the link prefix; the token is appended as the last path segment.
func (m *Manager) ForgotPassword(ctx context.Context, email, resetURL string) (*ForgotPasswordResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, domain.NewValidationError(domain.FieldEmail, domain.CodeRequired, "email is required")
	}

	account, err := m.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := m.IssueResetToken(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	result := &ForgotPasswordResult{
		AccountID: account.ID,
		Email:     account.Email,
		Token:     token,
		ExpiresAt: expiresAt,
	}

	link := strings.TrimRight(resetURL, "/") + "/" + token
	body := "You are receiving this email because you (or someone else) have requested the reset of the password for your account.\n\n" +
		"Please open the following link to complete the process:\n\n" +
		link + "\n\n" +
		"If you did not request this, please ignore this email and your password will remain unchanged.\n"

	if err := m.mailer.Send(ctx, account.Email, "Reset your Fourth Mouse account password", body); err != nil {
		m.logger.WarnContext(ctx, "reset mail failed, token kept", "account_id", account.ID, "error", err)
		result.NotifyErr = err
	}
	return result, nil
}

type ResetPasswordResult struct {
	Account   *domain.Account
	NotifyErr error
}

// ResetPassword consumes token and stores the new password in one write,
// then mails a confirmation.
func (m *Manager) ResetPassword(ctx context.Context, token, password, confirm string) (*ResetPasswordResult, error) {
	if err := ValidatePassword(password, confirm); err != nil {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account, err := m.accounts.ConsumeResetToken(ctx, token, m.now(), hash)
	if err != nil {
		return nil, err
	}

	result := &ResetPasswordResult{Account: account}
	body := fmt.Sprintf("Hello,\n\nThis is a confirmation that the password for your account %s has just been changed.\n", account.Email)
	if err := m.mailer.Send(ctx, account.Email, "Your Fourth Mouse password has been changed", body); err != nil {
		m.logger.WarnContext(ctx, "password change mail failed", "account_id", account.ID, "error", err)
		result.NotifyErr = err
	}
	return result, nil
}

// ChangePassword stores a new hash only when password differs from the
// current one. It reports whether a new hash was written.
func (m *Manager) ChangePassword(ctx context.Context, accountID int, password, confirm string) (bool, error) {
	if err := ValidatePassword(password, confirm); err != nil {
		return false, err
	}

	account, err := m.accounts.GetByID(ctx, accountID)
	if err != nil {
		return false, err
	}
	if account.PasswordHash != "" && VerifyPassword(password, account.PasswordHash) {
		return false, nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := m.accounts.UpdatePassword(ctx, accountID, hash); err != nil {
		return false, fmt.Errorf("failed to update password: %w", err)
	}
	return true, nil
}

// Authenticate checks an email/password pair. Unknown emails and wrong
// passwords both yield domain.ErrInvalidCredentials.
func (m *Manager) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	account, err := m.accounts.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if account.PasswordHash == "" || !VerifyPassword(password, account.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return account, nil
}
