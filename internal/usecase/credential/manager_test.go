package credential

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdugdh24/fourthmouse-backend/internal/domain"
	"github.com/gdugdh24/fourthmouse-backend/internal/infrastructure/logger"
	"github.com/gdugdh24/fourthmouse-backend/internal/repository/memory"
)

type sentMail struct {
	to, subject, body string
}

type stubMailer struct {
	sent []sentMail
	err  error
}

func (m *stubMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

type fixture struct {
	store   *memory.Store
	manager *Manager
	mailer  *stubMailer
	now     time.Time
	account *domain.Account
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:  memory.NewStore(),
		mailer: &stubMailer{},
		now:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return f.now }
	f.store.SetClock(clock)
	f.manager = NewManager(f.store.Accounts(), f.mailer, logger.Discard(), time.Hour)
	f.manager.SetClock(clock)

	hash, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	f.account = domain.NewAccount("ada@example.com", hash)
	if err := f.store.Accounts().Create(context.Background(), f.account); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return f
}

func TestPasswordRoundTrip(t *testing.T) {
	for _, p := range []string{"abcd", "correct horse battery staple", "ünïcødé", "    "} {
		hash, err := HashPassword(p)
		if err != nil {
			t.Fatalf("HashPassword(%q): %v", p, err)
		}
		if !VerifyPassword(p, hash) {
			t.Errorf("VerifyPassword(%q) = false for its own hash", p)
		}
		if VerifyPassword(p+"x", hash) {
			t.Errorf("VerifyPassword accepted a different password for %q", p)
		}
	}
}

func TestHashPasswordIsSalted(t *testing.T) {
	a, _ := HashPassword("same")
	b, _ := HashPassword("same")
	if a == b {
		t.Fatal("expected different hashes for the same password")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	for _, hash := range []string{"", "not-a-hash", "$2a$10$short"} {
		if VerifyPassword("secret", hash) {
			t.Errorf("VerifyPassword accepted malformed hash %q", hash)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("abcd", "abcd"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := ValidatePassword("abc", "abd")
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields) != 2 || !verr.HasCode(domain.CodeRange) || !verr.HasCode(domain.CodeMismatch) {
		t.Fatalf("unexpected fields: %+v", verr.Fields)
	}

	long := strings.Repeat("x", MaxPasswordBytes+1)
	if err := ValidatePassword(long, long); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected too long password to fail, got %v", err)
	}
}

func TestResetTokenIsSingleUse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	token, expiresAt, err := f.manager.IssueResetToken(ctx, f.account.ID)
	if err != nil {
		t.Fatalf("IssueResetToken: %v", err)
	}
	if len(token) != 32 {
		t.Fatalf("expected 32 hex chars, got %q", token)
	}
	if !expiresAt.Equal(f.now.Add(time.Hour)) {
		t.Fatalf("expected expiry one hour ahead, got %v", expiresAt)
	}

	got, err := f.manager.ConsumeResetToken(ctx, token)
	if err != nil {
		t.Fatalf("first consume: %v", err)
	}
	if got.ID != f.account.ID || got.PasswordResetToken != nil || got.PasswordResetExpires != nil {
		t.Fatalf("token fields not cleared: %+v", got)
	}

	if _, err := f.manager.ConsumeResetToken(ctx, token); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second consume: expected not found, got %v", err)
	}
}

func TestResetTokenExpiry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	token, _, err := f.manager.IssueResetToken(ctx, f.account.ID)
	if err != nil {
		t.Fatalf("IssueResetToken: %v", err)
	}

	f.now = f.now.Add(time.Hour)
	if _, err := f.manager.ConsumeResetToken(ctx, token); !errors.Is(err, domain.ErrResetTokenInvalid) {
		t.Fatalf("expected token expiring exactly now to be rejected, got %v", err)
	}
}

func TestIssueResetTokenOverwritesPrevious(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, _, _ := f.manager.IssueResetToken(ctx, f.account.ID)
	second, _, _ := f.manager.IssueResetToken(ctx, f.account.ID)
	if first == second {
		t.Fatal("expected distinct tokens")
	}

	if _, err := f.manager.ConsumeResetToken(ctx, first); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("old token still valid: %v", err)
	}
	if _, err := f.manager.ConsumeResetToken(ctx, second); err != nil {
		t.Fatalf("new token rejected: %v", err)
	}
}

func TestConsumeResetTokenEmpty(t *testing.T) {
	f := newFixture(t)
	if _, err := f.manager.ConsumeResetToken(context.Background(), ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestForgotPasswordSendsLink(t *testing.T) {
	f := newFixture(t)

	res, err := f.manager.ForgotPassword(context.Background(), "  ADA@example.com ", "https://fourthmouse.app/reset/")
	if err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	if res.NotifyErr != nil {
		t.Fatalf("unexpected notify error: %v", res.NotifyErr)
	}
	if len(f.mailer.sent) != 1 {
		t.Fatalf("expected one mail, got %d", len(f.mailer.sent))
	}
	mail := f.mailer.sent[0]
	if mail.to != "ada@example.com" {
		t.Fatalf("mail sent to %q", mail.to)
	}
	if !strings.Contains(mail.body, "https://fourthmouse.app/reset/"+res.Token) {
		t.Fatalf("mail body lacks reset link: %q", mail.body)
	}
}

func TestForgotPasswordMailFailureKeepsToken(t *testing.T) {
	f := newFixture(t)
	f.mailer.err = errors.New("smtp down")
	ctx := context.Background()

	res, err := f.manager.ForgotPassword(ctx, "ada@example.com", "http://localhost/reset")
	if err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	if res.NotifyErr == nil {
		t.Fatal("expected notify error to be reported")
	}
	if _, err := f.manager.ConsumeResetToken(ctx, res.Token); err != nil {
		t.Fatalf("token was rolled back: %v", err)
	}
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	f := newFixture(t)
	_, err := f.manager.ForgotPassword(context.Background(), "nobody@example.com", "http://x/reset")
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected account not found, got %v", err)
	}
	if len(f.mailer.sent) != 0 {
		t.Fatal("no mail expected")
	}
}

func TestResetPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	token, _, _ := f.manager.IssueResetToken(ctx, f.account.ID)

	if _, err := f.manager.ResetPassword(ctx, token, "ab", "ab"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	res, err := f.manager.ResetPassword(ctx, token, "new-secret", "new-secret")
	if err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if res.Account.ID != f.account.ID {
		t.Fatalf("wrong account %d", res.Account.ID)
	}

	stored, _ := f.store.Accounts().GetByID(ctx, f.account.ID)
	if !VerifyPassword("new-secret", stored.PasswordHash) {
		t.Fatal("new password not stored")
	}
	if len(f.mailer.sent) != 1 || !strings.Contains(f.mailer.sent[0].subject, "changed") {
		t.Fatalf("expected confirmation mail, got %+v", f.mailer.sent)
	}

	if _, err := f.manager.ResetPassword(ctx, token, "other", "other"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("token reused: %v", err)
	}
}

func TestChangePasswordSkipsUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	before, _ := f.store.Accounts().GetByID(ctx, f.account.ID)

	changed, err := f.manager.ChangePassword(ctx, f.account.ID, "secret", "secret")
	if err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if changed {
		t.Fatal("expected identical password to be skipped")
	}
	after, _ := f.store.Accounts().GetByID(ctx, f.account.ID)
	if after.PasswordHash != before.PasswordHash {
		t.Fatal("hash rewritten for identical password")
	}

	changed, err = f.manager.ChangePassword(ctx, f.account.ID, "fresh", "fresh")
	if err != nil || !changed {
		t.Fatalf("expected change, got %v %v", changed, err)
	}
	after, _ = f.store.Accounts().GetByID(ctx, f.account.ID)
	if !VerifyPassword("fresh", after.PasswordHash) {
		t.Fatal("new password not stored")
	}
}

func TestAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.manager.Authenticate(ctx, "Ada@Example.com", "secret"); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if _, err := f.manager.Authenticate(ctx, "ada@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := f.manager.Authenticate(ctx, "ghost@example.com", "secret"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown email, got %v", err)
	}
}
