package repository

import (
	"context"
	"time"

	"github.com/gdugdh24/fourthmouse-backend/internal/domain"
)

// AccountRepository persists accounts. Email uniqueness is enforced here
// and reported as domain.ErrEmailTaken.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id int) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	Exists(ctx context.Context, id int) (bool, error)

	// UpdateProfile writes the changed keys of patch when the stored version
	// equals version. A mismatch yields domain.ErrConflict.
	UpdateProfile(ctx context.Context, id, version int, patch *domain.ProfilePatch) (*domain.Account, error)

	UpdatePassword(ctx context.Context, id int, passwordHash string) error
	SetResetToken(ctx context.Context, id int, token string, expiresAt time.Time) error
	// ConsumeResetToken clears a live token and returns its account. When
	// passwordHash is non-empty it is stored by the same statement.
	ConsumeResetToken(ctx context.Context, token string, now time.Time, passwordHash string) (*domain.Account, error)

	Delete(ctx context.Context, id int) error

	LinkProvider(ctx context.Context, id int, identity domain.LinkedIdentity) error
	UnlinkProvider(ctx context.Context, id int, kind domain.ProviderKind) error
	// MarkAutoPopulated fills an empty name from a linked provider profile.
	MarkAutoPopulated(ctx context.Context, id int, name string) error

	AddPicture(ctx context.Context, id int, url string) error
	RemovePicture(ctx context.Context, id int, url string) error
}
