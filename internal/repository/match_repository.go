package repository

import (
	"context"

	"github.com/gdugdh24/fourthmouse-backend/internal/domain"
)

type MatchRepository interface {
	Create(ctx context.Context, match *domain.Match) error
	// Upsert inserts a computed match or refreshes distance and percent of an
	// existing one for the same pair. Flags are left untouched.
	Upsert(ctx context.Context, match *domain.Match) error
	GetByID(ctx context.Context, id int) (*domain.Match, error)
	GetByAccounts(ctx context.Context, accountID, matchedAccountID int) (*domain.Match, error)
	ListByAccount(ctx context.Context, accountID int, includeHidden bool, limit, offset int) ([]*domain.Match, error)
	UpdateFlags(ctx context.Context, id int, flags domain.MatchFlags) (*domain.Match, error)
	SetRating(ctx context.Context, id, ratingID int) error
}
