// Package relationship manages the records that hang off an account:
// computed matches, messages, ratings and reports.
package relationship

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdugdh24/fourthmouse-backend/internal/domain"
	"github.com/gdugdh24/fourthmouse-backend/internal/repository"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Page bounds a listing. Zero values select the defaults.
type Page struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

func (p Page) normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

type RelationshipUseCase struct {
	accounts repository.AccountRepository
	matches  repository.MatchRepository
	messages repository.MessageRepository
	ratings  repository.RatingRepository
	reports  repository.ReportRepository
	logger   *slog.Logger
	now      func() time.Time
}

func NewRelationshipUseCase(
	accounts repository.AccountRepository,
	matches repository.MatchRepository,
	messages repository.MessageRepository,
	ratings repository.RatingRepository,
	reports repository.ReportRepository,
	logger *slog.Logger,
) *RelationshipUseCase {
	return &RelationshipUseCase{
		accounts: accounts,
		matches:  matches,
		messages: messages,
		ratings:  ratings,
		reports:  reports,
		logger:   logger,
		now:      time.Now,
	}
}

func (uc *RelationshipUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

// requireAccount turns a missing back-reference into domain.ErrAccountNotFound.
func (uc *RelationshipUseCase) requireAccount(ctx context.Context, id int) error {
	if id <= 0 {
		return domain.ErrAccountNotFound
	}
	ok, err := uc.accounts.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check account %d: %w", id, err)
	}
	if !ok {
		return domain.ErrAccountNotFound
	}
	return nil
}
