package memory

import (
	"context"
	"sort"

	"github.com/gdugdh24/fourthmouse-backend/internal/domain"
)

type matchRepository struct {
	s *Store
}

func (s *Store) findMatch(accountID, matchedAccountID int) *domain.Match {
	for _, m := range s.matches {
		if m.AccountID == accountID && m.MatchedAccountID == matchedAccountID {
			return m
		}
	}
	return nil
}

func cloneMatch(m *domain.Match) *domain.Match {
	c := *m
	c.RatingID = clonePtr(m.RatingID)
	return &c
}

func (r *matchRepository) Create(ctx context.Context, match *domain.Match) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.findMatch(match.AccountID, match.MatchedAccountID) != nil {
		return domain.ErrConflict
	}
	r.s.nextMatchID++
	now := r.s.now()
	match.ID = r.s.nextMatchID
	match.CreatedAt = now
	match.UpdatedAt = now
	r.s.matches[match.ID] = cloneMatch(match)
	return nil
}

func (r *matchRepository) Upsert(ctx context.Context, match *domain.Match) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	if existing := r.s.findMatch(match.AccountID, match.MatchedAccountID); existing != nil {
		existing.MilesAway = match.MilesAway
		existing.MatchPercent = match.MatchPercent
		existing.UpdatedAt = now
		*match = *cloneMatch(existing)
		return nil
	}

	r.s.nextMatchID++
	match.ID = r.s.nextMatchID
	match.CreatedAt = now
	match.UpdatedAt = now
	r.s.matches[match.ID] = cloneMatch(match)
	return nil
}

func (r *matchRepository) GetByID(ctx context.Context, id int) (*domain.Match, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.matches[id]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	return cloneMatch(m), nil
}

func (r *matchRepository) GetByAccounts(ctx context.Context, accountID, matchedAccountID int) (*domain.Match, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m := r.s.findMatch(accountID, matchedAccountID)
	if m == nil {
		return nil, domain.ErrMatchNotFound
	}
	return cloneMatch(m), nil
}

func (r *matchRepository) ListByAccount(ctx context.Context, accountID int, includeHidden bool, limit, offset int) ([]*domain.Match, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*domain.Match
	for _, m := range r.s.matches {
		if m.AccountID != accountID {
			continue
		}
		if !includeHidden && (m.Hidden || m.Blocked) {
			continue
		}
		out = append(out, cloneMatch(m))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MatchPercent != out[j].MatchPercent {
			return out[i].MatchPercent > out[j].MatchPercent
		}
		return out[i].ID < out[j].ID
	})
	return page(out, limit, offset), nil
}

func (r *matchRepository) UpdateFlags(ctx context.Context, id int, flags domain.MatchFlags) (*domain.Match, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.matches[id]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	flags.Apply(m)
	m.UpdatedAt = r.s.now()
	return cloneMatch(m), nil
}

func (r *matchRepository) SetRating(ctx context.Context, id, ratingID int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.matches[id]
	if !ok {
		return domain.ErrMatchNotFound
	}
	if _, ok := r.s.ratings[ratingID]; !ok {
		return domain.ErrRatingNotFound
	}
	m.RatingID = &ratingID
	m.UpdatedAt = r.s.now()
	return nil
}
