package memory

import (
	"context"
	"sort"
	"time"

	"github.com/gdugdh24/fourthmouse-backend/internal/domain"
)

// SeedCategory stores a category, assigning the next free id when ID is zero.
func (s *Store) SeedCategory(c domain.InterestCategory) *domain.InterestCategory {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == 0 {
		c.ID = len(s.categories) + 1
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now()
	}
	s.categories[c.ID] = &c
	out := c
	return &out
}

// SeedInterest stores an interest, assigning the next free id when ID is zero.
func (s *Store) SeedInterest(i domain.Interest) *domain.Interest {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i.ID == 0 {
		i.ID = len(s.interests) + 1
	}
	if i.CreatedAt.IsZero() {
		i.CreatedAt = s.now()
	}
	i.CategoryID = clonePtr(i.CategoryID)
	s.interests[i.ID] = &i
	out := i
	return &out
}

type interestRepository struct {
	s *Store
}

func cloneInterest(i *domain.Interest) *domain.Interest {
	c := *i
	c.CategoryID = clonePtr(i.CategoryID)
	return &c
}

func sortInterests(items []*domain.Interest) {
	sort.Slice(items, func(a, b int) bool {
		if items[a].Importance != items[b].Importance {
			return items[a].Importance > items[b].Importance
		}
		return items[a].Name < items[b].Name
	})
}

func (r *interestRepository) ListCategories(ctx context.Context) ([]*domain.InterestCategory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.InterestCategory, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		cc := *c
		out = append(out, &cc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *interestRepository) List(ctx context.Context, categoryID *int) ([]*domain.Interest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Interest, 0, len(r.s.interests))
	for _, i := range r.s.interests {
		if categoryID != nil && (i.CategoryID == nil || *i.CategoryID != *categoryID) {
			continue
		}
		out = append(out, cloneInterest(i))
	}
	sortInterests(out)
	return out, nil
}

func (r *interestRepository) GetByID(ctx context.Context, id int) (*domain.Interest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	i, ok := r.s.interests[id]
	if !ok {
		return nil, domain.ErrInterestNotFound
	}
	return cloneInterest(i), nil
}

func (r *interestRepository) ListForAccount(ctx context.Context, accountID int) ([]*domain.Interest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Interest, 0, len(r.s.accountInterests[accountID]))
	for id := range r.s.accountInterests[accountID] {
		if i, ok := r.s.interests[id]; ok {
			out = append(out, cloneInterest(i))
		}
	}
	sortInterests(out)
	return out, nil
}

func (r *interestRepository) AddToAccount(ctx context.Context, accountID, interestID int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.accounts[accountID]; !ok {
		return domain.ErrAccountNotFound
	}
	if _, ok := r.s.interests[interestID]; !ok {
		return domain.ErrInterestNotFound
	}
	links, ok := r.s.accountInterests[accountID]
	if !ok {
		links = make(map[int]time.Time)
		r.s.accountInterests[accountID] = links
	}
	if _, linked := links[interestID]; !linked {
		links[interestID] = r.s.now()
	}
	return nil
}

func (r *interestRepository) RemoveFromAccount(ctx context.Context, accountID, interestID int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	links := r.s.accountInterests[accountID]
	if _, ok := links[interestID]; !ok {
		return domain.ErrInterestNotFound
	}
	delete(links, interestID)
	return nil
}
