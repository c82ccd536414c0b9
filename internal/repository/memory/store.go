// Package memory keeps every repository in process memory. It backs the
// STORE_DRIVER=memory mode and the use-case tests.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/gdugdh24/fourthmouse-backend/internal/domain"
	"github.com/gdugdh24/fourthmouse-backend/internal/repository"
)

type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	accounts      map[int]*domain.Account
	nextAccountID int

	matches     map[int]*domain.Match
	nextMatchID int

	messages      map[int]*domain.Message
	nextMessageID int

	ratings      map[int]*domain.Rating
	nextRatingID int

	reports      map[int]*domain.Report
	nextReportID int

	categories       map[int]*domain.InterestCategory
	interests        map[int]*domain.Interest
	accountInterests map[int]map[int]time.Time

	sessions map[string]*domain.Session
}

func NewStore() *Store {
	return &Store{
		now:              time.Now,
		accounts:         make(map[int]*domain.Account),
		matches:          make(map[int]*domain.Match),
		messages:         make(map[int]*domain.Message),
		ratings:          make(map[int]*domain.Rating),
		reports:          make(map[int]*domain.Report),
		categories:       make(map[int]*domain.InterestCategory),
		interests:        make(map[int]*domain.Interest),
		accountInterests: make(map[int]map[int]time.Time),
		sessions:         make(map[string]*domain.Session),
	}
}

// SetClock replaces the time source used for timestamps and expiry checks.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Accounts() repository.AccountRepository { return &accountRepository{s: s} }
func (s *Store) Matches() repository.MatchRepository { return &matchRepository{s: s} }
func (s *Store) Messages() repository.MessageRepository { return &messageRepository{s: s} }
func (s *Store) Ratings() repository.RatingRepository { return &ratingRepository{s: s} }
func (s *Store) Reports() repository.ReportRepository { return &reportRepository{s: s} }
func (s *Store) Interests() repository.InterestRepository { return &interestRepository{s: s} }
func (s *Store) Sessions() repository.SessionRepository { return &sessionRepository{s: s} }

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func cloneProfile(p domain.Profile) domain.Profile {
	c := p
	c.Birthday = clonePtr(p.Birthday)
	c.Age = clonePtr(p.Age)
	c.Pictures = cloneSlice(p.Pictures)

	c.Appearance.HeightInches = clonePtr(p.Appearance.HeightInches)
	c.Appearance.WeightPounds = clonePtr(p.Appearance.WeightPounds)
	c.Appearance.FitnessLevel = clonePtr(p.Appearance.FitnessLevel)

	c.Culture.Ethnicity = cloneSlice(p.Culture.Ethnicity)
	c.Culture.Language = cloneSlice(p.Culture.Language)
	c.Culture.Religion = cloneSlice(p.Culture.Religion)
	c.Culture.Education = cloneSlice(p.Culture.Education)

	c.Lifestyle.Caffeine = clonePtr(p.Lifestyle.Caffeine)
	c.Lifestyle.Alcohol = clonePtr(p.Lifestyle.Alcohol)
	c.Lifestyle.Tobacco = clonePtr(p.Lifestyle.Tobacco)
	c.Lifestyle.Weed = clonePtr(p.Lifestyle.Weed)
	c.Lifestyle.OtherDrugs = clonePtr(p.Lifestyle.OtherDrugs)

	c.Pets.Cats = clonePtr(p.Pets.Cats)
	c.Pets.Dogs = clonePtr(p.Pets.Dogs)
	c.Pets.Reptiles = clonePtr(p.Pets.Reptiles)
	c.Pets.Birds = clonePtr(p.Pets.Birds)
	c.Pets.OtherPets = clonePtr(p.Pets.OtherPets)

	c.Kids.CurrentKids = clonePtr(p.Kids.CurrentKids)
	c.Kids.WantMoreKids = clonePtr(p.Kids.WantMoreKids)

	c.Preferences.GenderInterests = cloneSlice(p.Preferences.GenderInterests)
	c.Preferences.RelationshipTypes = cloneSlice(p.Preferences.RelationshipTypes)
	c.Preferences.MinAge = clonePtr(p.Preferences.MinAge)
	c.Preferences.MaxAge = clonePtr(p.Preferences.MaxAge)
	c.Preferences.MinDistanceMiles = clonePtr(p.Preferences.MinDistanceMiles)
	c.Preferences.MaxDistanceMiles = clonePtr(p.Preferences.MaxDistanceMiles)
	c.Preferences.MinMatchPercent = clonePtr(p.Preferences.MinMatchPercent)
	c.Preferences.MaxMatchPercent = clonePtr(p.Preferences.MaxMatchPercent)
	return c
}

// snapshot returns a detached copy of a stored account with its interest links.
// Callers hold s.mu.
func (s *Store) snapshot(a *domain.Account) *domain.Account {
	c := *a
	c.PasswordResetToken = clonePtr(a.PasswordResetToken)
	c.PasswordResetExpires = clonePtr(a.PasswordResetExpires)
	c.Providers = make([]domain.LinkedIdentity, len(a.Providers))
	copy(c.Providers, a.Providers)
	c.Profile = cloneProfile(a.Profile)

	c.InterestIDs = make([]int, 0, len(s.accountInterests[a.ID]))
	for id := range s.accountInterests[a.ID] {
		c.InterestIDs = append(c.InterestIDs, id)
	}
	sort.Ints(c.InterestIDs)
	return &c
}

// page applies limit/offset to an already ordered slice. A non-positive
// limit means no limit.
func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
