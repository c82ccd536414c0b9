package memory

import (
	"context"
	"sort"

	"github.com/gdugdh24/fourthmouse-backend/internal/domain"
)

type messageRepository struct {
	s *Store
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextMessageID++
	message.ID = r.s.nextMessageID
	message.CreatedAt = r.s.now()
	if message.SentAt.IsZero() {
		message.SentAt = message.CreatedAt
	}
	c := *message
	r.s.messages[message.ID] = &c
	return nil
}

func (r *messageRepository) GetByID(ctx context.Context, id int) (*domain.Message, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.messages[id]
	if !ok {
		return nil, domain.ErrMessageNotFound
	}
	c := *m
	return &c, nil
}

func (r *messageRepository) ListByAccount(ctx context.Context, accountID int, limit, offset int) ([]*domain.Message, error) {
	return r.list(func(m *domain.Message) bool { return m.Involves(accountID) }, false, limit, offset), nil
}

func (r *messageRepository) ListConversation(ctx context.Context, accountID, otherAccountID int, limit, offset int) ([]*domain.Message, error) {
	return r.list(func(m *domain.Message) bool {
		return (m.FromAccountID == accountID && m.ToAccountID == otherAccountID) ||
			(m.FromAccountID == otherAccountID && m.ToAccountID == accountID)
	}, true, limit, offset), nil
}

func (r *messageRepository) list(keep func(*domain.Message) bool, ascending bool, limit, offset int) []*domain.Message {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*domain.Message
	for _, m := range r.s.messages {
		if keep(m) {
			c := *m
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.SentAt.Equal(b.SentAt) {
			if ascending {
				return a.SentAt.Before(b.SentAt)
			}
			return a.SentAt.After(b.SentAt)
		}
		if ascending {
			return a.ID < b.ID
		}
		return a.ID > b.ID
	})
	return page(out, limit, offset)
}

type ratingRepository struct {
	s *Store
}

func (r *ratingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextRatingID++
	rating.ID = r.s.nextRatingID
	rating.CreatedAt = r.s.now()
	if rating.RatedAt.IsZero() {
		rating.RatedAt = rating.CreatedAt
	}
	c := *rating
	r.s.ratings[rating.ID] = &c
	return nil
}

func (r *ratingRepository) GetByID(ctx context.Context, id int) (*domain.Rating, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	v, ok := r.s.ratings[id]
	if !ok {
		return nil, domain.ErrRatingNotFound
	}
	c := *v
	return &c, nil
}

func (r *ratingRepository) ListByAccount(ctx context.Context, accountID int, limit, offset int) ([]*domain.Rating, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*domain.Rating
	for _, v := range r.s.ratings {
		if v.AccountID == accountID {
			c := *v
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return page(out, limit, offset), nil
}

type reportRepository struct {
	s *Store
}

func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextReportID++
	report.ID = r.s.nextReportID
	report.CreatedAt = r.s.now()
	if report.ReportedAt.IsZero() {
		report.ReportedAt = report.CreatedAt
	}
	c := *report
	r.s.reports[report.ID] = &c
	return nil
}

func (r *reportRepository) GetByID(ctx context.Context, id int) (*domain.Report, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	v, ok := r.s.reports[id]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	c := *v
	return &c, nil
}

func (r *reportRepository) ListByAccount(ctx context.Context, accountID int, limit, offset int) ([]*domain.Report, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*domain.Report
	for _, v := range r.s.reports {
		if v.AccountID == accountID {
			c := *v
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return page(out, limit, offset), nil
}
