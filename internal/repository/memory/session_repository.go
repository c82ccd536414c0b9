package memory

import (
	"context"

	"github.com/gdugdh24/fourthmouse-backend/internal/domain"
)

type sessionRepository struct {
	s *Store
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	if session.ExpiredAt(now) {
		return domain.ErrSessionExpired
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	c := *session
	r.s.sessions[session.TokenHash] = &c
	return nil
}

func (r *sessionRepository) GetByToken(ctx context.Context, tokenHash string) (*domain.Session, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	v, ok := r.s.sessions[tokenHash]
	if !ok || v.ExpiredAt(r.s.now()) {
		return nil, domain.ErrSessionNotFound
	}
	c := *v
	return &c, nil
}

func (r *sessionRepository) DeleteByToken(ctx context.Context, tokenHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.sessions, tokenHash)
	return nil
}

func (r *sessionRepository) DeleteByAccount(ctx context.Context, accountID int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for hash, v := range r.s.sessions {
		if v.AccountID == accountID {
			delete(r.s.sessions, hash)
		}
	}
	return nil
}
