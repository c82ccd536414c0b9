package memory

import (
	"context"
	"time"

	"github.com/gdugdh24/fourthmouse-backend/internal/domain"
)

type accountRepository struct {
	s *Store
}

// emailOwner returns the id of the account holding email, or 0.
func (s *Store) emailOwner(email string) int {
	email = domain.NormalizeEmail(email)
	for id, a := range s.accounts {
		if domain.NormalizeEmail(a.Email) == email {
			return id
		}
	}
	return 0
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.emailOwner(account.Email) != 0 {
		return domain.ErrEmailTaken
	}

	r.s.nextAccountID++
	now := r.s.now()
	account.ID = r.s.nextAccountID
	account.Email = domain.NormalizeEmail(account.Email)
	account.Version = 1
	account.CreatedAt = now
	account.UpdatedAt = now
	if account.Providers == nil {
		account.Providers = []domain.LinkedIdentity{}
	}

	stored := r.s.snapshot(account)
	stored.InterestIDs = nil
	r.s.accounts[account.ID] = stored
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id int) (*domain.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return r.s.snapshot(a), nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id := r.s.emailOwner(email)
	if id == 0 {
		return nil, domain.ErrAccountNotFound
	}
	return r.s.snapshot(r.s.accounts[id]), nil
}

func (r *accountRepository) Exists(ctx context.Context, id int) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.accounts[id]
	return ok, nil
}

func (r *accountRepository) UpdateProfile(ctx context.Context, id, version int, patch *domain.ProfilePatch) (*domain.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	if patch.Empty() {
		return r.s.snapshot(a), nil
	}
	if a.Version != version {
		return nil, domain.ErrConflict
	}
	if patch.Has(domain.FieldEmail) {
		if owner := r.s.emailOwner(patch.Email); owner != 0 && owner != id {
			return nil, domain.ErrEmailTaken
		}
	}

	updated := r.s.snapshot(a)
	detached := *patch
	detached.Profile = cloneProfile(patch.Profile)
	detached.ApplyTo(updated)
	updated.Email = domain.NormalizeEmail(updated.Email)
	updated.Version++
	updated.UpdatedAt = r.s.now()
	updated.InterestIDs = nil
	r.s.accounts[id] = updated
	return r.s.snapshot(updated), nil
}

func (r *accountRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.PasswordHash = passwordHash
	a.UpdatedAt = r.s.now()
	return nil
}

func (r *accountRepository) SetResetToken(ctx context.Context, id int, token string, expiresAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.PasswordResetToken = &token
	a.PasswordResetExpires = &expiresAt
	a.UpdatedAt = r.s.now()
	return nil
}

func (r *accountRepository) ConsumeResetToken(ctx context.Context, token string, now time.Time, passwordHash string) (*domain.Account, error) {
	if token == "" {
		return nil, domain.ErrResetTokenInvalid
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, a := range r.s.accounts {
		if a.PasswordResetToken == nil || *a.PasswordResetToken != token {
			continue
		}
		if a.PasswordResetExpires == nil || !a.PasswordResetExpires.After(now) {
			return nil, domain.ErrResetTokenInvalid
		}
		a.PasswordResetToken = nil
		a.PasswordResetExpires = nil
		if passwordHash != "" {
			a.PasswordHash = passwordHash
		}
		a.UpdatedAt = r.s.now()
		return r.s.snapshot(a), nil
	}
	return nil, domain.ErrResetTokenInvalid
}

func (r *accountRepository) Delete(ctx context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(r.s.accounts, id)
	delete(r.s.accountInterests, id)
	return nil
}

func (r *accountRepository) LinkProvider(ctx context.Context, id int, identity domain.LinkedIdentity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	for otherID, other := range r.s.accounts {
		if otherID == id {
			continue
		}
		if p, linked := other.Provider(identity.Kind); linked && p.ProviderID == identity.ProviderID {
			return domain.ErrProviderAlreadyLinked
		}
	}

	identity.LinkedAt = r.s.now()
	for i, p := range a.Providers {
		if p.Kind == identity.Kind {
			a.Providers[i] = identity
			return nil
		}
	}
	a.Providers = append(a.Providers, identity)
	return nil
}

func (r *accountRepository) UnlinkProvider(ctx context.Context, id int, kind domain.ProviderKind) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	for i, p := range a.Providers {
		if p.Kind == kind {
			a.Providers = append(a.Providers[:i], a.Providers[i+1:]...)
			return nil
		}
	}
	return domain.ErrProviderNotLinked
}

func (r *accountRepository) MarkAutoPopulated(ctx context.Context, id int, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	if a.Profile.Name == "" {
		a.Profile.Name = name
		a.Profile.AutoPopulated = true
	}
	return nil
}

func (r *accountRepository) AddPicture(ctx context.Context, id int, url string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.Profile.Pictures = append(a.Profile.Pictures, url)
	return nil
}

func (r *accountRepository) RemovePicture(ctx context.Context, id int, url string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	kept := a.Profile.Pictures[:0:0]
	for _, p := range a.Profile.Pictures {
		if p != url {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(a.Profile.Pictures) {
		return domain.ErrPictureNotFound
	}
	a.Profile.Pictures = kept
	return nil
}
