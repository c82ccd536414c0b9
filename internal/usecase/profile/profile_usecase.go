package profile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gdugdh24/fourthmouse-backend/internal/domain"
	"github.com/gdugdh24/fourthmouse-backend/internal/infrastructure/gemini"
	"github.com/gdugdh24/fourthmouse-backend/internal/infrastructure/storage"
	"github.com/gdugdh24/fourthmouse-backend/internal/repository"
	"github.com/google/uuid"
)

const (
	MaxPictures     = 10
	MaxPictureBytes = 10 << 20
)

// EventPublisher sends account events to the matching service.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// SummaryGenerator drafts "about me" texts.
type SummaryGenerator interface {
	GenerateProfileSummaries(ctx context.Context, name string, interests []string, zipcode string) ([]string, error)
}

type ProfileUseCase struct {
	accounts  repository.AccountRepository
	interests repository.InterestRepository
	publisher EventPublisher
	summaries SummaryGenerator
	pictures  storage.ObjectStorage
	logger    *slog.Logger
	now       func() time.Time
}

// NewProfileUseCase wires the profile service. summaries and pictures may be
// nil when the collaborators are not configured.
func NewProfileUseCase(
	accounts repository.AccountRepository,
	interests repository.InterestRepository,
	publisher EventPublisher,
	summaries SummaryGenerator,
	pictures storage.ObjectStorage,
	logger *slog.Logger,
) *ProfileUseCase {
	return &ProfileUseCase{
		accounts:  accounts,
		interests: interests,
		publisher: publisher,
		summaries: summaries,
		pictures:  pictures,
		logger:    logger,
		now:       time.Now,
	}
}

func (uc *ProfileUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

// GetProfile returns the account with its profile.
func (uc *ProfileUseCase) GetProfile(ctx context.Context, accountID int) (*domain.Account, error) {
	return uc.accounts.GetByID(ctx, accountID)
}

// UpdateProfile validates req against the stored account and writes the
// changed fields. A concurrent write is retried once against fresh state.
func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, accountID int, req *UpdateProfileRequest) (*domain.Account, error) {
	for attempt := 0; ; attempt++ {
		current, err := uc.accounts.GetByID(ctx, accountID)
		if err != nil {
			return nil, err
		}

		patch, err := merge(current, req, uc.now())
		if err != nil {
			return nil, err
		}
		if patch.Empty() {
			return current, nil
		}

		if patch.Has(domain.FieldEmail) {
			if err := uc.checkEmailFree(ctx, accountID, patch.Email); err != nil {
				return nil, err
			}
		}

		updated, err := uc.accounts.UpdateProfile(ctx, accountID, current.Version, patch)
		switch {
		case err == nil:
			uc.publishUpdated(ctx, updated, patch.Changed)
			return updated, nil
		case errors.Is(err, domain.ErrConflict) && attempt == 0:
			uc.logger.DebugContext(ctx, "profile write conflict, retrying", "account_id", accountID)
			continue
		case errors.Is(err, domain.ErrConflict):
			return nil, fmt.Errorf("%w: profile changed concurrently", domain.ErrStoreUnavailable)
		case errors.Is(err, domain.ErrEmailTaken):
			return nil, emailTaken()
		case errors.Is(err, domain.ErrNotFound):
			return nil, err
		default:
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}
}

func emailTaken() error {
	return domain.NewValidationError(domain.FieldEmail, domain.CodeDuplicate, "account with that email address already exists")
}

func (uc *ProfileUseCase) checkEmailFree(ctx context.Context, accountID int, email string) error {
	other, err := uc.accounts.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("failed to check email: %w", err)
	case other.ID != accountID:
		return emailTaken()
	}
	return nil
}

func (uc *ProfileUseCase) publishUpdated(ctx context.Context, account *domain.Account, changed []string) {
	event, err := domain.NewEvent(domain.EventProfileUpdated, account.ID, domain.ProfileUpdated{
		Fields:  changed,
		Version: account.Version,
	})
	if err == nil {
		err = uc.publisher.Publish(ctx, event)
	}
	if err != nil {
		uc.logger.WarnContext(ctx, "profile update event not published", "account_id", account.ID, "error", err)
	}
}

// GenerateSummaries drafts profile summaries from the account's name,
// interests and zip code.
func (uc *ProfileUseCase) GenerateSummaries(ctx context.Context, accountID int) ([]string, error) {
	account, err := uc.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	interests, err := uc.interests.ListForAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load interests: %w", err)
	}
	names := make([]string, 0, len(interests))
	for _, i := range interests {
		names = append(names, i.Name)
	}

	p := account.Profile
	if uc.summaries == nil {
		return gemini.FallbackSummaries(p.Name, names, p.Zipcode), nil
	}
	out, err := uc.summaries.GenerateProfileSummaries(ctx, p.Name, names, p.Zipcode)
	if err != nil || len(out) == 0 {
		uc.logger.WarnContext(ctx, "summary generation failed, using fallback", "account_id", accountID, "error", err)
		return gemini.FallbackSummaries(p.Name, names, p.Zipcode), nil
	}
	return out, nil
}

// UploadPicture normalises an image, stores it and appends its URL to the
// profile.
func (uc *ProfileUseCase) UploadPicture(ctx context.Context, accountID int, r io.Reader) (*domain.Account, error) {
	if uc.pictures == nil {
		return nil, fmt.Errorf("picture storage: %w", domain.ErrCollaboratorNotEnabled)
	}

	account, err := uc.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if len(account.Profile.Pictures) >= MaxPictures {
		return nil, domain.NewValidationError("pictures", domain.CodeRange, fmt.Sprintf("at most %d pictures are allowed", MaxPictures))
	}

	data, err := storage.NormalizePicture(io.LimitReader(r, MaxPictureBytes))
	if err != nil {
		return nil, domain.NewValidationError("picture", domain.CodeInvalid, "file is not a supported image")
	}

	key := fmt.Sprintf("accounts/%d/%s.jpg", accountID, uuid.NewString())
	if err := uc.pictures.Put(ctx, key, bytes.NewReader(data), int64(len(data)), "image/jpeg"); err != nil {
		return nil, fmt.Errorf("failed to store picture: %w", err)
	}

	url := uc.pictures.URL(key)
	if err := uc.accounts.AddPicture(ctx, accountID, url); err != nil {
		if delErr := uc.pictures.Delete(ctx, key); delErr != nil {
			uc.logger.WarnContext(ctx, "orphaned picture object", "key", key, "error", delErr)
		}
		return nil, err
	}

	return uc.accounts.GetByID(ctx, accountID)
}

// RemovePicture detaches url from the profile and deletes the stored object.
func (uc *ProfileUseCase) RemovePicture(ctx context.Context, accountID int, url string) (*domain.Account, error) {
	if err := uc.accounts.RemovePicture(ctx, accountID, url); err != nil {
		return nil, err
	}

	if uc.pictures != nil {
		if key, ok := uc.pictures.Key(url); ok {
			if err := uc.pictures.Delete(ctx, key); err != nil {
				uc.logger.WarnContext(ctx, "picture object not deleted", "key", key, "error", err)
			}
		}
	}

	return uc.accounts.GetByID(ctx, accountID)
}
