package interest

import (
	"context"
	"fmt"

	"github.com/gdugdh24/fourthmouse-backend/internal/domain"
	"github.com/gdugdh24/fourthmouse-backend/internal/repository"
)

const MaxAccountInterests = 50

type InterestUseCase struct {
	interests repository.InterestRepository
	accounts  repository.AccountRepository
}

func NewInterestUseCase(interests repository.InterestRepository, accounts repository.AccountRepository) *InterestUseCase {
	return &InterestUseCase{
		interests: interests,
		accounts:  accounts,
	}
}

func (uc *InterestUseCase) ListCategories(ctx context.Context) ([]*domain.InterestCategory, error) {
	categories, err := uc.interests.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list interest categories: %w", err)
	}
	return categories, nil
}

// ListInterests returns the catalogue, optionally narrowed to one category.
func (uc *InterestUseCase) ListInterests(ctx context.Context, categoryID *int) ([]*domain.Interest, error) {
	interests, err := uc.interests.List(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interests: %w", err)
	}
	return interests, nil
}

func (uc *InterestUseCase) ListAccountInterests(ctx context.Context, accountID int) ([]*domain.Interest, error) {
	interests, err := uc.interests.ListForAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list account interests: %w", err)
	}
	return interests, nil
}

// AddInterest links an interest to the account. Adding a linked interest
// again is a no-op.
func (uc *InterestUseCase) AddInterest(ctx context.Context, accountID, interestID int) ([]*domain.Interest, error) {
	if _, err := uc.interests.GetByID(ctx, interestID); err != nil {
		return nil, err
	}

	current, err := uc.interests.ListForAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list account interests: %w", err)
	}
	linked := false
	for _, i := range current {
		if i.ID == interestID {
			linked = true
			break
		}
	}
	if !linked && len(current) >= MaxAccountInterests {
		return nil, domain.NewValidationError("interest_id", domain.CodeRange,
			fmt.Sprintf("at most %d interests are allowed", MaxAccountInterests))
	}

	if err := uc.interests.AddToAccount(ctx, accountID, interestID); err != nil {
		return nil, err
	}
	return uc.ListAccountInterests(ctx, accountID)
}

func (uc *InterestUseCase) RemoveInterest(ctx context.Context, accountID, interestID int) ([]*domain.Interest, error) {
	ok, err := uc.accounts.Exists(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to check account: %w", err)
	}
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	if err := uc.interests.RemoveFromAccount(ctx, accountID, interestID); err != nil {
		return nil, err
	}
	return uc.ListAccountInterests(ctx, accountID)
}
