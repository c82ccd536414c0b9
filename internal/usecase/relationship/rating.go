package relationship

import (
	"context"
	"fmt"

	"github.com/gdugdh24/fourthmouse-backend/internal/domain"
)

// CreateRating appends a rating of accountID.
func (uc *RelationshipUseCase) CreateRating(ctx context.Context, accountID, value int) (*domain.Rating, error) {
	if value < domain.MinRatingValue || value > domain.MaxRatingValue {
		return nil, domain.NewValidationError("value", domain.CodeRange,
			fmt.Sprintf("value must be between %d and %d", domain.MinRatingValue, domain.MaxRatingValue))
	}
	if err := uc.requireAccount(ctx, accountID); err != nil {
		return nil, err
	}

	rating := &domain.Rating{
		AccountID: accountID,
		Value:     value,
		RatedAt:   uc.now().UTC(),
	}
	if err := uc.ratings.Create(ctx, rating); err != nil {
		return nil, fmt.Errorf("failed to store rating: %w", err)
	}
	return rating, nil
}

func (uc *RelationshipUseCase) ListRatings(ctx context.Context, accountID int, page Page) ([]*domain.Rating, error) {
	page = page.normalize()
	ratings, err := uc.ratings.ListByAccount(ctx, accountID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	return ratings, nil
}

func (uc *RelationshipUseCase) GetRating(ctx context.Context, ratingID int) (*domain.Rating, error) {
	return uc.ratings.GetByID(ctx, ratingID)
}
