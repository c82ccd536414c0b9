package relationship

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/gdugdh24/fourthmouse-backend/internal/domain"
)

// ListMatches returns the caller's matches, best first. Hidden and blocked
// matches are left out unless includeHidden is set.
func (uc *RelationshipUseCase) ListMatches(ctx context.Context, accountID int, includeHidden bool, page Page) ([]*domain.Match, error) {
	page = page.normalize()
	matches, err := uc.matches.ListByAccount(ctx, accountID, includeHidden, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

// GetMatch returns a match owned by accountID. Matches owned by someone
// else are reported as not found.
func (uc *RelationshipUseCase) GetMatch(ctx context.Context, accountID, matchID int) (*domain.Match, error) {
	match, err := uc.matches.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.AccountID != accountID {
		return nil, domain.ErrMatchNotFound
	}
	return match, nil
}

// UpdateMatchFlags replaces the flags present in flags.
func (uc *RelationshipUseCase) UpdateMatchFlags(ctx context.Context, accountID, matchID int, flags domain.MatchFlags) (*domain.Match, error) {
	if flags.Empty() {
		return nil, domain.NewValidationError("flags", domain.CodeRequired, "at least one flag is required")
	}
	if _, err := uc.GetMatch(ctx, accountID, matchID); err != nil {
		return nil, err
	}
	return uc.matches.UpdateFlags(ctx, matchID, flags)
}

// RateMatch records a rating of the matched account and attaches it to the match.
func (uc *RelationshipUseCase) RateMatch(ctx context.Context, accountID, matchID, value int) (*domain.Match, error) {
	match, err := uc.GetMatch(ctx, accountID, matchID)
	if err != nil {
		return nil, err
	}

	rating, err := uc.CreateRating(ctx, match.MatchedAccountID, value)
	if err != nil {
		return nil, err
	}

	if err := uc.matches.SetRating(ctx, matchID, rating.ID); err != nil {
		return nil, fmt.Errorf("failed to attach rating: %w", err)
	}
	return uc.matches.GetByID(ctx, matchID)
}

func validateComputedMatch(cm domain.ComputedMatch) error {
	verr := &domain.ValidationError{}
	if cm.AccountID <= 0 {
		verr.Add(&domain.FieldError{Field: "account_id", Code: domain.CodeRequired, Message: "account_id is required"})
	}
	if cm.MatchedAccountID <= 0 {
		verr.Add(&domain.FieldError{Field: "matched_account_id", Code: domain.CodeRequired, Message: "matched_account_id is required"})
	} else if cm.MatchedAccountID == cm.AccountID {
		verr.Add(&domain.FieldError{Field: "matched_account_id", Code: domain.CodeInvalid, Message: "an account cannot match itself"})
	}
	if math.IsNaN(cm.MilesAway) || math.IsInf(cm.MilesAway, 0) || cm.MilesAway < 0 {
		verr.Add(&domain.FieldError{Field: "miles_away", Code: domain.CodeRange, Message: "miles_away must be a non-negative number"})
	}
	if cm.MatchPercent < 0 || cm.MatchPercent > 100 {
		verr.Add(&domain.FieldError{Field: "match_percent", Code: domain.CodeRange, Message: "match_percent must be between 0 and 100"})
	}
	return verr.OrNil()
}

// IngestComputedMatch stores a match produced by the matching service. A
// repeat for the same pair refreshes distance and percent and keeps flags.
func (uc *RelationshipUseCase) IngestComputedMatch(ctx context.Context, cm domain.ComputedMatch) (*domain.Match, error) {
	if err := validateComputedMatch(cm); err != nil {
		return nil, err
	}
	if err := uc.requireAccount(ctx, cm.AccountID); err != nil {
		return nil, err
	}
	if err := uc.requireAccount(ctx, cm.MatchedAccountID); err != nil {
		return nil, err
	}

	match := &domain.Match{
		AccountID:        cm.AccountID,
		MatchedAccountID: cm.MatchedAccountID,
		MilesAway:        cm.MilesAway,
		MatchPercent:     cm.MatchPercent,
	}
	if err := uc.matches.Upsert(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to store match: %w", err)
	}
	return match, nil
}

// blocked reports whether either side has blocked the other.
func (uc *RelationshipUseCase) blocked(ctx context.Context, a, b int) (*domain.Match, bool, error) {
	own, err := uc.matches.GetByAccounts(ctx, a, b)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, false, err
	}
	if own != nil && own.Blocked {
		return own, true, nil
	}

	theirs, err := uc.matches.GetByAccounts(ctx, b, a)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, false, err
	}
	return own, theirs != nil && theirs.Blocked, nil
}
