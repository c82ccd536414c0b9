package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gdugdh24/fourthmouse-backend/internal/domain"
)

// LinkProviderRequest carries what an OAuth provider returned after the
// token exchange.
type LinkProviderRequest struct {
	ProviderID  string `json:"provider_id" binding:"required,max=255"`
	AccessToken string `json:"access_token" binding:"max=4096"`
	Name        string `json:"name" binding:"max=100"`
}

func parseProvider(name string) (domain.ProviderKind, error) {
	kind, ok := domain.ParseProviderKind(name)
	if !ok {
		return "", domain.NewValidationError("provider", domain.CodeInvalid, "unsupported provider "+name)
	}
	return kind, nil
}

// LinkProvider stores the provider identifier under its kind. An empty
// profile name is filled from the provider profile.
func (uc *AuthUseCase) LinkProvider(ctx context.Context, accountID int, provider string, req *LinkProviderRequest) (*domain.Account, error) {
	kind, err := parseProvider(provider)
	if err != nil {
		return nil, err
	}
	providerID := strings.TrimSpace(req.ProviderID)
	if providerID == "" {
		return nil, domain.NewValidationError("provider_id", domain.CodeRequired, "provider_id is required")
	}

	err = uc.accounts.LinkProvider(ctx, accountID, domain.LinkedIdentity{
		Kind:        kind,
		ProviderID:  providerID,
		AccessToken: req.AccessToken,
	})
	if errors.Is(err, domain.ErrProviderAlreadyLinked) {
		return nil, domain.NewValidationError("provider_id", domain.CodeDuplicate,
			"this "+string(kind)+" account is already linked to another account")
	}
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		if err := uc.accounts.MarkAutoPopulated(ctx, accountID, name); err != nil {
			uc.logger.WarnContext(ctx, "profile not populated from provider", "account_id", accountID, "error", err)
		}
	}

	return uc.accounts.GetByID(ctx, accountID)
}

// UnlinkProvider clears the identifier stored for provider.
func (uc *AuthUseCase) UnlinkProvider(ctx context.Context, accountID int, provider string) (*domain.Account, error) {
	kind, err := parseProvider(provider)
	if err != nil {
		return nil, err
	}
	if err := uc.accounts.UnlinkProvider(ctx, accountID, kind); err != nil {
		return nil, err
	}
	return uc.accounts.GetByID(ctx, accountID)
}
