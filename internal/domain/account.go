package domain

import (
	"strings"
	"time"
)

// ProviderKind names an external identity provider an account can be linked to.
type ProviderKind string

const (
	ProviderFacebook  ProviderKind = "facebook"
	ProviderGoogle    ProviderKind = "google"
	ProviderInstagram ProviderKind = "instagram"
	ProviderLinkedIn  ProviderKind = "linkedin"
	ProviderSteam     ProviderKind = "steam"
	ProviderGitHub    ProviderKind = "github"
	ProviderTwitter   ProviderKind = "twitter"
)

// ParseProviderKind returns the provider kind for name, case-insensitively.
func ParseProviderKind(name string) (ProviderKind, bool) {
	kind := ProviderKind(strings.ToLower(strings.TrimSpace(name)))
	switch kind {
	case ProviderFacebook, ProviderGoogle, ProviderInstagram, ProviderLinkedIn,
		ProviderSteam, ProviderGitHub, ProviderTwitter:
		return kind, true
	}
	return "", false
}

// LinkedIdentity marks an account as linked to one external provider.
type LinkedIdentity struct {
	Kind        ProviderKind `json:"kind" db:"kind"`
	ProviderID  string       `json:"provider_id" db:"provider_id"`
	AccessToken string       `json:"-" db:"access_token"`
	LinkedAt    time.Time    `json:"linked_at" db:"linked_at"`
}

// Account is a registered person: credentials, linked identities and profile.
type Account struct {
	ID                   int              `json:"id"`
	Email                string           `json:"email"`
	PasswordHash         string           `json:"-"`
	PasswordResetToken   *string          `json:"-"`
	PasswordResetExpires *time.Time       `json:"-"`
	Providers            []LinkedIdentity `json:"providers"`
	InterestIDs          []int            `json:"interest_ids"`
	Profile              Profile          `json:"profile"`
	Version              int              `json:"version"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

// NewAccount returns an account with an empty profile and default age preferences.
func NewAccount(email, passwordHash string) *Account {
	minAge, maxAge := DefaultMinAge, DefaultMaxAge
	return &Account{
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		Profile: Profile{
			Preferences: MatchPreferences{
				MinAge: &minAge,
				MaxAge: &maxAge,
			},
		},
	}
}

// Provider returns the identity linked for kind, if any.
func (a *Account) Provider(kind ProviderKind) (LinkedIdentity, bool) {
	for _, p := range a.Providers {
		if p.Kind == kind {
			return p, true
		}
	}
	return LinkedIdentity{}, false
}

// HasPicture reports whether url is one of the account's profile pictures.
func (a *Account) HasPicture(url string) bool {
	for _, p := range a.Profile.Pictures {
		if p == url {
			return true
		}
	}
	return false
}

// NormalizeEmail trims and lower-cases an address. Dots are kept.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
