package domain

import "time"

// Match is a computed pairing owned by AccountID that points at MatchedAccountID.
type Match struct {
	ID               int       `json:"id" db:"id"`
	AccountID        int       `json:"account_id" db:"account_id"`
	MatchedAccountID int       `json:"matched_account_id" db:"matched_account_id"`
	MilesAway        float64   `json:"miles_away" db:"miles_away"`
	MatchPercent     int       `json:"match_percent" db:"match_percent"`
	MutualLike       bool      `json:"mutual_like" db:"mutual_like"`
	WasMessaged      bool      `json:"was_messaged" db:"was_messaged"`
	Hidden           bool      `json:"hidden" db:"hidden"`
	Blocked          bool      `json:"blocked" db:"blocked"`
	RatingID         *int      `json:"rating_id" db:"rating_id"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// MatchFlags is a partial flag update; nil fields are left as stored.
type MatchFlags struct {
	MutualLike  *bool `json:"mutual_like"`
	WasMessaged *bool `json:"was_messaged"`
	Hidden      *bool `json:"hidden"`
	Blocked     *bool `json:"blocked"`
}

// Empty reports whether no flag is set.
func (f MatchFlags) Empty() bool {
	return f.MutualLike == nil && f.WasMessaged == nil && f.Hidden == nil && f.Blocked == nil
}

// Apply copies the set flags onto m.
func (f MatchFlags) Apply(m *Match) {
	if f.MutualLike != nil {
		m.MutualLike = *f.MutualLike
	}
	if f.WasMessaged != nil {
		m.WasMessaged = *f.WasMessaged
	}
	if f.Hidden != nil {
		m.Hidden = *f.Hidden
	}
	if f.Blocked != nil {
		m.Blocked = *f.Blocked
	}
}
