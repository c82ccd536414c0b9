package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	EventProfileUpdated = "account.profile_updated"
	EventAccountDeleted = "account.deleted"
	EventMatchComputed  = "match.computed"
)

// Event is the envelope exchanged with the matching service.
type Event struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	AccountID  int             `json:"account_id"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// NewEvent stamps a fresh envelope. A nil payload is omitted.
func NewEvent(eventType string, accountID int, payload any) (Event, error) {
	e := Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		AccountID:  accountID,
		OccurredAt: time.Now().UTC(),
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return Event{}, fmt.Errorf("failed to encode %s payload: %w", eventType, err)
		}
		e.Payload = raw
	}
	return e, nil
}

// ProfileUpdated is the payload of an account.profile_updated event.
type ProfileUpdated struct {
	Fields  []string `json:"fields"`
	Version int      `json:"version"`
}

// ComputedMatch is the payload of a match.computed event.
type ComputedMatch struct {
	AccountID        int     `json:"account_id"`
	MatchedAccountID int     `json:"matched_account_id"`
	MilesAway        float64 `json:"miles_away"`
	MatchPercent     int     `json:"match_percent"`
}
