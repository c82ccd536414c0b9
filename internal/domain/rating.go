package domain

import "time"

const (
	MinRatingValue = 1
	MaxRatingValue = 5
)

type Rating struct {
	ID        int       `json:"id" db:"id"`
	AccountID int       `json:"account_id" db:"account_id"`
	Value     int       `json:"value" db:"value"`
	RatedAt   time.Time `json:"rated_at" db:"rated_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
