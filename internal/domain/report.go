package domain

import "time"

type Report struct {
	ID         int       `json:"id" db:"id"`
	AccountID  int       `json:"account_id" db:"account_id"`
	Reason     string    `json:"reason" db:"reason"`
	ReportedAt time.Time `json:"reported_at" db:"reported_at"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
