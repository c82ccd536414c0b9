package domain

import "time"

// Message is a note from one account to another. Messages are never edited.
type Message struct {
	ID            int       `json:"id" db:"id"`
	FromAccountID int       `json:"from_account_id" db:"from_account_id"`
	ToAccountID   int       `json:"to_account_id" db:"to_account_id"`
	Content       string    `json:"content" db:"content"`
	SentAt        time.Time `json:"sent_at" db:"sent_at"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// Involves reports whether accountID sent or received the message.
func (m *Message) Involves(accountID int) bool {
	return m.FromAccountID == accountID || m.ToAccountID == accountID
}
