package relationship

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdugdh24/fourthmouse-backend/internal/domain"
)

const MaxMessageLength = 5000

// SendMessage appends a message from one account to another. When the
// sender has a match for the recipient it is marked as messaged.
func (uc *RelationshipUseCase) SendMessage(ctx context.Context, fromID, toID int, content string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	verr := &domain.ValidationError{}
	switch n := utf8.RuneCountInString(content); {
	case n == 0:
		verr.Add(&domain.FieldError{Field: "content", Code: domain.CodeRequired, Message: "content is required"})
	case n > MaxMessageLength:
		verr.Add(&domain.FieldError{Field: "content", Code: domain.CodeTooLong, Message: fmt.Sprintf("content must be at most %d characters", MaxMessageLength)})
	}
	if toID == fromID {
		verr.Add(&domain.FieldError{Field: "to_account_id", Code: domain.CodeInvalid, Message: "cannot message yourself"})
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if err := uc.requireAccount(ctx, fromID); err != nil {
		return nil, err
	}
	if err := uc.requireAccount(ctx, toID); err != nil {
		return nil, err
	}

	match, blocked, err := uc.blocked(ctx, fromID, toID)
	if err != nil {
		return nil, fmt.Errorf("failed to check block state: %w", err)
	}
	if blocked {
		return nil, domain.ErrBlocked
	}

	message := &domain.Message{
		FromAccountID: fromID,
		ToAccountID:   toID,
		Content:       content,
		SentAt:        uc.now().UTC(),
	}
	if err := uc.messages.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	if match != nil && !match.WasMessaged {
		messaged := true
		if _, err := uc.matches.UpdateFlags(ctx, match.ID, domain.MatchFlags{WasMessaged: &messaged}); err != nil {
			uc.logger.WarnContext(ctx, "match not marked as messaged", "match_id", match.ID, "error", err)
		}
	}
	return message, nil
}

// ListMessages returns messages sent or received by accountID, newest first.
func (uc *RelationshipUseCase) ListMessages(ctx context.Context, accountID int, page Page) ([]*domain.Message, error) {
	page = page.normalize()
	messages, err := uc.messages.ListByAccount(ctx, accountID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// ListConversation returns the messages between two accounts, oldest first.
func (uc *RelationshipUseCase) ListConversation(ctx context.Context, accountID, otherID int, page Page) ([]*domain.Message, error) {
	page = page.normalize()
	messages, err := uc.messages.ListConversation(ctx, accountID, otherID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversation: %w", err)
	}
	return messages, nil
}

// GetMessage returns a message the caller sent or received.
func (uc *RelationshipUseCase) GetMessage(ctx context.Context, accountID, messageID int) (*domain.Message, error) {
	message, err := uc.messages.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if !message.Involves(accountID) {
		return nil, domain.ErrMessageNotFound
	}
	return message, nil
}
