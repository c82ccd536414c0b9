package postgres

import (
	"errors"

	"github.com/gdugdh24/fourthmouse-backend/internal/domain"
	"github.com/lib/pq"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// translateError maps constraint violations raised by postgres to domain errors.
func translateError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case codeUniqueViolation:
		switch pqErr.Constraint {
		case "accounts_email_key":
			return domain.ErrEmailTaken
		case "account_providers_identity_key":
			return domain.ErrProviderAlreadyLinked
		}
	case codeForeignKeyViolation:
		switch pqErr.Constraint {
		case "account_providers_account_id_fkey", "account_interests_account_id_fkey":
			return domain.ErrAccountNotFound
		case "account_interests_interest_id_fkey":
			return domain.ErrInterestNotFound
		}
	}
	return err
}

func affectedOrNotFound(rows int64, err error, notFound error) error {
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
