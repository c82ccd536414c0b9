package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gdugdh24/fourthmouse-backend/internal/domain"
	"github.com/gdugdh24/fourthmouse-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type interestRepository struct {
	db *sqlx.DB
}

func NewInterestRepository(db *sqlx.DB) repository.InterestRepository {
	return &interestRepository{db: db}
}

func (r *interestRepository) ListCategories(ctx context.Context) ([]*domain.InterestCategory, error) {
	categories := []*domain.InterestCategory{}
	err := r.db.SelectContext(ctx, &categories, `SELECT * FROM interest_categories ORDER BY name`)
	return categories, err
}

func (r *interestRepository) List(ctx context.Context, categoryID *int) ([]*domain.Interest, error) {
	interests := []*domain.Interest{}
	query := `
		SELECT * FROM interests
		WHERE $1::BIGINT IS NULL OR category_id = $1
		ORDER BY importance DESC, name
	`
	err := r.db.SelectContext(ctx, &interests, query, categoryID)
	return interests, err
}

func (r *interestRepository) GetByID(ctx context.Context, id int) (*domain.Interest, error) {
	var interest domain.Interest
	err := r.db.GetContext(ctx, &interest, `SELECT * FROM interests WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInterestNotFound
		}
		return nil, err
	}
	return &interest, nil
}

func (r *interestRepository) ListForAccount(ctx context.Context, accountID int) ([]*domain.Interest, error) {
	interests := []*domain.Interest{}
	query := `
		SELECT i.* FROM interests i
		JOIN account_interests ai ON ai.interest_id = i.id
		WHERE ai.account_id = $1
		ORDER BY i.importance DESC, i.name
	`
	err := r.db.SelectContext(ctx, &interests, query, accountID)
	return interests, err
}

func (r *interestRepository) AddToAccount(ctx context.Context, accountID, interestID int) error {
	query := `
		INSERT INTO account_interests (account_id, interest_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, accountID, interestID)
	return translateError(err)
}

func (r *interestRepository) RemoveFromAccount(ctx context.Context, accountID, interestID int) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM account_interests WHERE account_id = $1 AND interest_id = $2`, accountID, interestID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	return affectedOrNotFound(rows, err, domain.ErrInterestNotFound)
}
