package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gdugdh24/fourthmouse-backend/internal/domain"
	"github.com/gdugdh24/fourthmouse-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

const matchColumns = `id, account_id, matched_account_id, miles_away, match_percent,
	mutual_like, was_messaged, hidden, blocked, rating_id, created_at, updated_at`

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Create(ctx context.Context, match *domain.Match) error {
	query := `
		INSERT INTO matches (account_id, matched_account_id, miles_away, match_percent,
		                     mutual_like, was_messaged, hidden, blocked, rating_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		match.AccountID, match.MatchedAccountID, match.MilesAway, match.MatchPercent,
		match.MutualLike, match.WasMessaged, match.Hidden, match.Blocked, match.RatingID,
	).Scan(&match.ID, &match.CreatedAt, &match.UpdatedAt)
}

func (r *matchRepository) Upsert(ctx context.Context, match *domain.Match) error {
	query := `
		INSERT INTO matches (account_id, matched_account_id, miles_away, match_percent)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (account_id, matched_account_id) DO UPDATE
		SET miles_away = EXCLUDED.miles_away,
		    match_percent = EXCLUDED.match_percent,
		    updated_at = CURRENT_TIMESTAMP
		RETURNING ` + matchColumns
	return r.db.QueryRowxContext(ctx, query,
		match.AccountID, match.MatchedAccountID, match.MilesAway, match.MatchPercent,
	).StructScan(match)
}

func (r *matchRepository) GetByID(ctx context.Context, id int) (*domain.Match, error) {
	var match domain.Match
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	err := r.db.GetContext(ctx, &match, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) GetByAccounts(ctx context.Context, accountID, matchedAccountID int) (*domain.Match, error) {
	var match domain.Match
	query := `SELECT ` + matchColumns + ` FROM matches WHERE account_id = $1 AND matched_account_id = $2`
	err := r.db.GetContext(ctx, &match, query, accountID, matchedAccountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) ListByAccount(ctx context.Context, accountID int, includeHidden bool, limit, offset int) ([]*domain.Match, error) {
	matches := []*domain.Match{}
	query := `
		SELECT ` + matchColumns + ` FROM matches
		WHERE account_id = $1 AND ($2 OR (hidden = FALSE AND blocked = FALSE))
		ORDER BY match_percent DESC, id
		LIMIT $3 OFFSET $4
	`
	err := r.db.SelectContext(ctx, &matches, query, accountID, includeHidden, limit, offset)
	return matches, err
}

func (r *matchRepository) UpdateFlags(ctx context.Context, id int, flags domain.MatchFlags) (*domain.Match, error) {
	var match domain.Match
	query := `
		UPDATE matches
		SET mutual_like = COALESCE($1, mutual_like),
		    was_messaged = COALESCE($2, was_messaged),
		    hidden = COALESCE($3, hidden),
		    blocked = COALESCE($4, blocked),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $5
		RETURNING ` + matchColumns
	err := r.db.QueryRowxContext(ctx, query,
		flags.MutualLike, flags.WasMessaged, flags.Hidden, flags.Blocked, id,
	).StructScan(&match)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) SetRating(ctx context.Context, id, ratingID int) error {
	query := `UPDATE matches SET rating_id = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, ratingID, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	return affectedOrNotFound(rows, err, domain.ErrMatchNotFound)
}
