package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gdugdh24/fourthmouse-backend/internal/domain"
	"github.com/gdugdh24/fourthmouse-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	query := `
		INSERT INTO messages (from_account_id, to_account_id, content, sent_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		message.FromAccountID, message.ToAccountID, message.Content, message.SentAt,
	).Scan(&message.ID, &message.CreatedAt)
}

func (r *messageRepository) GetByID(ctx context.Context, id int) (*domain.Message, error) {
	var message domain.Message
	err := r.db.GetContext(ctx, &message, `SELECT * FROM messages WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) ListByAccount(ctx context.Context, accountID int, limit, offset int) ([]*domain.Message, error) {
	messages := []*domain.Message{}
	query := `
		SELECT * FROM messages
		WHERE from_account_id = $1 OR to_account_id = $1
		ORDER BY sent_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &messages, query, accountID, limit, offset)
	return messages, err
}

func (r *messageRepository) ListConversation(ctx context.Context, accountID, otherAccountID int, limit, offset int) ([]*domain.Message, error) {
	messages := []*domain.Message{}
	query := `
		SELECT * FROM messages
		WHERE (from_account_id = $1 AND to_account_id = $2)
		   OR (from_account_id = $2 AND to_account_id = $1)
		ORDER BY sent_at ASC, id ASC
		LIMIT $3 OFFSET $4
	`
	err := r.db.SelectContext(ctx, &messages, query, accountID, otherAccountID, limit, offset)
	return messages, err
}

type ratingRepository struct {
	db *sqlx.DB
}

func NewRatingRepository(db *sqlx.DB) repository.RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	query := `
		INSERT INTO ratings (account_id, value, rated_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query, rating.AccountID, rating.Value, rating.RatedAt).
		Scan(&rating.ID, &rating.CreatedAt)
}

func (r *ratingRepository) GetByID(ctx context.Context, id int) (*domain.Rating, error) {
	var rating domain.Rating
	err := r.db.GetContext(ctx, &rating, `SELECT * FROM ratings WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRatingNotFound
		}
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) ListByAccount(ctx context.Context, accountID int, limit, offset int) ([]*domain.Rating, error) {
	ratings := []*domain.Rating{}
	query := `SELECT * FROM ratings WHERE account_id = $1 ORDER BY rated_at DESC, id DESC LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &ratings, query, accountID, limit, offset)
	return ratings, err
}

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	query := `
		INSERT INTO reports (account_id, reason, reported_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query, report.AccountID, report.Reason, report.ReportedAt).
		Scan(&report.ID, &report.CreatedAt)
}

func (r *reportRepository) GetByID(ctx context.Context, id int) (*domain.Report, error) {
	var report domain.Report
	err := r.db.GetContext(ctx, &report, `SELECT * FROM reports WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) ListByAccount(ctx context.Context, accountID int, limit, offset int) ([]*domain.Report, error) {
	reports := []*domain.Report{}
	query := `SELECT * FROM reports WHERE account_id = $1 ORDER BY reported_at DESC, id DESC LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &reports, query, accountID, limit, offset)
	return reports, err
}
