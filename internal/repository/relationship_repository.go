package repository

import (
	"context"

	"github.com/gdugdh24/fourthmouse-backend/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	GetByID(ctx context.Context, id int) (*domain.Message, error)
	ListByAccount(ctx context.Context, accountID int, limit, offset int) ([]*domain.Message, error)
	ListConversation(ctx context.Context, accountID, otherAccountID int, limit, offset int) ([]*domain.Message, error)
}

type RatingRepository interface {
	Create(ctx context.Context, rating *domain.Rating) error
	GetByID(ctx context.Context, id int) (*domain.Rating, error)
	ListByAccount(ctx context.Context, accountID int, limit, offset int) ([]*domain.Rating, error)
}

type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id int) (*domain.Report, error)
	ListByAccount(ctx context.Context, accountID int, limit, offset int) ([]*domain.Report, error)
}

type InterestRepository interface {
	ListCategories(ctx context.Context) ([]*domain.InterestCategory, error)
	List(ctx context.Context, categoryID *int) ([]*domain.Interest, error)
	GetByID(ctx context.Context, id int) (*domain.Interest, error)
	ListForAccount(ctx context.Context, accountID int) ([]*domain.Interest, error)
	AddToAccount(ctx context.Context, accountID, interestID int) error
	RemoveFromAccount(ctx context.Context, accountID, interestID int) error
}
