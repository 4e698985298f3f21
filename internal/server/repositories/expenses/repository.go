package expenses

import (
	"context"
	"time"

	"github.com/dmitrijs2005/expensetracker/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, expense *models.Expense) (*models.Expense, error)
	ListByUser(ctx context.Context, userID string) ([]models.Expense, error)
	ListSince(ctx context.Context, userID string, since time.Time) ([]models.Expense, error)
	Recent(ctx context.Context, userID string, limit int) ([]models.Expense, error)
	SumByUser(ctx context.Context, userID string) (float64, error)
	DeleteForUser(ctx context.Context, userID, id string) error
}
