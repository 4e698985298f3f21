package incomes

import (
	"context"
	"time"

	"github.com/dmitrijs2005/expensetracker/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, income *models.Income) (*models.Income, error)
	ListByUser(ctx context.Context, userID string) ([]models.Income, error)
	ListSince(ctx context.Context, userID string, since time.Time) ([]models.Income, error)
	Recent(ctx context.Context, userID string, limit int) ([]models.Income, error)
	SumByUser(ctx context.Context, userID string) (float64, error)
	DeleteForUser(ctx context.Context, userID, id string) error
}
