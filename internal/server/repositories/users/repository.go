package users

import (
	"context"

	"github.com/dmitrijs2005/expensetracker/internal/server/models"
)

// Repository is the credential store: persisted identities keyed by ID
// and by email.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
