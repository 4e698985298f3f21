package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/expensetracker/internal/client/models"
)

// Session attaches credentials to outgoing requests and interprets the
// outcome. session.Holder is the production implementation.
type Session interface {
	Attach(ctx context.Context, req *http.Request) error
	OnResponse(ctx context.Context, resp *http.Response) error
	OnError(ctx context.Context, err error) error
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

type Client interface {
	Ping(ctx context.Context) error
	Register(ctx context.Context, fullName, email string, password []byte, profileImageURL string) (*models.User, error)
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.User, error)
	UploadImage(ctx context.Context, filename string, data []byte) (string, error)

	AddIncome(ctx context.Context, in models.NewIncome) (*models.Income, error)
	Incomes(ctx context.Context) ([]models.Income, error)
	DeleteIncome(ctx context.Context, id string) error

	AddExpense(ctx context.Context, in models.NewExpense) (*models.Expense, error)
	Expenses(ctx context.Context) ([]models.Expense, error)
	DeleteExpense(ctx context.Context, id string) error

	Dashboard(ctx context.Context) (*models.Dashboard, error)
	Export(ctx context.Context, kind string) (filename string, data []byte, err error)
}
