package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/expensetracker/internal/client/client"
	"github.com/dmitrijs2005/expensetracker/internal/client/models"
	"github.com/dmitrijs2005/expensetracker/internal/filex"
)

// Transaction kinds accepted by Delete and Export.
const (
	KindIncome  = "income"
	KindExpense = "expense"
)

// writeExport is a test seam for filex.WriteExport.
var writeExport = filex.WriteExport

type TransactionService interface {
	AddIncome(ctx context.Context, in models.NewIncome) (*models.Income, error)
	AddExpense(ctx context.Context, in models.NewExpense) (*models.Expense, error)
	Incomes(ctx context.Context) ([]models.Income, error)
	Expenses(ctx context.Context) ([]models.Expense, error)
	Delete(ctx context.Context, kind, id string) error
	Dashboard(ctx context.Context) (*models.Dashboard, error)
	// Export downloads the CSV for kind and returns the local file path.
	Export(ctx context.Context, kind string) (string, error)
}

type transactionService struct {
	client    client.Client
	exportDir string
}

func NewTransactionService(c client.Client, exportDir string) TransactionService {
	return &transactionService{client: c, exportDir: exportDir}
}

func (s *transactionService) AddIncome(ctx context.Context, in models.NewIncome) (*models.Income, error) {
	return s.client.AddIncome(ctx, in)
}

func (s *transactionService) AddExpense(ctx context.Context, in models.NewExpense) (*models.Expense, error) {
	return s.client.AddExpense(ctx, in)
}

func (s *transactionService) Incomes(ctx context.Context) ([]models.Income, error) {
	return s.client.Incomes(ctx)
}

func (s *transactionService) Expenses(ctx context.Context) ([]models.Expense, error) {
	return s.client.Expenses(ctx)
}

func (s *transactionService) Delete(ctx context.Context, kind, id string) error {
	switch kind {
	case KindIncome:
		return s.client.DeleteIncome(ctx, id)
	case KindExpense:
		return s.client.DeleteExpense(ctx, id)
	}
	return fmt.Errorf("unknown kind %q", kind)
}

func (s *transactionService) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	return s.client.Dashboard(ctx)
}

func (s *transactionService) Export(ctx context.Context, kind string) (string, error) {
	name, data, err := s.client.Export(ctx, kind)
	if err != nil {
		return "", err
	}
	return writeExport(s.exportDir, name, data)
}
