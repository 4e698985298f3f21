package services

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/dmitrijs2005/expensetracker/internal/server/models"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/repomanager"
)

const (
	incomeWindow  = 60 * 24 * time.Hour
	expenseWindow = 30 * 24 * time.Hour
	recentPerKind = 5
)

type DashboardService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewDashboardService(db *sql.DB, m repomanager.RepositoryManager) *DashboardService {
	return &DashboardService{db: db, repomanager: m}
}

// Get aggregates the user's totals, the trailing income and expense
// windows ending at now and the most recent transactions of both kinds.
func (s *DashboardService) Get(ctx context.Context, userID string, now time.Time) (*models.Dashboard, error) {
	incomes := s.repomanager.Incomes(s.db)
	expenses := s.repomanager.Expenses(s.db)

	totalIncome, err := incomes.SumByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	totalExpense, err := expenses.SumByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	lastIncomes, err := incomes.ListSince(ctx, userID, now.Add(-incomeWindow))
	if err != nil {
		return nil, err
	}
	lastExpenses, err := expenses.ListSince(ctx, userID, now.Add(-expenseWindow))
	if err != nil {
		return nil, err
	}

	recentIncomes, err := incomes.Recent(ctx, userID, recentPerKind)
	if err != nil {
		return nil, err
	}
	recentExpenses, err := expenses.Recent(ctx, userID, recentPerKind)
	if err != nil {
		return nil, err
	}

	d := &models.Dashboard{
		TotalIncome:        totalIncome,
		TotalExpense:       totalExpense,
		TotalBalance:       totalIncome - totalExpense,
		Last60DaysIncome:   models.Window{Transactions: make([]models.Transaction, 0, len(lastIncomes))},
		Last30DaysExpenses: models.Window{Transactions: make([]models.Transaction, 0, len(lastExpenses))},
		RecentTransactions: make([]models.Transaction, 0, len(recentIncomes)+len(recentExpenses)),
	}

	for i := range lastIncomes {
		d.Last60DaysIncome.Total += lastIncomes[i].Amount
		d.Last60DaysIncome.Transactions = append(d.Last60DaysIncome.Transactions, lastIncomes[i].AsTransaction())
	}
	for i := range lastExpenses {
		d.Last30DaysExpenses.Total += lastExpenses[i].Amount
		d.Last30DaysExpenses.Transactions = append(d.Last30DaysExpenses.Transactions, lastExpenses[i].AsTransaction())
	}

	for i := range recentIncomes {
		d.RecentTransactions = append(d.RecentTransactions, recentIncomes[i].AsTransaction())
	}
	for i := range recentExpenses {
		d.RecentTransactions = append(d.RecentTransactions, recentExpenses[i].AsTransaction())
	}
	sort.SliceStable(d.RecentTransactions, func(a, b int) bool {
		return d.RecentTransactions[a].Date.After(d.RecentTransactions[b].Date)
	})

	return d, nil
}
