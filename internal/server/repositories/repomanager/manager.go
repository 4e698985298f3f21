package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/expensetracker/internal/dbx"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/expenses"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/incomes"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Incomes(db dbx.DBTX) incomes.Repository
	Expenses(db dbx.DBTX) expenses.Repository
}
