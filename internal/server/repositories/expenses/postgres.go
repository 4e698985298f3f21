// Package expenses stores expense records in PostgreSQL.
package expenses

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/expensetracker/internal/common"
	"github.com/dmitrijs2005/expensetracker/internal/dbx"
	"github.com/dmitrijs2005/expensetracker/internal/server/models"
)

const selectColumns = `SELECT id, user_id, icon, category, amount, date, created_at FROM expenses`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, expense *models.Expense) (*models.Expense, error) {
	query :=
		`INSERT INTO expenses (user_id, icon, category, amount, date)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		expense.UserID, expense.Icon, expense.Category, expense.Amount, expense.Date).Scan(&expense.ID, &expense.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return expense, nil
}

// ListByUser returns every expense of the user, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.Expense, error) {
	query := selectColumns + ` WHERE user_id = $1 ORDER BY date DESC`
	return r.list(ctx, query, userID)
}

// ListSince returns expenses dated at or after since, newest first.
func (r *PostgresRepository) ListSince(ctx context.Context, userID string, since time.Time) ([]models.Expense, error) {
	query := selectColumns + ` WHERE user_id = $1 AND date >= $2 ORDER BY date DESC`
	return r.list(ctx, query, userID, since)
}

func (r *PostgresRepository) Recent(ctx context.Context, userID string, limit int) ([]models.Expense, error) {
	query := selectColumns + ` WHERE user_id = $1 ORDER BY date DESC LIMIT $2`
	return r.list(ctx, query, userID, limit)
}

func (r *PostgresRepository) SumByUser(ctx context.Context, userID string) (float64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE user_id = $1`

	var total float64
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&total); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return total, nil
}

// DeleteForUser removes the expense only when it belongs to userID.
func (r *PostgresRepository) DeleteForUser(ctx context.Context, userID, id string) error {
	query := `DELETE FROM expenses WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]models.Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Expense, 0)
	for rows.Next() {
		var i models.Expense
		if err := scan(rows, &i); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func scan(rows *sql.Rows, i *models.Expense) error {
	return rows.Scan(&i.ID, &i.UserID, &i.Icon, &i.Category, &i.Amount, &i.Date, &i.CreatedAt)
}
