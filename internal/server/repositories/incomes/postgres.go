// Package incomes stores income records in PostgreSQL.
package incomes

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/expensetracker/internal/common"
	"github.com/dmitrijs2005/expensetracker/internal/dbx"
	"github.com/dmitrijs2005/expensetracker/internal/server/models"
)

const selectColumns = `SELECT id, user_id, icon, source, amount, date, created_at FROM incomes`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, income *models.Income) (*models.Income, error) {
	query :=
		`INSERT INTO incomes (user_id, icon, source, amount, date)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		income.UserID, income.Icon, income.Source, income.Amount, income.Date).Scan(&income.ID, &income.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return income, nil
}

// ListByUser returns every income of the user, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.Income, error) {
	query := selectColumns + ` WHERE user_id = $1 ORDER BY date DESC`
	return r.list(ctx, query, userID)
}

// ListSince returns incomes dated at or after since, newest first.
func (r *PostgresRepository) ListSince(ctx context.Context, userID string, since time.Time) ([]models.Income, error) {
	query := selectColumns + ` WHERE user_id = $1 AND date >= $2 ORDER BY date DESC`
	return r.list(ctx, query, userID, since)
}

func (r *PostgresRepository) Recent(ctx context.Context, userID string, limit int) ([]models.Income, error) {
	query := selectColumns + ` WHERE user_id = $1 ORDER BY date DESC LIMIT $2`
	return r.list(ctx, query, userID, limit)
}

func (r *PostgresRepository) SumByUser(ctx context.Context, userID string) (float64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM incomes WHERE user_id = $1`

	var total float64
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&total); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return total, nil
}

// DeleteForUser removes the income only when it belongs to userID.
func (r *PostgresRepository) DeleteForUser(ctx context.Context, userID, id string) error {
	query := `DELETE FROM incomes WHERE id = $1 AND user_id = $2`

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

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]models.Income, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Income, 0)
	for rows.Next() {
		var i models.Income
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

func scan(rows *sql.Rows, i *models.Income) error {
	return rows.Scan(&i.ID, &i.UserID, &i.Icon, &i.Source, &i.Amount, &i.Date, &i.CreatedAt)
}
