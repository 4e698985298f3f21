// Package dbx holds the database/sql glue shared by the Postgres
// repositories: the DBTX handle accepted by every repository constructor,
// WithTx for multi-statement units of work, and driver error helpers.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is what repositories need from a handle. *sql.DB and *sql.Tx both
// satisfy it, so a repository bound to either runs the same queries.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside one transaction. It commits when fn returns nil and
// rolls back when fn fails or panics; a panic is re-raised after rollback.
// A failed commit is returned as the error.
//
// Registration checks the email and inserts the user in one unit:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    repo := rm.Users(tx)
//	    exists, err := repo.ExistsByEmail(ctx, email)
//	    if err != nil {
//	        return err
//	    }
//	    if exists {
//	        return common.ErrorAlreadyExists
//	    }
//	    user, err = repo.Create(ctx, user)
//	    return err
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	return fn(ctx, tx)
}
