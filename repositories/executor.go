package repositories

import (
	"context"
	"database/sql"
)

// SQLExecutor is satisfied by both *sql.DB and *sql.Tx so repository
// methods can run inside or outside a transaction.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
