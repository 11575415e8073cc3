package database

import (
	"context"
	"database/sql"
	"errors"
)

var ErrNoRows = errors.New("no rows in result set")

// DB is the query surface the repositories depend on. Row scans report a
// missing row as ErrNoRows regardless of driver.
type DB interface {
	Ping(ctx context.Context) error
	Close() error

	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row

	SQLDB() *sql.DB
}

type Rows interface {
	Close()
	Next() bool
	Scan(dest ...any) error
	Err() error
}

type Row interface {
	Scan(dest ...any) error
}
