// Package store executes single SQL statements against a PostgreSQL store
// over a pgx connection pool. Each statement acquires a connection for its own
// duration and releases it on every path; writes run inside an explicit
// transaction that commits on success.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store wraps a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to the store and verifies connectivity.
func Open(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Pool exposes the underlying pool for schema introspection.
func (s *Store) Pool() *pgxpool.Pool { return s.pool }

// Close releases the connection pool.
func (s *Store) Close() { s.pool.Close() }

// TestConnection verifies store connectivity.
func (s *Store) TestConnection(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Result holds the outcome of a single statement.
type Result struct {
	Read         bool
	Columns      []string
	Rows         []map[string]interface{}
	RowsAffected int64
}

// IsReadQuery reports whether a statement is a read. Detection is purely
// lexical: leading keyword, case-insensitive, surrounding whitespace trimmed.
// It does not parse the query; a write disguised behind a leading "select" in
// a string literal would be misclassified, a known and accepted limitation.
func IsReadQuery(sql string) bool {
	trimmed := strings.TrimSpace(sql)
	if len(trimmed) < len("select") {
		return false
	}
	return strings.EqualFold(trimmed[:len("select")], "select")
}

// Execute runs exactly one statement. Reads materialize all rows in order;
// writes commit and report rows affected.
func (s *Store) Execute(ctx context.Context, sql string) (*Result, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	if IsReadQuery(sql) {
		return readRows(ctx, conn, sql)
	}

	tx, err := conn.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	tag, err := tx.Exec(ctx, sql)
	if err != nil {
		_ = tx.Rollback(ctx)
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &Result{RowsAffected: tag.RowsAffected()}, nil
}

func readRows(ctx context.Context, conn *pgxpool.Conn, sql string) (*Result, error) {
	rows, err := conn.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := &Result{Read: true, Rows: []map[string]interface{}{}}
	for _, fd := range rows.FieldDescriptions() {
		res.Columns = append(res.Columns, string(fd.Name))
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		row := make(map[string]interface{}, len(values))
		for i, v := range values {
			row[res.Columns[i]] = v
		}
		res.Rows = append(res.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
