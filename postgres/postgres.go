// Package postgres reads catalog terms from the shop's PostgreSQL database.
// Brands come from the "Brand" table and product names from published rows
// of the "product" table.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/fwojciec/furniq"
	_ "github.com/lib/pq"
)

// DB represents a PostgreSQL database connection.
type DB struct {
	db  *sql.DB
	dsn string
}

// NewDB creates a new DB for the given connection string.
func NewDB(dsn string) *DB {
	return &DB{dsn: dsn}
}

// Open opens the connection and verifies it.
func (db *DB) Open(ctx context.Context) error {
	conn, err := sql.Open("postgres", db.dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	db.db = conn
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// Compile-time interface verification.
var _ furniq.TermSource = (*TermSource)(nil)

// TermSource implements furniq.TermSource on top of the catalog tables.
type TermSource struct {
	db *DB
}

// NewTermSource creates a new TermSource.
func NewTermSource(db *DB) *TermSource {
	return &TermSource{db: db}
}

// FindTerms retrieves brands or product names. A category is required.
func (s *TermSource) FindTerms(ctx context.Context, filter furniq.TermFilter) ([]*furniq.Term, error) {
	query, args, err := buildTermQuery(filter)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var terms []*furniq.Term
	for rows.Next() {
		term := furniq.Term{Category: *filter.Category}
		if err := rows.Scan(&term.ID, &term.Name); err != nil {
			return nil, err
		}
		terms = append(terms, &term)
	}
	return terms, rows.Err()
}

// buildTermQuery returns the SQL and arguments for filter.
func buildTermQuery(filter furniq.TermFilter) (string, []any, error) {
	if filter.Category == nil {
		return "", nil, furniq.Errorf(furniq.EINVALID, "term category required")
	}

	var query strings.Builder
	var args []any

	switch *filter.Category {
	case furniq.CategoryBrand:
		query.WriteString(`SELECT t.id::text, t.name FROM "Brand" AS t WHERE TRUE`)
	case furniq.CategoryProductName:
		query.WriteString(`SELECT t.id::text, t.name FROM "product" AS t WHERE t."isPublished" = TRUE`)
	default:
		return "", nil, furniq.Errorf(furniq.EINVALID, "no catalog table for %s", *filter.Category)
	}

	if filter.Name != nil {
		args = append(args, strings.ToLower(strings.TrimSpace(*filter.Name)))
		fmt.Fprintf(&query, " AND lower(t.name) = $%d", len(args))
	}

	query.WriteString(" ORDER BY t.name")

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&query, " LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		fmt.Fprintf(&query, " OFFSET $%d", len(args))
	}

	return query.String(), args, nil
}
