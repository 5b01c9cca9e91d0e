package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/furniq"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ furniq.TermService = (*TermService)(nil)

// TermService implements furniq.TermService using SQLite.
type TermService struct {
	db *DB
}

// NewTermService creates a new TermService.
func NewTermService(db *DB) *TermService {
	return &TermService{db: db}
}

// CreateTerm creates a new term. Names are unique per category after
// normalization, so "Bolzan" and " bolzan " are the same term.
func (s *TermService) CreateTerm(ctx context.Context, term *furniq.Term) error {
	term.Name = strings.TrimSpace(term.Name)
	if err := term.Validate(); err != nil {
		return err
	}

	normalized := furniq.NormalizeTerm(term.Name)
	var existing string
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM terms WHERE category = ? AND normalized = ?",
		term.Category.String(), normalized,
	).Scan(&existing)
	if err == nil {
		return furniq.Errorf(furniq.ECONFLICT, "%s %q already exists", term.Category, term.Name)
	}
	if err != sql.ErrNoRows {
		return err
	}

	term.ID = uuid.New().String()
	term.CreatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO terms (id, category, name, normalized, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, term.ID, term.Category.String(), term.Name, normalized, term.CreatedAt.Format(time.RFC3339))

	return err
}

// FindTerms retrieves terms matching the filter, oldest first.
func (s *TermService) FindTerms(ctx context.Context, filter furniq.TermFilter) ([]*furniq.Term, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, category, name, created_at FROM terms WHERE 1=1")

	if filter.Category != nil {
		query.WriteString(" AND category = ?")
		args = append(args, filter.Category.String())
	}
	if filter.Name != nil {
		query.WriteString(" AND normalized = ?")
		args = append(args, furniq.NormalizeTerm(*filter.Name))
	}

	query.WriteString(" ORDER BY created_at ASC, rowid ASC")
	paginate(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var terms []*furniq.Term
	for rows.Next() {
		var term furniq.Term
		var category, createdAt string

		if err := rows.Scan(&term.ID, &category, &term.Name, &createdAt); err != nil {
			return nil, err
		}

		if term.Category, err = furniq.ParseCategory(category); err != nil {
			return nil, err
		}
		if term.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at of term %s: %w", term.ID, err)
		}

		terms = append(terms, &term)
	}

	return terms, rows.Err()
}

// DeleteTerm permanently removes a term.
func (s *TermService) DeleteTerm(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM terms WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return furniq.Errorf(furniq.ENOTFOUND, "term not found")
	}

	return nil
}

// paginate appends LIMIT and OFFSET clauses. SQLite only accepts OFFSET after
// a LIMIT, so an offset without a limit uses LIMIT -1 (no limit).
func paginate(query *strings.Builder, args *[]any, limit, offset int) {
	switch {
	case limit > 0:
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	case offset > 0:
		query.WriteString(" LIMIT -1")
	default:
		return
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
