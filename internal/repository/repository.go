package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Loggy-dot/Student-Management-system/internal/models"
)

// ErrDuplicate signals a unique constraint violation.
var ErrDuplicate = errors.New("duplicate record")

const uniqueViolation = "23505"

// DuplicateError names the constraint that rejected a write. It matches ErrDuplicate with errors.Is.
type DuplicateError struct {
	Constraint string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDuplicate.Error(), e.Constraint)
}

// Is reports whether target is ErrDuplicate.
func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

// DuplicateConstraint returns the violated constraint name, or "" when err is not a duplicate.
func DuplicateConstraint(err error) string {
	var dup *DuplicateError
	if errors.As(err, &dup) {
		return dup.Constraint
	}
	return ""
}

func writeError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w", op, &DuplicateError{Constraint: pqErr.Constraint})
	}
	return fmt.Errorf("%s: %w", op, err)
}

// TxManager runs a unit of work inside a database transaction.
type TxManager struct {
	db *sqlx.DB
}

// NewTxManager constructs a TxManager.
func NewTxManager(db *sqlx.DB) *TxManager {
	return &TxManager{db: db}
}

// WithinTx commits when fn returns nil and rolls back otherwise.
func (m *TxManager) WithinTx(ctx context.Context, fn func(exec sqlx.ExtContext) error) error {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback() //nolint:errcheck
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func pick(db *sqlx.DB, exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return db
}

func paginate(query string, params models.ListParams) string {
	params = params.Normalize()
	if !params.Paginated() {
		return query
	}
	return fmt.Sprintf("%s LIMIT %d OFFSET %d", query, params.PageSize, params.Offset())
}

// count returns the total for a paginated listing, or fetched when every row was returned.
func count(ctx context.Context, db *sqlx.DB, params models.ListParams, fetched int, query string, args ...interface{}) (int, error) {
	if !params.Normalize().Paginated() {
		return fetched, nil
	}
	var total int
	if err := db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, err
	}
	return total, nil
}
