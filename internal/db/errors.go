package db

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes the gateway distinguishes.
const (
	pgCodeUndefinedTable        = "42P01"
	pgCodeInsufficientPrivilege = "42501"
	pgCodeForeignKeyViolation   = "23503"
)

// SchemaMissingError indicates the backing table has not been created yet.
// Surfaced separately from a generic connection failure so the UI can show
// a setup-specific message.
type SchemaMissingError struct {
	Table string
}

func (e *SchemaMissingError) Error() string {
	return fmt.Sprintf("table %q was not found in the database", e.Table)
}

// ConnectivityError indicates the store is unreachable
type ConnectivityError struct {
	Op    string
	Cause error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("database unreachable during %s: %v", e.Op, e.Cause)
}

func (e *ConnectivityError) Unwrap() error { return e.Cause }

// PermissionError indicates the store's write policy rejected the operation
type PermissionError struct {
	Op    string
	Cause error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied during %s: the store policy is blocking the operation", e.Op)
}

func (e *PermissionError) Unwrap() error { return e.Cause }

// NotFoundError indicates a record does not exist
type NotFoundError struct {
	Resource string
	ID       uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// storeError classifies a pgx error into the gateway's error taxonomy.
// The table argument names the relation the operation touched, used when
// the schema turns out to be missing.
func storeError(op, table string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgCodeUndefinedTable:
			return &SchemaMissingError{Table: table}
		case pgCodeInsufficientPrivilege:
			return &PermissionError{Op: op, Cause: err}
		}
		return fmt.Errorf("%s failed: %w", op, err)
	}
	return &ConnectivityError{Op: op, Cause: err}
}
