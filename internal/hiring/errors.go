package hiring

import "fmt"

// ValidationError indicates a client-side precondition failed before any
// network call. Each failed rule carries its own user-facing message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ConflictError indicates a business-rule refusal, resolved locally without
// reaching the store.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}
