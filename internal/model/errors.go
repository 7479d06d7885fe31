package model

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrNameTaken = errors.New("name already exists")

	// Surfaced verbatim to the operator.
	ErrCategoryInUse = errors.New("Cannot delete category while products are linked to it.")
)

// ConflictError rejects a stale write and carries the current server-side
// snapshot so the losing writer can decide to overwrite or cancel.
type ConflictError struct {
	Current any
}

func (e *ConflictError) Error() string {
	return "Conflict: Server has a newer version"
}
