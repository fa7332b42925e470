package ledger

import "errors"

var (
	// ErrDuplicateName is returned when adding a group or user whose name is
	// already taken in the relevant scope.
	ErrDuplicateName = errors.New("name already exists")

	// ErrNotFound is returned when a group or user does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument is returned for empty names and non-positive amounts.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEmptyRegistry signals a query over a group without users.
	// It is an outcome, not a failure.
	ErrEmptyRegistry = errors.New("group has no users")
)
