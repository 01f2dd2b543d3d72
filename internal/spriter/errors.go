package spriter

import "errors"

var (
	// ErrDuplicateID is returned when an id (or name, for object infos) is
	// already taken within the same owner.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrDanglingReference is returned when a parent index, file reference,
	// timeline or key id names nothing.
	ErrDanglingReference = errors.New("dangling reference")
	// ErrOutOfOrder is returned when keys are not in strictly ascending time.
	ErrOutOfOrder = errors.New("keys out of time order")
)
