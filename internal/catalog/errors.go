package catalog

import "errors"

var (
	// ErrValidation marks a malformed or locally invalid request.
	ErrValidation = errors.New("validation failed")
	// ErrReferential marks a reference to a sibling record that does not exist.
	ErrReferential = errors.New("referenced record does not exist")
	// ErrNotFound marks a lookup of an id that does not exist.
	ErrNotFound = errors.New("not found")
)
