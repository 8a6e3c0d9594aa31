package usecase

import (
	"errors"

	"movie-review/internal/data/repository"
	"movie-review/pkg/utils"
)

var (
	ErrNotFound         = repository.ErrNotFound
	ErrConflict         = repository.ErrConflict
	ErrInvalidID        = errors.New("invalid id")
	ErrInvalidReference = errors.New("invalid reference")
)

// ValidationError lists the violated constraints keyed by field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + utils.FormatValidationErrors(e.Fields)
}

// newValidationError merges the given violation sets and returns nil when
// they are all empty.
func newValidationError(sets ...map[string]string) error {
	fields := make(map[string]string)
	for _, set := range sets {
		for field, msg := range set {
			if _, seen := fields[field]; !seen {
				fields[field] = msg
			}
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
