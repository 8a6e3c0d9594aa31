package repository

import "errors"

// ErrNotFound is returned by Update and Delete when no row matched.
// Finders return nil, nil instead.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write breaks a unique or foreign key
// constraint, e.g. a taken username or deleting a user who still owns movies.
var ErrConflict = errors.New("conflict")
