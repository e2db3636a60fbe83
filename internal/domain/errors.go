package domain

import (
	"errors"
	"fmt"
)

// Errors returned by the recommendation core.
var (
	ErrNotFound          = errors.New("score not found")
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	ErrVectorization     = errors.New("vocabulary does not match corpus")
	ErrDuplicateID       = errors.New("duplicate score id")

	// ErrMissingID is returned for requests that carry no id. It matches
	// ErrNotFound under errors.Is so callers can treat both alike.
	ErrMissingID = fmt.Errorf("%w: missing id", ErrNotFound)
)
