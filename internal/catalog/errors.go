package catalog

import (
	"errors"
	"fmt"
)

// ErrInvalid marks a catalog document that could not be decoded or that
// failed Validate.
var ErrInvalid = errors.New("invalid catalog")

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalid, err)
}

// FetchError is a failed call to the catalog service. StatusCode is zero
// when no response arrived.
type FetchError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: unexpected status %d from %s", e.Op, e.StatusCode, e.URL)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op + ": failed"
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// NoMatchError reports a name that no resolution tier accepted. Closest is
// the best-scoring candidate name, empty when nothing scored above zero.
type NoMatchError struct {
	Kind    Kind
	Query   string
	Closest string
	Score   float64
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no %s matches %q", e.Kind, e.Query)
}
