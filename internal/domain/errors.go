package domain

import (
	"errors"
	"fmt"
)

// Service names used when wrapping upstream failures.
const (
	ServiceEmbedding  = "embedding"
	ServiceSearch     = "search"
	ServiceGeneration = "generation"
)

// DependencyError marks a failure of one of the external services the
// pipeline depends on: unreachable endpoint, non-2xx status, or a malformed
// response body. It is fatal to the current request; the pipeline never
// retries internally.
type DependencyError struct {
	Service string
	Err     error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s service failure: %v", e.Service, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

// NewDependencyError wraps err as a failure of the named service.
func NewDependencyError(service string, err error) error {
	return &DependencyError{Service: service, Err: err}
}

// IsDependencyError reports whether err (or anything it wraps) is a
// DependencyError.
func IsDependencyError(err error) bool {
	var de *DependencyError
	return errors.As(err, &de)
}
