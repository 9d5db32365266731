package models

import (
	"errors"
	"fmt"
)

// FailureKind classifies a failure for the orchestrator's recovery policy.
type FailureKind string

const (
	FailureNotFound    FailureKind = "not-found"   // negative result, cached briefly
	FailureTransient   FailureKind = "transient"   // network or rate limit, stale entries may be served
	FailureUnexpected  FailureKind = "unexpected"  // malformed response or logic error, never cached
	FailureUnavailable FailureKind = "unavailable" // offline with no cached data
	FailureStorage     FailureKind = "storage"     // backing store broken, degraded to memory-only
)

// Failure is a classified error crossing the fetcher or orchestrator boundary.
type Failure struct {
	Kind FailureKind
	Err  error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return string(f.Kind)
	}
	return fmt.Sprintf("%s: %v", f.Kind, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// NewFailure wraps err with a classification.
func NewFailure(kind FailureKind, err error) *Failure {
	return &Failure{Kind: kind, Err: err}
}

// NotFoundFailure builds a not-found failure for the given resource description.
func NotFoundFailure(what string) *Failure {
	return &Failure{Kind: FailureNotFound, Err: errors.New(what + " not found")}
}

// KindOf extracts the failure kind from an error chain. Unclassified errors
// report FailureUnexpected.
func KindOf(err error) FailureKind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return FailureUnexpected
}

// IsKind reports whether err carries the given classification.
func IsKind(err error, kind FailureKind) bool {
	return err != nil && KindOf(err) == kind
}
