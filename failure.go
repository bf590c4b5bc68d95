// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package konfig

import (
	"errors"
	"strings"

	"github.com/ktong/konfig/tree"
)

// FailureKind classifies a Failure.
type FailureKind uint8

const (
	// CannotRead means the origin could not be read, e.g. file not found or network error.
	CannotRead FailureKind = iota + 1
	// CannotParse means the content of the origin is malformed.
	CannotParse
	// CannotResolve means a reference in the tree could not be resolved.
	CannotResolve
	// InvalidPath means a path expression is malformed.
	InvalidPath
	// KeyNotFound means a required key is missing.
	KeyNotFound
	// IndexOutOfRange means an array has no element at the requested index.
	IndexOutOfRange
	// WrongType means the node has a different kind than the expected one.
	WrongType
	// CannotConvert means the node is present but can not be converted to the requested type.
	CannotConvert
)

func (k FailureKind) String() string {
	switch k {
	case CannotRead:
		return "cannot read"
	case CannotParse:
		return "cannot parse"
	case CannotResolve:
		return "cannot resolve"
	case InvalidPath:
		return "invalid path"
	case KeyNotFound:
		return "key not found"
	case IndexOutOfRange:
		return "index out of range"
	case WrongType:
		return "wrong type"
	case CannotConvert:
		return "cannot convert"
	default:
		return "failure"
	}
}

// Failure is a structured record describing why configuration could not be loaded.
//
// Origin failures (CannotRead, CannotParse) have no path,
// while navigation and conversion failures carry the path of the node.
type Failure struct {
	Kind        FailureKind
	Path        Path // nil if the failure has no path context.
	Origin      tree.Origin
	Description string
	Cause       error
}

func (f Failure) Error() string {
	builder := &strings.Builder{}
	if f.Path != nil {
		builder.WriteString("at '")
		builder.WriteString(f.Path.String())
		builder.WriteString("': ")
	}
	builder.WriteString(f.Kind.String())
	if f.Description != "" {
		builder.WriteString(": ")
		builder.WriteString(f.Description)
	}
	if f.Cause != nil {
		builder.WriteString(": ")
		builder.WriteString(f.Cause.Error())
	}
	if !f.Origin.IsZero() {
		builder.WriteString(" (")
		builder.WriteString(f.Origin.String())
		builder.WriteString(")")
	}

	return builder.String()
}

func (f Failure) Unwrap() error {
	return f.Cause
}

// Failures is a non-empty set of failures. It is the error type returned by
// every operation of this package.
type Failures []Failure

func (f Failures) Error() string {
	if len(f) == 1 {
		return f[0].Error()
	}

	builder := &strings.Builder{}
	builder.WriteString("multiple failures:")
	for _, failure := range f {
		builder.WriteString("\n  - ")
		builder.WriteString(failure.Error())
	}

	return builder.String()
}

func (f Failures) Unwrap() []error {
	errs := make([]error, len(f))
	for i, failure := range f {
		errs[i] = failure
	}

	return errs
}

// Combine unions the failures of all non-nil errors.
// It returns nil if all errors are nil.
//
// Duplicated failures are reported once, and the order of first appearance is kept.
// Errors which are not Failures are converted with [AsFailures].
func Combine(errs ...error) error {
	var (
		failures Failures
		seen     = make(map[string]struct{})
	)
	for _, err := range errs {
		for _, failure := range AsFailures(err) {
			key := failure.Error()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			failures = append(failures, failure)
		}
	}

	if len(failures) == 0 {
		return nil
	}

	return failures
}

// AsFailures returns the failures in err.
//
// It returns nil if err is nil. Errors which carry neither Failures nor Failure,
// e.g. errors of a RecoverWith handler or a done context, are reported
// as a single CannotRead failure without path.
func AsFailures(err error) Failures {
	if err == nil {
		return nil
	}

	var failures Failures
	if errors.As(err, &failures) {
		return failures
	}
	var failure Failure
	if errors.As(err, &failure) {
		return Failures{failure}
	}

	return Failures{{Kind: CannotRead, Cause: err}}
}

// IsKind reports whether any failure in err has the given kind.
func IsKind(err error, kind FailureKind) bool {
	for _, failure := range AsFailures(err) {
		if failure.Kind == kind {
			return true
		}
	}

	return false
}

// LoadError is the panic value of MustLoad.
type LoadError struct {
	Failures Failures
}

func (e *LoadError) Error() string {
	return "cannot load configuration: " + e.Failures.Error()
}

func (e *LoadError) Unwrap() error {
	return e.Failures
}
