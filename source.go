// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package konfig

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ktong/konfig/parser"
	"github.com/ktong/konfig/tree"
)

// Loader is the interface that wraps the basic Load method.
//
// Load reads configuration from an origin, such as a file or an URL,
// and returns it as a tree.Value. It is called every time the configuration
// is accessed, so it may return different values for a changing origin.
type Loader interface {
	Load() (tree.Value, error)
}

// Loadable is implemented by both Source and ObjectSource.
type Loadable interface {
	Cursor() (Cursor, error)
}

// Source produces a tree.Value from an origin on every access.
//
// The computation is deferred and never memoized: each call of Value or Cursor
// runs it again. Call Value once and reuse the result for a stable snapshot.
//
// The zero Source is an empty object.
type Source struct {
	cursor func() (Cursor, error)
}

// Value evaluates the source and returns its root.
func (s Source) Value() (tree.Value, error) {
	cursor, err := s.Cursor()
	if err != nil {
		return tree.Value{}, err
	}

	return cursor.Value(), nil
}

// Cursor evaluates the source and returns a cursor of its root.
func (s Source) Cursor() (Cursor, error) {
	if s.cursor == nil {
		return NewCursor(tree.Object()), nil
	}

	return s.cursor()
}

// FluentCursor evaluates the source and returns a FluentCursor of its root.
// It never fails itself: any failure is deferred into the FluentCursor.
func (s Source) FluentCursor() FluentCursor {
	return NewFluentCursor(s.Cursor())
}

// At returns a Source of the sub-tree under the given path expression, e.g. "db.pools[0]".
// Failures of the navigation are reported when the returned Source is evaluated,
// with paths relative to the root of the receiver.
func (s Source) At(namespace string) Source {
	return Source{cursor: func() (Cursor, error) {
		return s.FluentCursor().AtPath(namespace).Cursor()
	}}
}

// ObjectSource is a Source whose root is always an object.
// It supports layered composition with fallbacks.
//
// The zero ObjectSource is an empty object.
type ObjectSource struct {
	raw func() (tree.Value, error)
}

// NewObjectSource returns an ObjectSource of the given deferred computation.
func NewObjectSource(raw func() (tree.Value, error)) ObjectSource {
	return ObjectSource{raw: raw}
}

// FromLoader returns an ObjectSource which calls loader.Load on every evaluation.
//
// Errors of the loader are reported as CannotParse for malformed content,
// or CannotRead otherwise. Every node is tagged with the loader as its origin
// if the loader implements fmt.Stringer.
func FromLoader(loader Loader) ObjectSource {
	if loader == nil {
		return failing(Failures{{Kind: CannotRead, Cause: errNilLoader}})
	}

	var origin tree.Origin
	if stringer, ok := loader.(fmt.Stringer); ok {
		origin.Description = stringer.String()
	}

	return ObjectSource{raw: func() (tree.Value, error) {
		value, err := loader.Load()
		if err != nil {
			kind := CannotRead
			if syntaxErr := new(parser.SyntaxError); errors.As(err, &syntaxErr) {
				kind = CannotParse
			}

			return tree.Value{}, Failures{{Kind: kind, Origin: origin, Cause: err}}
		}

		if origin.IsZero() {
			return value, nil
		}

		return value.WithOriginDeep(origin), nil
	}}
}

func failing(err error) ObjectSource {
	return ObjectSource{raw: func() (tree.Value, error) {
		return tree.Value{}, err
	}}
}

func (s ObjectSource) evaluate() (tree.Value, error) {
	if s.raw == nil {
		return tree.Object(), nil
	}

	return s.raw()
}

// Value evaluates the source, resolves references in the tree,
// and returns the root which is guaranteed to be an object.
func (s ObjectSource) Value() (tree.Value, error) {
	value, err := s.evaluate()
	if err != nil {
		return tree.Value{}, err
	}

	if value, err = Resolve(value); err != nil {
		return tree.Value{}, err
	}
	if _, err := NewCursor(value).AsObject(); err != nil {
		return tree.Value{}, err
	}

	return value, nil
}

// Cursor evaluates the source and returns a cursor of its root.
func (s ObjectSource) Cursor() (Cursor, error) {
	value, err := s.Value()
	if err != nil {
		return Cursor{}, err
	}

	return NewCursor(value), nil
}

// FluentCursor evaluates the source and returns a FluentCursor of its root.
func (s ObjectSource) FluentCursor() FluentCursor {
	return NewFluentCursor(s.Cursor())
}

// At returns a Source of the sub-tree under the given path expression.
func (s ObjectSource) At(namespace string) Source {
	return s.Source().At(namespace)
}

// Source returns the ObjectSource as a plain Source.
func (s ObjectSource) Source() Source {
	return Source{cursor: s.Cursor}
}

// WithFallback returns an ObjectSource which merges the receiver with the fallback,
// preferring the receiver. Objects are merged recursively,
// other values are taken from the receiver wholesale.
//
// Both sides are evaluated. If any side fails, the composition fails
// with the union of the failures of both sides.
func (s ObjectSource) WithFallback(fallback ObjectSource) ObjectSource {
	return ObjectSource{raw: func() (tree.Value, error) {
		value, err := s.evaluate()
		fallbackValue, fallbackErr := fallback.Value()
		if err != nil || fallbackErr != nil {
			return tree.Value{}, Combine(err, fallbackErr)
		}

		return value.WithFallback(fallbackValue), nil
	}}
}

// WithOptionalFallback is like WithFallback, but a failing fallback contributes nothing
// instead of failing the composition.
func (s ObjectSource) WithOptionalFallback(fallback ObjectSource) ObjectSource {
	return ObjectSource{raw: func() (tree.Value, error) {
		value, err := s.evaluate()
		if err != nil {
			return tree.Value{}, err
		}

		fallbackValue, err := fallback.Value()
		if err != nil {
			slog.Debug("Optional fallback configuration is ignored.", "error", err)

			return value, nil
		}

		return value.WithFallback(fallbackValue), nil
	}}
}

// RecoverWith returns an ObjectSource which calls handler with the failures
// if the receiver fails. The handler returns ErrNotHandled to decline,
// in which case the original failures are reported.
func (s ObjectSource) RecoverWith(handler func(Failures) (tree.Value, error)) ObjectSource {
	return ObjectSource{raw: func() (tree.Value, error) {
		value, err := s.evaluate()
		if err == nil {
			return value, nil
		}

		recovered, recoverErr := handler(AsFailures(err))
		if errors.Is(recoverErr, ErrNotHandled) {
			return tree.Value{}, err
		}

		if recoverErr != nil {
			return tree.Value{}, Combine(recoverErr)
		}

		return recovered, nil
	}}
}

var (
	// ErrNotHandled is returned by a RecoverWith handler which does not handle the failures.
	ErrNotHandled = errors.New("failures not handled")

	errNilLoader = errors.New("cannot load config from nil loader")
)
