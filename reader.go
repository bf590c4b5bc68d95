// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package konfig

import (
	"log/slog"
	"reflect"
)

// Reader converts the node of a Cursor into a value of type T.
//
// Readers of records should read every field and combine the failures with [Combine],
// so all invalid fields are reported at once.
type Reader[T any] interface {
	From(cursor Cursor) (T, error)
}

// ReaderFunc is an adapter to allow the use of ordinary functions as Reader.
type ReaderFunc[T any] func(cursor Cursor) (T, error)

func (f ReaderFunc[T]) From(cursor Cursor) (T, error) {
	return f(cursor)
}

// Load evaluates the source and converts its root with the given reader.
func Load[T any](source Loadable, reader Reader[T]) (T, error) {
	cursor, err := source.Cursor()
	if err != nil {
		var zero T

		return zero, Combine(err)
	}

	value, err := reader.From(cursor)
	if err != nil {
		var zero T

		return zero, Combine(err)
	}

	return value, nil
}

// MustLoad is like Load but panics with a *LoadError holding all failures if it fails.
//
// It is intended for start-up code where missing configuration is unrecoverable.
func MustLoad[T any](source Loadable, reader Reader[T]) T {
	value, err := Load(source, reader)
	if err != nil {
		failures := AsFailures(err)
		slog.Error(
			"Could not load configuration.",
			"error", failures,
			"type", reflect.TypeOf(value),
		)

		panic(&LoadError{Failures: failures})
	}

	return value
}

// Field reads the field with the given key of the object with the given reader.
// The reader gets an undefined cursor if the key is missing.
func Field[T any](obj ObjectCursor, key string, reader Reader[T]) (T, error) {
	return reader.From(obj.Field(key))
}
