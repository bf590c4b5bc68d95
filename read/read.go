// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package read provides readers converting configuration nodes into Go values.
//
// Readers of containers (SliceOf, MapOf, Struct) read every element and
// report the failures of all invalid elements together.
package read

import (
	"fmt"
	"math"
	"time"

	"github.com/ktong/konfig"
	"github.com/ktong/konfig/tree"
)

// String reads strings. Numbers and booleans are formatted.
func String() konfig.Reader[string] {
	return konfig.ReaderFunc[string](konfig.Cursor.AsString)
}

// Bool reads booleans.
func Bool() konfig.Reader[bool] {
	return konfig.ReaderFunc[bool](konfig.Cursor.AsBool)
}

// Int64 reads integers.
func Int64() konfig.Reader[int64] {
	return konfig.ReaderFunc[int64](konfig.Cursor.AsInt)
}

// Int reads integers which fit into int.
func Int() konfig.Reader[int] {
	return konfig.ReaderFunc[int](func(cursor konfig.Cursor) (int, error) {
		i, err := cursor.AsInt()
		if err != nil {
			return 0, err
		}
		if i > math.MaxInt || i < math.MinInt {
			return 0, cursor.Fail(konfig.CannotConvert, "%d overflows int", i)
		}

		return int(i), nil
	})
}

// Float64 reads numbers.
func Float64() konfig.Reader[float64] {
	return konfig.ReaderFunc[float64](konfig.Cursor.AsFloat)
}

// Duration reads durations written like "1h30m", or numbers of milliseconds.
func Duration() konfig.Reader[time.Duration] {
	return konfig.ReaderFunc[time.Duration](func(cursor konfig.Cursor) (time.Duration, error) {
		if cursor.Value().Kind() == tree.KindNumber && !cursor.IsUndefined() {
			millis, err := cursor.AsInt()
			if err != nil {
				return 0, err
			}

			return time.Duration(millis) * time.Millisecond, nil
		}

		text, err := cursor.AsString()
		if err != nil {
			return 0, err
		}
		duration, err := time.ParseDuration(text)
		if err != nil {
			return 0, cursor.Fail(konfig.CannotConvert, "%v", err)
		}

		return duration, nil
	})
}

// Value reads the node as it is.
func Value() konfig.Reader[tree.Value] {
	return konfig.ReaderFunc[tree.Value](func(cursor konfig.Cursor) (tree.Value, error) {
		if cursor.IsUndefined() {
			return tree.Value{}, cursor.Fail(konfig.KeyNotFound, "")
		}

		return cursor.Value(), nil
	})
}

// Optional reads a missing or null node as nil, and others with the given reader.
func Optional[T any](reader konfig.Reader[T]) konfig.Reader[*T] {
	return konfig.ReaderFunc[*T](func(cursor konfig.Cursor) (*T, error) {
		if cursor.IsNull() {
			return nil, nil //nolint:nilnil
		}

		value, err := reader.From(cursor)
		if err != nil {
			return nil, err
		}

		return &value, nil
	})
}

// Default reads a missing node as the given value, and others with the given reader.
func Default[T any](reader konfig.Reader[T], value T) konfig.Reader[T] {
	return konfig.ReaderFunc[T](func(cursor konfig.Cursor) (T, error) {
		if cursor.IsUndefined() {
			return value, nil
		}

		return reader.From(cursor)
	})
}

// Map reads the node with the given reader and converts the result with fn.
// Errors of fn are reported as CannotConvert at the path of the node.
func Map[A, B any](reader konfig.Reader[A], fn func(A) (B, error)) konfig.Reader[B] {
	return konfig.ReaderFunc[B](func(cursor konfig.Cursor) (B, error) {
		var zero B

		a, err := reader.From(cursor)
		if err != nil {
			return zero, err
		}
		b, err := fn(a)
		if err != nil {
			return zero, konfig.Failures{{
				Kind:   konfig.CannotConvert,
				Path:   cursor.Path(),
				Origin: cursor.Value().Origin(),
				Cause:  err,
			}}
		}

		return b, nil
	})
}

// SliceOf reads arrays, converting each element with the given reader.
func SliceOf[T any](reader konfig.Reader[T]) konfig.Reader[[]T] {
	return konfig.ReaderFunc[[]T](func(cursor konfig.Cursor) ([]T, error) {
		arr, err := cursor.AsArray()
		if err != nil {
			return nil, err
		}

		var (
			values = make([]T, 0, arr.Len())
			errs   []error
		)
		for _, elem := range arr.Elements() {
			value, err := reader.From(elem)
			if err != nil {
				errs = append(errs, err)

				continue
			}
			values = append(values, value)
		}
		if err := konfig.Combine(errs...); err != nil {
			return nil, err
		}

		return values, nil
	})
}

// MapOf reads objects, converting each field with the given reader.
func MapOf[T any](reader konfig.Reader[T]) konfig.Reader[map[string]T] {
	return konfig.ReaderFunc[map[string]T](func(cursor konfig.Cursor) (map[string]T, error) {
		obj, err := cursor.AsObject()
		if err != nil {
			return nil, err
		}

		var (
			values = make(map[string]T, obj.Len())
			errs   []error
		)
		for _, key := range obj.Keys() {
			value, err := konfig.Field(obj, key, reader)
			if err != nil {
				errs = append(errs, err)

				continue
			}
			values[key] = value
		}
		if err := konfig.Combine(errs...); err != nil {
			return nil, err
		}

		return values, nil
	})
}

// OneOf reads strings which must be one of the given values.
func OneOf(values ...string) konfig.Reader[string] {
	return Map(String(), func(text string) (string, error) {
		for _, value := range values {
			if text == value {
				return text, nil
			}
		}

		return "", fmt.Errorf("%q is not one of %q", text, values) //nolint:err113
	})
}
