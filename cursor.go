// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package konfig

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ktong/konfig/internal/credential"
	"github.com/ktong/konfig/tree"
)

// Cursor is a view of a node in a tree.Value, together with the path from the root to the node.
//
// Navigation fails immediately with a single Failure carrying the attempted path.
// A Cursor may be undefined, which means the node it points to is missing.
type Cursor struct {
	value     tree.Value
	path      Path
	undefined bool
}

// NewCursor returns a Cursor of the given root value.
func NewCursor(value tree.Value) Cursor {
	return Cursor{value: value, path: Path{}}
}

// Value returns the node the cursor points to. It is null if the cursor is undefined.
func (c Cursor) Value() tree.Value {
	return c.value
}

// Path returns the path from the root to the node.
func (c Cursor) Path() Path {
	return c.path
}

// IsUndefined reports whether the node is missing.
func (c Cursor) IsUndefined() bool {
	return c.undefined
}

// IsNull reports whether the node is missing or null.
func (c Cursor) IsNull() bool {
	return c.undefined || c.value.IsNull()
}

// Fail returns a Failures with a single failure at the path of the cursor.
func (c Cursor) Fail(kind FailureKind, format string, args ...any) error {
	return c.failure(kind, nil, format, args...)
}

func (c Cursor) failure(kind FailureKind, cause error, format string, args ...any) error {
	return Failures{{
		Kind:        kind,
		Path:        c.path,
		Origin:      c.value.Origin(),
		Description: fmt.Sprintf(format, args...),
		Cause:       cause,
	}}
}

func (c Cursor) missing() error {
	return c.Fail(KeyNotFound, "")
}

func (c Cursor) wrongType(expected tree.Kind) error {
	return c.Fail(WrongType, "expected %s, got %s", expected, c.value.Kind())
}

func (c Cursor) cannotConvert(target string, cause error) error {
	path := c.path.String()
	if credential.IsSecret(path, c.value) {
		// The cause may quote the value.
		cause = nil
	}

	return c.failure(CannotConvert, cause, "%s is not a valid %s", credential.Blur(path, c.value), target)
}

// Down navigates into the field with the given key.
func (c Cursor) Down(key string) (Cursor, error) {
	obj, err := c.AsObject()
	if err != nil {
		return Cursor{}, err
	}

	child := obj.Field(key)
	if child.undefined {
		return Cursor{}, child.missing()
	}

	return child, nil
}

// Index navigates into the element at the given index.
func (c Cursor) Index(index int) (Cursor, error) {
	arr, err := c.AsArray()
	if err != nil {
		return Cursor{}, err
	}

	value, ok := c.value.Index(index)
	if !ok {
		child := Cursor{path: c.path.Append(Index(index))}

		return Cursor{}, child.Fail(IndexOutOfRange, "index %d, length %d", index, arr.Len())
	}

	return Cursor{value: value, path: c.path.Append(Index(index))}, nil
}

// At navigates through the given segments in order, stopping at the first failure.
func (c Cursor) At(segments ...PathSegment) (Cursor, error) {
	cursor := c
	for _, segment := range segments {
		var err error
		if index, ok := segment.Index(); ok {
			cursor, err = cursor.Index(index)
		} else {
			key, _ := segment.Key()
			cursor, err = cursor.Down(key)
		}
		if err != nil {
			return Cursor{}, err
		}
	}

	return cursor, nil
}

// AsObject returns an ObjectCursor if the node is an object.
func (c Cursor) AsObject() (ObjectCursor, error) {
	switch {
	case c.undefined:
		return ObjectCursor{}, c.missing()
	case c.value.Kind() != tree.KindObject:
		return ObjectCursor{}, c.wrongType(tree.KindObject)
	default:
		return ObjectCursor{Cursor: c}, nil
	}
}

// AsArray returns an ArrayCursor if the node is an array.
func (c Cursor) AsArray() (ArrayCursor, error) {
	switch {
	case c.undefined:
		return ArrayCursor{}, c.missing()
	case c.value.Kind() != tree.KindArray:
		return ArrayCursor{}, c.wrongType(tree.KindArray)
	default:
		return ArrayCursor{Cursor: c}, nil
	}
}

// AsString returns the node as a string. Numbers and booleans are formatted.
func (c Cursor) AsString() (string, error) {
	if c.undefined {
		return "", c.missing()
	}

	switch c.value.Kind() { //nolint:exhaustive
	case tree.KindString, tree.KindNumber:
		text, _ := c.value.Text()

		return text, nil
	case tree.KindBool:
		b, _ := c.value.Bool()

		return strconv.FormatBool(b), nil
	default:
		return "", c.wrongType(tree.KindString)
	}
}

// AsBool returns the node as a bool.
// Strings true/yes/on and false/no/off are accepted, case-insensitively.
func (c Cursor) AsBool() (bool, error) {
	if c.undefined {
		return false, c.missing()
	}

	switch c.value.Kind() { //nolint:exhaustive
	case tree.KindBool:
		b, _ := c.value.Bool()

		return b, nil
	case tree.KindString:
		text, _ := c.value.Text()
		switch strings.ToLower(strings.TrimSpace(text)) {
		case "true", "yes", "on":
			return true, nil
		case "false", "no", "off":
			return false, nil
		default:
			return false, c.cannotConvert("boolean", nil)
		}
	default:
		return false, c.wrongType(tree.KindBool)
	}
}

// AsInt returns the node as an int64. Strings holding integers are accepted.
func (c Cursor) AsInt() (int64, error) {
	if c.undefined {
		return 0, c.missing()
	}

	switch c.value.Kind() { //nolint:exhaustive
	case tree.KindNumber:
		i, err := c.value.Int64()
		if err != nil {
			return 0, c.cannotConvert("integer", err)
		}

		return i, nil
	case tree.KindString:
		text, _ := c.value.Text()
		i, err := strconv.ParseInt(strings.TrimSpace(text), 0, 64)
		if err != nil {
			return 0, c.cannotConvert("integer", err)
		}

		return i, nil
	default:
		return 0, c.wrongType(tree.KindNumber)
	}
}

// AsFloat returns the node as a float64. Strings holding numbers are accepted.
func (c Cursor) AsFloat() (float64, error) {
	if c.undefined {
		return 0, c.missing()
	}

	switch c.value.Kind() { //nolint:exhaustive
	case tree.KindNumber:
		f, err := c.value.Float64()
		if err != nil {
			return 0, c.cannotConvert("float", err)
		}

		return f, nil
	case tree.KindString:
		text, _ := c.value.Text()
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return 0, c.cannotConvert("float", err)
		}

		return f, nil
	default:
		return 0, c.wrongType(tree.KindNumber)
	}
}

// ObjectCursor is a Cursor pointing to an object.
type ObjectCursor struct {
	Cursor
}

func (c ObjectCursor) Keys() []string {
	return c.value.Keys()
}

func (c ObjectCursor) Len() int {
	return c.value.Len()
}

// Field returns the cursor of the field with the given key.
// The returned cursor is undefined if the key is missing.
func (c ObjectCursor) Field(key string) Cursor {
	value, ok := c.value.Get(key)

	return Cursor{value: value, path: c.path.Append(Key(key)), undefined: !ok}
}

// Fields returns the cursors of all fields in order.
func (c ObjectCursor) Fields() []Cursor {
	fields := c.value.Fields()
	cursors := make([]Cursor, 0, len(fields))
	for _, field := range fields {
		cursors = append(cursors, Cursor{value: field.Value, path: c.path.Append(Key(field.Key))})
	}

	return cursors
}

// ArrayCursor is a Cursor pointing to an array.
type ArrayCursor struct {
	Cursor
}

func (c ArrayCursor) Len() int {
	return c.value.Len()
}

// Elements returns the cursors of all elements in order.
func (c ArrayCursor) Elements() []Cursor {
	elems := c.value.Elements()
	cursors := make([]Cursor, 0, len(elems))
	for i, elem := range elems {
		cursors = append(cursors, Cursor{value: elem, path: c.path.Append(Index(i))})
	}

	return cursors
}
