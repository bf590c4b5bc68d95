// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package konfig

// FluentCursor is a Cursor whose navigation failures are deferred.
//
// Once a navigation fails, the failure sticks and further navigation has no effect,
// so chained calls like fc.At(Key("db")).At(Key("pool")) need only one check at the end
// through one of the terminal methods.
type FluentCursor struct {
	cursor Cursor
	err    error
}

// NewFluentCursor wraps the result of an eager navigation.
func NewFluentCursor(cursor Cursor, err error) FluentCursor {
	return FluentCursor{cursor: cursor, err: err}
}

// At navigates through the given segments in order.
func (f FluentCursor) At(segments ...PathSegment) FluentCursor {
	if f.err != nil {
		return f
	}

	cursor, err := f.cursor.At(segments...)

	return FluentCursor{cursor: cursor, err: err}
}

// AtPath navigates through the segments of the given path expression.
// A malformed expression fails with InvalidPath.
func (f FluentCursor) AtPath(expr string) FluentCursor {
	if f.err != nil {
		return f
	}

	path, err := ParsePath(expr)
	if err != nil {
		return FluentCursor{err: Failures{{
			Kind:  InvalidPath,
			Path:  f.cursor.path,
			Cause: err,
		}}}
	}

	return f.At(path...)
}

// Err returns the deferred failure, or nil if all navigations succeeded.
func (f FluentCursor) Err() error {
	return f.err
}

// Cursor resolves the deferred navigation.
func (f FluentCursor) Cursor() (Cursor, error) {
	if f.err != nil {
		return Cursor{}, f.err
	}

	return f.cursor, nil
}

// ObjectCursor resolves the deferred navigation into an ObjectCursor.
func (f FluentCursor) ObjectCursor() (ObjectCursor, error) {
	if f.err != nil {
		return ObjectCursor{}, f.err
	}

	return f.cursor.AsObject()
}

// ArrayCursor resolves the deferred navigation into an ArrayCursor.
func (f FluentCursor) ArrayCursor() (ArrayCursor, error) {
	if f.err != nil {
		return ArrayCursor{}, f.err
	}

	return f.cursor.AsArray()
}
