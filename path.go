// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package konfig

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// PathSegment is one navigation step: either a field key of an object
// or an index of an array.
type PathSegment struct {
	key     string
	index   int
	isIndex bool
}

// Key returns a segment navigating into the field with the given key.
func Key(key string) PathSegment {
	return PathSegment{key: key}
}

// Index returns a segment navigating into the element at the given index.
func Index(index int) PathSegment {
	return PathSegment{index: index, isIndex: true}
}

// Key returns the field key, and false if the segment is an index.
func (s PathSegment) Key() (string, bool) {
	return s.key, !s.isIndex
}

// Index returns the array index, and false if the segment is a key.
func (s PathSegment) Index() (int, bool) {
	return s.index, s.isIndex
}

func (s PathSegment) String() string {
	if s.isIndex {
		return "[" + strconv.Itoa(s.index) + "]"
	}
	if s.key != "" && !strings.ContainsAny(s.key, `."[]$ `) {
		return s.key
	}

	return strconv.Quote(s.key)
}

// Path is the ordered segments from the root to a node.
// A nil Path means there is no path context, while an empty Path is the root.
type Path []PathSegment

// Append returns a new Path with the given segments appended.
// The receiver is never modified.
func (p Path) Append(segments ...PathSegment) Path {
	path := make(Path, 0, len(p)+len(segments))
	path = append(path, p...)

	return append(path, segments...)
}

func (p Path) String() string {
	builder := &strings.Builder{}
	for i, segment := range p {
		if i > 0 && !segment.isIndex {
			builder.WriteByte('.')
		}
		builder.WriteString(segment.String())
	}

	return builder.String()
}

// ParsePath parses a path expression into segments.
//
// Keys are separated by `.`, indexes are written as `[n]`,
// and keys containing special characters are double-quoted,
// e.g. `servers[0]."host.name"`. An empty expression is the root.
func ParsePath(expr string) (Path, error) { //nolint:cyclop,funlen
	path := Path{}
	expectKey := true // at the start or right after '.'.
	for pos := 0; pos < len(expr); {
		switch char := expr[pos]; {
		case char == '[':
			end := strings.IndexByte(expr[pos:], ']')
			if end < 0 {
				return nil, &PathError{Expr: expr, Pos: pos, Err: errUnclosedIndex}
			}
			index, err := strconv.Atoi(expr[pos+1 : pos+end])
			if err != nil || index < 0 {
				return nil, &PathError{Expr: expr, Pos: pos + 1, Err: errInvalidIndex}
			}
			if expectKey && pos > 0 {
				return nil, &PathError{Expr: expr, Pos: pos, Err: errEmptyKey}
			}
			path = append(path, Index(index))
			pos += end + 1
			expectKey = false
		case char == '.':
			if expectKey {
				return nil, &PathError{Expr: expr, Pos: pos, Err: errEmptyKey}
			}
			pos++
			expectKey = true
			if pos == len(expr) {
				return nil, &PathError{Expr: expr, Pos: pos, Err: errEmptyKey}
			}
		case !expectKey:
			return nil, &PathError{Expr: expr, Pos: pos, Err: errMissingSeparator}
		case char == '"':
			quoted, err := strconv.QuotedPrefix(expr[pos:])
			if err != nil {
				return nil, &PathError{Expr: expr, Pos: pos, Err: errUnclosedQuote}
			}
			key, _ := strconv.Unquote(quoted)
			path = append(path, Key(key))
			pos += len(quoted)
			expectKey = false
		default:
			end := strings.IndexAny(expr[pos:], ".[")
			if end < 0 {
				end = len(expr) - pos
			}
			key := strings.TrimSpace(expr[pos : pos+end])
			if key == "" {
				return nil, &PathError{Expr: expr, Pos: pos, Err: errEmptyKey}
			}
			path = append(path, Key(key))
			pos += end
			expectKey = false
		}
	}

	return path, nil
}

// PathError occurs when a path expression is malformed.
type PathError struct {
	Expr string
	Pos  int
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("invalid path %q at %d: %v", e.Expr, e.Pos, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

var (
	errUnclosedIndex    = errors.New("missing ']'")
	errInvalidIndex     = errors.New("index must be a non-negative integer")
	errUnclosedQuote    = errors.New("unterminated quoted key")
	errEmptyKey         = errors.New("empty key")
	errMissingSeparator = errors.New("missing '.' between segments")
)
