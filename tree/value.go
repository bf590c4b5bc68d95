// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package tree defines the generic configuration data model.
//
// A [Value] is an immutable node which is either null, a boolean, a number,
// a string, an array of values, or an ordered object of named values.
// Values are produced by parsers and consumed by cursors. None of the methods
// mutate the receiver, so a Value can be shared between goroutines freely.
package tree

import (
	"strconv"
	"strings"
)

// Kind is the type of node held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is an immutable configuration node.
//
// The zero Value is null.
type Value struct {
	kind    Kind
	boolean bool
	text    string // literal of a number, or a string.
	elems   []Value
	object  *object
	origin  Origin
}

// Field is a named member of an object.
type Field struct {
	Key   string
	Value Value
}

type object struct {
	keys   []string
	fields map[string]Value
}

// Origin describes where a value comes from.
type Origin struct {
	Description string
	Line        int
}

func (o Origin) IsZero() bool {
	return o.Description == "" && o.Line == 0
}

func (o Origin) String() string {
	if o.Line > 0 {
		return o.Description + ":" + strconv.Itoa(o.Line)
	}

	return o.Description
}

func Null() Value {
	return Value{}
}

func Bool(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

func String(s string) Value {
	return Value{kind: KindString, text: s}
}

func Int(i int64) Value {
	return Value{kind: KindNumber, text: strconv.FormatInt(i, 10)}
}

func Uint(u uint64) Value {
	return Value{kind: KindNumber, text: strconv.FormatUint(u, 10)}
}

func Float(f float64) Value {
	return Value{kind: KindNumber, text: strconv.FormatFloat(f, 'g', -1, 64)}
}

// Number returns a number from its literal, e.g. "1", "-2.5" or "1e9".
// It returns a string value if the literal is not a valid number.
func Number(literal string) Value {
	if _, err := strconv.ParseFloat(literal, 64); err != nil {
		return String(literal)
	}

	return Value{kind: KindNumber, text: literal}
}

// Array returns an array holding the given elements in order.
func Array(elems ...Value) Value {
	return Value{kind: KindArray, elems: append([]Value(nil), elems...)}
}

// Object returns an object holding the given fields in order.
// If a key appears more than once, the last value wins
// but the key keeps its first position.
func Object(fields ...Field) Value {
	obj := &object{
		keys:   make([]string, 0, len(fields)),
		fields: make(map[string]Value, len(fields)),
	}
	for _, field := range fields {
		if _, exist := obj.fields[field.Key]; !exist {
			obj.keys = append(obj.keys, field.Key)
		}
		obj.fields[field.Key] = field.Value
	}

	return Value{kind: KindObject, object: obj}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) Origin() Origin {
	return v.origin
}

// WithOrigin returns a copy of the value with the given origin.
func (v Value) WithOrigin(origin Origin) Value {
	v.origin = origin

	return v
}

// WithOriginDeep returns a copy of the value where the given origin is set on
// every node that does not have an origin yet.
func (v Value) WithOriginDeep(origin Origin) Value {
	if v.origin.IsZero() {
		v.origin = origin
	}
	switch v.kind {
	case KindArray:
		elems := make([]Value, len(v.elems))
		for i, elem := range v.elems {
			elems[i] = elem.WithOriginDeep(origin)
		}
		v.elems = elems
	case KindObject:
		fields := v.Fields()
		for i := range fields {
			fields[i].Value = fields[i].Value.WithOriginDeep(origin)
		}
		v.object = Object(fields...).object
	default:
	}

	return v
}

func (v Value) IsNull() bool {
	return v.kind == KindNull
}

func (v Value) Bool() (bool, bool) {
	return v.boolean, v.kind == KindBool
}

// Text returns the literal of a string or a number.
func (v Value) Text() (string, bool) {
	return v.text, v.kind == KindString || v.kind == KindNumber
}

// Int64 returns the number as int64.
// It fails if the value is not a number, or the number is not integral.
func (v Value) Int64() (int64, error) {
	if v.kind != KindNumber {
		return 0, &KindError{Expected: KindNumber, Actual: v.kind}
	}

	if i, err := strconv.ParseInt(v.text, 10, 64); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(v.text, 64)
	if err != nil {
		return 0, err //nolint:wrapcheck
	}
	if f != float64(int64(f)) {
		return 0, &strconv.NumError{Func: "ParseInt", Num: v.text, Err: strconv.ErrRange}
	}

	return int64(f), nil
}

// Float64 returns the number as float64.
func (v Value) Float64() (float64, error) {
	if v.kind != KindNumber {
		return 0, &KindError{Expected: KindNumber, Actual: v.kind}
	}

	return strconv.ParseFloat(v.text, 64) //nolint:wrapcheck
}

// Len returns the number of elements of an array or fields of an object.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.elems)
	case KindObject:
		return len(v.object.keys)
	default:
		return 0
	}
}

// Index returns the i-th element of an array.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindArray || i < 0 || i >= len(v.elems) {
		return Value{}, false
	}

	return v.elems[i], true
}

// Elements returns a copy of the elements of an array.
func (v Value) Elements() []Value {
	if v.kind != KindArray {
		return nil
	}

	return append([]Value(nil), v.elems...)
}

// Keys returns the keys of an object in order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}

	return append([]string(nil), v.object.keys...)
}

// Get returns the value of the given key in an object.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	value, ok := v.object.fields[key]

	return value, ok
}

// Fields returns a copy of the fields of an object in order.
func (v Value) Fields() []Field {
	if v.kind != KindObject {
		return nil
	}

	fields := make([]Field, 0, len(v.object.keys))
	for _, key := range v.object.keys {
		fields = append(fields, Field{Key: key, Value: v.object.fields[key]})
	}

	return fields
}

// Equal reports whether two values are structurally equal.
// Origins and the order of object keys are ignored.
func (v Value) Equal(other Value) bool { //nolint:cyclop
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolean == other.boolean
	case KindString:
		return v.text == other.text
	case KindNumber:
		if v.text == other.text {
			return true
		}
		f1, err1 := strconv.ParseFloat(v.text, 64)
		f2, err2 := strconv.ParseFloat(other.text, 64)

		return err1 == nil && err2 == nil && f1 == f2
	case KindArray:
		if len(v.elems) != len(other.elems) {
			return false
		}
		for i := range v.elems {
			if !v.elems[i].Equal(other.elems[i]) {
				return false
			}
		}

		return true
	case KindObject:
		if len(v.object.keys) != len(other.object.keys) {
			return false
		}
		for key, value := range v.object.fields {
			o, ok := other.object.fields[key]
			if !ok || !value.Equal(o) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// String renders the value in a compact JSON-like form.
func (v Value) String() string {
	builder := &strings.Builder{}
	v.render(builder)

	return builder.String()
}

func (v Value) render(builder *strings.Builder) {
	switch v.kind {
	case KindNull:
		builder.WriteString("null")
	case KindBool:
		builder.WriteString(strconv.FormatBool(v.boolean))
	case KindNumber:
		builder.WriteString(v.text)
	case KindString:
		builder.WriteString(strconv.Quote(v.text))
	case KindArray:
		builder.WriteByte('[')
		for i, elem := range v.elems {
			if i > 0 {
				builder.WriteByte(',')
			}
			elem.render(builder)
		}
		builder.WriteByte(']')
	case KindObject:
		builder.WriteByte('{')
		for i, key := range v.object.keys {
			if i > 0 {
				builder.WriteByte(',')
			}
			builder.WriteString(strconv.Quote(key))
			builder.WriteByte(':')
			v.object.fields[key].render(builder)
		}
		builder.WriteByte('}')
	}
}

// KindError occurs when a value has a different kind than the expected one.
type KindError struct {
	Expected Kind
	Actual   Kind
}

func (e *KindError) Error() string {
	return "expected " + e.Expected.String() + ", got " + e.Actual.String()
}
