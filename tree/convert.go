// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package tree

import (
	"encoding"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"time"
)

// FromAny converts a generic Go value, as produced by unmarshal functions,
// into a Value.
//
// Keys of map[string]any are sorted as Go maps have no order.
// Use []Field for ordered objects.
func FromAny(value any) (Value, error) { //nolint:cyclop,funlen
	switch v := value.(type) {
	case nil:
		return Null(), nil
	case Value:
		return v, nil
	case bool:
		return Bool(v), nil
	case string:
		return String(v), nil
	case json.Number:
		return Number(v.String()), nil
	case int:
		return Int(int64(v)), nil
	case int8:
		return Int(int64(v)), nil
	case int16:
		return Int(int64(v)), nil
	case int32:
		return Int(int64(v)), nil
	case int64:
		return Int(v), nil
	case uint:
		return Uint(uint64(v)), nil
	case uint8:
		return Uint(uint64(v)), nil
	case uint16:
		return Uint(uint64(v)), nil
	case uint32:
		return Uint(uint64(v)), nil
	case uint64:
		return Uint(v), nil
	case float32:
		return Float(float64(v)), nil
	case float64:
		return Float(v), nil
	case time.Time:
		return String(v.Format(time.RFC3339Nano)), nil
	case time.Duration:
		return String(v.String()), nil
	case []Field:
		fields := make([]Field, 0, len(v))
		for _, field := range v {
			value, err := FromAny(field.Value)
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", field.Key, err)
			}
			fields = append(fields, Field{Key: field.Key, Value: value})
		}

		return Object(fields...), nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		slices.Sort(keys)

		fields := make([]Field, 0, len(v))
		for _, key := range keys {
			value, err := FromAny(v[key])
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", key, err)
			}
			fields = append(fields, Field{Key: key, Value: value})
		}

		return Object(fields...), nil
	case []any:
		elems := make([]Value, 0, len(v))
		for i, elem := range v {
			value, err := FromAny(elem)
			if err != nil {
				return Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			elems = append(elems, value)
		}

		return Array(elems...), nil
	case encoding.TextMarshaler:
		text, err := v.MarshalText()
		if err != nil {
			return Value{}, fmt.Errorf("marshal text: %w", err)
		}

		return String(string(text)), nil
	default:
		return fromReflect(reflect.ValueOf(value))
	}
}

func fromReflect(value reflect.Value) (Value, error) {
	switch value.Kind() { //nolint:exhaustive
	case reflect.Map:
		if value.Type().Key().Kind() != reflect.String {
			break
		}
		fields := make(map[string]any, value.Len())
		iter := value.MapRange()
		for iter.Next() {
			fields[iter.Key().String()] = iter.Value().Interface()
		}

		return FromAny(fields)
	case reflect.Slice, reflect.Array:
		elems := make([]any, value.Len())
		for i := range value.Len() {
			elems[i] = value.Index(i).Interface()
		}

		return FromAny(elems)
	case reflect.Pointer, reflect.Interface:
		if value.IsNil() {
			return Null(), nil
		}

		return FromAny(value.Elem().Interface())
	}

	if stringer, ok := value.Interface().(fmt.Stringer); ok {
		return String(stringer.String()), nil
	}

	return Value{}, fmt.Errorf("unsupported type %s", value.Type()) //nolint:err113
}

// Interface converts the value into a generic Go value:
// nil, bool, int64, float64, string, []any or map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.boolean
	case KindNumber:
		if i, err := strconv.ParseInt(v.text, 10, 64); err == nil {
			return i
		}
		f, _ := strconv.ParseFloat(v.text, 64)

		return f
	case KindString:
		return v.text
	case KindArray:
		elems := make([]any, len(v.elems))
		for i, elem := range v.elems {
			elems[i] = elem.Interface()
		}

		return elems
	case KindObject:
		fields := make(map[string]any, len(v.object.keys))
		for key, value := range v.object.fields {
			fields[key] = value.Interface()
		}

		return fields
	default:
		return nil
	}
}
