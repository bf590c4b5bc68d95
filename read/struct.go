// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package read

import (
	"encoding"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/ktong/konfig"
	"github.com/ktong/konfig/internal/credential"
)

// Struct reads objects into structs of type T with mapstructure.
//
// Fields are matched by the `konfig` tag, or the field name, case-insensitively.
// Fields tagged with the `required` option, e.g. `konfig:"port,required"`,
// are reported as KeyNotFound if missing. Other missing or null fields keep their zero value.
// Strings are converted to time.Duration, comma separated slices and
// encoding.TextUnmarshaler.
//
// Each field is decoded on its own, so every invalid field is reported
// with its own path.
func Struct[T any]() konfig.Reader[T] {
	var zero T

	return StructWithDefaults(zero)
}

// StructWithDefaults is like Struct, but missing fields keep the values in defaults.
// The defaults are copied deeply on every read and never modified.
func StructWithDefaults[T any](defaults T) konfig.Reader[T] {
	return konfig.ReaderFunc[T](func(cursor konfig.Cursor) (T, error) {
		var value T
		target := reflect.ValueOf(&value).Elem()
		target.Set(deepCopy(reflect.ValueOf(&defaults).Elem()))

		for target.Kind() == reflect.Pointer {
			if target.IsNil() {
				target.Set(reflect.New(target.Type().Elem()))
			}
			target = target.Elem()
		}
		if !isStruct(target.Type()) {
			if err := decodeField(cursor, target); err != nil {
				var zero T

				return zero, err
			}

			return value, nil
		}

		obj, err := cursor.AsObject()
		if err != nil {
			var zero T

			return zero, err
		}
		if err := konfig.Combine(decodeStruct(obj, target)...); err != nil {
			var zero T

			return zero, err
		}

		return value, nil
	})
}

func decodeStruct(obj konfig.ObjectCursor, target reflect.Value) []error { //nolint:cyclop
	typ := target.Type()

	var errs []error
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		name, opts, _ := strings.Cut(field.Tag.Get(tagName), ",")
		if name == "-" {
			continue
		}
		fieldValue := target.Field(i)
		if hasOption(opts, "squash") {
			if isStruct(field.Type) {
				errs = append(errs, decodeStruct(obj, fieldValue)...)
			}

			continue
		}
		if name == "" {
			name = field.Name
		}

		child := lookup(obj, name)
		switch {
		case child.IsUndefined():
			if hasOption(opts, "required") {
				errs = append(errs, child.Fail(konfig.KeyNotFound, ""))
			}
		case child.IsNull():
			// Keeps the default.
		case isStruct(field.Type):
			childObj, err := child.AsObject()
			if err != nil {
				errs = append(errs, err)

				continue
			}
			errs = append(errs, decodeStruct(childObj, fieldValue)...)
		default:
			if err := decodeField(child, fieldValue); err != nil {
				errs = append(errs, err)
			}
		}
	}

	return errs
}

// decodeField decodes the node into a fresh value of the target type,
// and sets the target only if it succeeds.
func decodeField(cursor konfig.Cursor, target reflect.Value) error {
	decoded := reflect.New(target.Type())
	decoder, err := mapstructure.NewDecoder(
		&mapstructure.DecoderConfig{
			Result:           decoded.Interface(),
			WeaklyTypedInput: true,
			DecodeHook:       defaultDecodeHook,
			TagName:          tagName,
		},
	)
	if err != nil {
		return cursor.Fail(konfig.CannotConvert, "new decoder: %v", err)
	}
	if err := decoder.Decode(cursor.Value().Interface()); err != nil {
		// Messages of mapstructure quote the value, so only the blurred value is reported.
		path := cursor.Path().String()

		return cursor.Fail(
			konfig.CannotConvert, "%s is not a valid %s",
			credential.Blur(path, cursor.Value()), target.Type(),
		)
	}
	target.Set(decoded.Elem())

	return nil
}

// isStruct reports whether the type is decoded field by field.
// Structs which unmarshal themselves from text, e.g. time.Time, are decoded as a whole.
func isStruct(typ reflect.Type) bool {
	return typ.Kind() == reflect.Struct && !reflect.PointerTo(typ).Implements(textUnmarshalerType)
}

// lookup matches the key case-insensitively as mapstructure does.
func lookup(obj konfig.ObjectCursor, name string) konfig.Cursor {
	if field := obj.Field(name); !field.IsUndefined() {
		return field
	}
	for _, key := range obj.Keys() {
		if strings.EqualFold(key, name) {
			return obj.Field(key)
		}
	}

	return obj.Field(name)
}

func hasOption(opts, option string) bool {
	for _, opt := range strings.Split(opts, ",") {
		if strings.TrimSpace(opt) == option {
			return true
		}
	}

	return false
}

// deepCopy copies maps, slices, arrays, pointers and structs recursively,
// so decoding into the copy never touches the original.
func deepCopy(value reflect.Value) reflect.Value { //nolint:cyclop
	switch value.Kind() { //nolint:exhaustive
	case reflect.Map:
		if value.IsNil() {
			return value
		}
		copied := reflect.MakeMapWithSize(value.Type(), value.Len())
		iter := value.MapRange()
		for iter.Next() {
			copied.SetMapIndex(iter.Key(), deepCopy(iter.Value()))
		}

		return copied
	case reflect.Slice:
		if value.IsNil() {
			return value
		}
		copied := reflect.MakeSlice(value.Type(), value.Len(), value.Len())
		for i := range value.Len() {
			copied.Index(i).Set(deepCopy(value.Index(i)))
		}

		return copied
	case reflect.Array:
		copied := reflect.New(value.Type()).Elem()
		for i := range value.Len() {
			copied.Index(i).Set(deepCopy(value.Index(i)))
		}

		return copied
	case reflect.Pointer:
		if value.IsNil() {
			return value
		}
		copied := reflect.New(value.Type().Elem())
		copied.Elem().Set(deepCopy(value.Elem()))

		return copied
	case reflect.Interface:
		if value.IsNil() {
			return value
		}
		copied := reflect.New(value.Type()).Elem()
		copied.Set(deepCopy(value.Elem()))

		return copied
	case reflect.Struct:
		copied := reflect.New(value.Type()).Elem()
		copied.Set(value)
		for i := range value.NumField() {
			if copied.Field(i).CanSet() {
				copied.Field(i).Set(deepCopy(value.Field(i)))
			}
		}

		return copied
	default:
		return value
	}
}

const tagName = "konfig"

var defaultDecodeHook = mapstructure.ComposeDecodeHookFunc( //nolint:gochecknoglobals
	mapstructure.StringToTimeDurationHookFunc(),
	mapstructure.StringToSliceHookFunc(","),
	mapstructure.TextUnmarshallerHookFunc(),
)

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem() //nolint:gochecknoglobals
