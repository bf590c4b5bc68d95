// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package main

import (
	"github.com/goccy/go-yaml"

	"github.com/ktong/konfig/tree"
)

// render encodes the value in the given format, keeping the order of object keys.
func render(value tree.Value, format string) ([]byte, error) {
	var opts []yaml.EncodeOption
	if format == formatJSON {
		opts = append(opts, yaml.JSON())
	}

	return yaml.MarshalWithOptions(ordered(value), opts...) //nolint:wrapcheck
}

func ordered(value tree.Value) any {
	switch value.Kind() { //nolint:exhaustive
	case tree.KindObject:
		fields := value.Fields()
		slice := make(yaml.MapSlice, 0, len(fields))
		for _, field := range fields {
			slice = append(slice, yaml.MapItem{Key: field.Key, Value: ordered(field.Value)})
		}

		return slice
	case tree.KindArray:
		elems := value.Elements()
		slice := make([]any, 0, len(elems))
		for _, elem := range elems {
			slice = append(slice, ordered(elem))
		}

		return slice
	default:
		return value.Interface()
	}
}
