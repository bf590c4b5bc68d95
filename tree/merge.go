// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package tree

// WithFallback recursively merges the fallback into the value.
// Key conflicts are resolved by preferring the value,
// or recursively descending, if both sides are objects.
//
// Keys of the value keep their order, followed by keys only present in the fallback.
// Non-object values are never merged: the value wins wholesale.
func (v Value) WithFallback(fallback Value) Value {
	if v.kind != KindObject || fallback.kind != KindObject {
		return v
	}

	fields := v.Fields()
	for i, field := range fields {
		if fallbackVal, ok := fallback.object.fields[field.Key]; ok {
			fields[i].Value = field.Value.WithFallback(fallbackVal)
		}
	}
	for _, key := range fallback.object.keys {
		if _, ok := v.object.fields[key]; !ok {
			fields = append(fields, Field{Key: key, Value: fallback.object.fields[key]})
		}
	}

	return Object(fields...).WithOrigin(v.origin)
}
