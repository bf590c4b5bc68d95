// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package maps builds nested map[string]any from flattened keys.
package maps

// Insert recursively inserts the given value into the dst map
// following the given keys, e.g. keys [a b] inserts `{a: {b: value}}`.
// Key conflicts are resolved by preferring the given value,
// so a scalar on the way is replaced with a nested map.
//
// It does nothing if keys is empty.
func Insert(dst map[string]any, keys []string, value any) {
	if len(keys) == 0 {
		return
	}

	next := dst
	for _, key := range keys[:len(keys)-1] {
		sub, ok := next[key].(map[string]any)
		if !ok {
			sub = make(map[string]any)
			next[key] = sub
		}
		next = sub
	}

	last := keys[len(keys)-1]
	if _, isMap := next[last].(map[string]any); isMap {
		if _, valueIsMap := value.(map[string]any); !valueIsMap {
			// Keep the nested keys, e.g. `a.b=1` followed by `a=2`.
			return
		}
	}
	next[last] = value
}
