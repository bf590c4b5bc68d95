// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package parser turns raw configuration content into a [tree.Value].
//
// It supports JSON, YAML, TOML and Java properties. YAML and JSON keep the
// order of object keys as written.
package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/magiconair/properties"
	"github.com/pelletier/go-toml/v2"

	"github.com/ktong/konfig/internal/maps"
	"github.com/ktong/konfig/tree"
)

// Parser parses the content into a tree.Value.
type Parser func([]byte) (tree.Value, error)

// ForPath returns the parser matching the extension of the given path.
// Unknown extensions are parsed as YAML, which is a superset of JSON.
func ForPath(path string) Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON
	case ".toml":
		return TOML
	case ".properties":
		return Properties
	default:
		return YAML
	}
}

// ForContentType returns the parser matching the given MIME type, e.g. from
// an HTTP Content-Type header. It returns nil for unknown types.
func ForContentType(contentType string) Parser {
	mediaType, _, _ := strings.Cut(contentType, ";")
	switch strings.TrimSpace(strings.ToLower(mediaType)) {
	case "application/json":
		return JSON
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return YAML
	case "application/toml":
		return TOML
	case "text/x-java-properties":
		return Properties
	default:
		return nil
	}
}

// JSON parses JSON content.
func JSON(data []byte) (tree.Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return tree.Object(), nil
	}
	if !json.Valid(data) {
		var out any
		err := json.Unmarshal(data, &out)

		return tree.Value{}, &SyntaxError{Format: "json", Err: err}
	}

	// JSON is valid YAML, and the YAML decoder keeps the key order.
	return YAML(data)
}

// YAML parses YAML content. An empty document is an empty object.
func YAML(data []byte) (tree.Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return tree.Object(), nil
	}

	var out any
	if err := yaml.UnmarshalWithOptions(data, &out, yaml.UseOrderedMap()); err != nil {
		return tree.Value{}, &SyntaxError{Format: "yaml", Err: err}
	}
	if out == nil {
		return tree.Object(), nil
	}

	return fromYAML(out)
}

func fromYAML(value any) (tree.Value, error) {
	switch v := value.(type) {
	case yaml.MapSlice:
		fields := make([]tree.Field, 0, len(v))
		for _, item := range v {
			elem, err := fromYAML(item.Value)
			if err != nil {
				return tree.Value{}, err
			}
			fields = append(fields, tree.Field{Key: fmt.Sprint(item.Key), Value: elem})
		}

		return tree.Object(fields...), nil
	case []any:
		elems := make([]tree.Value, 0, len(v))
		for _, item := range v {
			elem, err := fromYAML(item)
			if err != nil {
				return tree.Value{}, err
			}
			elems = append(elems, elem)
		}

		return tree.Array(elems...), nil
	default:
		return tree.FromAny(v) //nolint:wrapcheck
	}
}

// TOML parses TOML content.
func TOML(data []byte) (tree.Value, error) {
	var out map[string]any
	if err := toml.Unmarshal(data, &out); err != nil {
		return tree.Value{}, &SyntaxError{Format: "toml", Err: err}
	}

	return tree.FromAny(out) //nolint:wrapcheck
}

// Properties parses Java properties content.
// Keys are split by `.` into nested objects and all values are strings.
func Properties(data []byte) (tree.Value, error) {
	// References are left for the resolver instead of being expanded here.
	loader := properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	props, err := loader.LoadBytes(data)
	if err != nil {
		return tree.Value{}, &SyntaxError{Format: "properties", Err: err}
	}

	return FromProperties(props)
}

// FromProperties converts loaded properties into a tree.Value.
// Keys are split by `.` into nested objects.
func FromProperties(props *properties.Properties) (tree.Value, error) {
	values := make(map[string]any)
	for _, key := range props.Keys() {
		value, _ := props.Get(key)
		keys := strings.Split(key, ".")
		if len(keys) == 0 || keys[0] == "" {
			return tree.Value{}, &SyntaxError{Format: "properties", Err: fmt.Errorf("%w: %q", errInvalidKey, key)}
		}
		maps.Insert(values, keys, value)
	}

	return tree.FromAny(values) //nolint:wrapcheck
}

// SyntaxError occurs when the content is malformed.
type SyntaxError struct {
	Format string
	Err    error
}

func (e *SyntaxError) Error() string {
	return "invalid " + e.Format + ": " + e.Err.Error()
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

var errInvalidKey = errors.New("invalid property key")
