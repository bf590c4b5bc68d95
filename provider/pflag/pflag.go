// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package pflag loads configuration from flags defined by [spf13/pflag].
//
// PFlag loads flags in the flag set whose names start with the given prefix
// and returns them as a tree.Value object.
// The unchanged flags with zero default value are skipped to avoid
// overriding values set by other sources.
//
// It splits the names by delimiter. For example, with the default delimiter ".",
// the flag `parent.child.key="1"` is loaded as `{parent: {child: {key: "1"}}}`.
package pflag

import (
	"flag"
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/pflag"

	"github.com/ktong/konfig/internal/maps"
	"github.com/ktong/konfig/tree"
)

// PFlag is a Loader that loads configuration from flags defined by [spf13/pflag].
//
// To create a new PFlag, call [New].
type PFlag struct {
	prefix      string
	set         *pflag.FlagSet
	delimiter   string
	changedOnly bool
}

// New creates a PFlag with the given Option(s).
func New(opts ...Option) PFlag {
	option := &options{}
	for _, opt := range opts {
		opt(option)
	}
	if option.delimiter == "" {
		option.delimiter = "."
	}

	return PFlag(*option)
}

func (f PFlag) Load() (tree.Value, error) {
	set := f.set
	if set == nil {
		if !pflag.Parsed() {
			pflag.CommandLine.AddGoFlagSet(flag.CommandLine)
			pflag.Parse()
		}
		set = pflag.CommandLine
	}

	values := make(map[string]any)
	set.VisitAll(
		func(flag *pflag.Flag) {
			if f.prefix != "" && !strings.HasPrefix(flag.Name, f.prefix) {
				return
			}
			if f.changedOnly && !flag.Changed {
				return
			}

			keys := strings.Split(flag.Name, f.delimiter)
			if len(keys) == 1 && keys[0] == "" {
				return
			}

			val, _ := flagVal(set, flag) // Ignore error as it uses whatever returned.
			// Skip zero default value to avoid overriding values set by other sources.
			if !flag.Changed && isZero(val) {
				return
			}

			maps.Insert(values, keys, val)
		},
	)

	value, err := tree.FromAny(values)
	if err != nil {
		return tree.Value{}, fmt.Errorf("convert flags: %w", err)
	}

	return value, nil
}

// isZero reports whether the value is zero, or an empty slice or map.
func isZero(val any) bool {
	if val == nil {
		return true
	}

	value := reflect.ValueOf(val)
	switch value.Kind() { //nolint:exhaustive
	case reflect.Slice, reflect.Map:
		return value.Len() == 0
	default:
		return value.IsZero()
	}
}

// flagVal returns the typed value of the flag.
// Types without a tree form, e.g. ipNet, fall back to the text of the flag.
//
//nolint:cyclop,funlen,gocyclo,wrapcheck
func flagVal(set *pflag.FlagSet, flag *pflag.Flag) (any, error) {
	switch flag.Value.Type() {
	case "int":
		return set.GetInt(flag.Name)
	case "uint":
		return set.GetUint(flag.Name)
	case "int8":
		return set.GetInt8(flag.Name)
	case "uint8":
		return set.GetUint8(flag.Name)
	case "int16":
		return set.GetInt16(flag.Name)
	case "uint16":
		return set.GetUint16(flag.Name)
	case "int32":
		return set.GetInt32(flag.Name)
	case "uint32":
		return set.GetUint32(flag.Name)
	case "int64":
		return set.GetInt64(flag.Name)
	case "uint64":
		return set.GetUint64(flag.Name)
	case "float32":
		return set.GetFloat32(flag.Name)
	case "float64":
		return set.GetFloat64(flag.Name)
	case "bool":
		return set.GetBool(flag.Name)
	case "duration":
		return set.GetDuration(flag.Name)
	case "ip":
		return set.GetIP(flag.Name)
	case "count":
		return set.GetCount(flag.Name)
	case "string":
		return set.GetString(flag.Name)
	case "stringSlice":
		return set.GetStringSlice(flag.Name)
	case "intSlice":
		return set.GetIntSlice(flag.Name)
	case "uintSlice":
		return set.GetUintSlice(flag.Name)
	case "int32Slice":
		return set.GetInt32Slice(flag.Name)
	case "int64Slice":
		return set.GetInt64Slice(flag.Name)
	case "float32Slice":
		return set.GetFloat32Slice(flag.Name)
	case "float64Slice":
		return set.GetFloat64Slice(flag.Name)
	case "boolSlice":
		return set.GetBoolSlice(flag.Name)
	case "durationSlice":
		return set.GetDurationSlice(flag.Name)
	case "ipSlice":
		return set.GetIPSlice(flag.Name)
	case "stringArray":
		return set.GetStringArray(flag.Name)
	case "stringToString":
		return set.GetStringToString(flag.Name)
	case "stringToInt":
		return set.GetStringToInt(flag.Name)
	case "stringToInt64":
		return set.GetStringToInt64(flag.Name)
	default:
		return flag.Value.String(), nil
	}
}

func (f PFlag) String() string {
	if f.prefix == "" {
		return "pflag"
	}

	return "pflag:" + f.prefix
}
