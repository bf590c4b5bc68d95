// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package sysprop_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ktong/konfig/provider/sysprop"
	"github.com/ktong/konfig/tree"
)

// Tests in this package share the process-wide properties, so they do not run in parallel.

func TestSysProp_Load(t *testing.T) {
	sysprop.Set("app.server.port", "8080")
	sysprop.Set("app.name", "${?other}")
	sysprop.Set("other", "v")
	t.Cleanup(func() {
		sysprop.Delete("app.server.port")
		sysprop.Delete("app.name")
		sysprop.Delete("other")
	})

	testcases := []struct {
		description string
		opts        []sysprop.Option
		expected    tree.Value
	}{
		{
			description: "all",
			expected: tree.Object(
				tree.Field{Key: "app", Value: tree.Object(
					tree.Field{Key: "server", Value: tree.Object(tree.Field{Key: "port", Value: tree.String("8080")})},
					tree.Field{Key: "name", Value: tree.String("${?other}")},
				)},
				tree.Field{Key: "other", Value: tree.String("v")},
			),
		},
		{
			description: "with prefix",
			opts:        []sysprop.Option{sysprop.WithPrefix("app.")},
			expected: tree.Object(
				tree.Field{Key: "server", Value: tree.Object(tree.Field{Key: "port", Value: tree.String("8080")})},
				tree.Field{Key: "name", Value: tree.String("${?other}")},
			),
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			value, err := sysprop.New(testcase.opts...).Load()
			require.NoError(t, err)
			require.True(t, testcase.expected.Equal(value), value.String())
		})
	}
}

func TestParseArgs(t *testing.T) {
	remaining := sysprop.ParseArgs([]string{"-Dconfig.file=app.yaml", "run", "-D", "-Dflag", "-D=x", "--verbose"})
	t.Cleanup(func() {
		sysprop.Delete("config.file")
		sysprop.Delete("flag")
	})

	require.Equal(t, []string{"run", "-D", "-D=x", "--verbose"}, remaining)
	value, ok := sysprop.Get("config.file")
	require.True(t, ok)
	require.Equal(t, "app.yaml", value)
	value, ok = sysprop.Get("flag")
	require.True(t, ok)
	require.Equal(t, "", value)
}

func TestDelete(t *testing.T) {
	sysprop.Set("deleted", "v")
	sysprop.Delete("deleted")

	_, ok := sysprop.Get("deleted")
	require.False(t, ok)
	require.NotContains(t, sysprop.Keys(), "deleted")
}

func TestSysProp_String(t *testing.T) {
	require.Equal(t, "system properties", sysprop.New().String())
	require.Equal(t, "system properties:app.", sysprop.New(sysprop.WithPrefix("app.")).String())
}
