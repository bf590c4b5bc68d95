// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package konfig_test

import (
	"testing"

	"github.com/ktong/konfig"
	"github.com/ktong/konfig/internal/assert"
)

func TestParsePath(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		expr        string
		expected    konfig.Path
		err         string
	}{
		{
			description: "root",
			expr:        "",
			expected:    konfig.Path{},
		},
		{
			description: "keys",
			expr:        "server.port",
			expected:    konfig.Path{konfig.Key("server"), konfig.Key("port")},
		},
		{
			description: "indexes",
			expr:        "servers[0][1].host",
			expected:    konfig.Path{konfig.Key("servers"), konfig.Index(0), konfig.Index(1), konfig.Key("host")},
		},
		{
			description: "leading index",
			expr:        "[2].host",
			expected:    konfig.Path{konfig.Index(2), konfig.Key("host")},
		},
		{
			description: "quoted key",
			expr:        `a."b.c".d`,
			expected:    konfig.Path{konfig.Key("a"), konfig.Key("b.c"), konfig.Key("d")},
		},
		{
			description: "empty key",
			expr:        "a..b",
			err:         `invalid path "a..b" at 2: empty key`,
		},
		{
			description: "blank key",
			expr:        "a. .b",
			err:         `invalid path "a. .b" at 2: empty key`,
		},
		{
			description: "trailing dot",
			expr:        "a.",
			err:         `invalid path "a." at 2: empty key`,
		},
		{
			description: "unclosed index",
			expr:        "a[0",
			err:         `invalid path "a[0" at 1: missing ']'`,
		},
		{
			description: "invalid index",
			expr:        "a[x]",
			err:         `invalid path "a[x]" at 2: index must be a non-negative integer`,
		},
		{
			description: "unclosed quote",
			expr:        `"a`,
			err:         `invalid path "\"a" at 0: unterminated quoted key`,
		},
		{
			description: "missing separator",
			expr:        `a[0]b`,
			err:         `invalid path "a[0]b" at 4: missing '.' between segments`,
		},
	}

	for _, testcase := range testcases {
		testcase := testcase

		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			path, err := konfig.ParsePath(testcase.expr)
			if testcase.err != "" {
				assert.EqualError(t, err, testcase.err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, testcase.expected, path)
			}
		})
	}
}

func TestPath_String(t *testing.T) {
	t.Parallel()

	path := konfig.Path{konfig.Key("a"), konfig.Index(0), konfig.Key("b.c"), konfig.Key("")}
	assert.Equal(t, `a[0]."b.c".""`, path.String())

	parsed, err := konfig.ParsePath(path.String())
	assert.NoError(t, err)
	assert.Equal(t, path, parsed)
}

func TestPath_Append(t *testing.T) {
	t.Parallel()

	base := make(konfig.Path, 1, 4)
	base[0] = konfig.Key("a")
	left := base.Append(konfig.Key("b"))
	right := base.Append(konfig.Key("c"))

	assert.Equal(t, "a.b", left.String())
	assert.Equal(t, "a.c", right.String())
	assert.Equal(t, "a", base.String())
}
