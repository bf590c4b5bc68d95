// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package konfig_test

import (
	"errors"
	"testing"

	"github.com/ktong/konfig"
	"github.com/ktong/konfig/internal/assert"
	"github.com/ktong/konfig/tree"
)

func TestFluentCursor(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		cursor      func() konfig.FluentCursor
		expected    tree.Value
		err         string
	}{
		{
			description: "chained",
			cursor: func() konfig.FluentCursor {
				return konfig.NewFluentCursor(konfig.NewCursor(testTree()), nil).
					At(konfig.Key("server")).
					At(konfig.Key("port"))
			},
			expected: tree.Int(8080),
		},
		{
			description: "path expression",
			cursor: func() konfig.FluentCursor {
				return konfig.NewFluentCursor(konfig.NewCursor(testTree()), nil).AtPath("hosts[0]")
			},
			expected: tree.String("a"),
		},
		{
			description: "sticky failure",
			cursor: func() konfig.FluentCursor {
				return konfig.NewFluentCursor(konfig.NewCursor(testTree()), nil).
					At(konfig.Key("missing")).
					At(konfig.Key("server")).
					AtPath("port")
			},
			err: "at 'missing': key not found",
		},
		{
			description: "deferred failure",
			cursor: func() konfig.FluentCursor {
				return konfig.NewFluentCursor(konfig.Cursor{}, konfig.Failures{{Kind: konfig.CannotRead, Cause: errors.New("boom")}}).
					At(konfig.Key("server"))
			},
			err: "cannot read: boom",
		},
		{
			description: "invalid path",
			cursor: func() konfig.FluentCursor {
				return konfig.NewFluentCursor(konfig.NewCursor(testTree()), nil).
					At(konfig.Key("server")).
					AtPath("a..b")
			},
			err: `at 'server': invalid path: invalid path "a..b" at 2: empty key`,
		},
	}

	for _, testcase := range testcases {
		testcase := testcase

		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			cursor, err := testcase.cursor().Cursor()
			if testcase.err != "" {
				assert.EqualError(t, err, testcase.err)
				assert.EqualError(t, testcase.cursor().Err(), testcase.err)

				return
			}
			assert.NoError(t, err)
			assert.Equivalent(t, testcase.expected, cursor.Value())
		})
	}
}

func TestFluentCursor_terminal(t *testing.T) {
	t.Parallel()

	fluent := konfig.NewFluentCursor(konfig.NewCursor(testTree()), nil)

	obj, err := fluent.AtPath("server").ObjectCursor()
	assert.NoError(t, err)
	assert.Equal(t, 3, obj.Len())

	arr, err := fluent.AtPath("hosts").ArrayCursor()
	assert.NoError(t, err)
	assert.Equal(t, 2, arr.Len())

	_, err = fluent.AtPath("hosts").ObjectCursor()
	assert.EqualError(t, err, "at 'hosts': wrong type: expected object, got array")

	_, err = fluent.AtPath("missing").ArrayCursor()
	assert.EqualError(t, err, "at 'missing': key not found")
}
