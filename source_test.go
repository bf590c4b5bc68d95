// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package konfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ktong/konfig"
	"github.com/ktong/konfig/internal/assert"
	"github.com/ktong/konfig/read"
	"github.com/ktong/konfig/tree"
)

func TestObjectSource_WithFallback(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		source      konfig.ObjectSource
		expected    string
		failures    int
	}{
		{
			description: "disjoint keys",
			source:      konfig.String("a: 1").WithFallback(konfig.String("b: 2")),
			expected:    "a: 1\nb: 2",
		},
		{
			description: "overlapping keys",
			source: konfig.String("a: {x: 1, y: 2}\nc: [1]").
				WithFallback(konfig.String("a: {y: 3, z: 4}\nc: [2, 3]\nd: s")),
			expected: "a: {x: 1, y: 2, z: 4}\nc: [1]\nd: s",
		},
		{
			description: "object over scalar",
			source:      konfig.String("a: {x: 1}").WithFallback(konfig.String("a: 1")),
			expected:    "a: {x: 1}",
		},
		{
			description: "scalar over object",
			source:      konfig.String("a: 1").WithFallback(konfig.String("a: {x: 1}")),
			expected:    "a: 1",
		},
		{
			description: "chained",
			source: konfig.String("a: 1").
				WithFallback(konfig.String("a: 2\nb: 2")).
				WithFallback(konfig.String("a: 3\nb: 3\nc: 3")),
			expected: "a: 1\nb: 2\nc: 3",
		},
		{
			description: "reference across sources",
			source:      konfig.String("a: ${b}").WithFallback(konfig.String("b: 2")),
			expected:    "a: 2\nb: 2",
		},
		{
			description: "primary fails",
			source:      konfig.File("testdata/missing.yaml").WithFallback(konfig.String("b: 2")),
			failures:    1,
		},
		{
			description: "fallback fails",
			source:      konfig.String("a: 1").WithFallback(konfig.File("testdata/missing.yaml")),
			failures:    1,
		},
		{
			description: "both fail",
			source:      konfig.File("testdata/missing.yaml").WithFallback(konfig.String("b: [")),
			failures:    2,
		},
	}

	for _, testcase := range testcases {
		testcase := testcase

		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			value, err := testcase.source.Value()
			if testcase.failures > 0 {
				assert.Equal(t, testcase.failures, len(konfig.AsFailures(err)))

				return
			}
			assert.NoError(t, err)
			expected, err := konfig.String(testcase.expected).Value()
			assert.NoError(t, err)
			assert.Equivalent(t, expected, value)
		})
	}
}

func TestObjectSource_WithFallback_failureUnion(t *testing.T) {
	t.Parallel()

	_, err := konfig.File("testdata/missing.yaml").WithFallback(konfig.String("b: [")).Value()
	assert.True(t, konfig.IsKind(err, konfig.CannotRead))
	assert.True(t, konfig.IsKind(err, konfig.CannotParse))

	// The same failure on both sides is reported once.
	missing := konfig.File("testdata/missing.yaml")
	_, err = missing.WithFallback(missing).Value()
	assert.Equal(t, 1, len(konfig.AsFailures(err)))
}

func TestObjectSource_WithOptionalFallback(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		source      konfig.ObjectSource
		expected    string
		err         bool
	}{
		{
			description: "fallback succeeds",
			source:      konfig.String("a: 1").WithOptionalFallback(konfig.String("b: 2")),
			expected:    "a: 1\nb: 2",
		},
		{
			description: "fallback cannot read",
			source:      konfig.String("a: 1").WithOptionalFallback(konfig.File("testdata/missing.yaml")),
			expected:    "a: 1",
		},
		{
			description: "fallback cannot parse",
			source:      konfig.String("a: 1").WithOptionalFallback(konfig.String("b: [")),
			expected:    "a: 1",
		},
		{
			description: "fallback cannot resolve",
			source:      konfig.String("a: 1").WithOptionalFallback(konfig.String("b: ${missing}")),
			expected:    "a: 1",
		},
		{
			description: "primary fails",
			source:      konfig.File("testdata/missing.yaml").WithOptionalFallback(konfig.String("b: 2")),
			err:         true,
		},
	}

	for _, testcase := range testcases {
		testcase := testcase

		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			value, err := testcase.source.Value()
			if testcase.err {
				assert.True(t, konfig.IsKind(err, konfig.CannotRead))

				return
			}
			assert.NoError(t, err)
			expected, err := konfig.String(testcase.expected).Value()
			assert.NoError(t, err)
			assert.Equivalent(t, expected, value)
		})
	}
}

func TestObjectSource_RecoverWith(t *testing.T) {
	t.Parallel()

	recovered := tree.Object(tree.Field{Key: "a", Value: tree.Int(1)})
	testcases := []struct {
		description string
		source      konfig.ObjectSource
		handler     func(konfig.Failures) (tree.Value, error)
		err         string
	}{
		{
			description: "recovered",
			source:      konfig.File("testdata/missing.yaml"),
			handler: func(failures konfig.Failures) (tree.Value, error) {
				if konfig.IsKind(failures, konfig.CannotRead) {
					return recovered, nil
				}

				return tree.Value{}, konfig.ErrNotHandled
			},
		},
		{
			description: "declined",
			source:      konfig.String("b: ["),
			handler: func(failures konfig.Failures) (tree.Value, error) {
				if konfig.IsKind(failures, konfig.CannotRead) {
					return recovered, nil
				}

				return tree.Value{}, konfig.ErrNotHandled
			},
			err: "cannot parse",
		},
		{
			description: "handler fails",
			source:      konfig.File("testdata/missing.yaml"),
			handler: func(konfig.Failures) (tree.Value, error) {
				return tree.Value{}, errors.New("handler error")
			},
			err: "handler error",
		},
		{
			description: "not called on success",
			source:      konfig.ObjectFromConfig(recovered),
			handler: func(konfig.Failures) (tree.Value, error) {
				panic("handler must not be called")
			},
		},
	}

	for _, testcase := range testcases {
		testcase := testcase

		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			value, err := testcase.source.RecoverWith(testcase.handler).Value()
			if testcase.err != "" {
				assert.ErrorContains(t, err, testcase.err)

				return
			}
			assert.NoError(t, err)
			assert.Equivalent(t, recovered, value)
		})
	}
}

func TestObjectSource_RecoverWith_handlerError(t *testing.T) {
	t.Parallel()

	_, err := konfig.File("testdata/missing.yaml").RecoverWith(func(konfig.Failures) (tree.Value, error) {
		return tree.Value{}, errors.New("handler error")
	}).Value()

	failures := konfig.AsFailures(err)
	assert.Equal(t, 1, len(failures))
	assert.Equal(t, konfig.CannotRead, failures[0].Kind)
	assert.True(t, !konfig.IsKind(err, konfig.CannotConvert))
}

func TestSource_At(t *testing.T) {
	t.Parallel()

	source := konfig.String("a: {b: {c: 42, d: [x, y]}}")

	chained, err := source.At("a").At("b").At("c").Value()
	assert.NoError(t, err)
	direct, err := source.At("a.b.c").Value()
	assert.NoError(t, err)
	assert.Equivalent(t, tree.Int(42), direct)
	assert.Equivalent(t, chained, direct)

	elem, err := source.At("a.b.d[1]").Value()
	assert.NoError(t, err)
	assert.Equivalent(t, tree.String("y"), elem)

	_, chainedErr := source.At("a").At("x").At("c").Value()
	_, directErr := source.At("a.x.c").Value()
	assert.EqualError(t, directErr, "at 'a.x': key not found")
	assert.EqualError(t, chainedErr, directErr.Error())

	_, err = source.At("a..b").Value()
	assert.True(t, konfig.IsKind(err, konfig.InvalidPath))
}

func TestSource_zero(t *testing.T) {
	t.Parallel()

	value, err := konfig.Source{}.Value()
	assert.NoError(t, err)
	assert.Equivalent(t, tree.Object(), value)

	value, err = konfig.Empty().Value()
	assert.NoError(t, err)
	assert.Equivalent(t, tree.Object(), value)
}

func TestObjectSource_notObject(t *testing.T) {
	t.Parallel()

	_, err := konfig.ObjectFromConfig(tree.String("x")).Value()
	assert.EqualError(t, err, "at '': wrong type: expected object, got string")

	_, err = konfig.String("- a\n- b").Value()
	assert.True(t, konfig.IsKind(err, konfig.WrongType))
}

func TestFromConfig(t *testing.T) {
	t.Parallel()

	value := testTree()
	actual, err := konfig.FromConfig(value).Value()
	assert.NoError(t, err)
	assert.Equivalent(t, value, actual)

	actual, err = konfig.ObjectFromConfig(value).Value()
	assert.NoError(t, err)
	assert.Equivalent(t, value, actual)
}

func TestFromCursor(t *testing.T) {
	t.Parallel()

	server, err := konfig.NewCursor(testTree()).At(konfig.Key("server"))
	assert.NoError(t, err)

	// The path of the cursor is kept.
	_, err = konfig.FromCursor(server).At("missing").Value()
	assert.EqualError(t, err, "at 'server.missing': key not found")

	value, err := konfig.ObjectFromCursor(server).At("host").Value()
	assert.NoError(t, err)
	assert.Equivalent(t, tree.String("localhost"), value)

	fluent := konfig.NewFluentCursor(konfig.NewCursor(testTree()), nil).AtPath("hosts")
	value, err = konfig.FromFluentCursor(fluent).Value()
	assert.NoError(t, err)
	assert.Equal(t, 2, value.Len())

	_, err = konfig.ObjectFromFluentCursor(fluent).Value()
	assert.EqualError(t, err, "at 'hosts': wrong type: expected object, got array")
}

func TestFile_reread(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("k: v1"), 0o600))
	source := konfig.File(path)

	first, err := source.At("k").Value()
	assert.NoError(t, err)
	assert.Equivalent(t, tree.String("v1"), first)

	assert.NoError(t, os.WriteFile(path, []byte("k: v2"), 0o600))
	second, err := source.At("k").Value()
	assert.NoError(t, err)
	assert.Equivalent(t, tree.String("v2"), second)
}

func TestFromLoader(t *testing.T) {
	t.Parallel()

	_, err := konfig.FromLoader(nil).Value()
	assert.EqualError(t, err, "cannot read: cannot load config from nil loader")

	_, err = konfig.File("testdata/missing.yaml").Value()
	failures := konfig.AsFailures(err)
	assert.Equal(t, 1, len(failures))
	assert.Equal(t, konfig.CannotRead, failures[0].Kind)
	assert.True(t, failures[0].Path == nil)
	assert.Equal(t, "file:testdata/missing.yaml", failures[0].Origin.Description)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = konfig.String("a: [").Value()
	assert.True(t, konfig.IsKind(err, konfig.CannotParse))

	_, err = konfig.File("").Value()
	assert.EqualError(t, err, "cannot read: cannot load config from empty file path")
}

type server struct {
	Host string
	Port int
}

func serverReader() konfig.Reader[server] {
	return konfig.ReaderFunc[server](func(cursor konfig.Cursor) (server, error) {
		obj, err := cursor.AsObject()
		if err != nil {
			return server{}, err
		}

		host, hostErr := konfig.Field(obj, "host", read.String())
		port, portErr := konfig.Field(obj, "port", read.Int())
		if err := konfig.Combine(hostErr, portErr); err != nil {
			return server{}, err
		}

		return server{Host: host, Port: port}, nil
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		source      konfig.Loadable
		expected    server
		err         string
	}{
		{
			description: "success",
			source:      konfig.String("server: {host: example.com, port: 8080}").At("server"),
			expected:    server{Host: "example.com", Port: 8080},
		},
		{
			description: "accumulated failures",
			source:      konfig.String("server: {port: abc}").At("server"),
			err: "multiple failures:\n" +
				"  - at 'server.host': key not found\n" +
				"  - at 'server.port': cannot convert: \"abc\" is not a valid integer: " +
				"strconv.ParseInt: parsing \"abc\": invalid syntax (string)",
		},
		{
			description: "empty source",
			source:      konfig.Empty(),
			err: "multiple failures:\n" +
				"  - at 'host': key not found\n" +
				"  - at 'port': key not found",
		},
		{
			description: "origin failure",
			source:      konfig.File("testdata/missing.yaml"),
			err:         "cannot read: read file: open testdata/missing.yaml: ",
		},
	}

	for _, testcase := range testcases {
		testcase := testcase

		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			value, err := konfig.Load(testcase.source, serverReader())
			if testcase.err != "" {
				assert.ErrorContains(t, err, testcase.err)

				return
			}
			assert.NoError(t, err)
			assert.Equal(t, testcase.expected, value)
		})
	}
}

func TestLoad_requiredField(t *testing.T) {
	t.Parallel()

	_, err := konfig.Load(konfig.Empty(), konfig.ReaderFunc[string](func(cursor konfig.Cursor) (string, error) {
		obj, err := cursor.AsObject()
		if err != nil {
			return "", err
		}

		return konfig.Field(obj, "name", read.String())
	}))

	failures := konfig.AsFailures(err)
	assert.Equal(t, 1, len(failures))
	assert.Equal(t, konfig.KeyNotFound, failures[0].Kind)
	assert.Equal(t, "name", failures[0].Path.String())
}

func TestMustLoad(t *testing.T) {
	t.Parallel()

	value := konfig.MustLoad(konfig.String("host: example.com\nport: 80"), serverReader())
	assert.Equal(t, server{Host: "example.com", Port: 80}, value)

	recovered := assert.Panics(t, func() {
		konfig.MustLoad(konfig.Empty(), serverReader())
	})
	loadErr, ok := recovered.(*konfig.LoadError)
	assert.True(t, ok)
	assert.Equal(t, 2, len(loadErr.Failures))
	assert.ErrorContains(t, loadErr, "cannot load configuration: multiple failures:")
}
