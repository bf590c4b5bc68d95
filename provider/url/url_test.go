// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package url_test

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ktong/konfig/provider/url"
	"github.com/ktong/konfig/tree"
)

func TestURL_Load(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/config":
			writer.Header().Set("Content-Type", "application/json")
			_, _ = writer.Write([]byte(`{"k":"v","server":{"port":8080}}`))
		case "/config.yaml":
			_, _ = writer.Write([]byte("k: v\nserver:\n  port: 8080\n"))
		case "/flaky.json":
			if attempts.Add(1) == 1 {
				writer.WriteHeader(http.StatusServiceUnavailable)

				return
			}
			_, _ = writer.Write([]byte(`{"k":"v","server":{"port":8080}}`))
		case "/broken.json":
			_, _ = writer.Write([]byte(`{"k":`))
		default:
			http.NotFound(writer, request)
		}
	}))
	t.Cleanup(server.Close)

	path, err := filepath.Abs("testdata/config.yaml")
	require.NoError(t, err)

	expected := tree.Object(
		tree.Field{Key: "k", Value: tree.String("v")},
		tree.Field{Key: "server", Value: tree.Object(tree.Field{Key: "port", Value: tree.Int(8080)})},
	)

	testcases := []struct {
		description string
		url         string
		opts        []url.Option
		err         string
	}{
		{
			description: "content type",
			url:         server.URL + "/config",
		},
		{
			description: "extension",
			url:         server.URL + "/config.yaml",
		},
		{
			description: "retry",
			url:         server.URL + "/flaky.json",
		},
		{
			description: "file scheme",
			url:         "file://" + filepath.ToSlash(path),
		},
		{
			description: "not found",
			url:         server.URL + "/missing.json",
			opts:        []url.Option{url.WithRetryMax(0)},
			err:         "unexpected status 404 Not Found",
		},
		{
			description: "syntax error",
			url:         server.URL + "/broken.json",
			err:         "invalid json",
		},
	}

	for _, testcase := range testcases {
		testcase := testcase

		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			value, err := url.New(testcase.url, testcase.opts...).Load()
			if testcase.err != "" {
				require.Error(t, err)
				require.True(t, strings.Contains(err.Error(), testcase.err), err.Error())
			} else {
				require.NoError(t, err)
				require.True(t, expected.Equal(value), value.String())
			}
		})
	}
}

func TestURL_String(t *testing.T) {
	t.Parallel()

	require.Equal(t, "http://localhost/config.json", url.New("http://localhost/config.json").String())
}
