// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package url loads configuration from a URL.
//
// URL fetches the content with HTTP GET on every Load, retrying transient
// failures with go-retryablehttp, and parses it into a tree.Value.
// The parser is chosen by the response Content-Type, then by the extension of
// the URL path, unless it is given with WithParser.
// URLs with the file scheme are read from the OS file system.
package url

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/ktong/konfig/parser"
	"github.com/ktong/konfig/tree"
)

// URL is a Loader that loads configuration from a URL.
//
// To create a new URL, call [New].
type URL struct {
	logger   *slog.Logger
	url      string
	parser   parser.Parser
	client   *http.Client
	timeout  time.Duration
	retryMax int
}

// New creates a URL with the given url and Option(s).
//
// It panics if the url is empty.
func New(url string, opts ...Option) URL {
	if url == "" {
		panic("cannot create URL with empty url")
	}

	option := &options{
		url:      url,
		timeout:  defaultTimeout,
		retryMax: defaultRetryMax,
	}
	for _, opt := range opts {
		opt(option)
	}
	if option.logger == nil {
		option.logger = slog.Default()
	}
	option.logger = option.logger.WithGroup("konfig.url")
	if option.client == nil {
		option.client = &http.Client{Transport: http.DefaultTransport}
	}

	return URL(*option)
}

func (u URL) Load() (tree.Value, error) {
	parsed, err := url.Parse(u.url)
	if err != nil {
		return tree.Value{}, fmt.Errorf("parse url %s: %w", u.url, err)
	}

	var (
		content     []byte
		contentType string
	)
	if parsed.Scheme == "file" {
		if content, err = os.ReadFile(parsed.Path); err != nil {
			return tree.Value{}, fmt.Errorf("read file: %w", err)
		}
	} else {
		if content, contentType, err = u.fetch(); err != nil {
			return tree.Value{}, err
		}
	}

	parse := u.parser
	if parse == nil {
		parse = parser.ForContentType(contentType)
	}
	if parse == nil {
		parse = parser.ForPath(parsed.Path)
	}

	value, err := parse(content)
	if err != nil {
		return tree.Value{}, fmt.Errorf("parse %s: %w", u.url, err)
	}

	return value, nil
}

func (u URL) fetch() ([]byte, string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), u.timeout)
	defer cancel()

	request, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u.url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("new request: %w", err)
	}
	request.Header.Set("Accept", acceptedTypes)

	client := retryablehttp.Client{
		HTTPClient:   u.client,
		Logger:       u.logger,
		RetryWaitMin: retryWaitMin,
		RetryWaitMax: retryWaitMax,
		RetryMax:     u.retryMax,
		CheckRetry:   retryablehttp.DefaultRetryPolicy,
		Backoff:      retryablehttp.DefaultBackoff,
		ErrorHandler: retryablehttp.PassthroughErrorHandler,
	}
	resp, err := client.Do(request)
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s: %w", u.url, err)
	}
	defer func() {
		if e := resp.Body.Close(); e != nil {
			u.logger.Warn("Error when closing response body.", "url", u.url, "error", e)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch %s: unexpected status %s", u.url, resp.Status)
	}
	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read response body: %w", err)
	}

	return content, resp.Header.Get("Content-Type"), nil
}

func (u URL) String() string {
	return u.url
}

const (
	defaultTimeout  = 30 * time.Second
	defaultRetryMax = 3
	retryWaitMin    = 100 * time.Millisecond
	retryWaitMax    = 2 * time.Second
	acceptedTypes   = "application/json, application/yaml, application/toml, text/x-java-properties, */*;q=0.5"
)
