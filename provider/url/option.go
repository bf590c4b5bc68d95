// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package url

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ktong/konfig/parser"
)

// WithParser provides the parser used to parse the content.
//
// By default, it is chosen by the response Content-Type, then the extension of the URL path.
func WithParser(parser parser.Parser) Option {
	return func(options *options) {
		options.parser = parser
	}
}

// WithTimeout provides the overall timeout of a Load, including retries.
//
// By default, it is 30 seconds.
func WithTimeout(timeout time.Duration) Option {
	return func(options *options) {
		options.timeout = timeout
	}
}

// WithRetryMax provides the maximum number of retries for transient failures.
//
// By default, it retries 3 times.
func WithRetryMax(retryMax int) Option {
	return func(options *options) {
		options.retryMax = retryMax
	}
}

// WithHTTPClient provides the http.Client used to send requests.
func WithHTTPClient(client *http.Client) Option {
	return func(options *options) {
		options.client = client
	}
}

// WithLogger provides the slog.Logger for URL loader.
//
// By default, it uses slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(options *options) {
		options.logger = logger
	}
}

type (
	// Option configures the a URL with specific options.
	Option  func(options *options)
	options URL
)
