// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package fs

import (
	"log/slog"

	"github.com/ktong/konfig/parser"
)

// WithParser provides the parser used to parse the configuration file.
//
// By default, it is chosen by the file extension with parser.ForPath.
func WithParser(parser parser.Parser) Option {
	return func(options *options) {
		options.parser = parser
	}
}

// IgnoreFileNotExist returns an empty object instead of error if the file is not found.
func IgnoreFileNotExist() Option {
	return func(options *options) {
		options.ignoreNotExist = true
	}
}

// WithLogger provides the slog.Logger for FS loader.
//
// By default, it uses slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(options *options) {
		options.logger = logger
	}
}

type (
	// Option configures the a FS with specific options.
	Option  func(file *options)
	options FS
)
