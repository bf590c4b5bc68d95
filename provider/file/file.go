// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package file loads configuration from OS file.
//
// File reads the file with the given path from the OS file system on every Load
// and parses it into a tree.Value with the given parser.
// By default, the parser is chosen by the file extension (see parser.ForPath).
//
// By default, it returns error while loading if the file is not found.
// IgnoreFileNotExist can override the behavior to return an empty object.
package file

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ktong/konfig/parser"
	"github.com/ktong/konfig/tree"
)

// File is a Loader that loads configuration from a OS file.
//
// To create a new File, call [New].
type File struct {
	logger         *slog.Logger
	path           string
	parser         parser.Parser
	ignoreNotExist bool
}

// New creates a File with the given path and Option(s).
//
// It panics if the path is empty.
func New(path string, opts ...Option) File {
	if path == "" {
		panic("cannot create File with empty path")
	}

	option := &options{
		path: path,
	}
	for _, opt := range opts {
		opt(option)
	}
	if option.logger == nil {
		option.logger = slog.Default()
	}
	option.logger = option.logger.WithGroup("konfig.file")
	if option.parser == nil {
		option.parser = parser.ForPath(path)
	}

	return File(*option)
}

func (f File) Load() (tree.Value, error) {
	bytes, err := os.ReadFile(f.path)
	if err != nil {
		if f.ignoreNotExist && os.IsNotExist(err) {
			f.logger.Warn("Config file does not exist.", "file", f.path)

			return tree.Object(), nil
		}

		return tree.Value{}, fmt.Errorf("read file: %w", err)
	}

	value, err := f.parser(bytes)
	if err != nil {
		return tree.Value{}, fmt.Errorf("parse %s: %w", f.path, err)
	}

	return value, nil
}

func (f File) String() string {
	return "file:" + f.path
}
