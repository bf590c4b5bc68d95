// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package fs loads configuration from file system.
//
// FS loads a file with the given path from the fs.FS and parses it into
// a tree.Value with the given parser.
// By default, the parser is chosen by the file extension (see parser.ForPath),
// and a nil fs.FS reads from the current working directory.
package fs

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/ktong/konfig/parser"
	"github.com/ktong/konfig/tree"
)

// FS is a Loader that loads configuration from file system.
//
// To create a new FS, call [New].
type FS struct {
	logger         *slog.Logger
	fs             fs.FS
	path           string
	parser         parser.Parser
	ignoreNotExist bool
}

// New creates a FS with the given fs.FS, path and Option(s).
func New(fs fs.FS, path string, opts ...Option) FS {
	option := &options{
		fs:   fs,
		path: path,
	}
	for _, opt := range opts {
		opt(option)
	}
	if option.logger == nil {
		option.logger = slog.Default()
	}
	option.logger = option.logger.WithGroup("konfig.fs")
	if option.parser == nil {
		option.parser = parser.ForPath(path)
	}

	return FS(*option)
}

func (f FS) Load() (tree.Value, error) {
	ffs := f.fs
	if ffs == nil {
		// Ignore error: It uses whatever returned.
		path, _ := os.Getwd()
		ffs = os.DirFS(path)
	}

	bytes, err := fs.ReadFile(ffs, f.path)
	if err != nil {
		if f.ignoreNotExist && errors.Is(err, fs.ErrNotExist) {
			f.logger.Debug("Config file does not exist.", "file", f.path)

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

func (f FS) String() string {
	return "fs:" + f.path
}
