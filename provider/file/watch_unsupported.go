// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

//go:build appengine || !(darwin || dragonfly || freebsd || openbsd || linux || netbsd || solaris || windows)

package file

import (
	"context"
	"runtime"

	"github.com/ktong/konfig/tree"
)

func (f File) Watch(context.Context, func(tree.Value)) error {
	f.logger.Warn("File.Watch is not supported.", "os", runtime.GOOS)

	return nil
}
