// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Command konfig prints the merged configuration.
//
// Usage:
//
//	konfig [-Dkey=value...] [--file path...] [--url url...] [--resource name...] [path]
//
// Sources given with --file, --url and --resource take precedence in that order,
// and over the default stack unless --no-default is set.
// The `-Dkey=value` arguments are set as system properties before anything is loaded.
//
// Run `konfig watch` to print the configuration again whenever one of the files changes.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
