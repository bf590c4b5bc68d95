// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package konfig

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/ktong/konfig/tree"
)

// Watcher is the interface that wraps the Watch method.
//
// Watch watches the origin and calls onChange with the new value when it changes.
// It blocks until ctx is done, or the watching fails.
// file.File is a Watcher.
type Watcher interface {
	Watch(ctx context.Context, onChange func(tree.Value)) error
}

// Watch evaluates the source again whenever any of the watchers reports a change,
// and calls onChange with the result. Changes reported while onChange is running
// are coalesced into one evaluation.
//
// It blocks until ctx is done, or any watcher returns an error.
// It panics if ctx is nil.
func Watch(ctx context.Context, source Loadable, onChange func(Cursor, error), watchers ...Watcher) error {
	if ctx == nil {
		panic("cannot watch change with nil context")
	}
	if len(watchers) == 0 {
		return nil
	}

	changes := make(chan struct{}, 1)
	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		for {
			select {
			case <-changes:
				cursor, err := source.Cursor()
				onChange(cursor, err)
				slog.DebugContext(ctx, "Configuration change has been applied.", "error", err)
			case <-ctx.Done():
				return nil
			}
		}
	})

	for _, watcher := range watchers {
		watcher := watcher

		group.Go(func() error {
			notify := func(tree.Value) {
				slog.InfoContext(ctx, "Configuration has been changed.", "watcher", watcher)
				select {
				case changes <- struct{}{}:
				default:
				}
			}

			slog.DebugContext(ctx, "Watching configuration change.", "watcher", watcher)
			if err := watcher.Watch(ctx, notify); err != nil {
				return fmt.Errorf("watch configuration change: %w", err)
			}

			return nil
		})
	}

	return group.Wait() //nolint:wrapcheck
}
