// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package konfig

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ktong/konfig/tree"
)

// Evaluate evaluates the sources concurrently, with at most limit evaluations
// in flight if limit is positive, and returns their values in the order of the sources.
//
// All sources are evaluated even if some fail, and the failures of all sources are combined.
// Sources which have not started when ctx is done fail with CannotRead.
func Evaluate(ctx context.Context, limit int, sources ...Loadable) ([]tree.Value, error) {
	values := make([]tree.Value, len(sources))
	errs := make([]error, len(sources))

	group := new(errgroup.Group)
	if limit > 0 {
		group.SetLimit(limit)
	}
	for i, source := range sources {
		i, source := i, source

		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = Failures{{Kind: CannotRead, Description: "evaluation canceled", Cause: err}}

				return nil
			}

			cursor, err := source.Cursor()
			if err != nil {
				errs[i] = err

				return nil
			}
			values[i] = cursor.Value()

			return nil
		})
	}
	// Errors are collected per source, so Wait always returns nil.
	_ = group.Wait()

	if err := Combine(errs...); err != nil {
		return nil, err
	}

	return values, nil
}
