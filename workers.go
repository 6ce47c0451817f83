// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package sexlinked

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// chunk returns the half-open range of items [start, end) handled by
// worker i of n when size items are split into contiguous chunks.
func chunk(size, n, i int) (start, end int) {
	chunksize := (size + n - 1) / n
	start = chunksize * i
	end = start + chunksize
	if start > size {
		start = size
	}
	if end > size {
		end = size
	}
	return
}

// forEachLocus calls fn(i) for every i in [0, size), using up to
// workers goroutines. Each goroutine handles one contiguous range of
// indices, so results written to index i need no further ordering.
// The first error, recovered panic, or ctx cancellation stops the
// remaining work and is returned.
func forEachLocus(ctx context.Context, workers, size int, fn func(i int) error) error {
	if workers < 1 {
		workers = 1
	}
	if workers > size {
		workers = size
	}
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		start, end := chunk(size, workers, w)
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("worker panic: %v", r)
				}
			}()
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := fn(i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
