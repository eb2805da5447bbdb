package mif

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/beetlebugorg/mif/internal/group"
)

// annotateRecords derives origin and encoding for every record.
//
// Encoding is pure, so records are spread over a bounded worker pool. The
// result keeps the input order regardless of completion order. workers <= 0
// selects runtime.NumCPU(); 1 runs serially.
func annotateRecords(ctx context.Context, records []group.Record, keyColumn, workers int, progress func(done, total int)) ([]group.Record, error) {
	out := make([]group.Record, len(records))
	if len(records) == 0 {
		return out, nil
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(records) {
		workers = len(records)
	}

	// If parallel encoding is disabled, fall back to serial
	if workers == 1 {
		for i, r := range records {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			out[i] = group.Annotate(r, keyColumn)
			if progress != nil {
				progress(i+1, len(records))
			}
		}
		return out, nil
	}

	var (
		mu   sync.Mutex
		done int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range records {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = group.Annotate(records[i], keyColumn)

			if progress != nil {
				mu.Lock()
				done++
				progress(done, len(records))
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
