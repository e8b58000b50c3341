package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ForEachBand calls fn once for every band of a pass over height rows,
// running at most workers bands at a time. If workers <= 0, GOMAXPROCS is
// used; workers == 1 runs the bands in order on the calling goroutine.
//
// Cancellation is checked before each band starts. A band that has started
// always finishes, so a canceled pass leaves every band either fully written
// or untouched. The returned error is ctx.Err() when the pass was cut short.
func ForEachBand(ctx context.Context, height, workers int, fn func(Band)) error {
	bands := Bands(height, BandHeight)
	if len(bands) == 0 {
		return ctx.Err()
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	if workers == 1 || len(bands) == 1 {
		for _, b := range bands {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(b)
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, b := range bands {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(b)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	// gctx is canceled once Wait returns; only the caller's context matters.
	return ctx.Err()
}
