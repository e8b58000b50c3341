package halftone

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"sync"

	"github.com/gogpu/halftone/internal/parallel"
)

// Filter overlays a luminance-driven halftone pattern on the output of an
// upstream layer.
//
// A Filter is safe for concurrent use. Every pass works on a snapshot of
// the configuration taken when the pass starts.
type Filter struct {
	mu      sync.RWMutex
	cfg     Config
	vocab   *Vocab
	workers int
}

// New creates a filter with DefaultConfig unless overridden by options.
func New(opts ...Option) *Filter {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.vocab == nil {
		o.vocab = defaultVocab()
	}
	return &Filter{cfg: o.cfg, vocab: o.vocab, workers: o.workers}
}

// Config returns a copy of the current configuration.
func (f *Filter) Config() Config {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.cfg
}

// SetConfig replaces the configuration. Passes already running keep the
// configuration they started with.
func (f *Filter) SetConfig(c Config) {
	f.mu.Lock()
	f.cfg = c
	f.mu.Unlock()
}

// Vocab returns the parameter schema of the filter.
func (f *Filter) Vocab() *Vocab {
	return f.vocab
}

// RenderSurface renders upstream into dst and applies the halftone in
// place on straight-alpha float pixels. dst must be desc.W x desc.H pixels;
// otherwise ErrSizeMismatch is returned before upstream is called.
func (f *Filter) RenderSurface(ctx context.Context, upstream SurfaceRenderer, dst *Surface, q Quality, desc RendDesc, cb ProgressCallback) error {
	return runPass(ctx, f.Config(), f.workers, surfaceTarget{dst}, desc, cb,
		func(ctx context.Context, sub ProgressCallback) error {
			return upstream.RenderSurface(ctx, dst, q, desc, sub)
		})
}

// RenderRGBA renders upstream into dst and applies the halftone in place
// on premultiplied 8-bit pixels. Results match RenderSurface up to 8-bit
// rounding. The bounds of dst must be desc.W x desc.H pixels.
func (f *Filter) RenderRGBA(ctx context.Context, upstream RGBARenderer, dst *image.RGBA, q Quality, desc RendDesc, cb ProgressCallback) error {
	return runPass(ctx, f.Config(), f.workers, premulTarget{dst}, desc, cb,
		func(ctx context.Context, sub ProgressCallback) error {
			return upstream.RenderRGBA(ctx, dst, q, desc, sub)
		})
}

// ColorAt returns the filtered color of upstream at world point p. A single
// point has no pixel footprint, so the pattern is evaluated without
// antialiasing.
func (f *Filter) ColorAt(upstream Sampler, p Point) Color {
	cfg := f.Config()
	base := upstream.ColorAt(p)
	if cfg.Amount == 0 {
		return base
	}
	return cfg.Composite(p, 0, base).Clamped()
}

// Over returns a Layer that applies f on top of upstream.
func (f *Filter) Over(upstream Layer) Layer {
	return filtered{f: f, up: upstream}
}

type filtered struct {
	f  *Filter
	up Layer
}

func (l filtered) RenderSurface(ctx context.Context, dst *Surface, q Quality, desc RendDesc, cb ProgressCallback) error {
	return l.f.RenderSurface(ctx, l.up, dst, q, desc, cb)
}

func (l filtered) RenderRGBA(ctx context.Context, dst *image.RGBA, q Quality, desc RendDesc, cb ProgressCallback) error {
	return l.f.RenderRGBA(ctx, l.up, dst, q, desc, cb)
}

func (l filtered) ColorAt(p Point) Color {
	return l.f.ColorAt(l.up, p)
}

type upstreamFunc func(ctx context.Context, sub ProgressCallback) error

// runPass is the raster driver shared by both pixel formats.
//
// The upstream render gets the first 95% of the progress range. Pixels are
// processed in row bands; each pixel depends only on its own index and
// prior value, so the result does not depend on scheduling. Completion is
// always reported at the end and a stop request there fails the pass with
// the pixels already written.
func runPass[T target](ctx context.Context, cfg Config, workers int, t T, desc RendDesc, cb ProgressCallback, upstream upstreamFunc) error {
	log := Logger()
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCanceled, err)
	}
	w, h := t.size()
	if w != desc.W || h != desc.H {
		return fmt.Errorf("%w: buffer %dx%d, description %dx%d", ErrSizeMismatch, w, h, desc.W, desc.H)
	}

	sub := NewSuperCallback(cb, 0, upstreamProgress, ProgressTotal)
	if err := upstream(ctx, sub); err != nil {
		if errors.Is(err, ErrCanceled) || sub.Aborted() {
			log.Warn("halftone: upstream render canceled")
			return ErrCanceled
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			log.Warn("halftone: upstream render canceled", "err", ctxErr)
			return fmt.Errorf("%w: %w", ErrCanceled, ctxErr)
		}
		log.Warn("halftone: upstream render failed", "err", err)
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	if sub.Aborted() {
		log.Warn("halftone: upstream render canceled")
		return ErrCanceled
	}

	if cfg.Amount == 0 {
		log.Debug("halftone: amount is zero, pass skipped")
		return finish(cb)
	}

	ss := math.Abs(desc.PW()) / cfg.Pattern.Size.Length()
	r := cfg.resolver()

	if log.Enabled(ctx, slog.LevelDebug) {
		log.Debug("halftone: pass",
			"width", w, "height", h,
			"supersample", ss,
			"kind", cfg.Pattern.Kind.String(),
			"blend", cfg.BlendMethod.String(),
			"solid", r.solid)
	}

	err := parallel.ForEachBand(ctx, h, workers, func(b parallel.Band) {
		for y := b.Y0; y < b.Y1; y++ {
			for x := range w {
				p := desc.PixelCenter(x, y)
				t.store(x, y, r.composite(p, ss, t.load(x, y)))
			}
		}
	})
	if err != nil {
		log.Warn("halftone: pass canceled", "err", err)
		return fmt.Errorf("%w: %w", ErrCanceled, err)
	}

	return finish(cb)
}

func finish(cb ProgressCallback) error {
	if !report(cb, ProgressTotal, ProgressTotal) {
		Logger().Warn("halftone: canceled at completion")
		return ErrCanceled
	}
	return nil
}
