package halftone

import (
	"context"
	"errors"
	"image"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/halftone/internal/color"
)

// rampLayer fills each pixel with an opaque color derived from its index.
// Every channel is a multiple of 1/255, so both backends start from the
// same values.
type rampLayer struct{}

func (rampLayer) at(x, y int) Color {
	return Color{
		R: float32((x*7+y*3)%256) / 255,
		G: float32((x*2+y*11)%256) / 255,
		B: float32((x*5+y*5)%256) / 255,
		A: 1,
	}
}

func (l rampLayer) RenderSurface(_ context.Context, dst *Surface, _ Quality, _ RendDesc, _ ProgressCallback) error {
	for y := range dst.Height() {
		row := dst.Row(y)
		for x := range row {
			row[x] = l.at(x, y)
		}
	}
	return nil
}

func (l rampLayer) RenderRGBA(_ context.Context, dst *image.RGBA, _ Quality, _ RendDesc, _ ProgressCallback) error {
	b := dst.Bounds()
	for y := range b.Dy() {
		for x := range b.Dx() {
			u := color.F32ToPremulU8(l.at(x, y))
			i := dst.PixOffset(x, y)
			dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] = u.R, u.G, u.B, u.A
		}
	}
	return nil
}

func (rampLayer) ColorAt(Point) Color { return Gray }

type errLayer struct{ err error }

func (l errLayer) RenderSurface(context.Context, *Surface, Quality, RendDesc, ProgressCallback) error {
	return l.err
}

func (l errLayer) RenderRGBA(context.Context, *image.RGBA, Quality, RendDesc, ProgressCallback) error {
	return l.err
}

func (l errLayer) ColorAt(Point) Color { return Transparent }

type progressRecorder struct {
	mu    sync.Mutex
	calls [][2]int
	stop  func(n int) bool
}

func (r *progressRecorder) AmountComplete(done, total int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, [2]int{done, total})
	if r.stop != nil && r.stop(len(r.calls)) {
		return false
	}
	return true
}

func testDesc(w, h int) RendDesc {
	return NewRendDesc(w, h, Pt(-2, 1.5), Pt(2, -1.5))
}

func renderRamp(t *testing.T, f *Filter, w, h int) *Surface {
	t.Helper()
	dst := NewSurface(w, h)
	if err := f.RenderSurface(context.Background(), rampLayer{}, dst, QualityDefault, testDesc(w, h), nil); err != nil {
		t.Fatalf("RenderSurface() = %v", err)
	}
	return dst
}

func TestAmountZeroIsNoOp(t *testing.T) {
	for _, m := range BlendMethods() {
		t.Run(m.String(), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Amount = 0
			cfg.BlendMethod = m
			f := New(WithConfig(cfg))

			const w, h = 40, 30
			want := NewSurface(w, h)
			_ = rampLayer{}.RenderSurface(context.Background(), want, 0, testDesc(w, h), nil)
			got := renderRamp(t, f, w, h)
			if diff := cmp.Diff(want.Data(), got.Data()); diff != "" {
				t.Errorf("surface changed (-want +got):\n%s", diff)
			}

			wantRGBA := image.NewRGBA(image.Rect(0, 0, w, h))
			_ = rampLayer{}.RenderRGBA(context.Background(), wantRGBA, 0, testDesc(w, h), nil)
			gotRGBA := image.NewRGBA(image.Rect(0, 0, w, h))
			if err := f.RenderRGBA(context.Background(), rampLayer{}, gotRGBA, QualityDefault, testDesc(w, h), nil); err != nil {
				t.Fatalf("RenderRGBA() = %v", err)
			}
			if diff := cmp.Diff(wantRGBA.Pix, gotRGBA.Pix); diff != "" {
				t.Errorf("RGBA changed (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPassMatchesPerPixelComposite(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pattern.Angle = Deg(20)
	cfg.Amount = 0.7
	cfg.BlendMethod = BlendMultiply
	f := New(WithConfig(cfg))

	const w, h = 33, 21
	desc := testDesc(w, h)
	got := renderRamp(t, f, w, h)

	ss := cfg.Pattern.SupersampleWidth(desc.PW())
	for y := range h {
		for x := range w {
			want := cfg.Composite(desc.PixelCenter(x, y), ss, rampLayer{}.at(x, y)).Clamped()
			if p := got.GetPixel(x, y); p != want {
				t.Fatalf("pixel (%d, %d) = %v, want %v", x, y, p, want)
			}
		}
	}
}

func TestBackendsAgree(t *testing.T) {
	kinds := []Kind{KindSymmetric, KindLightOnDark, KindDiamond, KindStripe}
	methods := []BlendMethod{BlendStraight, BlendComposite, BlendScreen, BlendHue}

	for _, k := range kinds {
		for _, m := range methods {
			t.Run(k.String()+"/"+m.String(), func(t *testing.T) {
				cfg := DefaultConfig()
				cfg.Pattern.Kind = k
				cfg.Pattern.Angle = Deg(45)
				cfg.BlendMethod = m
				cfg.Amount = 0.8
				cfg.ColorLight = NRGBA(1, 0.9, 0.6, 0.9)
				f := New(WithConfig(cfg))

				const w, h = 48, 36
				desc := testDesc(w, h)
				surf := renderRamp(t, f, w, h)

				img := image.NewRGBA(image.Rect(0, 0, w, h))
				if err := f.RenderRGBA(context.Background(), rampLayer{}, img, QualityDefault, desc, nil); err != nil {
					t.Fatalf("RenderRGBA() = %v", err)
				}

				for y := range h {
					for x := range w {
						want := color.F32ToPremulU8(surf.GetPixel(x, y))
						i := img.PixOffset(x, y)
						got := color.ColorU8{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2], A: img.Pix[i+3]}
						if !u8Near(got, want, 1) {
							t.Fatalf("pixel (%d, %d): rgba %v, surface %v", x, y, got, want)
						}
					}
				}
			})
		}
	}
}

// Translucent bases reach the premultiplied backend quantized; starting the
// float backend from the same quantized value must give the same pixel.
func TestPremultipliedRoundTripPerPixel(t *testing.T) {
	rng := rand.New(rand.NewPCG(13, 14))
	cfg := DefaultConfig()
	cfg.Amount = 0.6
	cfg.BlendMethod = BlendComposite
	r := cfg.resolver()

	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	pt := premulTarget{img}
	surf := NewSurface(1, 1)
	st := surfaceTarget{surf}

	for i := range 1000 {
		c := randColor(rng, 0.2)
		u := color.F32ToPremulU8(c)
		copy(img.Pix, []uint8{u.R, u.G, u.B, u.A})
		surf.SetPixel(0, 0, color.PremulU8ToF32(u))

		p := Pt(rng.Float64(), rng.Float64())
		ss := rng.Float64() * 0.3
		pt.store(0, 0, r.composite(p, ss, pt.load(0, 0)))
		st.store(0, 0, r.composite(p, ss, st.load(0, 0)))

		want := color.F32ToPremulU8(surf.GetPixel(0, 0))
		got := color.ColorU8{R: img.Pix[0], G: img.Pix[1], B: img.Pix[2], A: img.Pix[3]}
		if got != want {
			t.Fatalf("case %d: premultiplied %v, float %v", i, got, want)
		}
	}
}

func TestSinglePixelMidGray(t *testing.T) {
	f := New()
	desc := NewRendDesc(1, 1, Pt(0, 0), Pt(1, 1))
	up := SolidLayer{Color: Gray}

	var first Color
	for i := range 3 {
		dst := NewSurface(1, 1)
		if err := f.RenderSurface(context.Background(), up, dst, QualityBest, desc, nil); err != nil {
			t.Fatalf("RenderSurface() = %v", err)
		}
		got := dst.GetPixel(0, 0)
		if i == 0 {
			first = got
			continue
		}
		if got != first {
			t.Fatalf("run %d = %v, first run %v", i, got, first)
		}
	}

	// The pixel is much larger than the pattern period, so the edge band
	// covers everything and mid-gray resolves to half coverage.
	if !colorF32Near(first, Gray, 1e-3) {
		t.Errorf("pixel = %v, want about %v", first, Gray)
	}

	// The premultiplied backend agrees.
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	if err := f.RenderRGBA(context.Background(), up, img, QualityBest, desc, nil); err != nil {
		t.Fatalf("RenderRGBA() = %v", err)
	}
	want := color.F32ToPremulU8(first)
	got := color.ColorU8{R: img.Pix[0], G: img.Pix[1], B: img.Pix[2], A: img.Pix[3]}
	if !u8Near(got, want, 1) {
		t.Errorf("RenderRGBA pixel = %v, want %v", got, want)
	}
}

func TestCancelOnFirstCallback(t *testing.T) {
	f := New()
	desc := testDesc(16, 16)
	up := SolidLayer{Color: Gray}

	rec := &progressRecorder{stop: func(int) bool { return true }}
	dst := NewSurface(16, 16)
	err := f.RenderSurface(context.Background(), up, dst, QualityDefault, desc, rec)
	if !errors.Is(err, ErrCanceled) {
		t.Fatalf("RenderSurface() = %v, want ErrCanceled", err)
	}
	if len(rec.calls) != 1 {
		t.Errorf("callback called %d times, want 1", len(rec.calls))
	}
	// The pixel loop never ran: every pixel is still the upstream color.
	for i, c := range dst.Data() {
		if c != Gray {
			t.Fatalf("pixel %d = %v, want untouched %v", i, c, Gray)
		}
	}

	rec = &progressRecorder{stop: func(int) bool { return true }}
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	err = f.RenderRGBA(context.Background(), up, img, QualityDefault, desc, rec)
	if !errors.Is(err, ErrCanceled) {
		t.Fatalf("RenderRGBA() = %v, want ErrCanceled", err)
	}
	if len(rec.calls) != 1 {
		t.Errorf("callback called %d times, want 1", len(rec.calls))
	}
}

func TestCancelAtCompletion(t *testing.T) {
	f := New()
	desc := testDesc(8, 8)

	// Allow the upstream report, refuse the final one.
	rec := &progressRecorder{stop: func(n int) bool { return n >= 2 }}
	dst := NewSurface(8, 8)
	err := f.RenderSurface(context.Background(), SolidLayer{Color: Gray}, dst, QualityDefault, desc, rec)
	if !errors.Is(err, ErrCanceled) {
		t.Fatalf("RenderSurface() = %v, want ErrCanceled", err)
	}

	// Pixels were written before the refusal and stay written.
	want := renderSolid(t, f, Gray, 8, 8)
	if diff := cmp.Diff(want.Data(), dst.Data()); diff != "" {
		t.Errorf("partial output differs from full pass (-want +got):\n%s", diff)
	}
}

func renderSolid(t *testing.T, f *Filter, c Color, w, h int) *Surface {
	t.Helper()
	dst := NewSurface(w, h)
	if err := f.RenderSurface(context.Background(), SolidLayer{Color: c}, dst, QualityDefault, testDesc(w, h), nil); err != nil {
		t.Fatalf("RenderSurface() = %v", err)
	}
	return dst
}

func TestProgressReports(t *testing.T) {
	f := New()
	rec := &progressRecorder{}
	dst := NewSurface(8, 8)
	if err := f.RenderSurface(context.Background(), SolidLayer{Color: Gray}, dst, QualityDefault, testDesc(8, 8), rec); err != nil {
		t.Fatalf("RenderSurface() = %v", err)
	}
	want := [][2]int{{upstreamProgress, ProgressTotal}, {ProgressTotal, ProgressTotal}}
	if diff := cmp.Diff(want, rec.calls); diff != "" {
		t.Errorf("progress calls (-want +got):\n%s", diff)
	}

	// Amount zero still reports completion.
	cfg := DefaultConfig()
	cfg.Amount = 0
	f.SetConfig(cfg)
	rec = &progressRecorder{}
	if err := f.RenderSurface(context.Background(), SolidLayer{Color: Gray}, dst, QualityDefault, testDesc(8, 8), rec); err != nil {
		t.Fatalf("RenderSurface() = %v", err)
	}
	if diff := cmp.Diff(want, rec.calls); diff != "" {
		t.Errorf("progress calls at amount 0 (-want +got):\n%s", diff)
	}
}

func TestUpstreamFailure(t *testing.T) {
	boom := errors.New("boom")
	f := New()
	dst := NewSurface(4, 4)
	dst.Clear(White)

	rec := &progressRecorder{}
	err := f.RenderSurface(context.Background(), errLayer{boom}, dst, QualityDefault, testDesc(4, 4), rec)
	if !errors.Is(err, ErrUpstream) || !errors.Is(err, boom) {
		t.Fatalf("RenderSurface() = %v, want ErrUpstream wrapping boom", err)
	}
	if len(rec.calls) != 0 {
		t.Errorf("progress reported after upstream failure: %v", rec.calls)
	}
	for _, c := range dst.Data() {
		if c != White {
			t.Fatal("pixels changed after upstream failure")
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	err = f.RenderRGBA(context.Background(), errLayer{boom}, img, QualityDefault, testDesc(4, 4), nil)
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("RenderRGBA() = %v, want ErrUpstream", err)
	}

	// An upstream that reports its own cancellation is a cancellation.
	err = f.RenderSurface(context.Background(), errLayer{ErrCanceled}, dst, QualityDefault, testDesc(4, 4), nil)
	if !errors.Is(err, ErrCanceled) || errors.Is(err, ErrUpstream) {
		t.Fatalf("RenderSurface() = %v, want ErrCanceled", err)
	}
}

func TestContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := New()
	dst := NewSurface(4, 4)
	err := f.RenderSurface(ctx, SolidLayer{Color: Gray}, dst, QualityDefault, testDesc(4, 4), nil)
	if !errors.Is(err, ErrCanceled) || !errors.Is(err, context.Canceled) {
		t.Fatalf("RenderSurface() = %v, want ErrCanceled and context.Canceled", err)
	}
	for _, c := range dst.Data() {
		if c != Transparent {
			t.Fatal("upstream ran on a canceled context")
		}
	}
}

func TestWorkersDoNotChangeOutput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pattern.Kind = KindDiamond
	cfg.Pattern.Angle = Deg(30)
	cfg.Amount = 0.9
	cfg.BlendMethod = BlendOverlay

	const w, h = 150, 200
	serial := renderRamp(t, New(WithConfig(cfg), WithWorkers(1)), w, h)
	for _, n := range []int{0, 2, 8} {
		got := renderRamp(t, New(WithConfig(cfg), WithWorkers(n)), w, h)
		if diff := cmp.Diff(serial.Data(), got.Data()); diff != "" {
			t.Errorf("workers=%d differs from serial pass (-serial +parallel):\n%s", n, diff)
		}
	}
}

func TestOutputIsClamped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BlendMethod = BlendAdd
	cfg.ColorDark = White
	f := New(WithConfig(cfg))

	dst := renderSolid(t, f, RGB(0.8, 0.8, 0.8), 16, 16)
	for i, c := range dst.Data() {
		if c.R > 1 || c.G > 1 || c.B > 1 || c.A > 1 {
			t.Fatalf("pixel %d = %v, not clamped", i, c)
		}
	}
}

func TestSetConfigDoesNotAffectSnapshot(t *testing.T) {
	f := New()
	snap := f.Config()
	cfg := snap
	cfg.Amount = 0.25
	f.SetConfig(cfg)

	if snap.Amount != 1 {
		t.Errorf("snapshot amount = %v, want 1", snap.Amount)
	}
	if got := f.Config().Amount; got != 0.25 {
		t.Errorf("Config().Amount = %v, want 0.25", got)
	}
}

func TestColorAt(t *testing.T) {
	f := New()
	up := SolidLayer{Color: RGB(0.3, 0.6, 0.9)}
	cfg := f.Config()

	for _, p := range []Point{{0, 0}, {0.1, 0.07}, {-1.3, 2.2}} {
		want := cfg.Composite(p, 0, up.Color).Clamped()
		if got := f.ColorAt(up, p); got != want {
			t.Errorf("ColorAt(%v) = %v, want %v", p, got, want)
		}
	}

	cfg.Amount = 0
	f.SetConfig(cfg)
	if got := f.ColorAt(up, Pt(0.1, 0.1)); got != up.Color {
		t.Errorf("ColorAt at amount 0 = %v, want %v", got, up.Color)
	}
}

func TestOver(t *testing.T) {
	f := New()
	layer := f.Over(SolidLayer{Color: Gray})

	const w, h = 12, 9
	desc := testDesc(w, h)
	got := NewSurface(w, h)
	if err := layer.RenderSurface(context.Background(), got, QualityDefault, desc, nil); err != nil {
		t.Fatalf("RenderSurface() = %v", err)
	}
	want := renderSolid(t, f, Gray, w, h)
	if diff := cmp.Diff(want.Data(), got.Data()); diff != "" {
		t.Errorf("Over differs (-want +got):\n%s", diff)
	}

	if got, want := layer.ColorAt(Pt(0.2, 0.3)), f.ColorAt(SolidLayer{Color: Gray}, Pt(0.2, 0.3)); got != want {
		t.Errorf("ColorAt = %v, want %v", got, want)
	}

	// Two filters stack.
	stacked := New().Over(layer)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if err := stacked.RenderRGBA(context.Background(), img, QualityDefault, desc, nil); err != nil {
		t.Fatalf("stacked RenderRGBA() = %v", err)
	}
}

func u8Near(a, b color.ColorU8, tol int) bool {
	d := func(x, y uint8) bool {
		v := int(x) - int(y)
		return v <= tol && v >= -tol
	}
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

func TestBufferSizeMustMatchDesc(t *testing.T) {
	f := New()
	desc := testDesc(8, 6)

	tests := []struct {
		name string
		run  func(rec *progressRecorder) error
	}{
		{"surface wider", func(rec *progressRecorder) error {
			return f.RenderSurface(context.Background(), SolidLayer{Color: Gray}, NewSurface(9, 6), QualityDefault, desc, rec)
		}},
		{"surface shorter", func(rec *progressRecorder) error {
			return f.RenderSurface(context.Background(), SolidLayer{Color: Gray}, NewSurface(8, 5), QualityDefault, desc, rec)
		}},
		{"rgba transposed", func(rec *progressRecorder) error {
			img := image.NewRGBA(image.Rect(0, 0, 6, 8))
			return f.RenderRGBA(context.Background(), SolidLayer{Color: Gray}, img, QualityDefault, desc, rec)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &progressRecorder{}
			if err := tt.run(rec); !errors.Is(err, ErrSizeMismatch) {
				t.Fatalf("err = %v, want ErrSizeMismatch", err)
			}
			if len(rec.calls) != 0 {
				t.Errorf("progress reported %v, want no calls", rec.calls)
			}
		})
	}

	// A sub-image with an offset origin matches by size.
	img := image.NewRGBA(image.Rect(0, 0, 20, 20)).SubImage(image.Rect(4, 4, 12, 10)).(*image.RGBA)
	if err := f.RenderRGBA(context.Background(), SolidLayer{Color: Gray}, img, QualityDefault, desc, nil); err != nil {
		t.Errorf("RenderRGBA(sub-image) = %v", err)
	}
}
