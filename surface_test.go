package halftone

import (
	"context"
	"errors"
	"image"
	stdcolor "image/color"
	"math"
	"path/filepath"
	"testing"

	himage "github.com/gogpu/halftone/internal/image"
)

func TestSurfacePixels(t *testing.T) {
	s := NewSurface(3, 2)
	if s.Width() != 3 || s.Height() != 2 || len(s.Data()) != 6 {
		t.Fatalf("NewSurface(3, 2) = %dx%d with %d pixels", s.Width(), s.Height(), len(s.Data()))
	}

	c := NRGBA(0.1, 0.2, 0.3, 0.4)
	s.SetPixel(2, 1, c)
	if got := s.GetPixel(2, 1); got != c {
		t.Errorf("GetPixel(2, 1) = %v, want %v", got, c)
	}
	if got := s.Row(1)[2]; got != c {
		t.Errorf("Row(1)[2] = %v, want %v", got, c)
	}

	// Out of bounds access is ignored.
	s.SetPixel(3, 0, White)
	s.SetPixel(-1, 0, White)
	if got := s.GetPixel(5, 5); got != Transparent {
		t.Errorf("GetPixel out of bounds = %v", got)
	}
	if s.Row(2) != nil || s.Row(-1) != nil {
		t.Error("Row out of bounds should be nil")
	}

	clone := s.Clone()
	s.Clear(Black)
	if clone.GetPixel(2, 1) != c {
		t.Error("Clone shares pixel storage")
	}
	for _, p := range s.Data() {
		if p != Black {
			t.Fatal("Clear left a pixel unchanged")
		}
	}
}

func TestSurfaceImageConversion(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 20, 12, 22))
	src.SetNRGBA(10, 20, stdcolor.NRGBA{R: 255, A: 255})
	src.SetNRGBA(11, 21, stdcolor.NRGBA{G: 255, B: 102, A: 51})

	s := SurfaceFromImage(src)
	if s.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("Bounds() = %v", s.Bounds())
	}
	if got := s.GetPixel(0, 0); got != RGB(1, 0, 0) {
		t.Errorf("pixel (0, 0) = %v", got)
	}
	if got := s.GetPixel(1, 1); got != NRGBA(0, 1, 0.4, 0.2) {
		t.Errorf("pixel (1, 1) = %v", got)
	}

	img := s.ToImage()
	if got := img.NRGBAAt(1, 1); got != (stdcolor.NRGBA{G: 255, B: 102, A: 51}) {
		t.Errorf("ToImage pixel (1, 1) = %v", got)
	}

	// Surface is an image.Image in its own right.
	var _ image.Image = s
	r, _, _, a := s.At(0, 0).RGBA()
	if r != 0xffff || a != 0xffff {
		t.Errorf("At(0, 0).RGBA() = %d, %d", r, a)
	}
}

func TestSurfaceSave(t *testing.T) {
	s := NewSurface(4, 3)
	s.Clear(NRGBA(0, 0.5, 1, 1))

	path := filepath.Join(t.TempDir(), "out.png")
	if err := s.Save(path); err != nil {
		t.Fatalf("Save() = %v", err)
	}
	img, err := himage.Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Errorf("loaded bounds = %v", img.Bounds())
	}
	if got := FromColor(img.At(1, 1)); !colorF32Near(got, NRGBA(0, 0.5, 1, 1), 1.0/255) {
		t.Errorf("loaded pixel = %v", got)
	}
}

func TestRendDesc(t *testing.T) {
	d := NewRendDesc(4, 2, Pt(-2, 1), Pt(2, -1))
	if d.PW() != 1 || d.PH() != -1 {
		t.Errorf("PW, PH = %v, %v; want 1, -1", d.PW(), d.PH())
	}
	if got := d.PixelCenter(0, 0); got != Pt(-1.5, 0.5) {
		t.Errorf("PixelCenter(0, 0) = %v", got)
	}
	if got := d.PixelCenter(3, 1); got != Pt(1.5, -0.5) {
		t.Errorf("PixelCenter(3, 1) = %v", got)
	}

	for y := range d.H {
		for x := range d.W {
			px, py := d.PixelAt(d.PixelCenter(x, y))
			if px != x || py != y {
				t.Errorf("PixelAt(PixelCenter(%d, %d)) = %d, %d", x, y, px, py)
			}
		}
	}
	if px, py := d.PixelAt(Pt(-2.5, 1.5)); px != -1 || py != -1 {
		t.Errorf("PixelAt outside = %d, %d; want -1, -1", px, py)
	}
}

func TestSurfaceBlur(t *testing.T) {
	s := NewSurface(9, 9)
	s.Clear(Black)
	s.SetPixel(4, 4, White)

	if err := s.Blur(context.Background(), 1); err != nil {
		t.Fatalf("Blur() = %v", err)
	}
	center, edge := s.GetPixel(4, 4), s.GetPixel(0, 0)
	if !(center.R < 1 && center.R > edge.R) {
		t.Errorf("center %v, corner %v: expected a softened peak", center, edge)
	}
	if center.A < 0.9999 {
		t.Errorf("alpha = %v, want 1", center.A)
	}
}

func TestSurfaceBlurSigmaRange(t *testing.T) {
	for _, sigma := range []float64{1e12, MaxBlurSigma * 2, math.Inf(1), math.NaN()} {
		s := NewSurface(2, 2)
		s.Clear(Gray)
		if err := s.Blur(context.Background(), sigma); !errors.Is(err, ErrBlurSigma) {
			t.Errorf("Blur(%v) = %v, want ErrBlurSigma", sigma, err)
		}
		for i, c := range s.Data() {
			if c != Gray {
				t.Fatalf("Blur(%v) changed pixel %d to %v", sigma, i, c)
			}
		}
	}

	// Sigmas far wider than the surface stay cheap and keep a flat fill flat.
	s := NewSurface(2, 2)
	s.Clear(Gray)
	if err := s.Blur(context.Background(), MaxBlurSigma); err != nil {
		t.Fatalf("Blur(MaxBlurSigma) = %v", err)
	}
	for i, c := range s.Data() {
		if !colorF32Near(c, Gray, 1e-3) {
			t.Fatalf("pixel %d = %v, want about %v", i, c, Gray)
		}
	}
}
