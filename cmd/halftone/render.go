package main

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/gogpu/halftone"
	himage "github.com/gogpu/halftone/internal/image"
)

func renderFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Value: "symmetric", Usage: "pattern kind: symmetric, lightondark, diamond or stripe"},
		&cli.Float64Flag{Name: "size", Aliases: []string{"s"}, Value: 0.25, Usage: "pattern period in world units"},
		&cli.Float64Flag{Name: "size-y", Usage: "vertical pattern period (default: same as --size)"},
		&cli.Float64Flag{Name: "angle", Aliases: []string{"a"}, Usage: "pattern rotation in degrees"},
		&cli.StringFlag{Name: "origin", Value: "0,0", Usage: "pattern origin as x,y"},
		&cli.StringFlag{Name: "dark", Value: "#000000", Usage: "dark ink color"},
		&cli.StringFlag{Name: "light", Value: "#ffffff", Usage: "light ink color"},
		&cli.Float64Flag{Name: "amount", Value: 1, Usage: "opacity of the halftone, 0 to 1"},
		&cli.StringFlag{Name: "blend", Value: "straight", Usage: "blend method, e.g. straight, multiply, screen"},
		&cli.Float64Flag{Name: "world", Value: 4, Usage: "world-space width of the image"},
		&cli.IntFlag{Name: "quality", Aliases: []string{"q"}, Value: int(halftone.QualityDefault), Usage: "resampling quality, 0 (best) to 10 (draft)"},
		&cli.Float64Flag{Name: "blur", Usage: "pre-blur the source by this many pixels"},
		&cli.BoolFlag{Name: "float", Usage: "render with straight-alpha float pixels"},
		&cli.IntFlag{Name: "workers", Usage: "parallel row bands (0: one per CPU)"},
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log pass details"},
	}
}

// configFromFlags builds a filter configuration through the named
// parameter interface.
func configFromFlags(c *cli.Context) (*halftone.Filter, error) {
	f := halftone.New(halftone.WithWorkers(c.Int("workers")))

	origin, err := parsePoint(c.String("origin"))
	if err != nil {
		return nil, fmt.Errorf("--origin: %w", err)
	}
	size := c.Float64("size")
	sizeY := c.Float64("size-y")
	if sizeY == 0 {
		sizeY = size
	}

	params := []struct {
		flag  string
		name  string
		value any
	}{
		{"type", halftone.ParamType, c.String("type")},
		{"size", halftone.ParamSize, halftone.Pt(size, sizeY)},
		{"angle", halftone.ParamAngle, c.Float64("angle")},
		{"origin", halftone.ParamOrigin, origin},
		{"dark", halftone.ParamColorDark, c.String("dark")},
		{"light", halftone.ParamColorLight, c.String("light")},
		{"amount", halftone.ParamAmount, c.Float64("amount")},
		{"blend", halftone.ParamBlendMethod, c.String("blend")},
	}
	for _, p := range params {
		if err := f.SetParam(p.name, p.value); err != nil {
			return nil, fmt.Errorf("--%s: %w", p.flag, err)
		}
	}
	if err := f.Config().Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func parsePoint(s string) (halftone.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return halftone.Point{}, fmt.Errorf("invalid point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return halftone.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return halftone.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return halftone.Pt(x, y), nil
}

// worldRect centers a w x h image on the origin, worldWidth units wide,
// with y pointing up.
func worldRect(w, h int, worldWidth float64) (tl, br halftone.Point) {
	hw := worldWidth / 2
	hh := hw * float64(h) / float64(w)
	return halftone.Pt(-hw, hh), halftone.Pt(hw, -hh)
}

// progressLine draws a percentage on w, for terminals only.
type progressLine struct {
	w    io.Writer
	last int
}

func (p *progressLine) AmountComplete(done, total int) bool {
	if total <= 0 {
		return true
	}
	pct := done * 100 / total
	if pct != p.last {
		p.last = pct
		fmt.Fprintf(p.w, "\rrendering %3d%%", pct)
		if done >= total {
			fmt.Fprintln(p.w)
		}
	}
	return true
}

func renderAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit("usage: halftone [flags] input output", 2)
	}
	in, out := c.Args().Get(0), c.Args().Get(1)

	level := slog.LevelWarn
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: level}))
	halftone.SetLogger(logger)

	if _, err := himage.FormatFromPath(out); err != nil {
		return err
	}

	f, err := configFromFlags(c)
	if err != nil {
		return err
	}

	sigma := c.Float64("blur")
	if math.IsNaN(sigma) || sigma < 0 || sigma > halftone.MaxBlurSigma {
		return fmt.Errorf("--blur: %w: %v (want 0 to %d)", halftone.ErrBlurSigma, sigma, halftone.MaxBlurSigma)
	}

	src, err := himage.Load(in)
	if err != nil {
		return err
	}
	b := src.Bounds()
	if b.Empty() {
		return fmt.Errorf("%s: empty image", in)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	if sigma > 0 {
		s := halftone.SurfaceFromImage(src)
		if err := s.Blur(ctx, sigma); err != nil {
			return err
		}
		src = s
	}

	tl, br := worldRect(b.Dx(), b.Dy(), c.Float64("world"))
	layer := halftone.NewImageLayer(src, tl, br)
	desc := halftone.NewRendDesc(b.Dx(), b.Dy(), tl, br)
	q := halftone.Quality(c.Int("quality"))

	var cb halftone.ProgressCallback
	if fd, ok := c.App.ErrWriter.(*os.File); ok && term.IsTerminal(int(fd.Fd())) {
		cb = &progressLine{w: fd, last: -1}
	}

	logger.Debug("rendering", "input", in, "size", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()), "float", c.Bool("float"))

	if c.Bool("float") {
		dst := halftone.NewSurface(b.Dx(), b.Dy())
		if err := f.RenderSurface(ctx, layer, dst, q, desc, cb); err != nil {
			return err
		}
		return dst.Save(out)
	}

	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if err := f.RenderRGBA(ctx, layer, dst, q, desc, cb); err != nil {
		return err
	}
	return himage.Save(out, dst)
}
