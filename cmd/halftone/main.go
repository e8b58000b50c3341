// Command halftone applies a halftone pattern to an image.
//
// Usage:
//
//	halftone [flags] input output
//	halftone params [--lang de]
//
// The input image is placed in world space centered on the origin, with a
// width of --world units and the height following its aspect ratio. Pattern
// sizes and the origin are given in the same units.
package main

import (
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		slog.Error("halftone failed", "err", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "halftone",
		Usage:     "overlay a luminance-driven halftone pattern on an image",
		ArgsUsage: "input output",
		Flags:     renderFlags(),
		Action:    renderAction,
		Commands: []*cli.Command{
			{
				Name:  "params",
				Usage: "list the filter parameters",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "lang",
						Value: "en",
						Usage: "language of the parameter names",
					},
				},
				Action: paramsAction,
			},
		},
	}
}
