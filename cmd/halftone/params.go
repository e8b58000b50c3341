package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"
	"golang.org/x/text/language"

	"github.com/gogpu/halftone"
)

func paramsAction(c *cli.Context) error {
	tag, err := language.Parse(c.String("lang"))
	if err != nil {
		return fmt.Errorf("--lang: %w", err)
	}
	f := halftone.New(halftone.WithVocab(halftone.NewVocab(tag)))

	tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tLABEL\tDEFAULT\tDESCRIPTION")
	for _, d := range f.Vocab().Params() {
		v, err := f.Param(d.Name)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.Name, d.LocalName, formatValue(v), d.Description)
		if len(d.EnumValues) > 0 && d.Name == halftone.ParamType {
			names := make([]string, len(d.EnumValues))
			for i, e := range d.EnumValues {
				names[i] = fmt.Sprintf("%s (%s)", e.Name, e.LocalName)
			}
			fmt.Fprintf(tw, "\t\t\t%s\n", strings.Join(names, ", "))
		}
	}
	return tw.Flush()
}

func formatValue(v any) string {
	switch v := v.(type) {
	case halftone.Point:
		return fmt.Sprintf("%g,%g", v.X, v.Y)
	case halftone.Angle:
		return fmt.Sprintf("%g°", v.Degrees())
	case halftone.Color:
		return halftone.FormatColor(v)
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(v)
}
