package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/otglyph/internal/render"
	"github.com/thatisuday/commando"
)

func runViewCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	opts, err := parseLayoutFlags(flags)
	if err != nil {
		fatalf("%v", err)
	}
	f, _ := mustLoadFont(args["font"].Value, opts...)
	text := args["text"].Value
	if text == "" {
		fatalf("input text is empty")
	}
	outPath := strings.TrimSpace(mustFlagString(flags["output"], "output"))
	if outPath == "" {
		fatalf("output path is empty")
	}
	ropts := render.DefaultOptions
	ropts.Size = float64(mustFlagInt(flags["size"], "size"))
	ropts.Margin = mustFlagInt(flags["margin"], "margin")
	ropts.ShowBoxes = mustFlagBool(flags["show-bboxes"], "show-bboxes")
	if ropts.Spacing, err = parseFloat(mustFlagString(flags["spacing"], "spacing"), "spacing"); err != nil {
		fatalf("%v", err)
	}
	if ropts.Size <= 0 {
		fatalf("--size must be > 0")
	}
	if ropts.Margin < 0 {
		fatalf("--margin must be >= 0")
	}
	img, err := render.Line(f, text, ropts)
	if err != nil {
		fatalf("render failed: %v", err)
	}
	if err := render.WritePNG(img, outPath); err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("wrote %s (%dx%d)\n", outPath, img.Bounds().Dx(), img.Bounds().Dy())
}
