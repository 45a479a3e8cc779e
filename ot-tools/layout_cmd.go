package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/otglyph"
	"github.com/thatisuday/commando"
)

func runLayoutCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	opts, err := parseLayoutFlags(flags)
	if err != nil {
		fatalf("%v", err)
	}
	f, _ := mustLoadFont(args["font"].Value, opts...)
	size, err := parseFloat(mustFlagString(flags["size"], "size"), "size")
	if err != nil {
		fatalf("%v", err)
	}
	spacing, err := parseFloat(mustFlagString(flags["spacing"], "spacing"), "spacing")
	if err != nil {
		fatalf("%v", err)
	}
	text := args["text"].Value
	if text == "" {
		fatalf("input text is empty")
	}
	var parts []string
	width, err := f.LayoutString(text, size, spacing, func(g *otglyph.Glyph, x float64) {
		parts = append(parts, fmt.Sprintf("%d@%.2f", g.Index, x))
	})
	if err != nil {
		fatalf("layout failed: %v", err)
	}
	fmt.Println("[" + strings.Join(parts, "|") + "]")
	fmt.Printf("width=%.2f\n", width)
}

func parseLayoutFlags(flags map[string]commando.FlagValue) ([]otglyph.ParseOption, error) {
	shaping, err := parseShaping(mustFlagString(flags["shaping"], "shaping"))
	if err != nil {
		return nil, err
	}
	opts := []otglyph.ParseOption{otglyph.WithShaping(shaping)}
	if fl, ok := flags["lang"]; ok {
		lang, err := parseLanguage(mustFlagString(fl, "lang"))
		if err != nil {
			return nil, err
		}
		opts = append(opts, otglyph.WithLanguage(lang))
	}
	if fl, ok := flags["direction"]; ok {
		dir, err := parseDirection(mustFlagString(fl, "direction"))
		if err != nil {
			return nil, err
		}
		opts = append(opts, otglyph.WithDirection(dir))
	}
	if fl, ok := flags["normalize"]; ok {
		opts = append(opts, otglyph.WithNormalization(mustFlagBool(fl, "normalize")))
	}
	return opts, nil
}
