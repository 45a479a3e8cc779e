package main

import (
	"fmt"

	"github.com/npillmayer/otglyph"
	"github.com/thatisuday/commando"
)

func runGlyphCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	f, _ := mustLoadFont(args["font"].Value)
	gid, r, isChar, err := parseGlyphArg(args["glyph"].Value)
	if err != nil {
		fatalf("%v", err)
	}
	if isChar {
		slots, err := f.Decoder().TextToGlyphs([]rune{r})
		if err != nil {
			fatalf("cannot resolve %U: %v", r, err)
		}
		if len(slots) == 0 || !slots[0].Valid {
			fatalf("no glyph for %U", r)
		}
		gid = slots[0].GID
	}
	g, err := f.Glyph(gid)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("Glyph: %d\n", g.Index)
	if g.Unicode != 0 {
		fmt.Printf("Unicode: %U %q\n", g.Unicode, g.Unicode)
	} else {
		fmt.Println("Unicode: -")
	}
	fmt.Printf("Advance: %d\n", g.AdvanceWidth)
	fmt.Printf("BBox: (%d,%d,%d,%d)\n", g.XMin, g.YMin, g.XMax, g.YMax)
	fmt.Printf("Commands: %d\n", g.PathCommandCount)
	if !mustFlagBool(flags["outline"], "outline") {
		return
	}
	err = g.ForEachPathCommand(func(cmd otglyph.OutlineCommand) {
		fmt.Printf("  %s\n", cmd)
	})
	if err != nil {
		fatalf("%v", err)
	}
}
