package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/otglyph/ot"
	"github.com/npillmayer/otglyph/otquery"
	"github.com/thatisuday/commando"
)

func runFontCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := strings.TrimSpace(args["font"].Value)
	f, otf := mustLoadFont(fontPath)

	fmt.Printf("Path: %s\n", fontPath)
	fmt.Printf("Name: %s\n", f.Name())
	fmt.Printf("Glyphs: %d, units per em: %d\n", f.NumGlyphs(), f.UnitsPerEm())
	fmt.Printf("Ascender: %d, descender: %d\n", f.Ascender(), f.Descender())
	if otf == nil {
		return
	}
	fmt.Printf("Type: %s\n", otquery.FontType(otf))
	if cmap := otf.CMap; cmap != nil && cmap.Subtable != nil {
		fmt.Printf("CMap: platform=%d encoding=%d format=%d\n", cmap.Platform, cmap.Encoding, cmap.Subtable.Format())
	} else {
		fmt.Println("CMap: no usable subtable")
	}
	if umap, err := f.UnicodeMap(); err == nil {
		fmt.Printf("Mapped glyphs: %d\n", umap.Len())
	} else {
		fmt.Printf("Mapped glyphs: %v\n", err)
	}

	tags := otf.TableTags()
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	fmt.Printf("Tables (%d):", len(tags))
	for _, tag := range tags {
		fmt.Printf(" %s", tag.String())
	}
	fmt.Println()

	layoutTables := otquery.LayoutTables(otf)
	sort.Strings(layoutTables)
	fmt.Printf("Layout: %s\n", strings.Join(layoutTables, ","))

	errs := otf.Errors()
	warns := otf.Warnings()
	crit := otf.CriticalErrors()
	fmt.Printf("Issues: errors=%d warnings=%d critical=%d\n", len(errs), len(warns), len(crit))

	if len(args["tables"].Value) > 0 {
		printSelectedTables(otf, args["tables"].Value)
	}
	if mustFlagBool(flags["errors"], "errors") {
		for _, e := range errs {
			fmt.Printf("error: %s\n", e.Error())
		}
		for _, w := range warns {
			fmt.Printf("warning: %s\n", w.String())
		}
	}
}

func printSelectedTables(otf *ot.Font, raw string) {
	requested := splitCSVSpace(raw)
	for _, t := range requested {
		tagName := strings.TrimSpace(t)
		if tagName == "" {
			continue
		}
		tag := ot.T(tagName)
		table := otf.Table(tag)
		if table == nil {
			fmt.Printf("table %s: missing\n", tagName)
			continue
		}
		off, size := table.Extent()
		fmt.Printf("table %s: offset=%d size=%d\n", tagName, off, size)
		switch tagName {
		case "head":
			if head, ok := otquery.HeadInfo(otf); ok {
				fmt.Printf("  revision=%.3f unitsPerEm=%d bbox=(%d,%d,%d,%d) modified=%s\n",
					head.FontRevision, head.UnitsPerEm, head.XMin, head.YMin, head.XMax, head.YMax,
					head.Modified.Format("2006-01-02"))
			}
		case "maxp":
			if maxp, ok := otquery.MaxPInfo(otf); ok {
				fmt.Printf("  numGlyphs=%d maxPoints=%d maxContours=%d\n",
					maxp.NumGlyphs, maxp.MaxPoints, maxp.MaxContours)
			}
		case "name":
			for id, s := range otquery.NamesRange(otf) {
				fmt.Printf("  %3d: %s\n", id, s)
			}
		}
	}
}
