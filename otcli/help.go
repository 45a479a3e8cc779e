package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg(0))
	return nil, false
}

func help(topic string) {
	tracer().Debugf("help %v", topic)
	switch strings.ToLower(topic) {
	case "glyph", "char", "outline":
		pterm.Info.Println("Glyphs")
		pterm.Println(`
	glyph:<gid>       decode glyph <gid> and print its metrics
	char:<c>          resolve character <c> (or U+XXXX) and print its glyph
	outline:<gid>     list the outline commands of glyph <gid>

	Glyphs are decoded at most once and cached afterwards.
	Coordinates are in font units, y pointing down.
	`)
	case "unicode":
		pterm.Info.Println("Unicode map")
		pterm.Println(`
	unicode[:<n>]     list the first <n> entries of the glyph to code-point map (-1 for all)

	The map is derived from the preferred cmap subtable
	(platform/encoding 0/4, 3/1, 1/0, 0/3).
	`)
	case "layout", "render":
		pterm.Info.Println("Layout")
		pterm.Println(`
	layout:<text>[:<size>[:<spacing>]]       place glyphs on a line and print pen positions
	render:<text>:<file.png>[:<size>]        rasterize a line of text to a PNG file

	Letter spacing is given in em, i.e. as a fraction of the font size.
	`)
	case "table", "tables", "info":
		pterm.Info.Println("Tables")
		pterm.Println(`
	info              print general font information
	table             list the tables of the font with their sizes
	table:<tag>       print details of table <tag> (cmap, head, maxp, name)
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	info, table[:<tag>], glyph:<gid>, char:<c>, outline:<gid>,
	unicode[:<n>], layout:<text>[:<size>[:<spacing>]], render:<text>:<file.png>[:<size>],
	help[:<topic>], quit

	Arguments are separated by colons.
	`)
	}
}
