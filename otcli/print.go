package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/otglyph"
	"github.com/npillmayer/otglyph/internal/render"
	"github.com/npillmayer/otglyph/ot"
	"github.com/pterm/pterm"
)

// --- Glyph commands ---------------------------------------------------

func glyphOp(intp *Intp, op *Op) (error, bool) {
	gid, err := parseGlyphIndex(op.arg(0))
	if err != nil {
		return err, false
	}
	g, err := intp.font.Glyph(gid)
	if err != nil {
		return err, false
	}
	printGlyph(g)
	return nil, false
}

func charOp(intp *Intp, op *Op) (error, bool) {
	r, err := parseCodepoint(op.arg(0))
	if err != nil {
		return err, false
	}
	slots, err := intp.font.Decoder().TextToGlyphs([]rune{r})
	if err != nil {
		return err, false
	}
	if len(slots) == 0 || !slots[0].Valid {
		return fmt.Errorf("no glyph for %U", r), false
	}
	pterm.Printf("%U resolves to glyph %d\n", r, slots[0].GID)
	g, err := intp.font.Glyph(slots[0].GID)
	if err != nil {
		return err, false
	}
	printGlyph(g)
	return nil, false
}

func outlineOp(intp *Intp, op *Op) (error, bool) {
	gid, err := parseGlyphIndex(op.arg(0))
	if err != nil {
		return err, false
	}
	g, err := intp.font.Glyph(gid)
	if err != nil {
		return err, false
	}
	if g.IsEmpty() {
		pterm.Info.Printf("glyph %d has no outline\n", gid)
		return nil, false
	}
	data := pterm.TableData{{"#", "Op", "Arguments"}}
	i := 0
	err = g.ForEachPathCommand(func(cmd otglyph.OutlineCommand) {
		args := make([]string, 0, 6)
		for _, a := range cmd.Args() {
			args = append(args, strconv.FormatFloat(float64(a), 'f', -1, 32))
		}
		data = append(data, []string{strconv.Itoa(i), cmd.Op.String(), strings.Join(args, " ")})
		i++
	})
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return err, false
}

func unicodeOp(intp *Intp, op *Op) (error, bool) {
	umap, err := intp.font.UnicodeMap()
	if err != nil {
		return err, false
	}
	limit := 40
	if !op.noArg() {
		if limit, err = strconv.Atoi(op.arg(0)); err != nil {
			return fmt.Errorf("illegal limit %q", op.arg(0)), false
		}
	}
	data := pterm.TableData{{"Glyph", "Code-Point", "Char"}}
	for gid, r := range umap.All() {
		if limit >= 0 && len(data) > limit {
			break
		}
		data = append(data, []string{strconv.Itoa(int(gid)), fmt.Sprintf("%U", r), printable(r)})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Printf("%d glyphs map to a code-point\n", umap.Len())
	return nil, false
}

// --- Layout commands --------------------------------------------------

func layoutOp(intp *Intp, op *Op) (error, bool) {
	if op.noArg() {
		return fmt.Errorf("usage: layout:<text>[:size[:spacing]]"), false
	}
	size, spacing, err := sizeAndSpacing(op, 1, 2)
	if err != nil {
		return err, false
	}
	data := pterm.TableData{{"Glyph", "Char", "X", "Advance"}}
	width, err := intp.font.LayoutString(op.arg(0), size, spacing, func(g *otglyph.Glyph, x float64) {
		data = append(data, []string{
			strconv.Itoa(int(g.Index)),
			printable(g.Unicode),
			strconv.FormatFloat(x, 'f', 2, 64),
			strconv.Itoa(g.AdvanceWidth),
		})
	})
	if err != nil {
		return err, false
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Printf("width at %gpt = %.2f\n", size, width)
	return nil, false
}

func renderOp(intp *Intp, op *Op) (error, bool) {
	if op.noArg() || op.arg(1) == "" {
		return fmt.Errorf("usage: render:<text>:<file.png>[:size]"), false
	}
	opts := render.DefaultOptions
	if op.arg(2) != "" {
		size, err := strconv.ParseFloat(op.arg(2), 64)
		if err != nil {
			return fmt.Errorf("illegal size %q", op.arg(2)), false
		}
		opts.Size = size
	}
	img, err := render.Line(intp.font, op.arg(0), opts)
	if err != nil {
		return err, false
	}
	if err = render.WritePNG(img, op.arg(1)); err != nil {
		return err, false
	}
	pterm.Info.Printf("wrote %s (%dx%d)\n", op.arg(1), img.Bounds().Dx(), img.Bounds().Dy())
	return nil, false
}

// --- Output -----------------------------------------------------------

func printGlyph(g *otglyph.Glyph) {
	data := pterm.TableData{
		{"Property", "Value"},
		{"Index", strconv.Itoa(int(g.Index))},
		{"Unicode", fmt.Sprintf("%U %s", g.Unicode, printable(g.Unicode))},
		{"Advance", strconv.Itoa(g.AdvanceWidth)},
		{"BBox", fmt.Sprintf("(%d,%d) (%d,%d)", g.XMin, g.YMin, g.XMax, g.YMax)},
		{"Commands", strconv.Itoa(g.PathCommandCount)},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printable(r rune) string {
	if r == 0 || !utf8.ValidRune(r) || !strconv.IsPrint(r) {
		return "-"
	}
	return string(r)
}

// --- Argument parsing -------------------------------------------------

func parseGlyphIndex(arg string) (ot.GlyphIndex, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(arg), 10, 16)
	if err != nil {
		return 0, fmt.Errorf("illegal glyph index %q", arg)
	}
	return ot.GlyphIndex(n), nil
}

// parseCodepoint accepts a single character or a code-point notation
// like "U+00E9".
func parseCodepoint(arg string) (rune, error) {
	if utf8.RuneCountInString(arg) == 1 {
		r, _ := utf8.DecodeRuneInString(arg)
		return r, nil
	}
	s := strings.ToUpper(strings.TrimSpace(arg))
	if hex, ok := strings.CutPrefix(s, "U+"); ok {
		n, err := strconv.ParseUint(hex, 16, 32)
		if err == nil && utf8.ValidRune(rune(n)) {
			return rune(n), nil
		}
	}
	return 0, fmt.Errorf("illegal character %q", arg)
}

func sizeAndSpacing(op *Op, sizeInx, spacingInx int) (size, spacing float64, err error) {
	size = 12
	if s := op.arg(sizeInx); s != "" {
		if size, err = strconv.ParseFloat(s, 64); err != nil {
			return 0, 0, fmt.Errorf("illegal font size %q", s)
		}
	}
	if s := op.arg(spacingInx); s != "" {
		if spacing, err = strconv.ParseFloat(s, 64); err != nil {
			return 0, 0, fmt.Errorf("illegal letter spacing %q", s)
		}
	}
	return size, spacing, nil
}
