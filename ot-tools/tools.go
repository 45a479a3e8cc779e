package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/otglyph"
	"github.com/npillmayer/otglyph/internal/fontload"
	"github.com/npillmayer/otglyph/ot"
	"github.com/thatisuday/commando"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/bidi"
)

func main() {
	commando.
		SetExecutableName("ot-tools").
		SetVersion("v0.1.0").
		SetDescription("CLI for glyph extraction, text layout and font diagnostics.")

	commando.
		Register(nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil)

	commando.
		Register("font").
		SetDescription("Print diagnostics and table information for an OpenType font.").
		SetShortDescription("font diagnostics").
		AddArgument("font", "font file path or system font name", "").
		AddArgument("tables...", "optional list of table tags (e.g. cmap,head,maxp)", "").
		AddFlag("errors,e", "print parse errors and warnings", commando.Bool, nil).
		SetAction(runFontCommand)

	commando.
		Register("glyph").
		SetDescription("Decode a glyph and print its metrics and outline.").
		SetShortDescription("glyph details").
		AddArgument("font", "font file path or system font name", "").
		AddArgument("glyph", "glyph index or a character (e.g. 36, A, U+0041)", "").
		AddFlag("outline,O", "print outline commands", commando.Bool, nil).
		SetAction(runGlyphCommand)

	commando.
		Register("layout").
		SetDescription("Lay out a line of text and print glyph positions and total width.").
		SetShortDescription("text layout").
		AddArgument("font", "font file path or system font name", "").
		AddArgument("text...", "text to lay out (variadic argument parts joined by comma by commando)", "").
		AddFlag("size,s", "font size", commando.String, "12").
		AddFlag("spacing,p", "letter spacing in em", commando.String, "0").
		AddFlag("shaping", "shaping: harfbuzz|cmap", commando.String, "harfbuzz").
		AddFlag("lang,l", "language tag (BCP 47, e.g. en, ar, he)", commando.String, "en").
		AddFlag("direction,d", "direction: ltr|rtl", commando.String, "ltr").
		AddFlag("normalize,n", "apply Unicode NFC before shaping", commando.Bool, nil).
		SetAction(runLayoutCommand)

	commando.
		Register("view").
		SetDescription("Render a line of text to a PNG image.").
		SetShortDescription("text to image").
		AddArgument("font", "font file path or system font name", "").
		AddArgument("text...", "text to render", "").
		AddFlag("output,o", "output PNG file", commando.String, "ot-tools-view.png").
		AddFlag("size,s", "render size in pixels-per-em", commando.Int, 48).
		AddFlag("spacing,p", "letter spacing in em", commando.String, "0").
		AddFlag("margin,m", "margin in pixels", commando.Int, 8).
		AddFlag("shaping", "shaping: harfbuzz|cmap", commando.String, "harfbuzz").
		AddFlag("show-bboxes,B", "draw red bounding-box outlines per rendered glyph", commando.Bool, nil).
		SetAction(runViewCommand)

	commando.Parse(nil)
}

// mustLoadFont resolves a font by path or system font name.
func mustLoadFont(name string, opts ...otglyph.ParseOption) (*otglyph.Font, *ot.Font) {
	name = strings.TrimSpace(name)
	if name == "" {
		fatalf("font is required")
	}
	fb, err := fontload.Resolve(name)
	if err != nil {
		fatalf("cannot load font %s: %v", name, err)
	}
	f, err := otglyph.Parse(fb.Binary, opts...)
	if err != nil {
		fatalf("cannot parse font %s: %v", name, err)
	}
	var otf *ot.Font
	if dec, ok := f.Decoder().(*otglyph.SFNTDecoder); ok {
		otf = dec.OpenType()
	}
	return f, otf
}

func parseShaping(s string) (otglyph.Shaping, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "harfbuzz", "hb":
		return otglyph.ShapeHarfbuzz, nil
	case "cmap":
		return otglyph.ShapeCMap, nil
	}
	return otglyph.ShapeHarfbuzz, fmt.Errorf("unsupported shaping %q (expected harfbuzz|cmap)", s)
}

func parseLanguage(s string) (language.Tag, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		s = "en"
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("invalid language tag %q: %w", s, err)
	}
	return tag, nil
}

func parseDirection(s string) (bidi.Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ltr", "left-to-right":
		return bidi.LeftToRight, nil
	case "rtl", "right-to-left":
		return bidi.RightToLeft, nil
	default:
		return bidi.LeftToRight, fmt.Errorf("unsupported direction %q (expected ltr|rtl)", s)
	}
}

func parseFloat(s string, name string) (float64, error) {
	x, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid --%s value %q", name, s)
	}
	return x, nil
}

// parseGlyphArg accepts a decimal glyph index, a single character or a code-point
// in U+XXXX notation. The third return value is true if a character has been given.
// Digits are always read as a glyph index; use U+0030… for digit characters.
func parseGlyphArg(s string) (ot.GlyphIndex, rune, bool, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseUint(s, 10, 16); err == nil {
		return ot.GlyphIndex(n), 0, false, nil
	}
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return 0, r, true, nil
	}
	r, err := parseCodepointToken(s)
	if err != nil {
		return 0, 0, false, err
	}
	return 0, r, true, nil
}

func parseCodepointToken(token string) (rune, error) {
	hex := strings.TrimSpace(token)
	switch {
	case strings.HasPrefix(hex, "U+"), strings.HasPrefix(hex, "u+"):
		hex = hex[2:]
	case strings.HasPrefix(hex, "0x"), strings.HasPrefix(hex, "0X"):
		hex = hex[2:]
	default:
		return 0, fmt.Errorf("invalid glyph or codepoint %q", token)
	}
	u, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || !utf8.ValidRune(rune(u)) {
		return 0, fmt.Errorf("invalid codepoint %q", token)
	}
	return rune(u), nil
}

func splitCSVSpace(spec string) []string {
	return strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

func mustFlagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return s
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "ot-tools: "+format+"\n", args...)
	os.Exit(1)
}
