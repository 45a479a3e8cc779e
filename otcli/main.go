package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/otglyph"
	"github.com/npillmayer/otglyph/internal/fontload"
	"github.com/npillmayer/otglyph/ot"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'font.cli'
func tracer() tracing.Trace {
	return tracing.Select("font.cli")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":     "go",
		"trace.font.cli":      "Info",
		"trace.font.glyph":    "Error",
		"trace.font.opentype": "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", fontload.FallbackName, "Font file or system font to load")
	shaping := flag.String("shaping", "harfbuzz", "Shaping [harfbuzz|cmap]")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError)              // will set the correct level later
	pterm.Info.Println("Welcome to the OpenType glyph CLI") // colored welcome message
	//
	// set up REPL
	repl, err := readline.New("glyph > ")
	if err != nil {
		tracer().Errorf("%v", err)
		os.Exit(3)
	}
	intp := &Intp{repl: repl}
	//
	// load font to use
	if err := intp.loadFont(*fontname, *shaping); err != nil { // font name provided by flag
		tracer().Errorf("%v", err)
		os.Exit(4)
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
		tracing.Select("font.glyph").SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	font *otglyph.Font
	otf  *ot.Font // table view, nil for custom decoders
	name string
	repl *readline.Instance
}

func (intp *Intp) String() string {
	if intp == nil || intp.font == nil {
		return "()"
	}
	return fmt.Sprintf("( font=%s, glyphs cached=%d )", intp.name, intp.font.CachedGlyphs())
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		op := parseCommand(line)
		err, quit := intp.execute(op)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Op is a parsed command line: an op-code with colon-separated arguments,
// e.g. "layout:Hello World:24:0.05".
type Op struct {
	code int
	args []string
}

const (
	QUIT int = iota
	HELP
	INFO
	TABLE
	GLYPH
	CHAR
	OUTLINE
	UNICODE
	LAYOUT
	RENDER
)

var opMap = map[string]int{
	"quit":    QUIT,
	"help":    HELP,
	"info":    INFO,
	"table":   TABLE,
	"glyph":   GLYPH,
	"char":    CHAR,
	"outline": OUTLINE,
	"unicode": UNICODE,
	"layout":  LAYOUT,
	"render":  RENDER,
}

var opNames = []string{
	"quit",
	"help",
	"info",
	"table",
	"glyph",
	"char",
	"outline",
	"unicode",
	"layout",
	"render",
}

func parseCommand(line string) *Op {
	c := strings.Split(line, ":") // e.g. "glyph:36" or "layout:Hello:24" or "help:render"
	code, ok := opMap[strings.ToLower(strings.TrimSpace(c[0]))]
	if !ok {
		tracer().Infof("unknown command %q", c[0])
		return &Op{code: HELP}
	}
	op := &Op{code: code, args: c[1:]}
	tracer().Debugf("parsed command: %s %v", opNames[code], op.args)
	return op
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:    quitOp,
	HELP:    helpOp,
	INFO:    infoOp,
	TABLE:   tableOp,
	GLYPH:   glyphOp,
	CHAR:    charOp,
	OUTLINE: outlineOp,
	UNICODE: unicodeOp,
	LAYOUT:  layoutOp,
	RENDER:  renderOp,
}

func (intp *Intp) execute(op *Op) (err error, stop bool) {
	f, ok := commandFn[op.code]
	if !ok {
		return fmt.Errorf("unknown command code: %d", op.code), false
	}
	return f(intp, op)
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	return nil, true
}

// --- Font Loading -----------------------------------------------------

func (intp *Intp) loadFont(fontname string, shaping string) error {
	fb, err := fontload.Resolve(fontname)
	if err != nil {
		tracer().Errorf("cannot load font %s: %s", fontname, err)
		return err
	}
	opt := otglyph.WithShaping(otglyph.ShapeHarfbuzz)
	if shaping == "cmap" {
		opt = otglyph.WithShaping(otglyph.ShapeCMap)
	}
	f, err := otglyph.Parse(fb.Binary, opt)
	if err != nil {
		tracer().Errorf("cannot decode font %s: %s", fontname, err)
		return err
	}
	intp.font, intp.name = f, fb.Name
	if dec, ok := f.Decoder().(*otglyph.SFNTDecoder); ok {
		intp.otf = dec.OpenType()
	}
	tracer().Infof("loaded font %s = %q", fb.Name, f.Name())
	return nil
}

// ----------------------------------------------------------------------

var errNoTables = errors.New("font has no table view")

func (op *Op) arg(inx int) string {
	if len(op.args) > inx {
		return op.args[inx]
	}
	return ""
}

func (op *Op) noArg() bool {
	return op.arg(0) == ""
}
