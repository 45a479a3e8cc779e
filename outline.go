package otglyph

import (
	"fmt"
	"iter"
	"strings"

	"github.com/npillmayer/otglyph/ot"
)

// OutlineOp is the operation of an outline command.
type OutlineOp byte

// Outline operations, with the letters of SVG path data.
const (
	OpMoveTo OutlineOp = 'M'
	OpLineTo OutlineOp = 'L'
	OpQuadTo OutlineOp = 'Q'
	OpCubeTo OutlineOp = 'C'
	OpClose  OutlineOp = 'Z'
)

// Arity returns the number of coordinates an operation takes, or -1 for an
// unknown operation.
func (op OutlineOp) Arity() int {
	switch op {
	case OpMoveTo, OpLineTo:
		return 2
	case OpQuadTo:
		return 4
	case OpCubeTo:
		return 6
	case OpClose:
		return 0
	}
	return -1
}

func (op OutlineOp) String() string {
	return string(rune(op))
}

// OutlineCommand is a single drawing command of a glyph outline.
type OutlineCommand struct {
	Op   OutlineOp
	args [6]float32
}

// MoveTo starts a new contour at (x, y).
func MoveTo(x, y float32) OutlineCommand {
	return OutlineCommand{Op: OpMoveTo, args: [6]float32{x, y}}
}

// LineTo draws a straight line to (x, y).
func LineTo(x, y float32) OutlineCommand {
	return OutlineCommand{Op: OpLineTo, args: [6]float32{x, y}}
}

// QuadTo draws a quadratic Bézier curve with control point (cx, cy) to (x, y).
func QuadTo(cx, cy, x, y float32) OutlineCommand {
	return OutlineCommand{Op: OpQuadTo, args: [6]float32{cx, cy, x, y}}
}

// CubeTo draws a cubic Bézier curve with control points (c1x, c1y) and (c2x, c2y)
// to (x, y).
func CubeTo(c1x, c1y, c2x, c2y, x, y float32) OutlineCommand {
	return OutlineCommand{Op: OpCubeTo, args: [6]float32{c1x, c1y, c2x, c2y, x, y}}
}

// ClosePath closes the current contour.
func ClosePath() OutlineCommand {
	return OutlineCommand{Op: OpClose}
}

// Args returns the coordinates of a command, as many as the arity of its operation.
func (cmd OutlineCommand) Args() []float32 {
	n := max(cmd.Op.Arity(), 0)
	args := make([]float32, n)
	copy(args, cmd.args[:n])
	return args
}

// End returns the end point of a command. For ClosePath it returns false.
func (cmd OutlineCommand) End() (x, y float32, ok bool) {
	n := cmd.Op.Arity()
	if n < 2 {
		return 0, 0, false
	}
	return cmd.args[n-2], cmd.args[n-1], true
}

func (cmd OutlineCommand) String() string {
	var sb strings.Builder
	sb.WriteString(cmd.Op.String())
	for i, a := range cmd.Args() {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%g", a)
	}
	return sb.String()
}

// Outline is the compact form of a glyph outline: a sequence of operations and a
// flat sequence of coordinates. Every operation consumes as many coordinates as
// its arity.
type Outline struct {
	Ops    []OutlineOp
	Coords []float32
}

// Append adds commands to an outline.
func (o *Outline) Append(cmds ...OutlineCommand) {
	for _, cmd := range cmds {
		o.Ops = append(o.Ops, cmd.Op)
		o.Coords = append(o.Coords, cmd.Args()...)
	}
}

// Len returns the number of commands of an outline.
func (o Outline) Len() int {
	return len(o.Ops)
}

// Commands iterates over the commands of an outline, in order. If the
// coordinates of the outline do not match its operations, iteration stops
// with an error of kind TruncatedOutline.
//
// Every call of Commands decodes the outline anew.
func (o Outline) Commands() iter.Seq2[OutlineCommand, error] {
	return o.commands(0)
}

func (o Outline) commands(gid ot.GlyphIndex) iter.Seq2[OutlineCommand, error] {
	return func(yield func(OutlineCommand, error) bool) {
		cursor := 0
		for i, op := range o.Ops {
			n := op.Arity()
			if n < 0 {
				err := errTruncated(gid, fmt.Sprintf("unknown outline operation %q at command %d", byte(op), i))
				tracer().Errorf("%v", err)
				yield(OutlineCommand{}, err)
				return
			}
			if cursor+n > len(o.Coords) {
				err := errTruncated(gid, fmt.Sprintf("command %d (%s) needs %d coordinates, %d left",
					i, op, n, len(o.Coords)-cursor))
				tracer().Errorf("%v", err)
				yield(OutlineCommand{}, err)
				return
			}
			cmd := OutlineCommand{Op: op}
			copy(cmd.args[:], o.Coords[cursor:cursor+n])
			cursor += n
			if !yield(cmd, nil) {
				return
			}
		}
	}
}
