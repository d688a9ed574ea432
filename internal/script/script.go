// Copyright 2026 The ledgrid Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package script parses and runs scene scripts: plain text files with one
// drawing command per line.
//
//	# a frame with a dot in the middle
//	clear
//	rect 0 0 16 9 40
//	circle 7 4 2 255 fill
//	text 1 8 120 hi
//	present
//	fade 0 10
//
// Blank lines are skipped and '#' starts a comment that runs to the end of
// the line. Every error names the line it came from.
package script

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ledkit/ledgrid"
)

// ErrSyntax is wrapped by every parse error.
var ErrSyntax = errors.New("syntax error")

// Error reports the script line a parse or run error came from.
type Error struct {
	Line int
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("script: line %d: %v", e.Line, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Op is a script command.
type Op uint8

const (
	OpClear   Op = iota // clear
	OpFill              // fill B
	OpBank              // bank N, then copy the cache into it
	OpPresent           // present
	OpDraw              // any shape command
	OpText              // text X Y B words...
	OpFade              // fade TARGET STEP
)

var opNames = [...]string{
	OpClear:   "clear",
	OpFill:    "fill",
	OpBank:    "bank",
	OpPresent: "present",
	OpDraw:    "draw",
	OpText:    "text",
	OpFade:    "fade",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "unknown"
}

// Command is one parsed line.
type Command struct {
	Line  int
	Op    Op
	Args  []int         // integer operands of non-draw commands
	Shape ledgrid.Shape // OpDraw
	Text  string        // OpText
}

// Script is a parsed scene.
type Script struct {
	Commands []Command
}

// shapeSyntax describes the operands of a shape command.
type shapeSyntax struct {
	args     int
	fillable bool
	build    func(a []int) ledgrid.Shape
}

var shapes = map[ledgrid.ShapeKind]shapeSyntax{
	ledgrid.ShapePixel: {3, false, func(a []int) ledgrid.Shape {
		return ledgrid.Shape{Points: pts(a[0], a[1]), Brightness: a[2]}
	}},
	ledgrid.ShapeLine: {5, false, func(a []int) ledgrid.Shape {
		return ledgrid.Shape{Points: pts(a[0], a[1], a[2], a[3]), Brightness: a[4]}
	}},
	ledgrid.ShapeHLine: {4, false, func(a []int) ledgrid.Shape {
		return ledgrid.Shape{Points: pts(a[0], a[1]), Size: image.Pt(a[2], 1), Brightness: a[3]}
	}},
	ledgrid.ShapeVLine: {4, false, func(a []int) ledgrid.Shape {
		return ledgrid.Shape{Points: pts(a[0], a[1]), Size: image.Pt(1, a[2]), Brightness: a[3]}
	}},
	ledgrid.ShapeRect: {5, true, func(a []int) ledgrid.Shape {
		return ledgrid.Shape{Points: pts(a[0], a[1]), Size: image.Pt(a[2], a[3]), Brightness: a[4]}
	}},
	ledgrid.ShapeCircle: {4, true, func(a []int) ledgrid.Shape {
		return ledgrid.Shape{Points: pts(a[0], a[1]), Radius: image.Pt(a[2], a[2]), Brightness: a[3]}
	}},
	ledgrid.ShapeEllipse: {5, true, func(a []int) ledgrid.Shape {
		return ledgrid.Shape{Points: pts(a[0], a[1]), Radius: image.Pt(a[2], a[3]), Brightness: a[4]}
	}},
	ledgrid.ShapeTriangle: {7, true, func(a []int) ledgrid.Shape {
		return ledgrid.Shape{Points: pts(a[0], a[1], a[2], a[3], a[4], a[5]), Brightness: a[6]}
	}},
	ledgrid.ShapeRoundRect: {6, true, func(a []int) ledgrid.Shape {
		return ledgrid.Shape{Points: pts(a[0], a[1]), Size: image.Pt(a[2], a[3]), Radius: image.Pt(a[4], a[4]), Brightness: a[5]}
	}},
}

// pts packs coordinate pairs into a Shape's point array.
func pts(xy ...int) [3]image.Point {
	var p [3]image.Point
	for i := 0; i+1 < len(xy); i += 2 {
		p[i/2] = image.Pt(xy[i], xy[i+1])
	}
	return p
}

// argCounts holds the operand count of the non-draw commands, text
// excluded.
var argCounts = map[string]struct {
	op Op
	n  int
}{
	"clear":   {OpClear, 0},
	"fill":    {OpFill, 1},
	"bank":    {OpBank, 1},
	"present": {OpPresent, 0},
	"fade":    {OpFade, 2},
}

// Parse reads a script from r.
func Parse(r io.Reader) (*Script, error) {
	s := &Script{}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text, _, _ := strings.Cut(sc.Text(), "#")
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		cmd, err := parseLine(fields)
		if err != nil {
			return nil, &Error{Line: line, Err: err}
		}
		cmd.Line = line
		s.Commands = append(s.Commands, cmd)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("script: read: %w", err)
	}
	return s, nil
}

// ParseFile reads the script at path.
func ParseFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

func parseLine(fields []string) (Command, error) {
	name, rest := fields[0], fields[1:]

	if name == "text" {
		if len(rest) < 4 {
			return Command{}, fmt.Errorf("%w: text needs X Y B and at least one word", ErrSyntax)
		}
		args, err := ints(rest[:3])
		if err != nil {
			return Command{}, err
		}
		return Command{Op: OpText, Args: args, Text: strings.Join(rest[3:], " ")}, nil
	}

	if c, ok := argCounts[name]; ok {
		if len(rest) != c.n {
			return Command{}, fmt.Errorf("%w: %s takes %d operands, got %d", ErrSyntax, name, c.n, len(rest))
		}
		args, err := ints(rest)
		if err != nil {
			return Command{}, err
		}
		return Command{Op: c.op, Args: args}, nil
	}

	kind, ok := ledgrid.ParseShapeKind(name)
	if !ok {
		return Command{}, fmt.Errorf("%w: unknown command %q", ErrSyntax, name)
	}
	syn := shapes[kind]
	fill := false
	if syn.fillable && len(rest) == syn.args+1 && rest[syn.args] == "fill" {
		fill = true
		rest = rest[:syn.args]
	}
	if len(rest) != syn.args {
		return Command{}, fmt.Errorf("%w: %s takes %d operands, got %d", ErrSyntax, name, syn.args, len(rest))
	}
	args, err := ints(rest)
	if err != nil {
		return Command{}, err
	}
	shape := syn.build(args)
	shape.Kind = kind
	shape.Fill = fill
	return Command{Op: OpDraw, Shape: shape}, nil
}

func ints(fields []string) ([]int, error) {
	out := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrSyntax, f)
		}
		out[i] = n
	}
	return out, nil
}

// Run executes the script on g. It stops at the first failing command.
func (s *Script) Run(ctx context.Context, g *ledgrid.Grid) error {
	for _, c := range s.Commands {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.run(ctx, g); err != nil {
			return &Error{Line: c.Line, Err: err}
		}
	}
	ledgrid.Logger().Debug("script done", "grid", g.ID().String(), "commands", len(s.Commands))
	return nil
}

func (c *Command) run(ctx context.Context, g *ledgrid.Grid) error {
	switch c.Op {
	case OpClear:
		return g.Clear()
	case OpFill:
		return g.Fill(c.Args[0])
	case OpBank:
		if err := g.SetBank(c.Args[0]); err != nil {
			return err
		}
		return g.Resync()
	case OpPresent:
		return g.Present()
	case OpDraw:
		return g.Draw(c.Shape)
	case OpText:
		_, err := g.DrawText(c.Args[0], c.Args[1], c.Text, c.Args[2], nil)
		return err
	case OpFade:
		return g.FadeAll(ctx, c.Args[0], c.Args[1])
	}
	return fmt.Errorf("unknown op %v", c.Op)
}
