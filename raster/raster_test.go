// Copyright 2026 The ledgrid Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"errors"
	"fmt"
	"testing"
)

// grid is an in-memory Target that clips like the real pixel cache.
type grid struct {
	w, h   int
	cells  []int
	writes int
	failAt int // fail on this write number (1-based); 0 never fails
}

var errWrite = errors.New("write failed")

func newGrid(w, h int) *grid {
	return &grid{w: w, h: h, cells: make([]int, w*h)}
}

func (g *grid) Width() int  { return g.w }
func (g *grid) Height() int { return g.h }

func (g *grid) Set(x, y, b int) (bool, error) {
	if x < 0 || x >= g.w || y < 0 || y >= g.h {
		return false, nil
	}
	g.writes++
	if g.failAt > 0 && g.writes == g.failAt {
		return true, errWrite
	}
	g.cells[x+y*g.w] = b
	return true, nil
}

func (g *grid) at(x, y int) int { return g.cells[x+y*g.w] }

// lit returns the set of non-zero cells.
func (g *grid) lit() map[[2]int]bool {
	m := make(map[[2]int]bool)
	for i, v := range g.cells {
		if v != 0 {
			m[[2]int{i % g.w, i / g.w}] = true
		}
	}
	return m
}

func (g *grid) equal(o *grid) bool {
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

func (g *grid) String() string {
	s := ""
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			if g.at(x, y) != 0 {
				s += "#"
			} else {
				s += "."
			}
		}
		s += "\n"
	}
	return s
}

func mustDraw(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("draw failed: %v", err)
	}
}

func assertSuperset(t *testing.T, filled, outline *grid) {
	t.Helper()
	fl := filled.lit()
	for p := range outline.lit() {
		if !fl[p] {
			t.Errorf("outline cell %v missing from filled shape\nfilled:\n%s\noutline:\n%s", p, filled, outline)
			return
		}
	}
}

// =============================================================================
// Runs and lines
// =============================================================================

func TestHLine(t *testing.T) {
	tests := []struct {
		name      string
		x, y, w   int
		wantCells int
	}{
		{"inside", 2, 1, 4, 4},
		{"zero length", 2, 1, 0, 0},
		{"negative length", 2, 1, -3, 0},
		{"clipped left", -3, 1, 5, 2},
		{"clipped right", 14, 1, 10, 2},
		{"row above", 0, -1, 16, 0},
		{"row below", 0, 9, 16, 0},
		{"whole row", -100, 4, 1000, 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGrid(16, 9)
			mustDraw(t, HLine(g, tt.x, tt.y, tt.w, 7))
			if got := len(g.lit()); got != tt.wantCells {
				t.Errorf("HLine(%d, %d, %d) lit %d cells, want %d", tt.x, tt.y, tt.w, got, tt.wantCells)
			}
			if g.writes != tt.wantCells {
				t.Errorf("HLine issued %d in-range writes, want %d", g.writes, tt.wantCells)
			}
		})
	}
}

func TestVLine(t *testing.T) {
	g := newGrid(16, 9)
	mustDraw(t, VLine(g, 3, -2, 5, 9))
	for y := 0; y < 9; y++ {
		want := 0
		if y < 3 {
			want = 9
		}
		if got := g.at(3, y); got != want {
			t.Errorf("cell (3, %d) = %d, want %d", y, got, want)
		}
	}
	mustDraw(t, VLine(newGrid(4, 4), 1, 0, 0, 9))
}

func TestLine_FullRow(t *testing.T) {
	g := newGrid(16, 9)
	mustDraw(t, Line(g, 0, 0, 15, 0, 100))
	for y := 0; y < 9; y++ {
		for x := 0; x < 16; x++ {
			want := 0
			if y == 0 {
				want = 100
			}
			if got := g.at(x, y); got != want {
				t.Fatalf("cell (%d, %d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestLine_Degenerate(t *testing.T) {
	g := newGrid(16, 9)
	mustDraw(t, Line(g, 5, 5, 5, 5, 1))
	if g.writes != 1 || g.at(5, 5) != 1 {
		t.Errorf("degenerate line: writes=%d cell=%d, want 1 write of 1", g.writes, g.at(5, 5))
	}
}

func TestLine_Shapes(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 int
		wantCells      int
	}{
		{"diagonal", 0, 0, 8, 8, 9},
		{"anti diagonal", 8, 0, 0, 8, 9},
		{"steep", 2, 0, 4, 8, 9},
		{"shallow", 0, 2, 15, 5, 16},
		{"reversed shallow", 15, 5, 0, 2, 16},
		{"vertical up", 3, 8, 3, 0, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGrid(16, 9)
			mustDraw(t, Line(g, tt.x1, tt.y1, tt.x2, tt.y2, 1))
			if got := len(g.lit()); got != tt.wantCells {
				t.Errorf("lit %d cells, want %d\n%s", got, tt.wantCells, g)
			}
			if g.at(tt.x1, tt.y1) == 0 || g.at(tt.x2, tt.y2) == 0 {
				t.Error("line endpoints not drawn")
			}
		})
	}
}

func TestLine_Clipped(t *testing.T) {
	g := newGrid(16, 9)
	mustDraw(t, Line(g, -5, 4, 20, 4, 3))
	if got := len(g.lit()); got != 16 {
		t.Errorf("clipped line lit %d cells, want 16", got)
	}
}

// =============================================================================
// Rectangles
// =============================================================================

func TestRect_FilledScenario(t *testing.T) {
	g := newGrid(16, 9)
	mustDraw(t, Rect(g, 2, 2, 4, 3, 100, true))

	count := 0
	for y := 0; y < 9; y++ {
		for x := 0; x < 16; x++ {
			inside := x >= 2 && x <= 5 && y >= 2 && y <= 4
			v := g.at(x, y)
			if inside && v != 100 {
				t.Errorf("cell (%d, %d) = %d, want 100", x, y, v)
			}
			if !inside && v != 0 {
				t.Errorf("cell (%d, %d) = %d, want 0", x, y, v)
			}
			if v != 0 {
				count++
			}
		}
	}
	if count != 12 {
		t.Errorf("filled rect lit %d cells, want 12", count)
	}
}

func TestRect_Outline(t *testing.T) {
	g := newGrid(16, 9)
	mustDraw(t, Rect(g, 1, 1, 5, 4, 1, false))
	// Perimeter of a 5x4 rectangle.
	if got := len(g.lit()); got != 2*5+2*4-4 {
		t.Errorf("outline lit %d cells, want %d\n%s", got, 14, g)
	}
	if g.at(2, 2) != 0 {
		t.Error("outline must not fill the interior")
	}
}

func TestRect_Degenerate(t *testing.T) {
	for _, fill := range []bool{false, true} {
		g := newGrid(8, 8)
		mustDraw(t, Rect(g, 1, 1, 0, 3, 1, fill))
		mustDraw(t, Rect(g, 1, 1, 3, -1, 1, fill))
		if g.writes != 0 {
			t.Errorf("fill=%v: degenerate rect wrote %d cells", fill, g.writes)
		}
	}
}

func TestRect_ClippedBottom(t *testing.T) {
	g := newGrid(16, 9)
	mustDraw(t, Rect(g, 0, 7, 4, 10, 5, true))
	if got := len(g.lit()); got != 8 {
		t.Errorf("clipped fill lit %d cells, want 8", got)
	}
}

func TestRoundRect_ZeroRadiusMatchesRect(t *testing.T) {
	cases := [][4]int{
		{2, 2, 4, 3},
		{0, 0, 16, 9},
		{-3, -2, 8, 6},
		{10, 5, 9, 9},
		{4, 4, 1, 1},
		{4, 4, 0, 3},
	}
	for _, c := range cases {
		for _, fill := range []bool{false, true} {
			t.Run(fmt.Sprintf("%v fill=%v", c, fill), func(t *testing.T) {
				rr, rc := newGrid(16, 9), newGrid(16, 9)
				mustDraw(t, RoundRect(rr, c[0], c[1], c[2], c[3], 0, 42, fill))
				mustDraw(t, Rect(rc, c[0], c[1], c[2], c[3], 42, fill))
				if !rr.equal(rc) {
					t.Errorf("RoundRect(r=0) differs from Rect\nround:\n%s\nrect:\n%s", rr, rc)
				}
			})
		}
	}
}

func TestRoundRect_NegativeRadiusClampsToZero(t *testing.T) {
	rr, rc := newGrid(16, 9), newGrid(16, 9)
	mustDraw(t, RoundRect(rr, 1, 1, 6, 5, -4, 9, false))
	mustDraw(t, Rect(rc, 1, 1, 6, 5, 9, false))
	if !rr.equal(rc) {
		t.Error("negative radius should degenerate to a plain rectangle")
	}
}

func TestRoundRect_RadiusClamp(t *testing.T) {
	a, b := newGrid(16, 9), newGrid(16, 9)
	mustDraw(t, RoundRect(a, 1, 1, 10, 6, 50, 9, true))
	mustDraw(t, RoundRect(b, 1, 1, 10, 6, 3, 9, true))
	if !a.equal(b) {
		t.Errorf("radius should clamp to min(w,h)/2\n%s\n%s", a, b)
	}
}

func TestRoundRect_Corners(t *testing.T) {
	g := newGrid(16, 9)
	mustDraw(t, RoundRect(g, 0, 0, 12, 8, 2, 1, false))
	for _, p := range [][2]int{{0, 0}, {11, 0}, {0, 7}, {11, 7}} {
		if g.at(p[0], p[1]) != 0 {
			t.Errorf("rounded corner %v should stay dark\n%s", p, g)
		}
	}
	for _, p := range [][2]int{{2, 0}, {9, 0}, {0, 2}, {11, 5}, {5, 7}} {
		if g.at(p[0], p[1]) == 0 {
			t.Errorf("edge cell %v should be lit\n%s", p, g)
		}
	}
}

func TestRoundRect_FilledContainsOutline(t *testing.T) {
	for r := 1; r <= 4; r++ {
		f, o := newGrid(16, 9), newGrid(16, 9)
		mustDraw(t, RoundRect(f, 1, 0, 13, 9, r, 1, true))
		mustDraw(t, RoundRect(o, 1, 0, 13, 9, r, 1, false))
		assertSuperset(t, f, o)
	}
}

// =============================================================================
// Circles and ellipses
// =============================================================================

func TestCircle_FilledContainsOutline(t *testing.T) {
	centers := [][2]int{{8, 4}, {0, 0}, {15, 8}, {-2, 4}, {8, 12}}
	for _, c := range centers {
		for r := 1; r <= 12; r++ {
			f, o := newGrid(16, 9), newGrid(16, 9)
			mustDraw(t, Circle(f, c[0], c[1], r, 1, true))
			mustDraw(t, Circle(o, c[0], c[1], r, 1, false))
			assertSuperset(t, f, o)
		}
	}
}

func TestCircle_Outline(t *testing.T) {
	g := newGrid(16, 9)
	mustDraw(t, Circle(g, 8, 4, 3, 1, false))
	for _, p := range [][2]int{{8, 1}, {8, 7}, {5, 4}, {11, 4}} {
		if g.at(p[0], p[1]) == 0 {
			t.Errorf("axis point %v not drawn\n%s", p, g)
		}
	}
	if g.at(8, 4) != 0 {
		t.Error("outline must not draw the center")
	}
	// Eight-way symmetry.
	for p := range g.lit() {
		dx, dy := p[0]-8, p[1]-4
		for _, q := range [][2]int{{-dx, dy}, {dx, -dy}, {dy, dx}, {-dy, -dx}} {
			if g.at(8+q[0], 4+q[1]) == 0 {
				t.Errorf("missing mirror of %v at %v", p, q)
			}
		}
	}
}

func TestCircle_ZeroRadius(t *testing.T) {
	for _, fill := range []bool{false, true} {
		g := newGrid(16, 9)
		mustDraw(t, Circle(g, 3, 3, 0, 5, fill))
		if lit := g.lit(); len(lit) != 1 || !lit[[2]int{3, 3}] {
			t.Errorf("fill=%v: radius 0 lit %v, want only the center", fill, lit)
		}
	}
}

func TestCircle_NegativeRadius(t *testing.T) {
	g := newGrid(16, 9)
	if err := Circle(g, 3, 3, -1, 5, false); !errors.Is(err, ErrNegativeRadius) {
		t.Errorf("Circle(r=-1) = %v, want ErrNegativeRadius", err)
	}
	if g.writes != 0 {
		t.Error("negative radius must not write")
	}
}

func TestEllipse_Degenerate(t *testing.T) {
	g := newGrid(16, 9)
	mustDraw(t, Ellipse(g, 8, 4, 0, 3, 1, true))
	mustDraw(t, Ellipse(g, 8, 4, 3, 0, 1, false))
	mustDraw(t, Ellipse(g, 8, 4, -1, -1, 1, false))
	if g.writes != 0 {
		t.Errorf("degenerate ellipse wrote %d cells", g.writes)
	}
}

func TestEllipse_Extents(t *testing.T) {
	tests := []struct{ rx, ry int }{{1, 1}, {6, 3}, {3, 4}, {7, 4}, {2, 1}}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("rx=%d ry=%d", tt.rx, tt.ry), func(t *testing.T) {
			g := newGrid(16, 9)
			mustDraw(t, Ellipse(g, 8, 4, tt.rx, tt.ry, 1, false))
			minX, maxX, minY, maxY := 99, -99, 99, -99
			for p := range g.lit() {
				minX, maxX = min(minX, p[0]), max(maxX, p[0])
				minY, maxY = min(minY, p[1]), max(maxY, p[1])
			}
			if minX != 8-tt.rx || maxX != 8+tt.rx || minY != 4-tt.ry || maxY != 4+tt.ry {
				t.Errorf("bounds x[%d,%d] y[%d,%d], want x[%d,%d] y[%d,%d]\n%s",
					minX, maxX, minY, maxY, 8-tt.rx, 8+tt.rx, 4-tt.ry, 4+tt.ry, g)
			}
			// Symmetric across both axes.
			for p := range g.lit() {
				if g.at(16-p[0], p[1]) == 0 || g.at(p[0], 8-p[1]) == 0 {
					t.Errorf("cell %v has no mirror", p)
				}
			}
		})
	}
}

func TestEllipse_FilledContainsOutline(t *testing.T) {
	for rx := 1; rx <= 8; rx++ {
		for ry := 1; ry <= 5; ry++ {
			f, o := newGrid(16, 9), newGrid(16, 9)
			mustDraw(t, Ellipse(f, 8, 4, rx, ry, 1, true))
			mustDraw(t, Ellipse(o, 8, 4, rx, ry, 1, false))
			assertSuperset(t, f, o)
		}
	}
}

func TestEllipse_FlatReachesRadius(t *testing.T) {
	for rx := 8; rx <= 15; rx++ {
		for ry := 1; ry <= 2; ry++ {
			for _, fill := range []bool{false, true} {
				g := newGrid(32, 9)
				mustDraw(t, Ellipse(g, 16, 4, rx, ry, 1, fill))
				minX, maxX := 99, -99
				for p := range g.lit() {
					minX, maxX = min(minX, p[0]), max(maxX, p[0])
				}
				if minX != 16-rx || maxX != 16+rx {
					t.Errorf("rx=%d ry=%d fill=%v: x[%d,%d], want x[%d,%d]\n%s",
						rx, ry, fill, minX, maxX, 16-rx, 16+rx, g)
				}
				for x := 16 - rx; x <= 16+rx; x++ {
					if fill && g.at(x, 4) == 0 {
						t.Errorf("rx=%d ry=%d: filled center row has a gap at x=%d", rx, ry, x)
					}
				}
			}
		}
	}
}

// =============================================================================
// Triangles
// =============================================================================

func TestTriangle_FilledScenario(t *testing.T) {
	g := newGrid(16, 9)
	mustDraw(t, Triangle(g, 8, 1, 1, 7, 15, 7, 200, true))

	for y := 0; y < 9; y++ {
		row := 0
		minX, maxX := 99, -1
		for x := 0; x < 16; x++ {
			if g.at(x, y) != 0 {
				row++
				minX, maxX = min(minX, x), max(maxX, x)
			}
		}
		if y < 1 || y > 7 {
			if row != 0 {
				t.Errorf("row %d outside the triangle has %d lit cells", y, row)
			}
			continue
		}
		if row == 0 {
			t.Errorf("row %d is empty", y)
			continue
		}
		if row != maxX-minX+1 {
			t.Errorf("row %d is not a single run", y)
		}
		if minX < 1 || maxX > 15 {
			t.Errorf("row %d spans [%d,%d], outside the vertex bounds", y, minX, maxX)
		}
	}
	if g.at(8, 1) == 0 || g.at(7, 1) != 0 || g.at(9, 1) != 0 {
		t.Errorf("apex row should be the single cell (8,1)\n%s", g)
	}
	for x := 1; x <= 15; x++ {
		if g.at(x, 7) == 0 {
			t.Errorf("base row missing cell %d\n%s", x, g)
		}
	}
}

func TestTriangle_OutlineAnyWinding(t *testing.T) {
	orders := [][6]int{
		{8, 1, 1, 7, 15, 7},
		{15, 7, 1, 7, 8, 1},
		{1, 7, 8, 1, 15, 7},
	}
	for _, o := range orders {
		g := newGrid(16, 9)
		mustDraw(t, Triangle(g, o[0], o[1], o[2], o[3], o[4], o[5], 1, false))
		for _, v := range [][2]int{{8, 1}, {1, 7}, {15, 7}} {
			if g.at(v[0], v[1]) == 0 {
				t.Errorf("order %v: vertex %v not drawn", o, v)
			}
		}
		if g.at(8, 5) != 0 {
			t.Errorf("order %v: outline filled the interior", o)
		}
	}
}

func TestTriangle_OffGrid(t *testing.T) {
	g := newGrid(16, 9)
	mustDraw(t, Triangle(g, -10, -10, -5, -20, -1, -3, 1, true))
	if g.writes != 0 {
		t.Errorf("off-grid triangle wrote %d cells", g.writes)
	}

	g = newGrid(16, 9)
	mustDraw(t, Triangle(g, -4, -4, 20, 4, -4, 12, 1, true))
	if len(g.lit()) == 0 {
		t.Error("partially visible triangle drew nothing")
	}
}

func TestTriangle_Degenerate(t *testing.T) {
	g := newGrid(16, 9)
	mustDraw(t, Triangle(g, 2, 3, 9, 3, 5, 3, 1, true))
	if got := len(g.lit()); got != 8 {
		t.Errorf("flat triangle lit %d cells, want the 8-cell run", got)
	}
}

func TestDivRound(t *testing.T) {
	tests := []struct{ n, d, want int }{
		{7, 2, 4}, {-7, 2, -4}, {7, -2, -4}, {6, 3, 2}, {1, 3, 0}, {2, 3, 1}, {0, 5, 0}, {42, -6, -7},
	}
	for _, tt := range tests {
		if got := divRound(tt.n, tt.d); got != tt.want {
			t.Errorf("divRound(%d, %d) = %d, want %d", tt.n, tt.d, got, tt.want)
		}
	}
}

// =============================================================================
// Error propagation
// =============================================================================

func TestTargetErrorAbortsShape(t *testing.T) {
	draws := map[string]func(Target) error{
		"line":     func(g Target) error { return Line(g, 0, 0, 15, 0, 1) },
		"rect":     func(g Target) error { return Rect(g, 0, 0, 8, 4, 1, true) },
		"circle":   func(g Target) error { return Circle(g, 8, 4, 3, 1, false) },
		"ellipse":  func(g Target) error { return Ellipse(g, 8, 4, 5, 3, 1, true) },
		"triangle": func(g Target) error { return Triangle(g, 8, 1, 1, 7, 15, 7, 1, true) },
		"round":    func(g Target) error { return RoundRect(g, 0, 0, 12, 8, 2, 1, false) },
	}
	for name, draw := range draws {
		t.Run(name, func(t *testing.T) {
			g := newGrid(16, 9)
			g.failAt = 3
			if err := draw(g); !errors.Is(err, errWrite) {
				t.Fatalf("got %v, want errWrite", err)
			}
			if g.writes != 3 {
				t.Errorf("shape continued after the failure: %d writes", g.writes)
			}
		})
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkCircleFill(b *testing.B) {
	g := newGrid(64, 64)
	for i := 0; i < b.N; i++ {
		_ = Circle(g, 32, 32, 30, 1, true)
	}
}

func BenchmarkTriangleFill(b *testing.B) {
	g := newGrid(64, 64)
	for i := 0; i < b.N; i++ {
		_ = Triangle(g, 32, 0, 0, 63, 63, 50, 1, true)
	}
}
