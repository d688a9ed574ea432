package ledgrid

import (
	"errors"
	"image"
	"testing"
)

// ===========================================================================
// ShapeKind
// ===========================================================================

func TestShapeKindString(t *testing.T) {
	tests := []struct {
		kind ShapeKind
		want string
	}{
		{ShapePixel, "pixel"},
		{ShapeLine, "line"},
		{ShapeHLine, "hline"},
		{ShapeVLine, "vline"},
		{ShapeRect, "rect"},
		{ShapeCircle, "circle"},
		{ShapeEllipse, "ellipse"},
		{ShapeTriangle, "triangle"},
		{ShapeRoundRect, "roundrect"},
		{ShapeKind(200), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ShapeKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
		if tt.want == "unknown" {
			continue
		}
		k, ok := ParseShapeKind(tt.want)
		if !ok || k != tt.kind {
			t.Errorf("ParseShapeKind(%q) = %v, %v", tt.want, k, ok)
		}
	}
	if _, ok := ParseShapeKind("hexagon"); ok {
		t.Error("ParseShapeKind accepted an unknown name")
	}
}

// ===========================================================================
// Grid.Draw
// ===========================================================================

func TestDrawMatchesDirectCalls(t *testing.T) {
	pt := image.Pt
	tests := []struct {
		name   string
		shape  Shape
		direct func(g *Grid) error
	}{
		{
			"pixel",
			Shape{Kind: ShapePixel, Points: [3]image.Point{pt(3, 4)}, Brightness: 9},
			func(g *Grid) error { _, err := g.SetPixel(3, 4, 9); return err },
		},
		{
			"line",
			Shape{Kind: ShapeLine, Points: [3]image.Point{pt(0, 0), pt(15, 8)}, Brightness: 50},
			func(g *Grid) error { return g.DrawLine(0, 0, 15, 8, 50) },
		},
		{
			"hline",
			Shape{Kind: ShapeHLine, Points: [3]image.Point{pt(2, 3)}, Size: pt(7, 0), Brightness: 60},
			func(g *Grid) error { return g.DrawHLine(2, 3, 7, 60) },
		},
		{
			"vline",
			Shape{Kind: ShapeVLine, Points: [3]image.Point{pt(5, 1)}, Size: pt(0, 6), Brightness: 70},
			func(g *Grid) error { return g.DrawVLine(5, 1, 6, 70) },
		},
		{
			"rect",
			Shape{Kind: ShapeRect, Points: [3]image.Point{pt(1, 1)}, Size: pt(6, 5), Brightness: 80},
			func(g *Grid) error { return g.DrawRect(1, 1, 6, 5, 80, false) },
		},
		{
			"filled circle",
			Shape{Kind: ShapeCircle, Points: [3]image.Point{pt(7, 4)}, Radius: pt(3, 0), Brightness: 90, Fill: true},
			func(g *Grid) error { return g.DrawCircle(7, 4, 3, 90, true) },
		},
		{
			"ellipse",
			Shape{Kind: ShapeEllipse, Points: [3]image.Point{pt(8, 4)}, Radius: pt(6, 3), Brightness: 100},
			func(g *Grid) error { return g.DrawEllipse(8, 4, 6, 3, 100, false) },
		},
		{
			"triangle",
			Shape{Kind: ShapeTriangle, Points: [3]image.Point{pt(8, 1), pt(1, 7), pt(15, 7)}, Brightness: 110, Fill: true},
			func(g *Grid) error { return g.DrawTriangle(8, 1, 1, 7, 15, 7, 110, true) },
		},
		{
			"roundrect",
			Shape{Kind: ShapeRoundRect, Points: [3]image.Point{pt(1, 0)}, Size: pt(12, 9), Radius: pt(3, 0), Brightness: 120, Fill: true},
			func(g *Grid) error { return g.DrawRoundRect(1, 0, 12, 9, 3, 120, true) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestGrid(t, 16, 9)
			b, _ := newTestGrid(t, 16, 9)
			if err := a.Draw(tt.shape); err != nil {
				t.Fatalf("Draw(%v) = %v", tt.shape, err)
			}
			if err := tt.direct(b); err != nil {
				t.Fatal(err)
			}
			if string(a.Snapshot().Pix) != string(b.Snapshot().Pix) {
				t.Errorf("Draw(%v) differs from the direct call", tt.shape)
			}
			lit := false
			for _, v := range a.Snapshot().Pix {
				lit = lit || v != 0
			}
			if !lit {
				t.Errorf("Draw(%v) lit nothing", tt.shape)
			}
		})
	}
}

func TestDrawUnknownKind(t *testing.T) {
	g, _ := newTestGrid(t, 4, 4)
	if err := g.Draw(Shape{Kind: ShapeKind(42)}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Draw(unknown) = %v, want ErrInvalidArgument", err)
	}
}

func TestShapeString(t *testing.T) {
	s := Shape{Kind: ShapeLine, Points: [3]image.Point{{0, 0}, {3, 4}}, Brightness: 7}
	if got, want := s.String(), "line (0,0)-(3,4) b=7"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
