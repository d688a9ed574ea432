package ledgrid

import (
	"fmt"
	"image"
)

// ShapeKind identifies the primitive a Shape describes.
type ShapeKind uint8

const (
	ShapePixel     ShapeKind = iota // single cell at Points[0]
	ShapeLine                       // Points[0] to Points[1]
	ShapeHLine                      // Size.X cells right from Points[0]
	ShapeVLine                      // Size.Y cells down from Points[0]
	ShapeRect                       // Size at Points[0]
	ShapeCircle                     // Radius.X around Points[0]
	ShapeEllipse                    // Radius around Points[0]
	ShapeTriangle                   // Points[0..2]
	ShapeRoundRect                  // Size at Points[0], corner Radius.X
)

// shapeKindNames maps ShapeKind values to their string representation.
var shapeKindNames = [...]string{
	ShapePixel:     "pixel",
	ShapeLine:      "line",
	ShapeHLine:     "hline",
	ShapeVLine:     "vline",
	ShapeRect:      "rect",
	ShapeCircle:    "circle",
	ShapeEllipse:   "ellipse",
	ShapeTriangle:  "triangle",
	ShapeRoundRect: "roundrect",
}

// String returns the string representation of a ShapeKind.
func (k ShapeKind) String() string {
	if int(k) < len(shapeKindNames) {
		return shapeKindNames[k]
	}
	return "unknown"
}

// ParseShapeKind returns the kind named s, as printed by String.
func ParseShapeKind(s string) (ShapeKind, bool) {
	for k, name := range shapeKindNames {
		if name == s {
			return ShapeKind(k), true
		}
	}
	return 0, false
}

// Shape is a draw request: one primitive with its geometry, brightness and
// fill flag. Which fields are read depends on Kind; see the ShapeKind
// constants.
type Shape struct {
	Kind       ShapeKind
	Points     [3]image.Point
	Size       image.Point
	Radius     image.Point
	Brightness int
	Fill       bool
}

func (s Shape) String() string {
	p := s.Points
	switch s.Kind {
	case ShapeLine:
		return fmt.Sprintf("line %v-%v b=%d", p[0], p[1], s.Brightness)
	case ShapeTriangle:
		return fmt.Sprintf("triangle %v %v %v b=%d fill=%t", p[0], p[1], p[2], s.Brightness, s.Fill)
	}
	return fmt.Sprintf("%s at %v size=%v radius=%v b=%d fill=%t", s.Kind, p[0], s.Size, s.Radius, s.Brightness, s.Fill)
}

// Draw rasterizes s onto the grid.
func (g *Grid) Draw(s Shape) error {
	p := s.Points
	b := s.Brightness
	switch s.Kind {
	case ShapePixel:
		_, err := g.SetPixel(p[0].X, p[0].Y, b)
		return err
	case ShapeLine:
		return g.DrawLine(p[0].X, p[0].Y, p[1].X, p[1].Y, b)
	case ShapeHLine:
		return g.DrawHLine(p[0].X, p[0].Y, s.Size.X, b)
	case ShapeVLine:
		return g.DrawVLine(p[0].X, p[0].Y, s.Size.Y, b)
	case ShapeRect:
		return g.DrawRect(p[0].X, p[0].Y, s.Size.X, s.Size.Y, b, s.Fill)
	case ShapeCircle:
		return g.DrawCircle(p[0].X, p[0].Y, s.Radius.X, b, s.Fill)
	case ShapeEllipse:
		return g.DrawEllipse(p[0].X, p[0].Y, s.Radius.X, s.Radius.Y, b, s.Fill)
	case ShapeTriangle:
		return g.DrawTriangle(p[0].X, p[0].Y, p[1].X, p[1].Y, p[2].X, p[2].Y, b, s.Fill)
	case ShapeRoundRect:
		return g.DrawRoundRect(p[0].X, p[0].Y, s.Size.X, s.Size.Y, s.Radius.X, b, s.Fill)
	}
	return fmt.Errorf("%w: shape kind %d", ErrInvalidArgument, s.Kind)
}
