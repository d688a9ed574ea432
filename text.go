package ledgrid

import (
	"image"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents strips combining marks so "café" renders as "cafe" with
// bitmap faces that only carry ASCII glyphs.
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// DrawText renders s with its baseline starting at (x, y) and returns the
// horizontal advance in cells.
//
// A nil face uses basicfont.Face7x13. Glyph coverage scales the brightness,
// so anti-aliased faces produce intermediate levels; cells the glyphs do
// not touch are left as they are. Accented letters are reduced to their
// base letter before drawing.
func (g *Grid) DrawText(x, y int, s string, b int, face font.Face) (int, error) {
	if face == nil {
		face = basicfont.Face7x13
	}
	mask := image.NewAlpha(g.Bounds())
	d := font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(foldAccents(s))
	advance := (d.Dot.X - fixed.I(x)).Round()

	v := int(Clamp(b))
	for py := 0; py < g.cache.height; py++ {
		for px := 0; px < g.cache.width; px++ {
			a := int(mask.AlphaAt(px, py).A)
			if a == 0 {
				continue
			}
			if _, err := g.cache.Set(px, py, v*a/255); err != nil {
				return advance, err
			}
		}
	}
	return advance, nil
}
