package ledgrid

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// DrawImage scales img into the rectangle dst of the grid and writes its
// gray levels as brightness. The part of dst outside the grid is dropped.
// Colors are converted with the standard luma weights.
func (g *Grid) DrawImage(img image.Image, dst image.Rectangle) error {
	dst = dst.Canon()
	vis := dst.Intersect(g.Bounds())
	if vis.Empty() || img.Bounds().Empty() {
		return nil
	}
	// Scale keeps the geometry of dst but only renders gray's bounds.
	gray := image.NewGray(vis)
	xdraw.ApproxBiLinear.Scale(gray, dst, img, img.Bounds(), xdraw.Src, nil)

	for y := vis.Min.Y; y < vis.Max.Y; y++ {
		for x := vis.Min.X; x < vis.Max.X; x++ {
			if _, err := g.cache.Set(x, y, int(gray.GrayAt(x, y).Y)); err != nil {
				return err
			}
		}
	}
	return nil
}
