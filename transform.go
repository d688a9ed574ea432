package ledgrid

// Transform maps a grid cell to the sink's physical pixel index.
//
// Transforms encode board wiring: rotated panels, serpentine strips,
// panels whose LED matrix is split across register blocks. The grid applies
// the transform to every write before it reaches the sink. A nil Transform
// means row-major order, x + y*width.
type Transform func(x, y int) int

// RowMajor returns the default transform for a grid of the given width.
func RowMajor(width int) Transform {
	return func(x, y int) int { return x + y*width }
}

// Rotate180 returns a transform for a row-major panel mounted upside down.
func Rotate180(width, height int) Transform {
	return func(x, y int) int { return (width - 1 - x) + (height-1-y)*width }
}

// Serpentine returns a transform for a panel wired as one strip that
// reverses direction on every odd row.
func Serpentine(width int) Transform {
	return func(x, y int) int {
		if y%2 == 1 {
			x = width - 1 - x
		}
		return x + y*width
	}
}
