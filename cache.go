package ledgrid

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
)

// PixelCache mirrors the last brightness requested for every cell of the
// grid and forwards accepted writes to the sink.
//
// The cache is the source of truth for what should be lit. It reflects
// intent, not confirmed hardware state: a write is visible to Get as soon
// as Set returns, before any present, and stays in the cache even when the
// sink rejects it.
//
// PixelCache implements [raster.Target]. It is not safe for concurrent use.
type PixelCache struct {
	width  int
	height int
	cells  []uint8 // row-major, cells[x+y*width]

	sink      Sink
	transform Transform // nil means row-major
	bank      int

	log func() *slog.Logger // nil means the package logger
}

// sinkError wraps err as a *SinkError and logs it.
func (c *PixelCache) sinkError(op string, err error) error {
	l := Logger()
	if c.log != nil {
		l = c.log()
	}
	l.Warn("sink failure", "op", op, "err", err)
	return &SinkError{Op: op, Err: err}
}

func newPixelCache(s Sink, bank int, t Transform) *PixelCache {
	w, h := s.Width(), s.Height()
	return &PixelCache{
		width:     w,
		height:    h,
		cells:     make([]uint8, w*h),
		sink:      s,
		transform: t,
		bank:      bank,
	}
}

// Width returns the number of columns.
func (c *PixelCache) Width() int {
	return c.width
}

// Height returns the number of rows.
func (c *PixelCache) Height() int {
	return c.height
}

// Size returns the number of cells.
func (c *PixelCache) Size() int {
	return len(c.cells)
}

// Bank returns the bank writes are sent to.
func (c *PixelCache) Bank() int {
	return c.bank
}

func (c *PixelCache) contains(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// index maps an in-bounds cell to the sink's physical index.
func (c *PixelCache) index(x, y int) int {
	if c.transform == nil {
		return x + y*c.width
	}
	return c.transform(x, y)
}

// Clamp limits b to the brightness range [0, 255].
func Clamp(b int) uint8 {
	switch {
	case b < 0:
		return 0
	case b > 255:
		return 255
	}
	return uint8(b)
}

// Set stores brightness b (clamped to [0, 255]) at (x, y) and forwards it to
// the sink. It reports whether the cell is on the grid; off-grid writes are
// dropped and return false with no error.
//
// A sink failure is returned as a *SinkError. The cache keeps the new value.
func (c *PixelCache) Set(x, y, b int) (bool, error) {
	if !c.contains(x, y) {
		return false, nil
	}
	v := Clamp(b)
	c.cells[x+y*c.width] = v
	if err := c.sink.WritePixel(c.bank, c.index(x, y), v); err != nil {
		return true, c.sinkError("write pixel", err)
	}
	return true, nil
}

// Get returns the cached brightness at (x, y).
func (c *PixelCache) Get(x, y int) (uint8, error) {
	if !c.contains(x, y) {
		return 0, fmt.Errorf("%w: (%d, %d) not in %dx%d", ErrOutOfRange, x, y, c.width, c.height)
	}
	return c.cells[x+y*c.width], nil
}

// Fill sets every cell to brightness b.
//
// With row-major addressing and a sink that implements BulkWriter, the
// cells go out as bulk transfers of at most MaxWriteSize bytes, cut at
// linear offsets 0, n, 2n, ... into the cache. Otherwise each cell is
// written on its own.
func (c *PixelCache) Fill(b int) error {
	v := Clamp(b)
	for i := range c.cells {
		c.cells[i] = v
	}
	return c.push()
}

// Clear zeroes the cache and clears the bank on the sink.
func (c *PixelCache) Clear() error {
	clear(c.cells)
	if err := c.sink.ClearAll(c.bank); err != nil {
		return c.sinkError("clear", err)
	}
	return nil
}

// Resync writes every cached cell to the sink again. Use it to restore
// consistency after a sink failure or after switching banks.
func (c *PixelCache) Resync() error {
	return c.push()
}

// push writes the whole cache to the sink.
func (c *PixelCache) push() error {
	if bw, ok := c.sink.(BulkWriter); ok && c.transform == nil {
		n := bw.MaxWriteSize()
		if n <= 0 {
			n = len(c.cells)
		}
		for off := 0; off < len(c.cells); off += n {
			end := min(off+n, len(c.cells))
			if err := bw.BulkWrite(c.bank, off, c.cells[off:end]); err != nil {
				return c.sinkError("bulk write", err)
			}
		}
		return nil
	}
	for i, v := range c.cells {
		if err := c.sink.WritePixel(c.bank, c.index(i%c.width, i/c.width), v); err != nil {
			return c.sinkError("write pixel", err)
		}
	}
	return nil
}

// Present displays the cache's bank on the sink.
func (c *PixelCache) Present() error {
	if err := c.sink.PresentBank(c.bank); err != nil {
		return c.sinkError("present", err)
	}
	return nil
}

// Verify reads every pixel back from the sink and returns how many differ
// from the cache. It returns an error wrapping [errors.ErrUnsupported] when
// the sink cannot be read.
func (c *PixelCache) Verify() (int, error) {
	r, ok := c.sink.(PixelReader)
	if !ok {
		return 0, fmt.Errorf("ledgrid: verify: %w", errors.ErrUnsupported)
	}
	diff := 0
	for i, v := range c.cells {
		got, err := r.ReadPixel(c.bank, c.index(i%c.width, i/c.width))
		if err != nil {
			return diff, c.sinkError("read pixel", err)
		}
		if got != v {
			diff++
		}
	}
	return diff, nil
}

// Snapshot returns a copy of the cache as a grayscale image.
func (c *PixelCache) Snapshot() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, c.width, c.height))
	copy(img.Pix, c.cells)
	return img
}
