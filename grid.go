package ledgrid

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/oklog/ulid/v2"

	"github.com/ledkit/ledgrid/raster"
)

// Grid is a drawing session on one sink: it owns the pixel cache, the bank
// selector and the fade pacing hook.
//
// Drawing never fails because a shape leaves the grid; only the in-bounds
// part is written. Every drawing call returns the first sink failure it hit,
// as a *SinkError.
//
// A Grid is owned by one goroutine. Callers that share it must serialize
// access themselves.
type Grid struct {
	id     ulid.ULID
	cache  *PixelCache
	pacer  Pacer
	logger *slog.Logger
}

// New attaches a grid to sink, drawing into bank. The grid takes its size
// from the sink, allocates a zeroed cache and clears bank on the sink.
//
// New returns ErrInvalidConfiguration for a nil sink, a sink with a
// non-positive size, or a bank the sink cannot address.
func New(sink Sink, bank int, opts ...GridOption) (*Grid, error) {
	if sink == nil {
		return nil, fmt.Errorf("%w: nil sink", ErrInvalidConfiguration)
	}
	if w, h := sink.Width(), sink.Height(); w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: sink size %dx%d", ErrInvalidConfiguration, w, h)
	}
	if err := checkBank(sink, bank); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	g := &Grid{
		id:     ulid.Make(),
		cache:  newPixelCache(sink, bank, o.transform),
		pacer:  o.pacer,
		logger: o.logger,
	}
	g.cache.log = g.log
	if err := g.cache.Clear(); err != nil {
		return nil, err
	}
	g.log().Debug("grid attached", "width", g.cache.width, "height", g.cache.height, "bank", bank)
	return g, nil
}

// checkBank validates bank against the sink's bank count, if it has one.
func checkBank(sink Sink, bank int) error {
	if bank < 0 {
		return fmt.Errorf("bank %d is negative", bank)
	}
	if b, ok := sink.(Banked); ok && bank >= b.Banks() {
		return fmt.Errorf("bank %d not in [0, %d)", bank, b.Banks())
	}
	return nil
}

func (g *Grid) log() *slog.Logger {
	l := g.logger
	if l == nil {
		l = Logger()
	}
	return l.With("grid", g.id.String())
}

// ID returns the grid's unique identifier, used to tag its log records.
func (g *Grid) ID() ulid.ULID {
	return g.id
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.cache.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.cache.height
}

// Bounds returns the grid rectangle, (0, 0)-(Width, Height).
func (g *Grid) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.cache.width, g.cache.height)
}

// Cache returns the grid's pixel cache.
func (g *Grid) Cache() *PixelCache {
	return g.cache
}

// Bank returns the bank writes and presents target.
func (g *Grid) Bank() int {
	return g.cache.bank
}

// SetBank selects the bank for subsequent writes and presents. The cache is
// left untouched: it keeps describing what was drawn, whichever bank that
// went to. Call Resync to copy it into the new bank.
func (g *Grid) SetBank(bank int) error {
	if err := checkBank(g.cache.sink, bank); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	g.cache.bank = bank
	return nil
}

// SetPixel writes brightness b at (x, y) and reports whether the cell is on
// the grid.
func (g *Grid) SetPixel(x, y, b int) (bool, error) {
	return g.cache.Set(x, y, b)
}

// Pixel returns the cached brightness at (x, y), or ErrOutOfRange.
func (g *Grid) Pixel(x, y int) (uint8, error) {
	return g.cache.Get(x, y)
}

// Clear turns every cell off.
func (g *Grid) Clear() error {
	return g.cache.Clear()
}

// Fill sets every cell to brightness b.
func (g *Grid) Fill(b int) error {
	return g.cache.Fill(b)
}

// Present displays the current bank.
func (g *Grid) Present() error {
	return g.cache.Present()
}

// Resync pushes the whole cache to the current bank.
func (g *Grid) Resync() error {
	return g.cache.Resync()
}

// Verify counts cells whose sink value differs from the cache.
func (g *Grid) Verify() (int, error) {
	return g.cache.Verify()
}

// Snapshot returns the cache as a grayscale image.
func (g *Grid) Snapshot() *image.Gray {
	return g.cache.Snapshot()
}

// DrawLine draws a line from (x1, y1) to (x2, y2), both ends included.
func (g *Grid) DrawLine(x1, y1, x2, y2, b int) error {
	return raster.Line(g.cache, x1, y1, x2, y2, b)
}

// DrawHLine draws w cells to the right of (x, y), starting at x.
func (g *Grid) DrawHLine(x, y, w, b int) error {
	return raster.HLine(g.cache, x, y, w, b)
}

// DrawVLine draws h cells downward from (x, y), starting at y.
func (g *Grid) DrawVLine(x, y, h, b int) error {
	return raster.VLine(g.cache, x, y, h, b)
}

// DrawRect draws a w×h rectangle with its top-left corner at (x, y).
func (g *Grid) DrawRect(x, y, w, h, b int, fill bool) error {
	return raster.Rect(g.cache, x, y, w, h, b, fill)
}

// DrawCircle draws a circle of radius r centered on (cx, cy).
// A negative radius returns ErrInvalidArgument.
func (g *Grid) DrawCircle(cx, cy, r, b int, fill bool) error {
	err := raster.Circle(g.cache, cx, cy, r, b, fill)
	if errors.Is(err, raster.ErrNegativeRadius) {
		return fmt.Errorf("%w: circle radius %d", ErrInvalidArgument, r)
	}
	return err
}

// DrawEllipse draws an ellipse with radii rx, ry centered on (cx, cy).
// Radii below 1 draw nothing.
func (g *Grid) DrawEllipse(cx, cy, rx, ry, b int, fill bool) error {
	return raster.Ellipse(g.cache, cx, cy, rx, ry, b, fill)
}

// DrawTriangle draws the triangle (x0, y0), (x1, y1), (x2, y2).
func (g *Grid) DrawTriangle(x0, y0, x1, y1, x2, y2, b int, fill bool) error {
	return raster.Triangle(g.cache, x0, y0, x1, y1, x2, y2, b, fill)
}

// DrawRoundRect draws a w×h rectangle at (x, y) with corners of radius r.
// With r == 0 the result is identical to DrawRect.
func (g *Grid) DrawRoundRect(x, y, w, h, r, b int, fill bool) error {
	return raster.RoundRect(g.cache, x, y, w, h, r, b, fill)
}
