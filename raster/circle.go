// Copyright 2026 The ledgrid Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

// midpoint walks one octant of a circle of radius r with the midpoint
// algorithm, calling fn with the offset (x, y) of each step, where x runs
// from 0 up to the 45° point and y from r down. Mirroring the offsets into
// the eight octants yields the full circle.
func midpoint(r int, fn func(x, y int) error) error {
	x, y := 0, r
	d := 1 - r
	for y >= x {
		if err := fn(x, y); err != nil {
			return err
		}
		if d < 0 {
			d += 2*x + 3
		} else {
			d += 2*(x-y) + 5
			y--
		}
		x++
	}
	return nil
}

// Circle draws a circle of radius r centered on (cx, cy).
//
// The outline plots the eight mirrored points of every midpoint step;
// points on the axes and diagonals are written more than once. The filled
// variant draws, for every step, the four horizontal runs whose endpoints
// are exactly those outline points, so the filled cell set always contains
// the outline cell set.
//
// A radius of zero draws the center cell. A negative radius returns
// [ErrNegativeRadius].
func Circle(t Target, cx, cy, r, b int, fill bool) error {
	if r < 0 {
		return ErrNegativeRadius
	}
	if fill {
		return midpoint(r, func(x, y int) error {
			if err := span(t, cx-x, cx+x, cy-y, b); err != nil {
				return err
			}
			if err := span(t, cx-x, cx+x, cy+y, b); err != nil {
				return err
			}
			if err := span(t, cx-y, cx+y, cy-x, b); err != nil {
				return err
			}
			return span(t, cx-y, cx+y, cy+x, b)
		})
	}
	return midpoint(r, func(x, y int) error {
		return plotAll(t, b,
			cx+x, cy-y, cx-x, cy-y,
			cx+x, cy+y, cx-x, cy+y,
			cx+y, cy-x, cx-y, cy-x,
			cx+y, cy+x, cx-y, cy+x,
		)
	})
}

// plotAll writes brightness b to every (x, y) pair in xy.
func plotAll(t Target, b int, xy ...int) error {
	for i := 0; i+1 < len(xy); i += 2 {
		if err := plot(t, xy[i], xy[i+1], b); err != nil {
			return err
		}
	}
	return nil
}

// Ellipse draws an axis-aligned ellipse with radii rx and ry centered on
// (cx, cy), using the two-region midpoint algorithm. Region 1 steps x while
// the boundary slope is shallower than -1; region 2 steps y for the rest.
// The decision variables are scaled by 4 so the half-cell offsets stay
// integral.
//
// Radii below 1 draw nothing. The filled variant draws one horizontal run
// between the mirrored boundary points of every step. The center row always
// reaches cx±rx, which the midpoint steps alone miss for flat ellipses.
func Ellipse(t Target, cx, cy, rx, ry, b int, fill bool) error {
	if rx < 1 || ry < 1 {
		return nil
	}

	lastX := -1 // widest x emitted on the center row
	emit := func(x, y int) error {
		if y == 0 {
			lastX = max(lastX, x)
		}
		if fill {
			if err := span(t, cx-x, cx+x, cy-y, b); err != nil {
				return err
			}
			return span(t, cx-x, cx+x, cy+y, b)
		}
		return plotAll(t, b, cx+x, cy-y, cx-x, cy-y, cx+x, cy+y, cx-x, cy+y)
	}

	rx2 := int64(rx) * int64(rx)
	ry2 := int64(ry) * int64(ry)
	x, y := int64(0), int64(ry)
	dx := int64(0)
	dy := 2 * rx2 * y

	// Region 1.
	d1 := 4*ry2 - 4*rx2*int64(ry) + rx2
	for dx < dy {
		if err := emit(int(x), int(y)); err != nil {
			return err
		}
		x++
		dx += 2 * ry2
		if d1 < 0 {
			d1 += 4 * (dx + ry2)
		} else {
			y--
			dy -= 2 * rx2
			d1 += 4 * (dx - dy + ry2)
		}
	}

	// Region 2.
	d2 := ry2*(2*x+1)*(2*x+1) + 4*rx2*(y-1)*(y-1) - 4*rx2*ry2
	for y >= 0 {
		if err := emit(int(x), int(y)); err != nil {
			return err
		}
		y--
		dy -= 2 * rx2
		if d2 > 0 {
			d2 += 4 * (rx2 - dy)
		} else {
			x++
			dx += 2 * ry2
			d2 += 4 * (dx - dy + rx2)
		}
	}

	if lastX >= rx {
		return nil
	}
	if fill {
		return span(t, cx-rx, cx+rx, cy, b)
	}
	if err := span(t, cx+lastX+1, cx+rx, cy, b); err != nil {
		return err
	}
	return span(t, cx-rx, cx-lastX-1, cy, b)
}
