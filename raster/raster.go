// Copyright 2026 The ledgrid Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster converts geometric primitives into cell writes on an
// integer LED grid.
//
// Every function is stateless and integer-only. Coordinates are signed and
// may lie partly or entirely outside the grid: writes are handed to the
// [Target], which drops out-of-range cells, so shapes are clipped rather than
// rejected. Horizontal and vertical runs are clipped before iterating.
//
// The first error returned by [Target.Set] aborts the shape and is returned
// to the caller unchanged.
package raster

import "errors"

// ErrNegativeRadius is returned for a circle with a radius below zero.
var ErrNegativeRadius = errors.New("raster: negative radius")

// Target receives cell writes.
type Target interface {
	// Width returns the number of columns.
	Width() int

	// Height returns the number of rows.
	Height() int

	// Set writes brightness b to (x, y). It reports whether the write was
	// applied; out-of-range coordinates return false and no error.
	Set(x, y, b int) (bool, error)
}

// plot writes one cell and discards the applied flag.
func plot(t Target, x, y, b int) error {
	_, err := t.Set(x, y, b)
	return err
}

// HLine draws the half-open run [x, x+w) on row y.
// A run with w <= 0 draws nothing.
func HLine(t Target, x, y, w, b int) error {
	if w <= 0 || y < 0 || y >= t.Height() {
		return nil
	}
	x0, x1 := max(x, 0), min(x+w, t.Width())
	for ix := x0; ix < x1; ix++ {
		if err := plot(t, ix, y, b); err != nil {
			return err
		}
	}
	return nil
}

// VLine draws the half-open run [y, y+h) on column x.
// A run with h <= 0 draws nothing.
func VLine(t Target, x, y, h, b int) error {
	if h <= 0 || x < 0 || x >= t.Width() {
		return nil
	}
	y0, y1 := max(y, 0), min(y+h, t.Height())
	for iy := y0; iy < y1; iy++ {
		if err := plot(t, x, iy, b); err != nil {
			return err
		}
	}
	return nil
}

// span draws the closed run [x0, x1] on row y.
func span(t Target, x0, x1, y, b int) error {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	return HLine(t, x0, y, x1-x0+1, b)
}

// Line draws a line from (x1, y1) to (x2, y2) inclusive using Bresenham's
// algorithm. When the error term ties, x steps before y. A degenerate line
// draws exactly one cell.
func Line(t Target, x1, y1, x2, y2, b int) error {
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	e := dx + dy

	for {
		if err := plot(t, x1, y1, b); err != nil {
			return err
		}
		if x1 == x2 && y1 == y2 {
			return nil
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x1 += sx
		}
		if e2 <= dx {
			e += dx
			y1 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
