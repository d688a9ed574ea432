// Copyright 2026 The ledgrid Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

// Triangle draws the triangle with vertices (x0, y0), (x1, y1), (x2, y2).
//
// The outline is three lines closing the path; vertex winding does not
// matter. The filled variant is a scanline fill: every row between the
// lowest and highest vertex is intersected with each of the three edges
// and one run is drawn from the smallest to the largest intersection.
// An edge covers its rows inclusively; a horizontal edge lying on the row
// contributes both of its endpoints. Intersections are rounded to the
// nearest column. Rows outside the grid are skipped without iterating.
func Triangle(t Target, x0, y0, x1, y1, x2, y2, b int, fill bool) error {
	if !fill {
		return lines(t, b,
			x0, y0, x1, y1,
			x1, y1, x2, y2,
			x2, y2, x0, y0,
		)
	}

	edges := [3][4]int{
		{x0, y0, x1, y1},
		{x1, y1, x2, y2},
		{x2, y2, x0, y0},
	}
	top := max(min(y0, y1, y2), 0)
	bottom := min(max(y0, y1, y2), t.Height()-1)

	for y := top; y <= bottom; y++ {
		lo, hi, found := 0, 0, false
		add := func(x int) {
			if !found {
				lo, hi, found = x, x, true
				return
			}
			lo, hi = min(lo, x), max(hi, x)
		}
		for _, e := range edges {
			ax, ay, bx, by := e[0], e[1], e[2], e[3]
			if ay == by {
				if y == ay {
					add(ax)
					add(bx)
				}
				continue
			}
			if y < min(ay, by) || y > max(ay, by) {
				continue
			}
			add(ax + divRound((y-ay)*(bx-ax), by-ay))
		}
		if found {
			if err := span(t, lo, hi, y, b); err != nil {
				return err
			}
		}
	}
	return nil
}

// divRound returns n/d rounded to the nearest integer, halves away from
// zero. d must not be zero.
func divRound(n, d int) int {
	if d < 0 {
		n, d = -n, -d
	}
	if n >= 0 {
		return (2*n + d) / (2 * d)
	}
	return -((-2*n + d) / (2 * d))
}
