// Copyright 2026 The ledgrid Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

// Rect draws a w×h rectangle with its top-left corner at (x, y).
//
// The outline is four lines in the order top, right, bottom, left. The
// filled variant draws one horizontal run per row. A rectangle with w < 1
// or h < 1 draws nothing.
func Rect(t Target, x, y, w, h, b int, fill bool) error {
	if w < 1 || h < 1 {
		return nil
	}
	if fill {
		for iy := max(y, 0); iy < y+h && iy < t.Height(); iy++ {
			if err := HLine(t, x, iy, w, b); err != nil {
				return err
			}
		}
		return nil
	}
	x2, y2 := x+w-1, y+h-1
	return lines(t, b,
		x, y, x2, y,
		x2, y, x2, y2,
		x2, y2, x, y2,
		x, y2, x, y,
	)
}

// lines draws one Line per group of four coordinates in seg.
func lines(t Target, b int, seg ...int) error {
	for i := 0; i+3 < len(seg); i += 4 {
		if err := Line(t, seg[i], seg[i+1], seg[i+2], seg[i+3], b); err != nil {
			return err
		}
	}
	return nil
}

// RoundRect draws a w×h rectangle at (x, y) whose corners are quarter
// circles of radius r.
//
// r is clamped to [0, min(w, h)/2]. With r == 0 the result is exactly
// [Rect]. Otherwise the straight edges are inset by r and each corner is
// drawn with the circle stepping anchored at the inset corner center.
// A rectangle with w < 1 or h < 1 draws nothing.
func RoundRect(t Target, x, y, w, h, r, b int, fill bool) error {
	if w < 1 || h < 1 {
		return nil
	}
	r = max(0, min(r, min(w, h)/2))
	if r == 0 {
		return Rect(t, x, y, w, h, b, fill)
	}

	// Corner centers.
	xl, xr := x+r, x+w-1-r
	yt, yb := y+r, y+h-1-r

	if fill {
		for iy := yt; iy <= yb; iy++ {
			if err := HLine(t, x, iy, w, b); err != nil {
				return err
			}
		}
		return midpoint(r, func(px, py int) error {
			if err := span(t, xl-px, xr+px, yt-py, b); err != nil {
				return err
			}
			if err := span(t, xl-py, xr+py, yt-px, b); err != nil {
				return err
			}
			if err := span(t, xl-px, xr+px, yb+py, b); err != nil {
				return err
			}
			return span(t, xl-py, xr+py, yb+px, b)
		})
	}

	right, bottom := x+w-1, y+h-1
	if err := lines(t, b,
		xl, y, xr, y,
		right, yt, right, yb,
		xr, bottom, xl, bottom,
		x, yb, x, yt,
	); err != nil {
		return err
	}
	return midpoint(r, func(px, py int) error {
		return plotAll(t, b,
			xl-px, yt-py, xl-py, yt-px,
			xr+px, yt-py, xr+py, yt-px,
			xr+px, yb+py, xr+py, yb+px,
			xl-px, yb+py, xl-py, yb+px,
		)
	})
}
