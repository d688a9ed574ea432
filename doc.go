// Package ledgrid draws on small monochrome LED matrices.
//
// # Overview
//
// A [Grid] is a width×height canvas of 8-bit brightness values bound to a
// [Sink], the device that actually lights LEDs. The grid keeps a
// [PixelCache] mirroring what was last drawn, so the picture can be read
// back, faded, verified or pushed again without querying the hardware.
//
// # Quick Start
//
//	import (
//	    "github.com/ledkit/ledgrid"
//	    "github.com/ledkit/ledgrid/sink/is31fl3731"
//	)
//
//	dev, err := is31fl3731.New(bus, is31fl3731.DefaultOpts)
//	g, err := ledgrid.New(dev, 0)
//
//	g.DrawCircle(7, 4, 3, 120, true)
//	g.DrawLine(0, 0, 15, 8, 40)
//	g.Present()
//
//	g.FadeAll(ctx, 0, 10)
//
// # Coordinates
//
// (0, 0) is the top-left cell, x grows to the right and y downward.
// Writes outside the grid are dropped silently, so shapes may extend past
// the edges. Reads outside the grid return [ErrOutOfRange].
//
// Brightness is an int clamped to [0, 255] at the cache boundary.
//
// # Banks
//
// Sinks may hold several frame buffers ("banks"). Writes go to the grid's
// current bank; [Grid.Present] makes that bank visible. Drawing into one
// bank while another is displayed gives flicker-free double buffering:
//
//	g.SetBank(1)
//	g.Resync()
//	// draw ...
//	g.Present()
//
// # Board Wiring
//
// A [Transform] maps grid coordinates to the sink's physical LED index.
// Transforms are set per grid with [WithTransform]; sinks never see grid
// coordinates.
//
// # Shapes
//
// Lines, rectangles, circles, ellipses, triangles and rounded rectangles
// are rasterized with integer arithmetic by package raster and written
// through the cache. [Grid.Draw] accepts a [Shape] value, which is what the
// script interpreter and the ledgrid command build.
//
// # Fades
//
// [Grid.FadeAll] and [Grid.FadePixel] move cells toward a target brightness
// by a fixed step per pass, presenting after each pass. The pause between
// passes is a [Pacer]; [Fade] exposes single passes for callers that drive
// their own loop.
//
// # Errors
//
// Sink failures are returned as *[SinkError] and match [ErrSinkFailure].
// The cache is not rolled back on failure; call [Grid.Resync] to push it
// again.
//
// # Logging
//
// The package logs through [Logger], silent by default. Use [SetLogger] or
// [WithLogger] to enable output.
package ledgrid
