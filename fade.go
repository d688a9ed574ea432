package ledgrid

import (
	"context"
	"fmt"
	"time"
)

// Pacer is called between fade passes. It may sleep, yield to a scheduler
// or return an error to stop the fade; ctx is the fade's context.
type Pacer func(ctx context.Context) error

// Delay returns a Pacer that waits d, or until ctx is done.
func Delay(d time.Duration) Pacer {
	return func(ctx context.Context) error {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			return nil
		}
	}
}

// NoPacing runs fade passes back to back, stopping only on cancellation.
func NoPacing(ctx context.Context) error {
	return ctx.Err()
}

// Fade moves a range of cells toward a target brightness by a fixed step,
// one pass at a time.
//
// Each pass moves every cell that differs from the target by at most step,
// never past the target, and presents the bank if anything changed. A fade
// of a cell at distance d converges in ceil(d/step) passes.
//
// Step runs a single pass so a cooperative scheduler can interleave other
// work; Run loops with pacing and cancellation.
type Fade struct {
	cache  *PixelCache
	pacer  Pacer
	target uint8
	step   int
	lo, hi int // cell range [lo, hi)

	passes    int
	writes    int
	converged bool
}

// NewFadeAll prepares a fade of every cell toward target.
//
// step is clamped to 255. A step <= 0 while some cell differs from target
// returns ErrInvalidArgument, since such a fade would never converge.
func (g *Grid) NewFadeAll(target, step int) (*Fade, error) {
	return g.newFade(0, g.cache.Size(), target, step)
}

// NewFadePixel prepares a fade of the cell (x, y) toward target.
// It returns ErrOutOfRange for a cell off the grid.
func (g *Grid) NewFadePixel(x, y, target, step int) (*Fade, error) {
	if !g.cache.contains(x, y) {
		return nil, fmt.Errorf("%w: fade (%d, %d)", ErrOutOfRange, x, y)
	}
	i := x + y*g.cache.width
	return g.newFade(i, i+1, target, step)
}

func (g *Grid) newFade(lo, hi, target, step int) (*Fade, error) {
	f := &Fade{
		cache:  g.cache,
		pacer:  g.pacer,
		target: Clamp(target),
		step:   min(step, 255),
		lo:     lo,
		hi:     hi,
	}
	f.converged = f.settled()
	if !f.converged && f.step <= 0 {
		return nil, fmt.Errorf("%w: fade step %d", ErrInvalidArgument, step)
	}
	return f, nil
}

// settled reports whether every cell in range equals the target.
func (f *Fade) settled() bool {
	for _, v := range f.cache.cells[f.lo:f.hi] {
		if v != f.target {
			return false
		}
	}
	return true
}

// approach moves cur toward target by at most step.
func approach(cur, target uint8, step int) uint8 {
	if cur < target {
		return uint8(min(int(target), int(cur)+step))
	}
	return uint8(max(int(target), int(cur)-step))
}

// Step runs one pass and reports whether any cell changed. Once the fade
// has converged Step does nothing and returns false.
//
// A sink failure stops the pass and is returned; cells already moved stay
// moved, and a later Step resumes from the cache.
func (f *Fade) Step() (bool, error) {
	if f.converged {
		return false, nil
	}
	w := f.cache.width
	changed := false
	for i := f.lo; i < f.hi; i++ {
		cur := f.cache.cells[i]
		if cur == f.target {
			continue
		}
		changed = true
		f.writes++
		if _, err := f.cache.Set(i%w, i/w, int(approach(cur, f.target, f.step))); err != nil {
			return true, err
		}
	}
	if !changed {
		f.converged = true
		return false, nil
	}
	f.passes++
	if err := f.cache.Present(); err != nil {
		return true, err
	}
	f.converged = f.settled()
	return true, nil
}

// Converged reports whether every cell in the fade equals the target.
func (f *Fade) Converged() bool {
	return f.converged
}

// Passes returns the number of passes that changed at least one cell.
func (f *Fade) Passes() int {
	return f.passes
}

// Writes returns the number of cell writes issued so far.
func (f *Fade) Writes() int {
	return f.writes
}

// Run steps the fade until it converges. Between passes it checks ctx and
// calls the pacer; cancelling ctx stops the fade with ctx's error, leaving
// the cache at the last completed write.
func (f *Fade) Run(ctx context.Context) error {
	for !f.converged {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := f.Step(); err != nil {
			return err
		}
		if f.converged {
			break
		}
		if err := f.pacer(ctx); err != nil {
			return err
		}
	}
	return nil
}

// FadeAll fades every cell toward target by step per pass and returns once
// all cells have reached it.
func (g *Grid) FadeAll(ctx context.Context, target, step int) error {
	f, err := g.NewFadeAll(target, step)
	if err != nil {
		return err
	}
	if err := f.Run(ctx); err != nil {
		return err
	}
	g.log().Debug("fade converged", "target", target, "step", step, "passes", f.passes, "writes", f.writes)
	return nil
}

// FadePixel fades the cell (x, y) toward target by step, presenting after
// every step.
func (g *Grid) FadePixel(ctx context.Context, x, y, target, step int) error {
	f, err := g.NewFadePixel(x, y, target, step)
	if err != nil {
		return err
	}
	return f.Run(ctx)
}
