package ledgrid

import (
	"log/slog"
	"time"
)

// DefaultFadeDelay is the pause between fade passes when no Pacer is set.
const DefaultFadeDelay = 10 * time.Millisecond

// GridOption configures a Grid during creation.
// Use functional options to customize Grid behavior.
//
// Example:
//
//	g, err := ledgrid.New(dev, 0,
//	    ledgrid.WithTransform(is31fl3731.WingTransform),
//	    ledgrid.WithPacer(ledgrid.Delay(20*time.Millisecond)))
type GridOption func(*gridOptions)

// gridOptions holds optional configuration for Grid creation.
type gridOptions struct {
	transform Transform
	pacer     Pacer
	logger    *slog.Logger
}

// defaultOptions returns the default grid options.
func defaultOptions() gridOptions {
	return gridOptions{
		transform: nil, // row-major
		pacer:     Delay(DefaultFadeDelay),
		logger:    nil, // package logger at call time
	}
}

// WithTransform sets the coordinate transform applied before every sink
// write. Passing nil keeps row-major order.
func WithTransform(t Transform) GridOption {
	return func(o *gridOptions) {
		o.transform = t
	}
}

// WithPacer sets the hook called between fade passes.
// Passing nil restores the default delay.
func WithPacer(p Pacer) GridOption {
	return func(o *gridOptions) {
		if p == nil {
			p = Delay(DefaultFadeDelay)
		}
		o.pacer = p
	}
}

// WithLogger sets a logger for this grid only, overriding [Logger].
func WithLogger(l *slog.Logger) GridOption {
	return func(o *gridOptions) {
		o.logger = l
	}
}
