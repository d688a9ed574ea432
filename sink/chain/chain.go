// Copyright 2026 The ledgrid Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package chain joins several LED panels side by side into one wider sink.
//
// Panels must have the same height. Panel i occupies the columns right of
// panel i-1; the chain presents row-major indices of the combined panel and
// routes every write to the owning panel, applying that panel's own
// transform. A grid drawn on a chain therefore uses no transform itself.
package chain

import (
	"errors"
	"fmt"

	"github.com/ledkit/ledgrid"
)

// Panel is one member of a chain.
type Panel struct {
	Sink ledgrid.Sink
	// Transform maps the panel's local coordinates to its physical index.
	// Nil means row-major.
	Transform ledgrid.Transform
}

type member struct {
	Panel
	x0 int // first chain column
}

// Sink is a horizontal chain of panels.
type Sink struct {
	members []member
	width   int
	height  int
}

// New chains panels left to right.
func New(panels ...Panel) (*Sink, error) {
	if len(panels) == 0 {
		return nil, errors.New("chain: no panels")
	}
	s := &Sink{}
	for i, p := range panels {
		if p.Sink == nil {
			return nil, fmt.Errorf("chain: panel %d: nil sink", i)
		}
		if i == 0 {
			s.height = p.Sink.Height()
		}
		if h := p.Sink.Height(); h != s.height {
			return nil, fmt.Errorf("chain: panel %d is %d rows high, want %d", i, h, s.height)
		}
		s.members = append(s.members, member{Panel: p, x0: s.width})
		s.width += p.Sink.Width()
	}
	ledgrid.Logger().Debug("chain assembled", "panels", len(panels), "width", s.width, "height", s.height)
	return s, nil
}

// Width returns the combined width.
func (s *Sink) Width() int { return s.width }

// Height returns the common height.
func (s *Sink) Height() int { return s.height }

// Len returns the number of panels.
func (s *Sink) Len() int { return len(s.members) }

// Banks returns the smallest bank count among the panels. A panel that
// does not report banks counts as having one.
func (s *Sink) Banks() int {
	n := -1
	for _, m := range s.members {
		b := 1
		if bk, ok := m.Sink.(ledgrid.Banked); ok {
			b = bk.Banks()
		}
		if n < 0 || b < n {
			n = b
		}
	}
	return n
}

// locate finds the panel owning chain index i and the index local to it.
func (s *Sink) locate(i int) (*member, int, error) {
	if i < 0 || i >= s.width*s.height {
		return nil, 0, fmt.Errorf("chain: index %d not in [0, %d)", i, s.width*s.height)
	}
	x, y := i%s.width, i/s.width
	for k := len(s.members) - 1; k >= 0; k-- {
		m := &s.members[k]
		if x < m.x0 {
			continue
		}
		lx := x - m.x0
		if m.Transform != nil {
			return m, m.Transform(lx, y), nil
		}
		return m, lx + y*m.Sink.Width(), nil
	}
	return nil, 0, fmt.Errorf("chain: index %d has no panel", i)
}

// WritePixel writes to the panel owning index.
func (s *Sink) WritePixel(bank, index int, brightness uint8) error {
	m, li, err := s.locate(index)
	if err != nil {
		return err
	}
	return m.Sink.WritePixel(bank, li, brightness)
}

// ReadPixel reads from the panel owning index. It returns an error wrapping
// errors.ErrUnsupported if that panel cannot be read.
func (s *Sink) ReadPixel(bank, index int) (uint8, error) {
	m, li, err := s.locate(index)
	if err != nil {
		return 0, err
	}
	r, ok := m.Sink.(ledgrid.PixelReader)
	if !ok {
		return 0, fmt.Errorf("chain: panel at column %d: %w", m.x0, errors.ErrUnsupported)
	}
	return r.ReadPixel(bank, li)
}

// ClearAll clears bank on every panel. Every panel is attempted; the
// errors are joined.
func (s *Sink) ClearAll(bank int) error {
	var errs []error
	for _, m := range s.members {
		errs = append(errs, m.Sink.ClearAll(bank))
	}
	return errors.Join(errs...)
}

// PresentBank presents bank on every panel, left to right. Every panel is
// attempted; the errors are joined.
func (s *Sink) PresentBank(bank int) error {
	var errs []error
	for _, m := range s.members {
		errs = append(errs, m.Sink.PresentBank(bank))
	}
	return errors.Join(errs...)
}

var (
	_ ledgrid.Sink        = (*Sink)(nil)
	_ ledgrid.PixelReader = (*Sink)(nil)
	_ ledgrid.Banked      = (*Sink)(nil)
)
