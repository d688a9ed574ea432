// Copyright 2026 The ledgrid Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package termsink emulates an LED matrix in a terminal.
//
// Every LED is drawn as a block two cells wide so the panel keeps a roughly
// square aspect. Brightness is mapped onto a color ramp between an "off" and
// a "lit" color, blended in CIE L*u*v* space so equal brightness steps look
// evenly spaced. Writes land in per-bank buffers; only PresentBank touches
// the screen, repainting the cells that changed since the last present.
package termsink

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ledkit/ledgrid/internal/dirty"
)

// DefaultBanks is the number of banks a Sink has unless WithBanks is used.
const DefaultBanks = 8

// Default ramp end points.
const (
	DefaultOffColor = "#1a1a1a"
	DefaultOnColor  = "#ffb000"
)

// cellWidth is the number of terminal columns per LED.
const cellWidth = 2

var (
	// ErrIndex is returned for a pixel index outside the panel.
	ErrIndex = errors.New("termsink: pixel index out of range")

	// ErrBank is returned for a bank the sink does not have.
	ErrBank = errors.New("termsink: bank out of range")
)

// Sink draws a width×height LED panel on a tcell screen.
// It is safe for concurrent use.
type Sink struct {
	mu     sync.Mutex
	screen tcell.Screen
	width  int
	height int
	ox, oy int // screen origin

	banks [][]uint8
	shown int
	dirty *dirty.Set // cells of the shown bank to repaint

	ramp [256]tcell.Style
}

type config struct {
	banks   int
	off, on colorful.Color
	ox, oy  int
}

// Option configures a Sink.
type Option func(*config) error

// WithBanks sets the number of banks.
func WithBanks(n int) Option {
	return func(c *config) error {
		if n <= 0 {
			return fmt.Errorf("termsink: %d banks", n)
		}
		c.banks = n
		return nil
	}
}

// WithColors sets the ramp end points as hex colors, e.g. "#000000" and
// "#ff0000".
func WithColors(off, on string) Option {
	return func(c *config) error {
		var err error
		if c.off, err = colorful.Hex(off); err != nil {
			return fmt.Errorf("termsink: off color: %w", err)
		}
		if c.on, err = colorful.Hex(on); err != nil {
			return fmt.Errorf("termsink: on color: %w", err)
		}
		return nil
	}
}

// WithOrigin places the panel's top-left LED at screen cell (x, y).
func WithOrigin(x, y int) Option {
	return func(c *config) error {
		c.ox, c.oy = x, y
		return nil
	}
}

// New creates a sink drawing on screen. The screen must already be
// initialized; the sink never calls Init or Fini.
func New(screen tcell.Screen, width, height int, opts ...Option) (*Sink, error) {
	if screen == nil {
		return nil, errors.New("termsink: nil screen")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("termsink: panel size %dx%d", width, height)
	}
	c := config{banks: DefaultBanks}
	for _, opt := range append([]Option{WithColors(DefaultOffColor, DefaultOnColor)}, opts...) {
		if err := opt(&c); err != nil {
			return nil, err
		}
	}

	s := &Sink{
		screen: screen,
		width:  width,
		height: height,
		ox:     c.ox,
		oy:     c.oy,
		banks:  make([][]uint8, c.banks),
		dirty:  dirty.New(width * height),
	}
	for i := range s.banks {
		s.banks[i] = make([]uint8, width*height)
	}
	for i := range s.ramp {
		s.ramp[i] = styleFor(c.off.BlendLuv(c.on, float64(i)/255))
	}
	s.dirty.MarkAll()
	return s, nil
}

func styleFor(c colorful.Color) tcell.Style {
	r, g, b := c.Clamped().RGB255()
	return tcell.StyleDefault.Background(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
}

// Width returns the number of LED columns.
func (s *Sink) Width() int { return s.width }

// Height returns the number of LED rows.
func (s *Sink) Height() int { return s.height }

// Banks returns the number of banks.
func (s *Sink) Banks() int { return len(s.banks) }

// Style returns the screen style used for brightness b.
func (s *Sink) Style(b uint8) tcell.Style { return s.ramp[b] }

// Cell returns the screen cell of the left half of LED index.
func (s *Sink) Cell(index int) (x, y int) {
	return s.ox + (index%s.width)*cellWidth, s.oy + index/s.width
}

func (s *Sink) bank(bank int) ([]uint8, error) {
	if bank < 0 || bank >= len(s.banks) {
		return nil, fmt.Errorf("%w: %d", ErrBank, bank)
	}
	return s.banks[bank], nil
}

// WritePixel stores brightness for LED index of bank. Nothing is drawn
// until PresentBank.
func (s *Sink) WritePixel(bank, index int, brightness uint8) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf, err := s.bank(bank)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(buf) {
		return fmt.Errorf("%w: %d", ErrIndex, index)
	}
	if buf[index] != brightness && bank == s.shown {
		s.dirty.Mark(index)
	}
	buf[index] = brightness
	return nil
}

// ReadPixel returns the stored brightness of LED index in bank.
func (s *Sink) ReadPixel(bank, index int) (uint8, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf, err := s.bank(bank)
	if err != nil {
		return 0, err
	}
	if index < 0 || index >= len(buf) {
		return 0, fmt.Errorf("%w: %d", ErrIndex, index)
	}
	return buf[index], nil
}

// ClearAll turns every LED of bank off.
func (s *Sink) ClearAll(bank int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf, err := s.bank(bank)
	if err != nil {
		return err
	}
	clear(buf)
	if bank == s.shown {
		s.dirty.MarkAll()
	}
	return nil
}

// PresentBank shows bank, repainting the LEDs that changed and flushing
// the screen.
func (s *Sink) PresentBank(bank int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.bank(bank); err != nil {
		return err
	}
	if bank != s.shown {
		s.shown = bank
		s.dirty.MarkAll()
	}
	s.paint()
	return nil
}

// Redraw repaints the whole panel, e.g. after the terminal was resized.
func (s *Sink) Redraw() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty.MarkAll()
	s.paint()
}

// paint draws the dirty LEDs of the shown bank. Callers hold mu.
func (s *Sink) paint() {
	buf := s.banks[s.shown]
	s.dirty.Drain(func(i int) {
		x, y := s.Cell(i)
		st := s.ramp[buf[i]]
		for dx := range cellWidth {
			s.screen.SetContent(x+dx, y, ' ', nil, st)
		}
	})
	s.screen.Show()
}
