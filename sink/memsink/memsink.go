// Copyright 2026 The ledgrid Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package memsink provides an in-memory LED sink.
//
// The sink keeps one byte buffer per bank, counts every call, can be told
// to fail, and renders the displayed bank as an image. It backs the tests of
// the ledgrid packages and the PNG output of the ledgrid command.
package memsink

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
)

// DefaultBanks is the number of banks a Sink has unless WithBanks is used.
const DefaultBanks = 8

// ErrIndex is returned for a pixel index outside the bank.
var ErrIndex = errors.New("memsink: pixel index out of range")

// ErrBank is returned for a bank the sink does not have.
var ErrBank = errors.New("memsink: bank out of range")

// BulkCall records one BulkWrite.
type BulkCall struct {
	Bank   int
	Offset int
	Len    int
}

// Stats counts sink calls.
type Stats struct {
	Writes   int // WritePixel calls
	Bulk     []BulkCall
	Clears   int
	Presents int
	Reads    int
}

// Sink is an in-memory Sink. The zero value is not usable; call New.
type Sink struct {
	width  int
	height int
	cells  int // pixels per bank
	banks  [][]uint8

	shown    int
	maxWrite int
	fail     error

	Stats Stats
}

// Option configures a Sink.
type Option func(*Sink)

// WithBanks sets the number of banks. A non-positive n leaves no banks.
func WithBanks(n int) Option {
	return func(s *Sink) { s.banks = make([][]uint8, max(n, 0)) }
}

// WithCells sets the number of physical pixels per bank, for boards whose
// index space is larger than width×height.
func WithCells(n int) Option {
	return func(s *Sink) { s.cells = n }
}

// WithMaxWrite enables BulkWrite transfers of at most n bytes.
// Without it MaxWriteSize reports 0 (unlimited).
func WithMaxWrite(n int) Option {
	return func(s *Sink) { s.maxWrite = n }
}

// New creates a width×height sink with all banks cleared.
func New(width, height int, opts ...Option) *Sink {
	s := &Sink{
		width:  width,
		height: height,
		cells:  max(width, 0) * max(height, 0),
		banks:  make([][]uint8, DefaultBanks),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cells = max(s.cells, 0)
	for i := range s.banks {
		s.banks[i] = make([]uint8, s.cells)
	}
	return s
}

// Width returns the number of columns.
func (s *Sink) Width() int { return s.width }

// Height returns the number of rows.
func (s *Sink) Height() int { return s.height }

// Banks returns the number of banks.
func (s *Sink) Banks() int { return len(s.banks) }

// MaxWriteSize returns the bulk transfer limit set with WithMaxWrite.
func (s *Sink) MaxWriteSize() int { return s.maxWrite }

// Fail makes every following call return err. Pass nil to recover.
func (s *Sink) Fail(err error) {
	s.fail = err
}

func (s *Sink) bank(bank int) ([]uint8, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	if bank < 0 || bank >= len(s.banks) {
		return nil, fmt.Errorf("%w: %d", ErrBank, bank)
	}
	return s.banks[bank], nil
}

// WritePixel sets pixel index of bank.
func (s *Sink) WritePixel(bank, index int, brightness uint8) error {
	s.Stats.Writes++
	buf, err := s.bank(bank)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(buf) {
		return fmt.Errorf("%w: %d", ErrIndex, index)
	}
	buf[index] = brightness
	return nil
}

// BulkWrite copies data into bank starting at offset.
func (s *Sink) BulkWrite(bank, offset int, data []byte) error {
	s.Stats.Bulk = append(s.Stats.Bulk, BulkCall{Bank: bank, Offset: offset, Len: len(data)})
	buf, err := s.bank(bank)
	if err != nil {
		return err
	}
	if s.maxWrite > 0 && len(data) > s.maxWrite {
		return fmt.Errorf("memsink: bulk write of %d bytes exceeds %d", len(data), s.maxWrite)
	}
	if offset < 0 || offset+len(data) > len(buf) {
		return fmt.Errorf("%w: [%d, %d)", ErrIndex, offset, offset+len(data))
	}
	copy(buf[offset:], data)
	return nil
}

// ReadPixel returns pixel index of bank.
func (s *Sink) ReadPixel(bank, index int) (uint8, error) {
	s.Stats.Reads++
	buf, err := s.bank(bank)
	if err != nil {
		return 0, err
	}
	if index < 0 || index >= len(buf) {
		return 0, fmt.Errorf("%w: %d", ErrIndex, index)
	}
	return buf[index], nil
}

// ClearAll zeroes bank.
func (s *Sink) ClearAll(bank int) error {
	s.Stats.Clears++
	buf, err := s.bank(bank)
	if err != nil {
		return err
	}
	clear(buf)
	return nil
}

// PresentBank makes bank the displayed one.
func (s *Sink) PresentBank(bank int) error {
	s.Stats.Presents++
	if _, err := s.bank(bank); err != nil {
		return err
	}
	s.shown = bank
	return nil
}

// Shown returns the displayed bank.
func (s *Sink) Shown() int { return s.shown }

// Frame returns the pixels of bank. The slice aliases the sink's buffer.
func (s *Sink) Frame(bank int) []uint8 {
	return s.banks[bank]
}

// ResetStats zeroes the call counters.
func (s *Sink) ResetStats() {
	s.Stats = Stats{}
}

// Image returns the displayed bank as a grayscale image, reading pixels in
// row-major order.
func (s *Sink) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, max(s.width, 0), max(s.height, 0)))
	if s.shown < len(s.banks) {
		copy(img.Pix, s.banks[s.shown])
	}
	return img
}

// SavePNG writes the displayed bank to a PNG file, scaling every LED to a
// scale×scale block.
func (s *Sink) SavePNG(path string, scale int) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, upscale(s.Image(), max(scale, 1)))
}

func upscale(src *image.Gray, scale int) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	for y := 0; y < dst.Rect.Dy(); y++ {
		for x := 0; x < dst.Rect.Dx(); x++ {
			dst.Pix[y*dst.Stride+x] = src.Pix[(y/scale)*src.Stride+x/scale]
		}
	}
	return dst
}
