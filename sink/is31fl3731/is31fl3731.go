// Copyright 2026 The ledgrid Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package is31fl3731 drives the ISSI IS31FL3731 charlieplexed LED matrix
// controller over I²C.
//
// The chip holds 8 frames ("banks") of 144 PWM registers each and can show
// any one of them. Dev implements the ledgrid sink contract: writes go to a
// frame, PresentBank switches the displayed frame, and the 24-byte
// auto-increment window is exposed for bulk fills.
//
// Boards route the matrix differently. The Adafruit 16×9 breakout is plain
// row-major; the 15×7 CharliePlex FeatherWing needs WingTransform.
package is31fl3731

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"

	"github.com/ledkit/ledgrid"
)

const (
	// LEDs is the number of PWM registers per frame.
	LEDs = 144
	// Frames is the number of frames the chip stores.
	Frames = 8
	// ChunkSize is the longest PWM run written in one transfer.
	ChunkSize = 24

	commandRegister = 0xFD
	functionPage    = 0x0B

	regConfig       = 0x00
	regPictureFrame = 0x01
	regAudioSync    = 0x06
	regShutdown     = 0x0A

	configPictureMode = 0x00

	ledControlEnd = 0x11 // LED on/off registers are 0x00..0x11
	pwmBase       = 0x24

	startupDelay = 10 * time.Millisecond
)

// sleep is replaced in tests.
var sleep = time.Sleep

// Opts describes a board.
type Opts struct {
	// Addr is the I²C address: 0x74 to 0x77 depending on the AD pin.
	Addr uint16
	// Width and Height are the logical panel size.
	Width  int
	Height int
}

// DefaultOpts is the 16×9 breakout at the default address.
var DefaultOpts = Opts{Addr: 0x74, Width: 16, Height: 9}

// WingOpts is the 15×7 CharliePlex FeatherWing. Use it with WingTransform.
var WingOpts = Opts{Addr: 0x74, Width: 15, Height: 7}

var (
	// ErrBank is returned for a frame outside [0, 8).
	ErrBank = errors.New("is31fl3731: frame out of range")
	// ErrIndex is returned for a PWM index outside [0, 144).
	ErrIndex = errors.New("is31fl3731: LED index out of range")
)

// Dev is a handle to an IS31FL3731. It is safe for concurrent use.
type Dev struct {
	mu   sync.Mutex
	c    conn.Conn
	opts Opts
	page int // selected register page, -1 when unknown
}

// New opens the chip at opts.Addr on bus and initializes it: wakes it from
// shutdown, selects picture mode showing frame 0, enables and clears every
// LED of all 8 frames, and disables audio sync.
func New(bus i2c.Bus, opts Opts) (*Dev, error) {
	if opts.Width <= 0 || opts.Height <= 0 || opts.Width*opts.Height > LEDs {
		return nil, fmt.Errorf("is31fl3731: panel %dx%d does not fit %d LEDs", opts.Width, opts.Height, LEDs)
	}
	d := &Dev{
		c:    &i2c.Dev{Bus: bus, Addr: opts.Addr},
		opts: opts,
		page: -1,
	}
	if err := d.init(); err != nil {
		return nil, err
	}
	ledgrid.Logger().Debug("is31fl3731 opened", "addr", fmt.Sprintf("%#x", opts.Addr), "width", opts.Width, "height", opts.Height)
	return d, nil
}

func (d *Dev) init() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.writeReg(functionPage, regShutdown, 0x00); err != nil {
		return err
	}
	sleep(startupDelay)
	if err := d.writeReg(functionPage, regShutdown, 0x01); err != nil {
		return err
	}
	if err := d.writeReg(functionPage, regConfig, configPictureMode); err != nil {
		return err
	}
	if err := d.writeReg(functionPage, regPictureFrame, 0); err != nil {
		return err
	}
	for f := range byte(Frames) {
		for r := byte(0); r <= ledControlEnd; r++ {
			if err := d.writeReg(f, r, 0xff); err != nil {
				return err
			}
		}
		if err := d.clear(f); err != nil {
			return err
		}
	}
	return d.writeReg(functionPage, regAudioSync, 0x00)
}

// String implements conn.Resource.
func (d *Dev) String() string {
	return fmt.Sprintf("IS31FL3731{%#x}", d.opts.Addr)
}

// Halt puts the chip in software shutdown. Frame contents are kept; the
// next PresentBank does not wake it, call New again.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeReg(functionPage, regShutdown, 0x00)
}

// Width returns the logical panel width.
func (d *Dev) Width() int { return d.opts.Width }

// Height returns the logical panel height.
func (d *Dev) Height() int { return d.opts.Height }

// Banks returns the number of frames.
func (d *Dev) Banks() int { return Frames }

// MaxWriteSize returns the longest PWM run BulkWrite accepts.
func (d *Dev) MaxWriteSize() int { return ChunkSize }

// WritePixel sets the PWM duty of LED index in frame bank.
func (d *Dev) WritePixel(bank, index int, brightness uint8) error {
	if err := checkRange(bank, index, 1); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeReg(byte(bank), pwmBase+byte(index), brightness)
}

// BulkWrite writes up to ChunkSize consecutive PWM registers of frame bank,
// starting at LED offset, in one auto-increment transfer.
func (d *Dev) BulkWrite(bank, offset int, data []byte) error {
	if len(data) > ChunkSize {
		return fmt.Errorf("is31fl3731: bulk write of %d bytes exceeds %d", len(data), ChunkSize)
	}
	if len(data) == 0 {
		return nil
	}
	if err := checkRange(bank, offset, len(data)); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.selectPage(byte(bank)); err != nil {
		return err
	}
	buf := make([]byte, 1+len(data))
	buf[0] = pwmBase + byte(offset)
	copy(buf[1:], data)
	return d.tx(buf, nil)
}

// ReadPixel reads back the PWM duty of LED index in frame bank.
func (d *Dev) ReadPixel(bank, index int) (uint8, error) {
	if err := checkRange(bank, index, 1); err != nil {
		return 0, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.selectPage(byte(bank)); err != nil {
		return 0, err
	}
	var r [1]byte
	if err := d.tx([]byte{pwmBase + byte(index)}, r[:]); err != nil {
		return 0, err
	}
	return r[0], nil
}

// ClearAll zeroes every PWM register of frame bank.
func (d *Dev) ClearAll(bank int) error {
	if bank < 0 || bank >= Frames {
		return fmt.Errorf("%w: %d", ErrBank, bank)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.clear(byte(bank))
}

// PresentBank displays frame bank.
func (d *Dev) PresentBank(bank int) error {
	if bank < 0 || bank >= Frames {
		return fmt.Errorf("%w: %d", ErrBank, bank)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeReg(functionPage, regPictureFrame, byte(bank))
}

func checkRange(bank, index, n int) error {
	if bank < 0 || bank >= Frames {
		return fmt.Errorf("%w: %d", ErrBank, bank)
	}
	if index < 0 || index+n > LEDs {
		return fmt.Errorf("%w: [%d, %d)", ErrIndex, index, index+n)
	}
	return nil
}

// clear zeroes the PWM registers of frame f in ChunkSize runs.
// Callers hold mu.
func (d *Dev) clear(f byte) error {
	if err := d.selectPage(f); err != nil {
		return err
	}
	var buf [1 + ChunkSize]byte
	for i := range LEDs / ChunkSize {
		buf[0] = pwmBase + byte(i*ChunkSize)
		if err := d.tx(buf[:], nil); err != nil {
			return err
		}
	}
	return nil
}

// writeReg writes one register of page. Callers hold mu.
func (d *Dev) writeReg(page, reg, v byte) error {
	if err := d.selectPage(page); err != nil {
		return err
	}
	return d.tx([]byte{reg, v}, nil)
}

// selectPage points the command register at page unless it already is.
// Callers hold mu.
func (d *Dev) selectPage(page byte) error {
	if d.page == int(page) {
		return nil
	}
	if err := d.tx([]byte{commandRegister, page}, nil); err != nil {
		return err
	}
	d.page = int(page)
	return nil
}

// tx runs one transfer. A failure forgets the selected page, since the
// chip may or may not have seen the write.
func (d *Dev) tx(w, r []byte) error {
	if err := d.c.Tx(w, r); err != nil {
		d.page = -1
		return fmt.Errorf("is31fl3731: %w", err)
	}
	return nil
}

// WingTransform maps the 15×7 CharliePlex FeatherWing onto the chip's PWM
// registers. The Wing's matrix is folded: columns 8..14 are wired into the
// second half of the register space, mirrored.
func WingTransform(x, y int) int {
	if x > 7 {
		x = 15 - x
		y += 8
	} else {
		y = 7 - y
	}
	x, y = y, x
	return x + y*16
}

var (
	_ conn.Resource       = (*Dev)(nil)
	_ ledgrid.Sink        = (*Dev)(nil)
	_ ledgrid.BulkWriter  = (*Dev)(nil)
	_ ledgrid.PixelReader = (*Dev)(nil)
	_ ledgrid.Banked      = (*Dev)(nil)
	_ ledgrid.Transform   = WingTransform
)
