package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/ledkit/ledgrid"
	"github.com/ledkit/ledgrid/sink/chain"
	"github.com/ledkit/ledgrid/sink/is31fl3731"
	"github.com/ledkit/ledgrid/sink/memsink"
	"github.com/ledkit/ledgrid/sink/termsink"
)

// device is an opened sink plus whatever must be released with it.
type device struct {
	sink ledgrid.Sink
	opts []ledgrid.GridOption

	mem    *memsink.Sink   // mem sink only
	term   *termsink.Sink  // term sink only
	screen tcell.Screen    // term sink only
	closer []func() error
}

// openDevice opens the sink selected by --sink.
func openDevice() (*device, error) {
	switch flagSink {
	case "mem":
		m := memsink.New(flagWidth, flagHeight)
		return &device{sink: m, mem: m}, nil
	case "term":
		return openTerm()
	case "i2c":
		return openI2C()
	}
	return nil, fmt.Errorf("unknown sink %q (want mem, term or i2c)", flagSink)
}

func openTerm() (*device, error) {
	scr, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := scr.Init(); err != nil {
		return nil, err
	}
	ts, err := termsink.New(scr, flagWidth, flagHeight, termsink.WithOrigin(1, 1))
	if err != nil {
		scr.Fini()
		return nil, err
	}
	return &device{
		sink:   ts,
		term:   ts,
		screen: scr,
		closer: []func() error{func() error { scr.Fini(); return nil }},
	}, nil
}

func openI2C() (*device, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph init: %w", err)
	}
	bus, err := i2creg.Open(flagBus)
	if err != nil {
		return nil, fmt.Errorf("open I²C bus: %w", err)
	}
	d := &device{closer: []func() error{bus.Close}}

	opts := is31fl3731.DefaultOpts
	var tr ledgrid.Transform
	if flagWing {
		opts, tr = is31fl3731.WingOpts, is31fl3731.WingTransform
	}

	var panels []chain.Panel
	for _, a := range flagAddrs {
		addr, err := strconv.ParseUint(a, 0, 16)
		if err != nil {
			_ = d.close()
			return nil, fmt.Errorf("bad address %q: %w", a, err)
		}
		opts.Addr = uint16(addr)
		dev, err := is31fl3731.New(bus, opts)
		if err != nil {
			_ = d.close()
			return nil, err
		}
		d.closer = append(d.closer, dev.Halt)
		panels = append(panels, chain.Panel{Sink: dev, Transform: tr})
	}

	if len(panels) == 1 {
		d.sink = panels[0].Sink
		if tr != nil {
			d.opts = append(d.opts, ledgrid.WithTransform(tr))
		}
		return d, nil
	}
	c, err := chain.New(panels...)
	if err != nil {
		_ = d.close()
		return nil, err
	}
	d.sink = c
	return d, nil
}

// close releases resources in reverse order of acquisition.
func (d *device) close() error {
	var errs []error
	for i := len(d.closer) - 1; i >= 0; i-- {
		errs = append(errs, d.closer[i]())
	}
	d.closer = nil
	return errors.Join(errs...)
}

// finish writes the PNG for the mem sink when --out is set.
func (d *device) finish() error {
	if d.mem == nil || flagOut == "" {
		return nil
	}
	if err := d.mem.SavePNG(flagOut, flagScale); err != nil {
		return err
	}
	ledgrid.Logger().Info("saved", "path", flagOut, "width", d.mem.Width(), "height", d.mem.Height())
	return nil
}
