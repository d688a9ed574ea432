package ledgrid

// Sink is the output device: an addressable LED driver and its transport.
//
// A Sink has a fixed size for its lifetime. Pixels are addressed by a
// physical index, produced from grid coordinates by the grid's [Transform].
// Every call names the bank (frame) it targets, so the sink keeps no notion
// of a "current" bank of its own.
//
// Calls may block on the transport. Timeouts belong to the sink; the grid
// neither retries nor times out a sink call, it returns the error.
type Sink interface {
	// Width returns the number of logical columns.
	Width() int

	// Height returns the number of logical rows.
	Height() int

	// WritePixel sets the brightness of one pixel in bank.
	WritePixel(bank, index int, brightness uint8) error

	// ClearAll sets every pixel in bank to zero.
	ClearAll(bank int) error

	// PresentBank displays bank.
	PresentBank(bank int) error
}

// BulkWriter is implemented by sinks that accept several consecutive pixels
// in one transfer.
type BulkWriter interface {
	// MaxWriteSize returns the largest data length BulkWrite accepts.
	// A value <= 0 means unlimited.
	MaxWriteSize() int

	// BulkWrite sets len(data) consecutive pixels of bank starting at
	// physical index offset. The sink must not retain data.
	BulkWrite(bank, offset int, data []byte) error
}

// PixelReader is implemented by sinks that can read pixel state back.
type PixelReader interface {
	ReadPixel(bank, index int) (uint8, error)
}

// Banked is implemented by sinks with a fixed number of banks.
// Banks are numbered from zero.
type Banked interface {
	Banks() int
}
