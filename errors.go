package ledgrid

import "errors"

// Sentinel errors. Operations wrap them with context, so compare with
// [errors.Is].
var (
	// ErrInvalidConfiguration is returned by New for a missing or unusable
	// sink, and for a bank the sink cannot address.
	ErrInvalidConfiguration = errors.New("ledgrid: invalid configuration")

	// ErrOutOfRange is returned when reading a cell outside the grid.
	// Writes outside the grid are silently dropped instead.
	ErrOutOfRange = errors.New("ledgrid: coordinate out of range")

	// ErrInvalidArgument is returned for parameters that cannot produce a
	// result, such as a zero fade step that would never converge.
	ErrInvalidArgument = errors.New("ledgrid: invalid argument")

	// ErrSinkFailure matches every *SinkError.
	ErrSinkFailure = errors.New("ledgrid: sink failure")
)

// SinkError reports a failed call into the Sink. It matches ErrSinkFailure
// and unwraps to the error the sink returned.
//
// The pixel cache is not rolled back when a sink call fails: the cache keeps
// the requested value while the device may not. Call [Grid.Resync] to push
// the cache again.
type SinkError struct {
	Op  string // sink operation, e.g. "write pixel"
	Err error
}

func (e *SinkError) Error() string {
	return "ledgrid: sink " + e.Op + ": " + e.Err.Error()
}

func (e *SinkError) Unwrap() error { return e.Err }

// Is reports whether target is ErrSinkFailure.
func (e *SinkError) Is(target error) bool { return target == ErrSinkFailure }
