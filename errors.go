package seglist

import (
	"errors"
	"fmt"
)

var (
	// ErrLengthOverflow is returned when an append or bulk load would grow
	// the list past the maximum representable length.
	ErrLengthOverflow = errors.New("seglist: length overflows uint32")
)

// ErrIndexOutOfRange indicates an index access past the live range of the
// list. It is a caller contract violation: Set and MustGet panic with it
// rather than returning it, since an out-of-range write or strict read
// signals a logic error upstream, not an environmental failure.
type ErrIndexOutOfRange struct {
	Index  uint32
	Length uint32
}

func (e *ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("index out of range: %d with length %d", e.Index, e.Length)
}
