// Package codec defines the fixed-width serialization capability every
// element type stored in a segmented container must supply.
//
// A Fixed codec declares a constant physical width in slot-units and
// produces exactly that many bytes for every value. The width is a
// breaking-change boundary: changing a type's width after data has been
// written leaves previously persisted elements unreadable.
package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/hupe1980/seglist/slotstore"
)

// Fixed encodes and decodes values of type T at a constant physical width.
// Implementations must be stateless or safe for concurrent use.
type Fixed[T any] interface {
	// Name is a stable identifier for the encoding.
	Name() string

	// Units is the constant width of one encoded value in slot-units.
	Units() uint32

	// Marshal encodes v into exactly Units()*slotstore.UnitSize bytes.
	Marshal(v T) ([]byte, error)

	// Unmarshal decodes a value from exactly Units()*slotstore.UnitSize bytes.
	Unmarshal(data []byte) (T, error)
}

// Size returns the byte width of one value encoded by c.
func Size[T any](c Fixed[T]) int {
	return int(c.Units()) * slotstore.UnitSize
}

func checkWidth(name string, units uint32, data []byte) error {
	if want := int(units) * slotstore.UnitSize; len(data) != want {
		return fmt.Errorf("codec %s: want %d bytes, got %d", name, want, len(data))
	}
	return nil
}

// Uint32 encodes a uint32 in one slot-unit, big-endian, right-aligned.
type Uint32 struct{}

// Name implements Fixed.
func (Uint32) Name() string { return "uint32" }

// Units implements Fixed.
func (Uint32) Units() uint32 { return 1 }

// Marshal implements Fixed.
func (Uint32) Marshal(v uint32) ([]byte, error) {
	buf := make([]byte, slotstore.UnitSize)
	binary.BigEndian.PutUint32(buf[slotstore.UnitSize-4:], v)
	return buf, nil
}

// Unmarshal implements Fixed.
func (c Uint32) Unmarshal(data []byte) (uint32, error) {
	if err := checkWidth(c.Name(), c.Units(), data); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(data[slotstore.UnitSize-4:]), nil
}

// Uint64 encodes a uint64 in one slot-unit, big-endian, right-aligned.
type Uint64 struct{}

// Name implements Fixed.
func (Uint64) Name() string { return "uint64" }

// Units implements Fixed.
func (Uint64) Units() uint32 { return 1 }

// Marshal implements Fixed.
func (Uint64) Marshal(v uint64) ([]byte, error) {
	buf := make([]byte, slotstore.UnitSize)
	binary.BigEndian.PutUint64(buf[slotstore.UnitSize-8:], v)
	return buf, nil
}

// Unmarshal implements Fixed.
func (c Uint64) Unmarshal(data []byte) (uint64, error) {
	if err := checkWidth(c.Name(), c.Units(), data); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(data[slotstore.UnitSize-8:]), nil
}

// Key encodes a slotstore.Key in one slot-unit as its raw 32 bytes.
// Storing keys as elements is what lets containers hold handles to other
// store-backed structures.
type Key struct{}

// Name implements Fixed.
func (Key) Name() string { return "key" }

// Units implements Fixed.
func (Key) Units() uint32 { return 1 }

// Marshal implements Fixed.
func (Key) Marshal(v slotstore.Key) ([]byte, error) {
	buf := make([]byte, slotstore.UnitSize)
	copy(buf, v[:])
	return buf, nil
}

// Unmarshal implements Fixed.
func (c Key) Unmarshal(data []byte) (slotstore.Key, error) {
	var k slotstore.Key
	if err := checkWidth(c.Name(), c.Units(), data); err != nil {
		return k, err
	}
	copy(k[:], data)
	return k, nil
}

// Raw passes opaque fixed-width byte blocks through unchanged. The caller
// owns the interpretation of the bytes.
type Raw struct {
	units uint32
}

// NewRaw creates a Raw codec of the given width in slot-units.
func NewRaw(units uint32) Raw {
	return Raw{units: units}
}

// Name implements Fixed.
func (c Raw) Name() string { return fmt.Sprintf("raw-%d", c.units) }

// Units implements Fixed.
func (c Raw) Units() uint32 { return c.units }

// Marshal implements Fixed.
func (c Raw) Marshal(v []byte) ([]byte, error) {
	if err := checkWidth(c.Name(), c.units, v); err != nil {
		return nil, err
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Unmarshal implements Fixed.
func (c Raw) Unmarshal(data []byte) ([]byte, error) {
	if err := checkWidth(c.Name(), c.units, data); err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}
