package slotstore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrNotFound is returned when no slot exists under a key.
//
// Implementations must return an error that satisfies
// `errors.Is(err, ErrNotFound)`.
var ErrNotFound = errors.New("slotstore: slot not found")

// ErrOutOfRange is returned when an offset access falls outside the
// fixed slot extent.
var ErrOutOfRange = errors.New("slotstore: offset out of slot range")

const (
	// UnitSize is the size of one slot-unit in bytes, the store's smallest
	// addressable physical unit. Element widths are measured in slot-units.
	UnitSize = 32

	// SlotUnits is the fixed width of one slot in slot-units.
	SlotUnits = 256

	// SlotSize is the maximum byte extent of a single slot.
	SlotSize = SlotUnits * UnitSize
)

// Key is an opaque 32-byte storage key.
type Key [32]byte

// Domain is a partition identifier scoping keys, so unrelated containers
// do not collide even with coincidentally equal keys.
type Domain string

// KeyOf derives a key from a name by hashing it. Use this to root
// containers at stable, human-chosen base addresses.
func KeyOf(name string) Key {
	return sha256.Sum256([]byte(name))
}

// ParseKey parses a key from its hex form.
func ParseKey(s string) (Key, error) {
	var k Key
	b, err := hex.DecodeString(s)
	if err != nil {
		return k, fmt.Errorf("slotstore: parse key: %w", err)
	}
	if len(b) != len(k) {
		return k, fmt.Errorf("slotstore: parse key: want %d bytes, got %d", len(k), len(b))
	}
	copy(k[:], b)
	return k, nil
}

// String returns the hex form of the key.
func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// Store is the slot-addressed key-value substrate containers are built on.
//
// A slot is a fixed-width byte extent (at most SlotSize bytes) addressed by
// an opaque Key within a Domain. Slots are sparse: offset writes create and
// zero-extend the slot as needed, and offset reads past the written extent
// of an existing slot return zero bytes. The store makes no ordering or
// locality promise across keys.
//
// Implementations must be safe for concurrent use. Multi-writer isolation
// for a single slot is not promised.
type Store interface {
	// Read returns the full written extent of the slot under key.
	// Returns ErrNotFound if no slot exists.
	Read(ctx context.Context, domain Domain, key Key) ([]byte, error)

	// Write replaces the slot under key with data.
	Write(ctx context.Context, domain Domain, key Key, data []byte) error

	// ReadAt reads n bytes starting at byte offset off within the slot.
	// Returns ErrNotFound if no slot exists under key.
	ReadAt(ctx context.Context, domain Domain, key Key, off, n int) ([]byte, error)

	// WriteAt writes data at byte offset off within the slot, creating the
	// slot and zero-extending it if needed.
	WriteAt(ctx context.Context, domain Domain, key Key, off int, data []byte) error
}

// CheckRange validates an offset access against the fixed slot extent.
// Backends share this so out-of-range accesses fail uniformly.
func CheckRange(off, n int) error {
	if off < 0 || n < 0 || off+n > SlotSize {
		return fmt.Errorf("%w: off=%d n=%d slot=%d", ErrOutOfRange, off, n, SlotSize)
	}
	return nil
}
