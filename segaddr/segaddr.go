// Package segaddr implements the deterministic addressing scheme shared by
// store-backed containers: it maps a linear element index to the storage
// key of a segment plus the element's offset inside that segment.
//
// The scheme is a pure function of (base key, index, element width). It is
// never cached or persisted; any holder of the base key can recompute every
// segment key at any time. Deriving segment keys by hashing (base, segment
// number) makes no ordering or locality assumption on the store's key space
// and cannot collide with sibling keys stored near the base.
package segaddr

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/hupe1980/seglist/slotstore"
)

// SegmentWidth is the capacity of one segment in slot-units. A segment
// holds SegmentWidth/units packed elements of width units.
const SegmentWidth = slotstore.SlotUnits

// CheckUnits validates an element width. Widths are fixed per container
// and must be validated at construction, never per operation.
func CheckUnits(units uint32) error {
	if units == 0 || units > SegmentWidth {
		return fmt.Errorf("segaddr: element width %d slot-units out of range [1, %d]", units, SegmentWidth)
	}
	return nil
}

// Capacity returns how many elements of the given width fit in one
// segment. Panics if units is invalid; callers validate with CheckUnits
// at construction.
func Capacity(units uint32) uint32 {
	if err := CheckUnits(units); err != nil {
		panic(err)
	}
	return SegmentWidth / units
}

// SegmentKey derives the storage key of the n-th segment rooted at base.
// The derivation hashes the ordered pair so keys of distinct bases, and
// distinct segments of one base, never collide.
func SegmentKey(base slotstore.Key, segment uint64) slotstore.Key {
	var buf [len(base) + 8]byte
	copy(buf[:], base[:])
	binary.BigEndian.PutUint64(buf[len(base):], segment)
	return sha256.Sum256(buf[:])
}

// Locate maps a linear index to (segment key, offset). The offset is
// measured in slot-units from the start of the segment. Panics if units is
// invalid.
func Locate(base slotstore.Key, index uint32, units uint32) (slotstore.Key, uint32) {
	capacity := Capacity(units)
	segment := uint64(index / capacity)
	slot := index % capacity
	return SegmentKey(base, segment), slot * units
}
