package seglist

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/hupe1980/seglist/codec"
	"github.com/hupe1980/seglist/segaddr"
	"github.com/hupe1980/seglist/slotstore"
)

// lengthCodec encodes the persisted length counter. The counter is the
// only state a list stores at its base key; it occupies one slot-unit.
var lengthCodec = codec.Uint32{}

// List is a growable, indexable sequence of fixed-width elements persisted
// on a slot-addressed key-value store.
//
// A list is identified by a (domain, base key) pair. Element slots are
// packed into segments whose keys are derived from the base key by package
// segaddr; the list itself persists nothing but its length, which lives in
// the first slot-unit at the base key. Wherever a list is embedded inside
// a containing structure it therefore occupies one slot-unit, regardless
// of how many elements it holds.
//
// A List is a single-writer structure: concurrent mutation of the same
// (domain, base) pair is not supported. Concurrent readers are safe
// whenever the underlying store is. Nothing is cached; every operation
// goes to the store.
type List[T any] struct {
	store   slotstore.Store
	domain  slotstore.Domain
	base    slotstore.Key
	fixed   codec.Fixed[T]
	length  uint32
	logger  *Logger
	metrics MetricsCollector
}

// Attach constructs a list rooted at base, reading its persisted length
// from the store. A key with no persisted length is a fresh, empty list;
// there is no uninitialized state distinguishable from length zero.
//
// The element codec's width is validated here once. Lists never re-check
// it per operation, and changing the width after data has been written is
// undefined.
func Attach[T any](ctx context.Context, store slotstore.Store, domain slotstore.Domain, base slotstore.Key, fixed codec.Fixed[T], opts ...Option) (*List[T], error) {
	if err := segaddr.CheckUnits(fixed.Units()); err != nil {
		return nil, err
	}

	opt := options{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
	for _, fn := range opts {
		fn(&opt)
	}

	l := &List[T]{
		store:   store,
		domain:  domain,
		base:    base,
		fixed:   fixed,
		logger:  opt.logger.WithList(string(domain), base.String()),
		metrics: opt.metrics,
	}

	raw, err := store.ReadAt(ctx, domain, base, 0, slotstore.UnitSize)
	switch {
	case errors.Is(err, slotstore.ErrNotFound):
		// Fresh address.
	case err != nil:
		return nil, fmt.Errorf("seglist: attach %s: %w", base, err)
	default:
		length, err := lengthCodec.Unmarshal(raw)
		if err != nil {
			return nil, fmt.Errorf("seglist: attach %s: %w", base, err)
		}
		l.length = length
	}

	return l, nil
}

// Len returns the number of live elements. O(1), no store traffic.
func (l *List[T]) Len() uint32 {
	return l.length
}

// IsEmpty reports whether the list has no live elements.
func (l *List[T]) IsEmpty() bool {
	return l.length == 0
}

// Base returns the base key the list is rooted at.
func (l *List[T]) Base() slotstore.Key {
	return l.base
}

// Domain returns the store domain the list lives in.
func (l *List[T]) Domain() slotstore.Domain {
	return l.domain
}

// Append writes v at the end of the list and returns the index it was
// written at. One element write plus one length write.
func (l *List[T]) Append(ctx context.Context, v T) (uint32, error) {
	if l.length == math.MaxUint32 {
		return 0, ErrLengthOverflow
	}

	start := time.Now()
	index := l.length
	if err := l.writeElem(ctx, index, v); err != nil {
		l.logger.LogAppend(ctx, index, err)
		l.metrics.RecordAppend(time.Since(start), err)
		return 0, err
	}
	if err := l.writeLength(ctx, index+1); err != nil {
		l.logger.LogAppend(ctx, index, err)
		l.metrics.RecordAppend(time.Since(start), err)
		return 0, err
	}
	l.length = index + 1

	l.logger.LogAppend(ctx, index, nil)
	l.metrics.RecordAppend(time.Since(start), nil)
	return index, nil
}

// Get returns the element at index. The second return is false when index
// is at or past the live length; out-of-range reads are an expected
// outcome, not an error.
func (l *List[T]) Get(ctx context.Context, index uint32) (T, bool, error) {
	var zero T
	if index >= l.length {
		return zero, false, nil
	}
	v, err := l.readElem(ctx, index)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

// MustGet is the strict index view: it panics on an out-of-range index or
// a store failure. For call sites that have already established the index
// is valid.
func (l *List[T]) MustGet(ctx context.Context, index uint32) T {
	if index >= l.length {
		panic(&ErrIndexOutOfRange{Index: index, Length: l.length})
	}
	v, err := l.readElem(ctx, index)
	if err != nil {
		panic(err)
	}
	return v
}

// Set overwrites the element at index. The index must be live: writing
// past the end is a caller contract violation and panics, never an
// implicit extension. The length is unchanged.
func (l *List[T]) Set(ctx context.Context, index uint32, v T) error {
	if index >= l.length {
		panic(&ErrIndexOutOfRange{Index: index, Length: l.length})
	}
	return l.writeElem(ctx, index, v)
}

// Pop removes and returns the last element. The second return is false on
// an empty list.
//
// The vacated slot is deliberately not zeroed: it is unreachable once the
// length is decremented, and the next Append reuses the same address.
// This saves one store write per pop.
func (l *List[T]) Pop(ctx context.Context) (T, bool, error) {
	var zero T
	if l.length == 0 {
		return zero, false, nil
	}

	start := time.Now()
	last := l.length - 1
	v, err := l.readElem(ctx, last)
	if err != nil {
		l.logger.LogPop(ctx, last, err)
		l.metrics.RecordPop(time.Since(start), err)
		return zero, false, err
	}
	if err := l.writeLength(ctx, last); err != nil {
		l.logger.LogPop(ctx, last, err)
		l.metrics.RecordPop(time.Since(start), err)
		return zero, false, err
	}
	l.length = last

	l.logger.LogPop(ctx, last, nil)
	l.metrics.RecordPop(time.Since(start), nil)
	return v, true, nil
}

// Clear truncates the list to length zero with a single length write.
// Element slots are left in place, unreachable.
func (l *List[T]) Clear(ctx context.Context) error {
	if err := l.writeLength(ctx, 0); err != nil {
		return err
	}
	l.length = 0
	return nil
}

// Slice materializes all live elements in index order. O(n) store reads.
func (l *List[T]) Slice(ctx context.Context) ([]T, error) {
	out := make([]T, 0, l.length)
	for i := uint32(0); i < l.length; i++ {
		v, err := l.readElem(ctx, i)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Load bulk-overwrites the list with items. Each element is written at its
// computed address, then the length is persisted exactly once. Stale
// elements past the new length are left in place, unreachable.
//
// An interrupted Load can leave elements written with the old length still
// persisted; under the single-writer model the caller simply retries.
func (l *List[T]) Load(ctx context.Context, items []T) error {
	if len(items) > math.MaxUint32 {
		return ErrLengthOverflow
	}

	start := time.Now()
	for i, v := range items {
		if err := l.writeElem(ctx, uint32(i), v); err != nil {
			l.logger.LogLoad(ctx, len(items), err)
			l.metrics.RecordLoad(i, time.Since(start), err)
			return err
		}
	}
	length := uint32(len(items))
	if err := l.writeLength(ctx, length); err != nil {
		l.logger.LogLoad(ctx, len(items), err)
		l.metrics.RecordLoad(len(items), time.Since(start), err)
		return err
	}
	l.length = length

	l.logger.LogLoad(ctx, len(items), nil)
	l.metrics.RecordLoad(len(items), time.Since(start), nil)
	return nil
}

// locate maps a logical index to its segment key and byte offset.
func (l *List[T]) locate(index uint32) (slotstore.Key, int) {
	key, off := segaddr.Locate(l.base, index, l.fixed.Units())
	return key, int(off) * slotstore.UnitSize
}

func (l *List[T]) readElem(ctx context.Context, index uint32) (T, error) {
	var zero T
	start := time.Now()
	key, off := l.locate(index)
	raw, err := l.store.ReadAt(ctx, l.domain, key, off, codec.Size(l.fixed))
	l.metrics.RecordRead(time.Since(start), err)
	if err != nil {
		return zero, fmt.Errorf("seglist: read index %d: %w", index, err)
	}
	v, err := l.fixed.Unmarshal(raw)
	if err != nil {
		return zero, fmt.Errorf("seglist: decode index %d: %w", index, err)
	}
	return v, nil
}

func (l *List[T]) writeElem(ctx context.Context, index uint32, v T) error {
	raw, err := l.fixed.Marshal(v)
	if err != nil {
		return fmt.Errorf("seglist: encode index %d: %w", index, err)
	}
	if len(raw) != codec.Size(l.fixed) {
		return fmt.Errorf("seglist: codec %s produced %d bytes, want %d", l.fixed.Name(), len(raw), codec.Size(l.fixed))
	}
	start := time.Now()
	key, off := l.locate(index)
	err = l.store.WriteAt(ctx, l.domain, key, off, raw)
	l.metrics.RecordWrite(time.Since(start), err)
	if err != nil {
		return fmt.Errorf("seglist: write index %d: %w", index, err)
	}
	return nil
}

func (l *List[T]) writeLength(ctx context.Context, length uint32) error {
	raw, err := lengthCodec.Marshal(length)
	if err != nil {
		return err
	}
	if err := l.store.WriteAt(ctx, l.domain, l.base, 0, raw); err != nil {
		return fmt.Errorf("seglist: write length: %w", err)
	}
	return nil
}
