// Package seglist provides a growable, indexable list abstraction over a
// sparse, slot-addressed key-value store.
//
// A List lets a caller treat a logically unbounded sequence of fixed-width
// elements as if it were an in-memory array, while the underlying store
// only ever exposes fixed-width slots addressed by opaque keys. Elements
// are packed several per segment; segment keys are derived
// deterministically from the list's base key, so the mapping from index to
// storage address is a pure function that is never cached or stored.
//
// # Quick start
//
//	ctx := context.Background()
//	store := slotstore.NewMemory()
//
//	list, _ := seglist.Attach[uint64](ctx, store, "app", slotstore.KeyOf("scores"), codec.Uint64{})
//	_, _ = list.Append(ctx, 10)
//	_, _ = list.Append(ctx, 20)
//	v, ok, _ := list.Get(ctx, 1) // 20, true
//
// Swap slotstore.NewMemory for a Local, S3, MinIO, DynamoDB or Badger
// backed store without touching list code.
//
// # Model
//
// A list persists exactly one piece of its own state: its length, stored
// in one slot-unit at the base key. Everything else lives at segment keys
// recomputed on demand. Embedding a list inside another store-backed
// structure therefore costs one slot-unit, no matter how large the list
// grows.
//
// Lists are single-writer. Out-of-range reads are an expected absence
// (comma-ok), out-of-range writes are a caller bug and panic, and store
// failures propagate unmodified. See the package examples for details.
package seglist
