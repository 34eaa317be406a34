// Package badgerstore provides an embedded, persistent slot store on
// BadgerDB. It is the local-durability option: no network dependency, and
// offset writes are atomic read-modify-write transactions.
package badgerstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger"
	"github.com/hupe1980/seglist/slotstore"
)

// Store implements slotstore.Store on a badger key-value database.
// Domains are folded into the badger key space with a separator byte.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) a badger-backed slot store at dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badgerstore: open %s: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// New wraps an already open badger database.
func New(db *badger.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func dbKey(domain slotstore.Domain, key slotstore.Key) []byte {
	buf := make([]byte, 0, len(domain)+1+len(key))
	buf = append(buf, domain...)
	buf = append(buf, 0x00)
	return append(buf, key[:]...)
}

// Read implements slotstore.Store.
func (s *Store) Read(ctx context.Context, domain slotstore.Domain, key slotstore.Key) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(dbKey(domain, key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, slotstore.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("badgerstore: read: %w", err)
	}
	return data, nil
}

// Write implements slotstore.Store.
func (s *Store) Write(ctx context.Context, domain slotstore.Domain, key slotstore.Key, data []byte) error {
	if err := slotstore.CheckRange(0, len(data)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(dbKey(domain, key), data)
	})
	if err != nil {
		return fmt.Errorf("badgerstore: write: %w", err)
	}
	return nil
}

// ReadAt implements slotstore.Store. Reads past the written extent of an
// existing slot yield zero bytes.
func (s *Store) ReadAt(ctx context.Context, domain slotstore.Domain, key slotstore.Key, off, n int) ([]byte, error) {
	if err := slotstore.CheckRange(off, n); err != nil {
		return nil, err
	}

	data, err := s.Read(ctx, domain, key)
	if err != nil {
		return nil, err
	}

	out := make([]byte, n)
	if off < len(data) {
		copy(out, data[off:])
	}
	return out, nil
}

// WriteAt implements slotstore.Store. The read-modify-write cycle runs in
// a single badger transaction.
func (s *Store) WriteAt(ctx context.Context, domain slotstore.Domain, key slotstore.Key, off int, data []byte) error {
	if err := slotstore.CheckRange(off, len(data)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		var slot []byte
		item, err := txn.Get(dbKey(domain, key))
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
			// Fresh slot.
		case err != nil:
			return err
		default:
			if slot, err = item.ValueCopy(nil); err != nil {
				return err
			}
		}
		if need := off + len(data); need > len(slot) {
			grown := make([]byte, need)
			copy(grown, slot)
			slot = grown
		}
		copy(slot[off:], data)
		return txn.Set(dbKey(domain, key), slot)
	})
	if err != nil {
		return fmt.Errorf("badgerstore: write at %d: %w", off, err)
	}
	return nil
}
