package slotstore

import (
	"context"
	"sync"
)

// Memory is an in-memory Store implementation for testing and ephemeral
// use. It stores slots in process memory without any external dependency.
// Thread-safe for concurrent reads and writes.
type Memory struct {
	mu    sync.RWMutex
	slots map[Domain]map[Key][]byte
}

// NewMemory creates a new in-memory slot store.
func NewMemory() *Memory {
	return &Memory{
		slots: make(map[Domain]map[Key][]byte),
	}
}

// Read returns the full written extent of the slot under key.
func (m *Memory) Read(_ context.Context, domain Domain, key Key) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.slots[domain][key]
	if !ok {
		return nil, ErrNotFound
	}

	// Return a copy to prevent external mutation
	copied := make([]byte, len(data))
	copy(copied, data)
	return copied, nil
}

// Write replaces the slot under key.
func (m *Memory) Write(_ context.Context, domain Domain, key Key, data []byte) error {
	if err := CheckRange(0, len(data)); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]byte, len(data))
	copy(copied, data)
	m.domain(domain)[key] = copied
	return nil
}

// ReadAt reads n bytes at byte offset off within the slot. Reads past the
// written extent return zero bytes; a missing slot is ErrNotFound.
func (m *Memory) ReadAt(_ context.Context, domain Domain, key Key, off, n int) ([]byte, error) {
	if err := CheckRange(off, n); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.slots[domain][key]
	if !ok {
		return nil, ErrNotFound
	}

	out := make([]byte, n)
	if off < len(data) {
		copy(out, data[off:])
	}
	return out, nil
}

// WriteAt writes data at byte offset off, creating the slot and
// zero-extending it as needed.
func (m *Memory) WriteAt(_ context.Context, domain Domain, key Key, off int, data []byte) error {
	if err := CheckRange(off, len(data)); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	slots := m.domain(domain)
	slot := slots[key]
	if need := off + len(data); need > len(slot) {
		grown := make([]byte, need)
		copy(grown, slot)
		slot = grown
	}
	copy(slot[off:], data)
	slots[key] = slot
	return nil
}

// Len returns the number of slots held for a domain. Test helper.
func (m *Memory) Len(domain Domain) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.slots[domain])
}

func (m *Memory) domain(domain Domain) map[Key][]byte {
	slots, ok := m.slots[domain]
	if !ok {
		slots = make(map[Key][]byte)
		m.slots[domain] = slots
	}
	return slots
}
