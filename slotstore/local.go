package slotstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Local is a Store backed by the local file system: one file per slot,
// laid out as root/<domain>/<hex key>. Slots may optionally be compressed
// at rest; offset access then decompresses the whole slot, modifies it and
// rewrites it, trading latency for disk footprint.
type Local struct {
	root string
	comp compressor

	// Serializes read-modify-write cycles on offset writes.
	mu sync.Mutex
}

// LocalOption configures a Local store.
type LocalOption func(*Local) error

// WithCompression selects the at-rest compression by name: "zstd", "lz4"
// or "none" (the default).
func WithCompression(name string) LocalOption {
	return func(l *Local) error {
		switch name {
		case "", "none":
			l.comp = nil
		case "zstd":
			c, err := newZstdCompressor()
			if err != nil {
				return err
			}
			l.comp = c
		case "lz4":
			l.comp = lz4Compressor{}
		default:
			return fmt.Errorf("slotstore: unknown compression %q", name)
		}
		return nil
	}
}

// NewLocal creates a Local store rooted at the given directory, creating
// it if necessary.
func NewLocal(root string, opts ...LocalOption) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("slotstore: create root: %w", err)
	}
	l := &Local{root: root}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (l *Local) path(domain Domain, key Key) string {
	return filepath.Join(l.root, string(domain), key.String())
}

// Read returns the full written extent of the slot under key.
func (l *Local) Read(_ context.Context, domain Domain, key Key) ([]byte, error) {
	raw, err := os.ReadFile(l.path(domain, key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if l.comp == nil {
		return raw, nil
	}
	return l.comp.decompress(raw)
}

// Write replaces the slot under key. The slot file is written to a
// temporary name and renamed into place.
func (l *Local) Write(_ context.Context, domain Domain, key Key, data []byte) error {
	if err := CheckRange(0, len(data)); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.flush(domain, key, data)
}

// ReadAt reads n bytes at byte offset off within the slot.
func (l *Local) ReadAt(ctx context.Context, domain Domain, key Key, off, n int) ([]byte, error) {
	if err := CheckRange(off, n); err != nil {
		return nil, err
	}
	data, err := l.Read(ctx, domain, key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	if off < len(data) {
		copy(out, data[off:])
	}
	return out, nil
}

// WriteAt writes data at byte offset off, creating the slot and
// zero-extending it as needed.
func (l *Local) WriteAt(ctx context.Context, domain Domain, key Key, off int, data []byte) error {
	if err := CheckRange(off, len(data)); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	slot, err := l.Read(ctx, domain, key)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if need := off + len(data); need > len(slot) {
		grown := make([]byte, need)
		copy(grown, slot)
		slot = grown
	}
	copy(slot[off:], data)
	return l.flush(domain, key, slot)
}

func (l *Local) flush(domain Domain, key Key, data []byte) error {
	if l.comp != nil {
		var err error
		if data, err = l.comp.compress(data); err != nil {
			return err
		}
	}

	path := l.path(domain, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

type compressor interface {
	compress([]byte) ([]byte, error)
	decompress([]byte) ([]byte, error)
}

type zstdCompressor struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func newZstdCompressor() (*zstdCompressor, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	return &zstdCompressor{enc: enc, dec: dec}, nil
}

func (c *zstdCompressor) compress(data []byte) ([]byte, error) {
	return c.enc.EncodeAll(data, nil), nil
}

func (c *zstdCompressor) decompress(data []byte) ([]byte, error) {
	return c.dec.DecodeAll(data, nil)
}

type lz4Compressor struct{}

func (lz4Compressor) compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (lz4Compressor) decompress(data []byte) ([]byte, error) {
	return io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
}
