// Package minio provides a slot store backed by MinIO or any
// S3-compatible object storage reachable through minio-go.
package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"

	"github.com/hupe1980/seglist/slotstore"
	"github.com/minio/minio-go/v7"
)

// Store implements slotstore.Store for MinIO and S3-compatible storage.
// One object per slot, laid out as <prefix>/<domain>/<hex key>.
type Store struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewStore creates a new MinIO slot store.
// bucket is the MinIO bucket name.
// rootPrefix is prepended to all keys (e.g. "lists/").
func NewStore(client *minio.Client, bucket, rootPrefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: rootPrefix,
	}
}

func (s *Store) objectKey(domain slotstore.Domain, key slotstore.Key) string {
	return path.Join(s.prefix, string(domain), key.String())
}

// Read implements slotstore.Store.
func (s *Store) Read(ctx context.Context, domain slotstore.Domain, key slotstore.Key) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.objectKey(domain, key), minio.GetObjectOptions{})
	if err != nil {
		return nil, translateErr(err)
	}
	defer func() { _ = obj.Close() }()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, translateErr(err)
	}
	return data, nil
}

// Write implements slotstore.Store.
func (s *Store) Write(ctx context.Context, domain slotstore.Domain, key slotstore.Key, data []byte) error {
	if err := slotstore.CheckRange(0, len(data)); err != nil {
		return err
	}
	_, err := s.client.PutObject(ctx, s.bucket, s.objectKey(domain, key), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	return err
}

// ReadAt implements slotstore.Store. Reads past the written extent of an
// existing object yield zero bytes.
func (s *Store) ReadAt(ctx context.Context, domain slotstore.Domain, key slotstore.Key, off, n int) ([]byte, error) {
	if err := slotstore.CheckRange(off, n); err != nil {
		return nil, err
	}

	// Stat first: a ranged GET entirely past the extent errors, but for a
	// sparse slot it must read as zeros.
	info, err := s.client.StatObject(ctx, s.bucket, s.objectKey(domain, key), minio.StatObjectOptions{})
	if err != nil {
		return nil, translateErr(err)
	}

	out := make([]byte, n)
	if int64(off) >= info.Size {
		return out, nil
	}

	opts := minio.GetObjectOptions{}
	if err := opts.SetRange(int64(off), int64(off+n-1)); err != nil {
		return nil, err
	}
	obj, err := s.client.GetObject(ctx, s.bucket, s.objectKey(domain, key), opts)
	if err != nil {
		return nil, translateErr(err)
	}
	defer func() { _ = obj.Close() }()

	if _, err := io.ReadFull(obj, out); err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, translateErr(err)
	}
	return out, nil
}

// WriteAt implements slotstore.Store. Object storage cannot be patched in
// place, so offset writes read the slot, modify it and rewrite it whole.
func (s *Store) WriteAt(ctx context.Context, domain slotstore.Domain, key slotstore.Key, off int, data []byte) error {
	if err := slotstore.CheckRange(off, len(data)); err != nil {
		return err
	}

	slot, err := s.Read(ctx, domain, key)
	if err != nil && !errors.Is(err, slotstore.ErrNotFound) {
		return err
	}
	if need := off + len(data); need > len(slot) {
		grown := make([]byte, need)
		copy(grown, slot)
		slot = grown
	}
	copy(slot[off:], data)
	return s.Write(ctx, domain, key, slot)
}

func translateErr(err error) error {
	errResp := minio.ToErrorResponse(err)
	if errResp.Code == "NoSuchKey" || errResp.Code == "NotFound" {
		return slotstore.ErrNotFound
	}
	return err
}
