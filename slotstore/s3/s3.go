package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/hupe1980/seglist/slotstore"
)

// Store implements slotstore.Store on AWS S3: one object per slot, laid
// out as <prefix>/<domain>/<hex key>. Offset reads use ranged GETs; offset
// writes rewrite the whole slot, which S3 cannot patch in place.
type Store struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	prefix   string
}

// NewStore creates a new S3 slot store.
// rootPrefix is prepended to all object keys (e.g. "lists/").
func NewStore(client *s3.Client, bucket, rootPrefix string) *Store {
	return &Store{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		prefix:   rootPrefix,
	}
}

func (s *Store) objectKey(domain slotstore.Domain, key slotstore.Key) string {
	return path.Join(s.prefix, string(domain), key.String())
}

// Read implements slotstore.Store.
func (s *Store) Read(ctx context.Context, domain slotstore.Domain, key slotstore.Key) ([]byte, error) {
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(domain, key)),
	})
	if err != nil {
		return nil, translateErr(err)
	}
	defer func() { _ = resp.Body.Close() }()

	return io.ReadAll(resp.Body)
}

// Write implements slotstore.Store.
func (s *Store) Write(ctx context.Context, domain slotstore.Domain, key slotstore.Key, data []byte) error {
	if err := slotstore.CheckRange(0, len(data)); err != nil {
		return err
	}
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(domain, key)),
		Body:   bytes.NewReader(data),
	})
	return err
}

// ReadAt implements slotstore.Store. Reads past the written extent of an
// existing object yield zero bytes.
func (s *Store) ReadAt(ctx context.Context, domain slotstore.Domain, key slotstore.Key, off, n int) ([]byte, error) {
	if err := slotstore.CheckRange(off, n); err != nil {
		return nil, err
	}

	out := make([]byte, n)
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(domain, key)),
		Range:  aws.String(fmt.Sprintf("bytes=%d-%d", off, off+n-1)),
	})
	if err != nil {
		// A range entirely past the object's extent is a valid sparse read.
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "InvalidRange" {
			if _, statErr := s.client.HeadObject(ctx, &s3.HeadObjectInput{
				Bucket: aws.String(s.bucket),
				Key:    aws.String(s.objectKey(domain, key)),
			}); statErr != nil {
				return nil, translateErr(statErr)
			}
			return out, nil
		}
		return nil, translateErr(err)
	}
	defer func() { _ = resp.Body.Close() }()

	// A range overlapping the extent comes back truncated; the tail of the
	// slot stays zero.
	if _, err := io.ReadFull(resp.Body, out); err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return out, nil
}

// WriteAt implements slotstore.Store. S3 objects cannot be patched, so
// offset writes read the slot, modify it and rewrite it whole.
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
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return slotstore.ErrNotFound
	}
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return slotstore.ErrNotFound
	}
	return err
}
