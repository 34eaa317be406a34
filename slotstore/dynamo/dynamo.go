// Package dynamo provides a DynamoDB backed slot store.
//
// Table schema:
//   - Partition key: dom (string) - the store domain
//   - Sort key: slot (string) - the hex slot key
//
// Create the table with:
//
//	aws dynamodb create-table \
//	  --table-name seglist-slots \
//	  --attribute-definitions AttributeName=dom,AttributeType=S AttributeName=slot,AttributeType=S \
//	  --key-schema AttributeName=dom,KeyType=HASH AttributeName=slot,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/seglist/slotstore"
)

// Client is the interface for the DynamoDB operations the store issues.
// Satisfied by *dynamodb.Client; unit tests supply a fake.
type Client interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// Store implements slotstore.Store on DynamoDB: one item per slot, the
// slot bytes held in a binary attribute. DynamoDB items cannot be patched
// at byte granularity, so offset writes are read-modify-write.
type Store struct {
	client    Client
	tableName string
}

// NewStore creates a new DynamoDB slot store writing to tableName.
func NewStore(client Client, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
	}
}

func (s *Store) itemKey(domain slotstore.Domain, key slotstore.Key) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"dom":  &types.AttributeValueMemberS{Value: string(domain)},
		"slot": &types.AttributeValueMemberS{Value: key.String()},
	}
}

// Read implements slotstore.Store.
func (s *Store) Read(ctx context.Context, domain slotstore.Domain, key slotstore.Key) ([]byte, error) {
	resp, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.tableName),
		Key:            s.itemKey(domain, key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamo: get item: %w", err)
	}
	if len(resp.Item) == 0 {
		return nil, slotstore.ErrNotFound
	}

	attr, ok := resp.Item["data"].(*types.AttributeValueMemberB)
	if !ok {
		return nil, fmt.Errorf("dynamo: item %s/%s has no binary data attribute", domain, key)
	}
	return attr.Value, nil
}

// Write implements slotstore.Store.
func (s *Store) Write(ctx context.Context, domain slotstore.Domain, key slotstore.Key, data []byte) error {
	if err := slotstore.CheckRange(0, len(data)); err != nil {
		return err
	}

	item := s.itemKey(domain, key)
	item["data"] = &types.AttributeValueMemberB{Value: data}

	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("dynamo: put item: %w", err)
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

// WriteAt implements slotstore.Store.
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
