package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const HEADLINE_CACHE_TABLE_NAME = "HeadlineCache"

// DynamoDBAPI is the subset of *dynamodb.Client used by CacheTable.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

type cacheItem struct {
	Key       string `dynamodbav:"cache_key"`
	Value     []byte `dynamodbav:"value"`
	ExpiresAt int64  `dynamodbav:"expires_at"`
}

// CacheTable stores cache entries in a DynamoDB table keyed by cache_key.
// expires_at doubles as the table TTL attribute; since DynamoDB deletes
// expired items lazily, reads check it too.
type CacheTable struct {
	client DynamoDBAPI
	table  string
	now    func() time.Time
}

func NewCacheTable(client DynamoDBAPI, table string) *CacheTable {
	if table == "" {
		table = HEADLINE_CACHE_TABLE_NAME
	}
	return &CacheTable{client: client, table: table, now: time.Now}
}

func (t *CacheTable) Get(ctx context.Context, key string) ([]byte, bool, error) {
	out, err := t.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(t.table),
		Key: map[string]types.AttributeValue{
			"cache_key": &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return nil, false, fmt.Errorf("[DynamoDB] Failed to get cache item: %w", err)
	}
	if out == nil || len(out.Item) == 0 {
		return nil, false, nil
	}

	var item cacheItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		slog.Error("[DynamoDB] Unable to unmarshal cache item", slog.String("error", err.Error()))
		return nil, false, err
	}

	if item.ExpiresAt <= t.now().Unix() {
		return nil, false, nil
	}
	return item.Value, true, nil
}

func (t *CacheTable) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	item, err := attributevalue.MarshalMap(cacheItem{
		Key:       key,
		Value:     value,
		ExpiresAt: t.now().Add(ttl).Unix(),
	})
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to marshal cache item: %w", err)
	}

	_, err = t.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(t.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to put cache item: %w", err)
	}
	return nil
}
