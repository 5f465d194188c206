// Package outcomes keeps the outcome of every processed message in DynamoDB.
package outcomes

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/patrickmn/go-cache"
	"github.com/zeebo/errs"

	"github.com/Philanthropists/outcome/pkg/result"
)

const (
	DefaultTable = "outcomes"

	defaultExpiration = 5 * time.Minute
	cleanupInterval   = time.Minute
)

var (
	ErrNotFound = errs.Class("outcome not found")

	storeErr = errs.Class("outcome store")
)

// Record is a single stored outcome.
type Record[T any] struct {
	ID         string           `json:"id"          dynamodbav:"Id"`
	Outcome    result.Result[T] `json:"outcome"     dynamodbav:"Outcome"`
	RecordedAt time.Time        `json:"recorded_at" dynamodbav:"RecordedAt"`
}

type dynamoClient interface {
	GetItem(
		context.Context,
		*dynamodb.GetItemInput,
		...func(*dynamodb.Options),
	) (*dynamodb.GetItemOutput, error)

	PutItem(
		context.Context,
		*dynamodb.PutItemInput,
		...func(*dynamodb.Options),
	) (*dynamodb.PutItemOutput, error)
}

type inMemoryCache interface {
	Set(k string, v any, t time.Duration)
	Get(k string) (any, bool)
}

func NewDynamoDBClient(ctx context.Context, region string) (*dynamodb.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, storeErr.Wrap(err)
	}

	return dynamodb.NewFromConfig(cfg), nil
}

// Store reads and writes records through an in-memory cache.
type Store[T any] struct {
	Client dynamoClient
	Table  string

	once  sync.Once
	cache inMemoryCache
}

func (s *Store[T]) init() {
	s.once.Do(func() {
		if s.cache == nil {
			s.cache = cache.New(defaultExpiration, cleanupInterval)
		}
	})
}

func (s *Store[T]) table() string {
	if s.Table == "" {
		return DefaultTable
	}
	return s.Table
}

// Save writes rec, stamping RecordedAt when it is not set.
func (s *Store[T]) Save(ctx context.Context, rec Record[T]) error {
	s.init()

	if s.Client == nil {
		return storeErr.New("dynamoDB client is nil")
	}
	if rec.ID == "" {
		return storeErr.New("record has no id")
	}
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now().UTC()
	}

	it, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return storeErr.Wrap(err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		Item:      it,
		TableName: aws.String(s.table()),
	})
	if err != nil {
		return storeErr.New("could not save outcome %q: %w", rec.ID, err)
	}

	// cache what Get would read back, without the in-process cause
	var stored Record[T]
	if err := attributevalue.UnmarshalMap(it, &stored); err != nil {
		return storeErr.Wrap(err)
	}
	s.cache.Set(rec.ID, stored, cache.DefaultExpiration)

	return nil
}

func (s *Store[T]) Get(ctx context.Context, id string) (Record[T], error) {
	s.init()

	if val, found := s.cache.Get(id); found {
		return val.(Record[T]), nil
	}

	if s.Client == nil {
		return Record[T]{}, storeErr.New("dynamoDB client is nil")
	}

	key, err := attributevalue.MarshalMap(map[string]any{
		"Id": id,
	})
	if err != nil {
		return Record[T]{}, storeErr.Wrap(err)
	}

	res, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		Key:       key,
		TableName: aws.String(s.table()),
	})
	if err != nil {
		return Record[T]{}, storeErr.New(
			"could not get item with id [%s] from dynamodb table [%s]: %w",
			id, s.table(), err,
		)
	}
	if len(res.Item) == 0 {
		return Record[T]{}, ErrNotFound.New("%s", id)
	}

	var rec Record[T]
	if err := attributevalue.UnmarshalMap(res.Item, &rec); err != nil {
		return Record[T]{}, storeErr.Wrap(err)
	}

	s.cache.Set(id, rec, cache.DefaultExpiration)

	return rec, nil
}
