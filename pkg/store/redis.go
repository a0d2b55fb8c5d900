package store

import (
	"context"
	stderrors "errors"
	"slices"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/erdiagram/pkg/errors"
	pkgio "github.com/matzehuels/erdiagram/pkg/io"
	"github.com/matzehuels/erdiagram/pkg/model"
)

// Redis key layout.
const (
	RedisKeyPrefix = "erdiagram:diagram:"
	RedisIndexKey  = "erdiagram:diagrams"
)

// RedisStore keeps each diagram document as a Redis string and the set of
// keys in an index set.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore returns a store using client. Closing the store closes the
// client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// OpenRedisStore connects to url, e.g. "redis://localhost:6379/0".
func OpenRedisStore(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidURL, err, "parse redis url")
	}
	client := redis.NewClient(opts)
	err = retryWithBackoff(ctx, func() error {
		return retryable(client.Ping(ctx).Err())
	})
	if err != nil {
		client.Close()
		return nil, err
	}
	return NewRedisStore(client), nil
}

// Load implements Store.
func (s *RedisStore) Load(ctx context.Context, key string) (model.Diagram, error) {
	if err := errors.ValidateStoreKey(key); err != nil {
		return model.Diagram{}, err
	}
	data, err := s.client.Get(ctx, RedisKeyPrefix+key).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return model.Diagram{}, notFound(key)
	}
	if err != nil {
		return model.Diagram{}, errors.Wrap(errors.ErrCodeStore, err, "redis get %s", key)
	}
	return pkgio.Unmarshal(data)
}

// Save implements Store.
func (s *RedisStore) Save(ctx context.Context, key string, d model.Diagram) error {
	if err := errors.ValidateStoreKey(key); err != nil {
		return err
	}
	data, err := pkgio.Marshal(d)
	if err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, RedisKeyPrefix+key, data, 0)
	pipe.SAdd(ctx, RedisIndexKey, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "redis save %s", key)
	}
	return nil
}

// Delete implements Store.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := errors.ValidateStoreKey(key); err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, RedisKeyPrefix+key)
	pipe.SRem(ctx, RedisIndexKey, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "redis delete %s", key)
	}
	return nil
}

// List implements Store.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	keys, err := s.client.SMembers(ctx, RedisIndexKey).Result()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "redis list")
	}
	slices.Sort(keys)
	return keys, nil
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
