package store

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/cardboard/pkg/errors"
)

// DefaultRedisPrefix namespaces board keys in a shared Redis.
const DefaultRedisPrefix = "cardboard:board:"

// RedisStore keeps one JSON value per board in Redis.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps an existing client. An empty prefix uses
// [DefaultRedisPrefix].
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

// OpenRedisStore connects to the Redis server at url (redis://...) and
// verifies the connection.
func OpenRedisStore(ctx context.Context, url, prefix string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse redis url")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to redis at %s", opts.Addr)
	}
	return NewRedisStore(client, prefix), nil
}

func (s *RedisStore) key(id string) string { return s.prefix + id }

// Load fetches a board.
func (s *RedisStore) Load(ctx context.Context, id string) (b *Board, err error) {
	start := time.Now()
	defer func() { observeLoad(ctx, "redis", id, start, err) }()

	if err := errors.ValidateBoardID(id); err != nil {
		return nil, err
	}
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err == redis.Nil {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "get board %s", id)
	}
	return decode(id, data)
}

// Save stores a board without expiry.
func (s *RedisStore) Save(ctx context.Context, b *Board) (err error) {
	start := time.Now()
	defer func() { observeSave(ctx, "redis", b, start, err) }()

	if err := errors.ValidateBoardID(b.ID); err != nil {
		return err
	}
	data, err := encode(b)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(b.ID), data, 0).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "set board %s", b.ID)
	}
	return nil
}

// Delete removes a board.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateBoardID(id); err != nil {
		return err
	}
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete board %s", id)
	}
	return nil
}

// List scans for board keys under the prefix.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	var ids []string
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), s.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "scan boards")
	}
	sort.Strings(ids)
	return ids, nil
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
