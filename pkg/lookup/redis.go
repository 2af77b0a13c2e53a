package lookup

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures ConnectRedis.
type RedisConfig struct {
	ConnectionURL  string        `env:"REDIS_URL,required" envDefault:"redis://localhost:6379/0"` // ConnectionURL is in the format "redis://:password@localhost:6379/0".
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

// ConnectRedis connects to Redis, pinging up to cfg.RetryAttempts times
// with cfg.RetryInterval between attempts.
//
// Returns ErrFailedToParseRedisConnString if the URL is invalid and
// ErrRedisNotReady if every attempt fails.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	opt, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisConnString, err)
	}

	for range max(cfg.RetryAttempts, 1) {
		client := redis.NewClient(opt)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, ErrRedisNotReady
}

// RedisClient is the subset of redis.Cmdable a RedisSet needs.
type RedisClient interface {
	SIsMember(ctx context.Context, key string, member any) *redis.BoolCmd
	SAdd(ctx context.Context, key string, members ...any) *redis.IntCmd
}

// RedisSet checks membership in a Redis set stored under a single key.
type RedisSet struct {
	client RedisClient
	key    string
	opts   options
}

// NewRedisSet creates a checker over the set stored at key.
func NewRedisSet(client RedisClient, key string, opts ...Option) (*RedisSet, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	if strings.TrimSpace(key) == "" {
		return nil, errors.Join(ErrInvalidIdentifier, errors.New("empty redis key"))
	}
	return &RedisSet{client: client, key: key, opts: newOptions(opts)}, nil
}

// Exists reports whether value is a member of the set.
func (s *RedisSet) Exists(ctx context.Context, value string) (bool, error) {
	ok, err := s.client.SIsMember(ctx, s.key, s.opts.key(value)).Result()
	if err != nil {
		return false, errors.Join(ErrLookupFailed, err)
	}
	return ok, nil
}

// Add inserts values into the set, normalized the same way Exists
// normalizes its input.
func (s *RedisSet) Add(ctx context.Context, values ...string) error {
	if len(values) == 0 {
		return nil
	}
	members := make([]any, len(values))
	for i, v := range values {
		members[i] = s.opts.key(v)
	}
	if err := s.client.SAdd(ctx, s.key, members...).Err(); err != nil {
		return errors.Join(ErrLookupFailed, err)
	}
	return nil
}
