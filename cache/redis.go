package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aloks98/tasktracker/store"
)

// DefaultKeyPrefix namespaces cached users in a shared Redis.
const DefaultKeyPrefix = "tasktracker:user:"

// RedisConfig holds Redis cache configuration.
type RedisConfig struct {
	// Client is an existing Redis client.
	// If provided, URL and Addr are ignored.
	Client redis.UniversalClient

	// URL is a redis:// or rediss:// connection URL.
	URL string

	// Addr is the Redis server address (host:port), used when URL is empty.
	Addr string

	// Password is the Redis password.
	Password string

	// DB is the Redis database number.
	DB int

	// TTL is the lifetime of a cached entry. Zero means one minute.
	TTL time.Duration

	// KeyPrefix overrides DefaultKeyPrefix.
	KeyPrefix string
}

// Redis is a Users cache shared between processes through Redis.
type Redis struct {
	client redis.UniversalClient
	ttl    time.Duration
	prefix string
}

// NewRedis creates a Redis-backed cache.
func NewRedis(cfg *RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, errors.New("redis cache: config is required")
	}

	client := cfg.Client
	if client == nil {
		var opts *redis.Options
		if cfg.URL != "" {
			var err error
			opts, err = redis.ParseURL(cfg.URL)
			if err != nil {
				return nil, err
			}
		} else {
			if cfg.Addr == "" {
				return nil, errors.New("redis cache: URL or Addr is required")
			}
			opts = &redis.Options{
				Addr:     cfg.Addr,
				Password: cfg.Password,
				DB:       cfg.DB,
			}
		}
		client = redis.NewClient(opts)
	}

	r := &Redis{client: client, ttl: cfg.TTL, prefix: cfg.KeyPrefix}
	if r.ttl <= 0 {
		r.ttl = time.Minute
	}
	if r.prefix == "" {
		r.prefix = DefaultKeyPrefix
	}
	return r, nil
}

// Get returns the cached user or (nil, nil) on a miss.
func (r *Redis) Get(ctx context.Context, username string) (*store.User, error) {
	data, err := r.client.Get(ctx, r.prefix+username).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decode(data)
}

// Set caches the identity fields of u with the configured TTL.
func (r *Redis) Set(ctx context.Context, u *store.User) error {
	data, err := encode(u)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.prefix+u.Username, data, r.ttl).Err()
}

// Ping verifies the Redis connection is alive.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}

var _ Users = (*Redis)(nil)
