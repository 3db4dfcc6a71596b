package ledger

import (
	"context"
	"fmt"
	"time"

	"feedcurator/config"

	"github.com/redis/go-redis/v9"
)

const redisOpTimeout = 5 * time.Second

// Redis is a ledger backend storing published links in a redis set.
// Useful when several hosts take turns running the pipeline and a
// shared file is not an option.
type Redis struct {
	client *redis.Client
	key    string
}

// NewRedis connects to redis and verifies connectivity before use.
func NewRedis(cfg config.RedisConfig, key string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return &Redis{client: client, key: key}, nil
}

func (r *Redis) Load(ctx context.Context) (map[string]struct{}, error) {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	members, err := r.client.SMembers(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("load ledger set %s: %w", r.key, err)
	}

	links := make(map[string]struct{}, len(members))
	for _, m := range members {
		links[m] = struct{}{}
	}
	return links, nil
}

func (r *Redis) Contains(ctx context.Context, link string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	ok, err := r.client.SIsMember(ctx, r.key, link).Result()
	if err != nil {
		return false, fmt.Errorf("check ledger set %s: %w", r.key, err)
	}
	return ok, nil
}

func (r *Redis) Append(ctx context.Context, link string) error {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	if err := r.client.SAdd(ctx, r.key, link).Err(); err != nil {
		return fmt.Errorf("append to ledger set %s: %w", r.key, err)
	}
	return nil
}

// Close closes the underlying redis client.
func (r *Redis) Close() error {
	return r.client.Close()
}
