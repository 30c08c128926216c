package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lostmyescape/referral-tracker/internal/config"
	"github.com/lostmyescape/referral-tracker/internal/domain/models"
	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

func NewClient(cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return rdb, nil
}

// Cache holds user records keyed by referral code. Codes are immutable,
// so a TTL only bounds memory, not staleness.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{
		rdb: rdb,
		ttl: ttl,
	}
}

func (c *Cache) UserByCode(ctx context.Context, code string) (models.User, error) {
	const op = "storage.rediscache.UserByCode"

	data, err := c.rdb.Get(ctx, key(code)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.User{}, ErrCacheMiss
	}
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (c *Cache) SetUserByCode(ctx context.Context, user models.User) error {
	const op = "storage.rediscache.SetUserByCode"

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := c.rdb.Set(ctx, key(user.ReferralCode), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func key(code string) string {
	return "refcode:" + code
}
