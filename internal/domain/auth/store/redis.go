package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedis constructs a redis-backed session store.
func NewRedis(cfg Config) (Store, error) {
	if cfg.Redis == nil {
		return nil, fmt.Errorf("redis configuration missing")
	}
	if cfg.Redis.Addr == "" {
		return nil, fmt.Errorf("redis address required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	prefix := cfg.Redis.Prefix
	if prefix == "" {
		prefix = "auth:session:"
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &redisStore{client: client, ttl: ttl, prefix: prefix}, nil
}

func (s *redisStore) key(token string) string {
	return s.prefix + token
}

func (s *redisStore) Save(ctx context.Context, sess Session) error {
	if sess.Token == "" {
		return fmt.Errorf("session token required")
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	expiry := s.ttl
	if sess.ExpiresAt != nil {
		expiry = time.Until(*sess.ExpiresAt)
	}
	return s.client.Set(ctx, s.key(sess.Token), data, expiry).Err()
}

func (s *redisStore) Get(ctx context.Context, token string) (Session, error) {
	raw, err := s.client.Get(ctx, s.key(token)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return Session{}, fmt.Errorf("session not found")
		}
		return Session{}, err
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return Session{}, err
	}
	if sess.ExpiresAt != nil && time.Now().After(*sess.ExpiresAt) {
		_ = s.Remove(ctx, token)
		return Session{}, fmt.Errorf("session expired")
	}
	return sess, nil
}

func (s *redisStore) Remove(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.key(token)).Err()
}

// CleanupExpired is a no-op: redis expires keys itself.
func (s *redisStore) CleanupExpired(_ context.Context) error {
	return nil
}

func (s *redisStore) Stats(ctx context.Context) (map[string]any, error) {
	var cursor uint64
	total := 0
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", 100).Result()
		if err != nil {
			return nil, err
		}
		total += len(keys)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return map[string]any{
		"type":        "redis",
		"total":       total,
		"ttl_seconds": int(s.ttl.Seconds()),
	}, nil
}

func (s *redisStore) Close(_ context.Context) error {
	return s.client.Close()
}
