package tokenstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mawa3id/booking-client/internal/core/domain"
	"github.com/mawa3id/booking-client/internal/core/ports"
)

const redisTimeout = 5 * time.Second

// Redis persists the credential pair under per-scope keys, so a headless or
// multi-tenant embedding can hold independent sessions in one process. Key
// format: session:<scope>:token / session:<scope>:refresh.
type Redis struct {
	client *redis.Client
	scope  string
}

var _ ports.TokenStorage = (*Redis)(nil)

// RedisConfig captures the settings for establishing the connection.
type RedisConfig struct {
	Addr  string
	DB    int
	Scope string
}

// NewRedis initialises a Redis store and validates connectivity with a ping.
func NewRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	if cfg.Scope == "" {
		cfg.Scope = "default"
	}
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("tokenstore: redis ping: %w", err)
	}

	return &Redis{client: client, scope: cfg.Scope}, nil
}

func (r *Redis) Load() (domain.Credentials, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	// one round trip for both keys, so a concurrent Store or Clear cannot
	// interleave between the reads and hand back a mixed pair
	vals, err := r.client.MGet(ctx, r.key("token"), r.key("refresh")).Result()
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("tokenstore: redis mget: %w", err)
	}
	var creds domain.Credentials
	if s, ok := vals[0].(string); ok {
		creds.Token = s
	}
	if s, ok := vals[1].(string); ok {
		creds.RefreshToken = s
	}
	return creds, nil
}

func (r *Redis) Store(creds domain.Credentials) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.key("token"), creds.Token, 0)
	pipe.Set(ctx, r.key("refresh"), creds.RefreshToken, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("tokenstore: redis set: %w", err)
	}
	return nil
}

func (r *Redis) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	if err := r.client.Del(ctx, r.key("token"), r.key("refresh")).Err(); err != nil {
		return fmt.Errorf("tokenstore: redis del: %w", err)
	}
	return nil
}

// Close releases the underlying connection.
func (r *Redis) Close() error { return r.client.Close() }

func (r *Redis) key(suffix string) string {
	return fmt.Sprintf("session:%s:%s", r.scope, suffix)
}
