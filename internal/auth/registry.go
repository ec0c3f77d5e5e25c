package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRegistry tracks issued token ids so bearer tokens can be revoked.
type TokenRegistry interface {
	Register(ctx context.Context, tokenID string, userID int64, ttl time.Duration) error
	Active(ctx context.Context, tokenID string) (bool, error)
	Revoke(ctx context.Context, tokenID string) error
}

const tokenKeyPrefix = "token:"

type redisTokenRegistry struct {
	client *redis.Client
}

// NewRedisTokenRegistry stores token ids as expiring Redis keys.
func NewRedisTokenRegistry(client *redis.Client) TokenRegistry {
	return &redisTokenRegistry{client: client}
}

func (r *redisTokenRegistry) Register(ctx context.Context, tokenID string, userID int64, ttl time.Duration) error {
	return r.client.Set(ctx, tokenKeyPrefix+tokenID, strconv.FormatInt(userID, 10), ttl).Err()
}

func (r *redisTokenRegistry) Active(ctx context.Context, tokenID string) (bool, error) {
	err := r.client.Get(ctx, tokenKeyPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *redisTokenRegistry) Revoke(ctx context.Context, tokenID string) error {
	return r.client.Del(ctx, tokenKeyPrefix+tokenID).Err()
}

type permissiveRegistry struct{}

// NewPermissiveRegistry accepts every signed token. Used when Redis is not configured.
func NewPermissiveRegistry() TokenRegistry {
	return permissiveRegistry{}
}

func (permissiveRegistry) Register(context.Context, string, int64, time.Duration) error { return nil }
func (permissiveRegistry) Active(context.Context, string) (bool, error)                 { return true, nil }
func (permissiveRegistry) Revoke(context.Context, string) error                         { return nil }
