// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/habitrack/internal/platform/constants"
)

// # Revocation Store

// RedisRevocationStore implements [RevocationStore] using Redis keys that
// expire together with the revoked token.
type RedisRevocationStore struct {
	client *redis.Client
}

// NewRedisRevocationStore creates a new Redis-backed RevocationStore.
func NewRedisRevocationStore(client *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{client: client}
}

/*
Revoke stores the session id until its token would have expired anyway.

Parameters:
  - context: context.Context
  - sessionID: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (store *RedisRevocationStore) Revoke(context context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	if err := store.client.Set(context, revocationKey(sessionID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_revoke_failed: %w", err)
	}
	return nil
}

// IsRevoked reports whether the session id is on the denylist.
func (store *RedisRevocationStore) IsRevoked(context context.Context, sessionID string) (bool, error) {
	count, err := store.client.Exists(context, revocationKey(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis_session_lookup_failed: %w", err)
	}
	return count > 0, nil
}

func revocationKey(sessionID string) string {
	return constants.RedisPrefixRevokedSession + sessionID
}

// NoopRevocationStore is used when Redis is not configured. Logout then only
// clears the client cookie.
type NoopRevocationStore struct{}

func (NoopRevocationStore) Revoke(context.Context, string, time.Duration) error { return nil }

func (NoopRevocationStore) IsRevoked(context.Context, string) (bool, error) { return false, nil }
