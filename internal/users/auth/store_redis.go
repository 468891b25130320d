// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/luanpsilva/ludoteca/internal/platform/apperr"
	"github.com/luanpsilva/ludoteca/internal/platform/constants"
)

// RedisTokenRepository implements [TokenRepository] using Redis with TTL.
//
// The same implementation backs both password-reset and email-verification
// tokens; only the key prefix (cache taxonomy) differs.
type RedisTokenRepository struct {
	client  *redis.Client
	prefix  string
	subject string // used in the NotFound message, e.g. "Reset token"
}

// NewResetTokenRepository creates the Redis store for password reset tokens.
func NewResetTokenRepository(client *redis.Client) *RedisTokenRepository {
	return &RedisTokenRepository{
		client:  client,
		prefix:  constants.RedisPrefixResetToken,
		subject: "Reset token",
	}
}

// NewVerificationTokenRepository creates the Redis store for email
// verification tokens.
func NewVerificationTokenRepository(client *redis.Client) *RedisTokenRepository {
	return &RedisTokenRepository{
		client:  client,
		prefix:  constants.RedisPrefixVerifyToken,
		subject: "Verification token",
	}
}

/*
Set stores a token with its associated userID and TTL.

Parameters:
  - context: context.Context
  - token: string
  - userID: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisTokenRepository) Set(context context.Context, token string, userID string, ttl time.Duration) error {
	key := repository.prefix + token

	if err := repository.client.Set(context, key, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_token_set_failed: %w", err)
	}

	return nil
}

/*
Get retrieves the userID for a given token.

Description: Returns apperr.NotFound if the token is absent or expired.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - string: Original UserID
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisTokenRepository) Get(context context.Context, token string) (string, error) {
	key := repository.prefix + token

	userID, err := repository.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound(repository.subject)
		}
		return "", fmt.Errorf("redis_token_get_failed: %w", err)
	}

	return userID, nil
}

/*
Delete removes a token after successful use.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - error: Execution errors
*/
func (repository *RedisTokenRepository) Delete(context context.Context, token string) error {
	key := repository.prefix + token

	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_token_delete_failed: %w", err)
	}

	return nil
}
