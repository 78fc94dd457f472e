package service

import (
	"context"
	"fmt"
	"time"

	"go-medical-appointment/pkg/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Redis key prefixes for the token allow-list
	RedisAccessTokenPrefix  = "access_token:"
	RedisRefreshTokenPrefix = "refresh_token:"

	// Batch size for SCAN when revoking every token of a user
	revokeScanBatch = 100
)

// TokenStore is the allow-list of issued tokens. A token whose id is absent is revoked.
type TokenStore interface {
	StorePair(ctx context.Context, userID uuid.UUID, accessID string, accessTTL time.Duration, refreshID string, refreshTTL time.Duration) error
	Exists(ctx context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string) (bool, error)
	Revoke(ctx context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string) error
	Consume(ctx context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string) (bool, error)
	RevokeAll(ctx context.Context, userID uuid.UUID) error
}

// TokenKey builds the allow-list key of a token.
func TokenKey(tokenType jwt.TokenType, userID uuid.UUID, tokenID string) string {
	prefix := RedisAccessTokenPrefix
	if tokenType == jwt.RefreshToken {
		prefix = RedisRefreshTokenPrefix
	}
	return fmt.Sprintf("%s%s:%s", prefix, userID.String(), tokenID)
}

type RedisTokenStore struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewRedisTokenStore(redisClient *redis.Client, log *logrus.Logger) *RedisTokenStore {
	return &RedisTokenStore{
		redisClient: redisClient,
		log:         log,
	}
}

// StorePair saves both token ids in a single Redis transaction.
func (s *RedisTokenStore) StorePair(ctx context.Context, userID uuid.UUID, accessID string, accessTTL time.Duration, refreshID string, refreshTTL time.Duration) error {
	pipe := s.redisClient.TxPipeline()
	pipe.Set(ctx, TokenKey(jwt.AccessToken, userID, accessID), "1", accessTTL)
	pipe.Set(ctx, TokenKey(jwt.RefreshToken, userID, refreshID), "1", refreshTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Warnf("Failed to store tokens for user %s: %+v", userID, err)
		return fmt.Errorf("store tokens for user %s: %w", userID, err)
	}
	return nil
}

func (s *RedisTokenStore) Exists(ctx context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string) (bool, error) {
	n, err := s.redisClient.Exists(ctx, TokenKey(tokenType, userID, tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("check %s token for user %s: %w", tokenType, userID, err)
	}
	return n > 0, nil
}

func (s *RedisTokenStore) Revoke(ctx context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string) error {
	if err := s.redisClient.Del(ctx, TokenKey(tokenType, userID, tokenID)).Err(); err != nil {
		s.log.Warnf("Failed to revoke %s token for user %s: %+v", tokenType, userID, err)
		return fmt.Errorf("revoke %s token for user %s: %w", tokenType, userID, err)
	}
	return nil
}

// Consume deletes the token id and reports whether this call removed it.
// Only one of several concurrent callers gets true.
func (s *RedisTokenStore) Consume(ctx context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string) (bool, error) {
	n, err := s.redisClient.Del(ctx, TokenKey(tokenType, userID, tokenID)).Result()
	if err != nil {
		s.log.Warnf("Failed to consume %s token for user %s: %+v", tokenType, userID, err)
		return false, fmt.Errorf("consume %s token for user %s: %w", tokenType, userID, err)
	}
	return n > 0, nil
}

// RevokeAll deletes every access and refresh token of the user.
// Keys are collected with SCAN and deleted per batch.
func (s *RedisTokenStore) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	var revoked int
	for _, prefix := range []string{RedisAccessTokenPrefix, RedisRefreshTokenPrefix} {
		pattern := fmt.Sprintf("%s%s:*", prefix, userID.String())
		var cursor uint64
		for {
			keys, next, err := s.redisClient.Scan(ctx, cursor, pattern, revokeScanBatch).Result()
			if err != nil {
				s.log.Warnf("Failed to scan tokens for user %s: %+v", userID, err)
				return fmt.Errorf("scan tokens for user %s: %w", userID, err)
			}
			if len(keys) > 0 {
				if err := s.redisClient.Del(ctx, keys...).Err(); err != nil {
					s.log.Warnf("Failed to delete tokens for user %s: %+v", userID, err)
					return fmt.Errorf("delete tokens for user %s: %w", userID, err)
				}
				revoked += len(keys)
			}
			cursor = next
			if cursor == 0 {
				break
			}
		}
	}

	s.log.Debugf("Revoked %d tokens for user %s", revoked, userID)
	return nil
}
