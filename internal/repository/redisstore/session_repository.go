package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gdugdh24/fourthmouse-backend/internal/domain"
	"github.com/gdugdh24/fourthmouse-backend/internal/repository"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix      = "session:"
	accountSessionsPrefix = "account_sessions:"
)

type sessionRepository struct {
	client *redis.Client
}

// NewSessionRepository stores sessions under their token hash with a TTL
// matching the session expiry, plus a per-account index used for revocation.
func NewSessionRepository(client *redis.Client) repository.SessionRepository {
	return &sessionRepository{client: client}
}

func sessionKey(tokenHash string) string {
	return sessionKeyPrefix + tokenHash
}

func accountSessionsKey(accountID int) string {
	return fmt.Sprintf("%s%d", accountSessionsPrefix, accountID)
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return domain.ErrSessionExpired
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	indexKey := accountSessionsKey(session.AccountID)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sessionKey(session.TokenHash), data, ttl)
		pipe.SAdd(ctx, indexKey, session.TokenHash)
		pipe.Expire(ctx, indexKey, ttl)
		return nil
	})
	return err
}

func (r *sessionRepository) GetByToken(ctx context.Context, tokenHash string) (*domain.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(tokenHash)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}

func (r *sessionRepository) DeleteByToken(ctx context.Context, tokenHash string) error {
	session, err := r.GetByToken(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil
		}
		return err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, sessionKey(tokenHash))
		pipe.SRem(ctx, accountSessionsKey(session.AccountID), tokenHash)
		return nil
	})
	return err
}

func (r *sessionRepository) DeleteByAccount(ctx context.Context, accountID int) error {
	indexKey := accountSessionsKey(accountID)
	hashes, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(hashes)+1)
	for _, h := range hashes {
		keys = append(keys, sessionKey(h))
	}
	keys = append(keys, indexKey)
	return r.client.Del(ctx, keys...).Err()
}
