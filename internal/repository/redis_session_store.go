package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"JaxSpot/internal/domain/models"
	"JaxSpot/internal/domain/repository"
)

// RedisSessionStore keeps bearer sessions in Redis with a TTL matching the
// session expiry, so revocation and expiry need no sweeper.
type RedisSessionStore struct {
	client *redis.Client
	prefix string
}

// NewRedisSessionStore creates the Redis-backed session store.
func NewRedisSessionStore(client *redis.Client) repository.SessionStore {
	return &RedisSessionStore{client: client, prefix: "jaxspot:session:"}
}

func (s *RedisSessionStore) key(token string) string {
	return s.prefix + token
}

func (s *RedisSessionStore) Put(ctx context.Context, sess *models.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}
	return s.client.Set(ctx, s.key(sess.Token), b, ttl).Err()
}

func (s *RedisSessionStore) Get(ctx context.Context, token string) (*models.Session, error) {
	b, err := s.client.Get(ctx, s.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	var sess models.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &sess, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.key(token)).Err()
}

func (s *RedisSessionStore) Extend(ctx context.Context, token string, until time.Time) error {
	sess, err := s.Get(ctx, token)
	if err != nil {
		return err
	}
	sess.ExpiresAt = until
	return s.Put(ctx, sess)
}
