// internal/session/redis.go
package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	apperrors "drivethru/internal/common/errors"
	"drivethru/internal/common/logger"
)

const keyPrefix = "drivethru:session:"

// RedisStore keeps sessions in Redis with a sliding TTL refreshed on every
// save.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	log    logger.Logger
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig, log logger.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, apperrors.NewSessionSaveFailedError("redis ping failed: " + err.Error())
	}
	return &RedisStore{
		client: client,
		ttl:    cfg.TTL,
		log:    log.WithFields(map[string]interface{}{"component": "session"}),
	}, nil
}

func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	sess.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(sess)
	if err != nil {
		return apperrors.NewSessionSaveFailedError(err.Error())
	}
	if err := s.client.Set(ctx, keyPrefix+sess.ID.String(), data, s.ttl).Err(); err != nil {
		return apperrors.NewSessionSaveFailedError(err.Error())
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, id uuid.UUID) (*Session, error) {
	data, err := s.client.Get(ctx, keyPrefix+id.String()).Bytes()
	if err == redis.Nil {
		return nil, apperrors.NewSessionNotFoundError(id.String())
	}
	if err != nil {
		return nil, apperrors.NewSessionSaveFailedError(err.Error())
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, apperrors.NewSessionSaveFailedError(err.Error())
	}
	return &sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.client.Del(ctx, keyPrefix+id.String()).Err(); err != nil {
		return apperrors.NewSessionSaveFailedError(err.Error())
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
