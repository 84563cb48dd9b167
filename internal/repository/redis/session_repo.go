package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrRedisUnavailable = errors.New("redis unavailable")
	ErrExtendFailed     = errors.New("session extend failed")
	ErrDeleteFailed     = errors.New("session delete failed")
)

const (
	SessionPrefix = "session:user:token"
	SessionExpire = 60 * 30
)

// SessionRepository 每个用户保存一个有效会话 token
type SessionRepository struct {
	Client *redis.Client
}

func (r *SessionRepository) AddSessionToken(usrID uint64, token string) error {
	key := fmt.Sprintf("%s:%d", SessionPrefix, usrID)
	if err := r.Client.Set(context.Background(), key, token, time.Second*SessionExpire).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *SessionRepository) GetSessionToken(usrID uint64) (string, error) {
	key := fmt.Sprintf("%s:%d", SessionPrefix, usrID)
	token, err := r.Client.Get(context.Background(), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return token, nil
}

func (r *SessionRepository) ExtendSessionToken(usrID uint64) error {
	key := fmt.Sprintf("%s:%d", SessionPrefix, usrID)
	_, err := r.Client.Expire(context.Background(), key, time.Second*SessionExpire).Result()
	if err != nil {
		return ErrExtendFailed
	}
	return nil
}

func (r *SessionRepository) DeleteSessionToken(usrID uint64) error {
	key := fmt.Sprintf("%s:%d", SessionPrefix, usrID)
	if err := r.Client.Del(context.Background(), key).Err(); err != nil {
		return ErrDeleteFailed
	}
	return nil
}
