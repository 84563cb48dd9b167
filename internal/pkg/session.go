package pkg

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrSessionExpired      = errors.New("session expired")
	ErrSessionInvalid      = errors.New("session invalid")
	ErrSessionParseFailure = errors.New("session parse failure")
)

const SessionTTL = time.Minute * 30

type SessionClaims struct {
	UserID uint64 `json:"user_id"`
	jwt.RegisteredClaims
}

// SignSession 签发会话 token，写入 cookie
func SignSession(secret []byte, userID uint64) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
			Subject:   "session",
		},
	})
	return token.SignedString(secret)
}

// ParseSession 解析会话 token
func ParseSession(secret []byte, tokenStr string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, ErrSessionInvalid
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrSessionExpired
		default:
			return nil, err
		}
	}
	if !token.Valid {
		return nil, ErrSessionParseFailure
	}
	return token.Claims.(*SessionClaims), nil
}
