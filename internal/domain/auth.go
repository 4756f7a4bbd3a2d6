package domain

import (
	"context"
	"time"
)

type Token string

type TokenClaims struct {
	JTI       string // уникальный id токена (для ревокации)
	UserID    UserID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Хеширование паролей
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, encodedHash string) (bool, error)
}

// Выпуск и проверка токенов (JWT, реализация в internal/auth/token)
type TokenManager interface {
	Issue(ctx context.Context, userID UserID) (Token, TokenClaims, error)
	// Parse проверяет подпись и сроки; любой битый токен — ошибка, частичного доверия нет.
	Parse(ctx context.Context, t Token) (TokenClaims, error)
}

// Ревокация токенов по jti (Redis)
type TokenBlacklist interface {
	Revoke(ctx context.Context, jti string, exp time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
