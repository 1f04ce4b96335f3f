package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/o1egl/paseto"
)

// AccessTokenExpiry is the lifetime of an access token when none is configured.
const AccessTokenExpiry = 24 * time.Hour

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// TokenClaims struct represents the data in the token.
type TokenClaims struct {
	UserID   uint      `json:"userId"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	Expiry   time.Time `json:"expiry"`
}

// TokenMaker issues and validates PASETO v2 local tokens.
type TokenMaker struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewTokenMaker creates a TokenMaker. The symmetric key must be 32 bytes long.
func NewTokenMaker(symmetricKey string, ttl time.Duration) (*TokenMaker, error) {
	if len(symmetricKey) != 32 {
		return nil, fmt.Errorf("symmetric key must be 32 bytes long, got %d", len(symmetricKey))
	}
	if ttl <= 0 {
		ttl = AccessTokenExpiry
	}
	return &TokenMaker{key: []byte(symmetricKey), ttl: ttl, now: time.Now}, nil
}

// GenerateAccessToken generates an access token for a user.
func (m *TokenMaker) GenerateAccessToken(userID uint, username, role string) (string, time.Time, error) {
	claims := TokenClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
		Expiry:   m.now().Add(m.ttl).UTC(),
	}

	token, err := paseto.NewV2().Encrypt(m.key, claims, nil)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, claims.Expiry, nil
}

// ValidateToken decrypts the token and checks its expiry.
func (m *TokenMaker) ValidateToken(tokenString string) (*TokenClaims, error) {
	claims, err := m.parseToken(tokenString)
	if err != nil {
		return nil, err
	}
	if m.now().After(claims.Expiry) {
		return nil, ErrTokenExpired
	}
	return claims, nil
}

// parseToken decrypts the token and extracts claims from it.
func (m *TokenMaker) parseToken(tokenString string) (*TokenClaims, error) {
	var claims TokenClaims
	if err := paseto.NewV2().Decrypt(tokenString, m.key, &claims, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return &claims, nil
}
