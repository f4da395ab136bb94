package service

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/campusworks/project-portal/internal/core/domain"
	"github.com/campusworks/project-portal/internal/core/ports"
)

// TokenCodec issues and verifies HS256 session tokens. The subject claim
// carries the user id, jti identifies the session for revocation. The TTL
// is long by design; sessions end at logout, not expiry.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = 365 * 24 * time.Hour
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl}
}

func (c *TokenCodec) Issue(userID string) (*ports.Credential, error) {
	tokenID := newTokenID()
	expiresAt := time.Now().Add(c.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ID:        tokenID,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &ports.Credential{Token: signed, TokenID: tokenID, ExpiresAt: expiresAt}, nil
}

func (c *TokenCodec) Verify(token string) (string, string, time.Time, error) {
	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", "", time.Time{}, domain.ErrInvalidToken
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return claims.Subject, claims.ID, expiresAt, nil
}

// newTokenID returns a random 16-hex-char session identifier.
func newTokenID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%016X", time.Now().UnixNano())
	}
	return fmt.Sprintf("%X", b)
}
