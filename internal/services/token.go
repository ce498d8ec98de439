package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"campaignhub/internal/models"
)

// TokenIssuer signs HS256 bearer tokens with sub, email and role claims.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns the signed token and its lifetime in seconds.
func (t *TokenIssuer) Issue(user *models.User) (string, int64, error) {
	now := t.now().UTC()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(t.ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", 0, err
	}
	return signed, int64(t.ttl / time.Second), nil
}
