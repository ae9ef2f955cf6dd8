// Package signer produces tamper-evident tokens for the redirect target of a rendered form.
package signer

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for tokens that were not produced by this signer
var ErrInvalidToken = errors.New("invalid signed token")

// Signer signs and verifies a string payload
type Signer interface {
	Sign(payload string) (string, error)
	Verify(token string) (string, error)
}

type payloadClaims struct {
	Payload string `json:"p"`
	jwt.RegisteredClaims
}

// HMACSigner signs payloads as HS256 JWTs
type HMACSigner struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewHMACSigner creates a signer; a zero ttl produces tokens that never expire
func NewHMACSigner(key string, ttl time.Duration) *HMACSigner {
	return &HMACSigner{key: []byte(key), ttl: ttl, now: time.Now}
}

// Sign returns a token carrying payload
func (s *HMACSigner) Sign(payload string) (string, error) {
	claims := payloadClaims{Payload: payload}
	now := s.now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// Verify returns the payload of a token produced by Sign with the same key
func (s *HMACSigner) Verify(token string) (string, error) {
	claims := &payloadClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	return claims.Payload, nil
}
