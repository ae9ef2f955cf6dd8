package signer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACSigner_RoundTrip(t *testing.T) {
	s := NewHMACSigner("secret", 0)

	token, err := s.Sign("/thanks?from=contact")
	require.NoError(t, err)
	assert.NotContains(t, token, "/thanks")

	payload, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "/thanks?from=contact", payload)
}

func TestHMACSigner_RejectsTampering(t *testing.T) {
	s := NewHMACSigner("secret", 0)
	token, err := s.Sign("/thanks")
	require.NoError(t, err)

	other := NewHMACSigner("another", 0)
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.Verify(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.Verify("/thanks")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestHMACSigner_Expiry(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := NewHMACSigner("secret", time.Hour)
	s.now = func() time.Time { return now }

	token, err := s.Sign("/done")
	require.NoError(t, err)

	_, err = s.Verify(token)
	require.NoError(t, err)

	s.now = func() time.Time { return now.Add(2 * time.Hour) }
	_, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
