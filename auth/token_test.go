package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	s := NewTokenService("super-secret")

	token, err := s.Issue("user-123", "alice@example.com")
	require.NoError(t, err)

	identity, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", identity.UserID)
	assert.Equal(t, "alice@example.com", identity.Email)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	s := &TokenService{secret: []byte("secret"), validity: -time.Minute}
	token, err := s.Issue("u1", "u1@example.com")
	require.NoError(t, err)

	_, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewTokenService("right-secret").Issue("u2", "u2@example.com")
	require.NoError(t, err)

	_, err = NewTokenService("wrong-secret").Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	s := NewTokenService("k")
	for _, tok := range []string{"", "not.a.jwt", "garbage"} {
		_, err := s.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestGenerateResetToken(t *testing.T) {
	t.Parallel()

	first, err := GenerateResetToken()
	require.NoError(t, err)
	second, err := GenerateResetToken()
	require.NoError(t, err)

	// 32 bytes hex-encoded.
	assert.Len(t, first, 64)
	assert.NotEqual(t, first, second)
}
