// Package auth issues and verifies the stateless bearer tokens used for
// sessions and generates the opaque tokens used by the password-reset flow.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: malformed, expired and
// tampered tokens are indistinguishable to the caller.
var ErrInvalidToken = errors.New("invalid token")

const (
	// TokenValidity is how long a session token stays usable.
	TokenValidity = 7 * 24 * time.Hour

	// ResetTokenValidity is how long a password-reset token stays usable.
	ResetTokenValidity = time.Hour

	resetTokenBytes = 32
)

// Identity is what a verified token resolves to.
type Identity struct {
	UserID string
	Email  string
}

type claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// TokenService signs and verifies session tokens with a single HMAC secret.
// Config guarantees the secret is non-empty before the service is built.
type TokenService struct {
	secret   []byte
	validity time.Duration
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret), validity: TokenValidity}
}

// Issue signs a token carrying the user's id and email.
func (s *TokenService) Issue(userID, email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.validity)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
		Email:  email,
	})
	return token.SignedString(s.secret)
}

// Verify checks the signature and expiry and returns the embedded identity.
func (s *TokenService) Verify(tokenString string) (Identity, error) {
	parsed := &claims{}
	token, err := jwt.ParseWithClaims(tokenString, parsed, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: parsed.UserID, Email: parsed.Email}, nil
}

// GenerateResetToken returns 256 bits of randomness, hex-encoded. The tokens
// are matched verbatim against the stored value, so no signing is involved.
func GenerateResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
