package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"todo-backend/models"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"alice@example.com":     "alice@example.com",
		"  Alice@Example.COM  ": "alice@example.com",
		"BOB@EXAMPLE.ORG":       "bob@example.org",
	}
	for input, want := range cases {
		assert.Equal(t, want, normalizeEmail(input))
	}
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &models.User{Password: string(hash)}

	s := &Users{}
	assert.True(t, s.VerifyPassword(user, "secret1"))
	assert.False(t, s.VerifyPassword(user, "secret2"))
	assert.False(t, s.VerifyPassword(user, ""))
}

func TestOwnerFilter(t *testing.T) {
	t.Parallel()

	owner := primitive.NewObjectID()
	id := primitive.NewObjectID()

	filter := ownerFilter(owner, id)
	assert.Equal(t, id, filter["_id"])
	assert.Equal(t, owner, filter["user_id"])
}
