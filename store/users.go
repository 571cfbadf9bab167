package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"todo-backend/models"
)

// Users owns the users collection: credentials, password hashing and the
// reset-token fields. Plaintext passwords never leave this type.
type Users struct {
	col *mongo.Collection
}

func NewUsers(db *mongo.Database) *Users {
	return &Users{col: db.Collection("users")}
}

// EnsureIndexes creates the unique email index. Uniqueness is enforced here
// rather than by a read-then-insert check so concurrent signups cannot race.
func (s *Users) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var user models.User
	err := s.col.FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (s *Users) Create(ctx context.Context, email, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		Email:     normalizeEmail(email),
		Password:  string(hash),
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := s.col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	user.ID = result.InsertedID.(primitive.ObjectID)
	return user, nil
}

// VerifyPassword checks a plaintext candidate against the stored hash.
// bcrypt's comparison is constant-time for equal-length hashes.
func (s *Users) VerifyPassword(user *models.User, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(candidate)) == nil
}

func (s *Users) SetResetToken(ctx context.Context, userID primitive.ObjectID, token string, expires time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"reset_password_token":   token,
		"reset_password_expires": expires,
		"updated_at":             time.Now().UTC(),
	}}
	result, err := s.col.UpdateByID(ctx, userID, update)
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearResetToken drops the reset-token fields without touching the
// password. UpdatePassword clears them itself, so this is only needed to
// invalidate a token that will not be redeemed.
func (s *Users) ClearResetToken(ctx context.Context, userID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{"updated_at": time.Now().UTC()},
		"$unset": bson.M{
			"reset_password_token":   "",
			"reset_password_expires": "",
		},
	}
	result, err := s.col.UpdateByID(ctx, userID, update)
	if err != nil {
		return fmt.Errorf("clear reset token: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByValidResetToken matches a reset token that has not expired yet.
func (s *Users) FindByValidResetToken(ctx context.Context, token string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{
		"reset_password_token":   token,
		"reset_password_expires": bson.M{"$gt": time.Now().UTC()},
	}
	var user models.User
	err := s.col.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by reset token: %w", err)
	}
	return &user, nil
}

// UpdatePassword re-hashes and stores a new password. The reset-token fields
// are cleared in the same update so a completed reset cannot be replayed.
func (s *Users) UpdatePassword(ctx context.Context, userID primitive.ObjectID, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"password":   string(hash),
			"updated_at": time.Now().UTC(),
		},
		"$unset": bson.M{
			"reset_password_token":   "",
			"reset_password_expires": "",
		},
	}
	result, err := s.col.UpdateByID(ctx, userID, update)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
