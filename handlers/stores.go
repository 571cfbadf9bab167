package handlers

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"todo-backend/models"
	"todo-backend/store"
)

// UserStore is the slice of store.Users the auth handlers need.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, email, password string) (*models.User, error)
	VerifyPassword(user *models.User, candidate string) bool
	SetResetToken(ctx context.Context, userID primitive.ObjectID, token string, expires time.Time) error
	FindByValidResetToken(ctx context.Context, token string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID primitive.ObjectID, newPassword string) error
}

// TodoStore is the slice of store.Todos the todo handlers need.
type TodoStore interface {
	Create(ctx context.Context, ownerID primitive.ObjectID, text string) (*models.Todo, error)
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Todo, error)
	UpdateText(ctx context.Context, ownerID, id primitive.ObjectID, text string) (*models.Todo, error)
	Toggle(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Todo, error)
	Delete(ctx context.Context, ownerID, id primitive.ObjectID) error
}

var (
	_ UserStore = (*store.Users)(nil)
	_ TodoStore = (*store.Todos)(nil)
)
