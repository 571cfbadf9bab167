package handlers

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"todo-backend/logger"
	"todo-backend/models"
	"todo-backend/store"
)

func discardLogger() *logger.Logger {
	return logger.New(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeUserStore mimics store.Users in memory, including email normalization
// and the reset-token lifecycle. Password "hashes" are reversible on purpose.
type fakeUserStore struct {
	byEmail map[string]*models.User
	calls   int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]*models.User{}}
}

func fakeHash(password string) string { return "hashed:" + password }

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.calls++
	user, ok := f.byEmail[normalize(email)]
	if !ok {
		return nil, store.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserStore) Create(_ context.Context, email, password string) (*models.User, error) {
	f.calls++
	norm := normalize(email)
	if _, ok := f.byEmail[norm]; ok {
		return nil, store.ErrDuplicateEmail
	}
	now := time.Now().UTC()
	user := &models.User{
		ID:        primitive.NewObjectID(),
		Email:     norm,
		Password:  fakeHash(password),
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.byEmail[norm] = user
	return user, nil
}

func (f *fakeUserStore) VerifyPassword(user *models.User, candidate string) bool {
	return user.Password == fakeHash(candidate)
}

func (f *fakeUserStore) SetResetToken(_ context.Context, userID primitive.ObjectID, token string, expires time.Time) error {
	f.calls++
	user := f.byID(userID)
	if user == nil {
		return store.ErrNotFound
	}
	user.ResetPasswordToken = token
	user.ResetPasswordExpires = &expires
	return nil
}

func (f *fakeUserStore) FindByValidResetToken(_ context.Context, token string) (*models.User, error) {
	f.calls++
	for _, user := range f.byEmail {
		if user.ResetPasswordToken == token && user.ResetPasswordExpires != nil &&
			user.ResetPasswordExpires.After(time.Now()) {
			return user, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, userID primitive.ObjectID, newPassword string) error {
	f.calls++
	user := f.byID(userID)
	if user == nil {
		return store.ErrNotFound
	}
	user.Password = fakeHash(newPassword)
	user.ResetPasswordToken = ""
	user.ResetPasswordExpires = nil
	return nil
}

func (f *fakeUserStore) byID(id primitive.ObjectID) *models.User {
	for _, user := range f.byEmail {
		if user.ID == id {
			return user
		}
	}
	return nil
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// fakeTodoStore mimics store.Todos, including the combined ownership and
// existence filter and the newest-first listing order.
type fakeTodoStore struct {
	byID  map[primitive.ObjectID]*models.Todo
	calls int
	clock time.Time
}

func newFakeTodoStore() *fakeTodoStore {
	return &fakeTodoStore{byID: map[primitive.ObjectID]*models.Todo{}, clock: time.Now().UTC()}
}

func (f *fakeTodoStore) Create(_ context.Context, ownerID primitive.ObjectID, text string) (*models.Todo, error) {
	f.calls++
	f.clock = f.clock.Add(time.Second)
	todo := &models.Todo{
		ID:        primitive.NewObjectID(),
		Text:      text,
		Completed: false,
		UserID:    ownerID,
		CreatedAt: f.clock,
		UpdatedAt: f.clock,
	}
	f.byID[todo.ID] = todo
	return todo, nil
}

func (f *fakeTodoStore) ListByOwner(_ context.Context, ownerID primitive.ObjectID) ([]models.Todo, error) {
	f.calls++
	todos := []models.Todo{}
	for _, todo := range f.byID {
		if todo.UserID == ownerID {
			todos = append(todos, *todo)
		}
	}
	sort.Slice(todos, func(i, j int) bool {
		return todos[i].CreatedAt.After(todos[j].CreatedAt)
	})
	return todos, nil
}

func (f *fakeTodoStore) UpdateText(_ context.Context, ownerID, id primitive.ObjectID, text string) (*models.Todo, error) {
	f.calls++
	todo := f.owned(ownerID, id)
	if todo == nil {
		return nil, store.ErrNotFound
	}
	todo.Text = text
	todo.UpdatedAt = time.Now().UTC()
	return todo, nil
}

func (f *fakeTodoStore) Toggle(_ context.Context, ownerID, id primitive.ObjectID) (*models.Todo, error) {
	f.calls++
	todo := f.owned(ownerID, id)
	if todo == nil {
		return nil, store.ErrNotFound
	}
	todo.Completed = !todo.Completed
	todo.UpdatedAt = time.Now().UTC()
	return todo, nil
}

func (f *fakeTodoStore) Delete(_ context.Context, ownerID, id primitive.ObjectID) error {
	f.calls++
	if f.owned(ownerID, id) == nil {
		return store.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeTodoStore) owned(ownerID, id primitive.ObjectID) *models.Todo {
	todo, ok := f.byID[id]
	if !ok || todo.UserID != ownerID {
		return nil
	}
	return todo
}
