package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"todo-backend/models"
)

// Todos owns the todos collection. Every read and write filters on the owning
// user, so a todo belonging to someone else behaves exactly like a missing
// one.
type Todos struct {
	col *mongo.Collection
}

func NewTodos(db *mongo.Database) *Todos {
	return &Todos{col: db.Collection("todos")}
}

func (s *Todos) Create(ctx context.Context, ownerID primitive.ObjectID, text string) (*models.Todo, error) {
	now := time.Now().UTC()
	todo := &models.Todo{
		Text:      text,
		Completed: false,
		UserID:    ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := s.col.InsertOne(ctx, todo)
	if err != nil {
		return nil, fmt.Errorf("insert todo: %w", err)
	}
	todo.ID = result.InsertedID.(primitive.ObjectID)
	return todo, nil
}

// ListByOwner returns the owner's todos, newest first.
func (s *Todos) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.M{"user_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find todos: %w", err)
	}
	defer cursor.Close(ctx)

	todos := []models.Todo{}
	if err := cursor.All(ctx, &todos); err != nil {
		return nil, fmt.Errorf("decode todos: %w", err)
	}
	return todos, nil
}

func (s *Todos) UpdateText(ctx context.Context, ownerID, id primitive.ObjectID, text string) (*models.Todo, error) {
	update := bson.M{"$set": bson.M{
		"text":       text,
		"updated_at": time.Now().UTC(),
	}}
	return s.findOneAndUpdate(ctx, ownerID, id, update)
}

// Toggle flips the completion flag in a single pipeline update, so concurrent
// toggles cannot lose a flip.
func (s *Todos) Toggle(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Todo, error) {
	update := bson.A{bson.M{"$set": bson.M{
		"completed":  bson.M{"$not": "$completed"},
		"updated_at": time.Now().UTC(),
	}}}
	return s.findOneAndUpdate(ctx, ownerID, id, update)
}

func (s *Todos) Delete(ctx context.Context, ownerID, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := s.col.DeleteOne(ctx, ownerFilter(ownerID, id))
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Todos) findOneAndUpdate(ctx context.Context, ownerID, id primitive.ObjectID, update interface{}) (*models.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var todo models.Todo
	err := s.col.FindOneAndUpdate(ctx, ownerFilter(ownerID, id), update, opts).Decode(&todo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update todo: %w", err)
	}
	return &todo, nil
}

func ownerFilter(ownerID, id primitive.ObjectID) bson.M {
	return bson.M{"_id": id, "user_id": ownerID}
}
