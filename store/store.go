// Package store implements persistence for users and todos on MongoDB.
// Stores are constructed once at startup and handed to the HTTP handlers;
// nothing in here is a package-level singleton.
package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound covers both a missing document and one owned by someone
	// else; callers cannot tell the two apart.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned when a signup email is already taken.
	ErrDuplicateEmail = errors.New("email already registered")
)

const queryTimeout = 5 * time.Second

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client, nil
}
