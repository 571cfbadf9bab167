// Package logger persists error log entries to the logs collection.
// Logging is best-effort: a failed insert is reported to the process log and
// otherwise swallowed, so a broken log pipeline never fails a request.
package logger

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"todo-backend/models"
)

const insertTimeout = 2 * time.Second

type Logger struct {
	col  *mongo.Collection
	slog *slog.Logger
}

func New(col *mongo.Collection, fallback *slog.Logger) *Logger {
	if fallback == nil {
		fallback = slog.Default()
	}
	return &Logger{col: col, slog: fallback}
}

// Error records a failed operation. The write detaches from the request
// context so a canceled request cannot abort it.
func (l *Logger) Error(ctx context.Context, message string, err error, userID, endpoint, method string) {
	entry := models.LogEntry{
		Level:     "error",
		Message:   message,
		UserID:    userID,
		Endpoint:  endpoint,
		Method:    method,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		entry.Error = err.Error()
	}

	l.slog.Error(message,
		"error", entry.Error,
		"user_id", userID,
		"endpoint", endpoint,
		"method", method,
	)

	if l.col == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), insertTimeout)
	defer cancel()
	if _, insertErr := l.col.InsertOne(ctx, entry); insertErr != nil {
		l.slog.Error("failed to write log entry", "error", insertErr)
	}
}
