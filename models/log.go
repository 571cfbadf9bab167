package models

import "time"

// LogEntry is an error-log document in the logs collection. Writes are
// best-effort; a failed insert must never surface to the request.
type LogEntry struct {
	Level     string    `bson:"level" json:"level"`
	Message   string    `bson:"message" json:"message"`
	Error     string    `bson:"error,omitempty" json:"error,omitempty"`
	UserID    string    `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Endpoint  string    `bson:"endpoint,omitempty" json:"endpoint,omitempty"`
	Method    string    `bson:"method,omitempty" json:"method,omitempty"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}
