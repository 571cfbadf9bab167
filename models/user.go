package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email                string             `bson:"email" json:"email"`
	Password             string             `bson:"password" json:"-"` // bcrypt hash, never serialized
	ResetPasswordToken   string             `bson:"reset_password_token,omitempty" json:"-"`
	ResetPasswordExpires *time.Time         `bson:"reset_password_expires,omitempty" json:"-"`
	CreatedAt            time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt            time.Time          `bson:"updated_at" json:"updated_at"`
}

// UserSummary is the shape of a user returned by the auth endpoints.
type UserSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID.Hex(), Email: u.Email}
}
