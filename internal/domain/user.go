package domain

import (
	"context"
	"errors"
)

var ErrUserNotFound = errors.New("user not found")

type User struct {
	ID    string `json:"id" bson:"_id"`
	Name  string `json:"name" bson:"name"`
	Email string `json:"email,omitempty" bson:"email,omitempty"`
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
}

// Identity is the authenticated caller as established by the bearer token.
type Identity struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
}
