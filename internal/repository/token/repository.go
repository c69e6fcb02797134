package token

import (
	"context"
	"time"
)

// Session is an issued bearer token bound to a user.
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Repository persists opaque session tokens.
type Repository interface {
	Insert(ctx context.Context, s Session) error
	Lookup(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int, error)
}
