// Package session persists in-flight order state per customer session so a
// conversation can resume across process restarts.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"drivethru/internal/order"
)

// Session is one customer conversation and its current order state.
type Session struct {
	ID        uuid.UUID    `json:"id"`
	Order     *order.Order `json:"order"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// NewSession starts a session with an empty order.
func NewSession() *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.New(),
		Order:     order.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Store persists sessions keyed by ID.
type Store interface {
	Save(ctx context.Context, s *Session) error
	Load(ctx context.Context, id uuid.UUID) (*Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Close() error
}
