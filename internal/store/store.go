package store

import (
	"context"
	"time"
)

// Message is a persisted chat message. The per-room message log is the
// only unit of state that survives a restart; presence, typing and
// invites never touch storage.
type Message struct {
	ID       string
	RoomID   string
	AuthorID string
	Author   string
	Text     string
	SentAt   time.Time
}

// HistoryStore persists room message logs keyed by room id. All hub usage
// is best-effort: a failing store must never change the outcome of a chat
// operation.
type HistoryStore interface {
	// SaveMessage appends a message to the room's durable log.
	SaveMessage(ctx context.Context, msg *Message) error

	// DeleteMessage removes one message from the room's durable log.
	DeleteMessage(ctx context.Context, roomID, messageID string) error

	// RoomHistory returns the room's durable log in arrival order.
	RoomHistory(ctx context.Context, roomID string) ([]*Message, error)

	// DropRoom deletes the room's entire durable log. Called when a room
	// reaches zero members, since a deleted room must not resurrect old
	// messages on re-creation.
	DropRoom(ctx context.Context, roomID string) error

	// Close closes the underlying database connection.
	Close() error
}
