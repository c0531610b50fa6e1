package core

import "time"

// SystemAuthor is the display name attached to server-generated notices.
const SystemAuthor = "System"

// Message is the domain model for a chat message.
type Message struct {
	ID       string
	AuthorID string
	Author   string
	Text     string
	SentAt   time.Time
}
