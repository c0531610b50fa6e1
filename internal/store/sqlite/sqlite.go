package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/huddlechat/huddle-server/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS messages (
	id        TEXT PRIMARY KEY,
	room_id   TEXT NOT NULL,
	author_id TEXT NOT NULL,
	author    TEXT NOT NULL,
	body      TEXT NOT NULL,
	sent_at   DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_room ON messages(room_id);
`

// SQLiteStore implements store.HistoryStore for SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLite store and applies the schema.
// dbPath is the path to the SQLite database file (":memory:" for tests).
func New(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite works best with a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveMessage appends a message to the room's durable log.
func (s *SQLiteStore) SaveMessage(ctx context.Context, msg *store.Message) error {
	query := `
		INSERT INTO messages (id, room_id, author_id, author, body, sent_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if _, err := s.db.ExecContext(ctx, query,
		msg.ID, msg.RoomID, msg.AuthorID, msg.Author, msg.Text, msg.SentAt,
	); err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// DeleteMessage removes one message from the room's durable log.
func (s *SQLiteStore) DeleteMessage(ctx context.Context, roomID, messageID string) error {
	query := `DELETE FROM messages WHERE room_id = ? AND id = ?`
	if _, err := s.db.ExecContext(ctx, query, roomID, messageID); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

// RoomHistory returns the room's durable log in arrival order.
func (s *SQLiteStore) RoomHistory(ctx context.Context, roomID string) ([]*store.Message, error) {
	query := `
		SELECT id, room_id, author_id, author, body, sent_at
		FROM messages
		WHERE room_id = ?
		ORDER BY rowid ASC
	`
	rows, err := s.db.QueryContext(ctx, query, roomID)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []*store.Message
	for rows.Next() {
		var msg store.Message
		if err := rows.Scan(&msg.ID, &msg.RoomID, &msg.AuthorID, &msg.Author, &msg.Text, &msg.SentAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		out = append(out, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return out, nil
}

// DropRoom deletes the room's entire durable log.
func (s *SQLiteStore) DropRoom(ctx context.Context, roomID string) error {
	query := `DELETE FROM messages WHERE room_id = ?`
	if _, err := s.db.ExecContext(ctx, query, roomID); err != nil {
		return fmt.Errorf("drop room log: %w", err)
	}
	return nil
}
