package core

// Client is a chat participant as seen by the core layer.
type Client struct {
	ID       string
	Identity Identity
	Commands chan *Command
	Events   chan *Event

	// room is the id of the client's current room, empty when lobbying.
	// Owned by the hub goroutine; always updated together with the room's
	// member set.
	room string
}

// NewClient constructs a client with initialized channels. A blank nickname
// is replaced by an auto-generated one.
func NewClient(id, nickname string) *Client {
	return &Client{
		ID:       id,
		Identity: NewIdentity(nickname),
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 16),
	}
}
