package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventHistory delivers the room's message log to a client upon joining.
	EventHistory EventKind = iota
	// EventMessage carries a chat or system message to the whole room.
	EventMessage
	// EventMessageDeleted announces the removal of a message.
	EventMessageDeleted
	// EventOnlineUsers carries a full presence snapshot after any membership change.
	EventOnlineUsers
	// EventTyping tells the room (minus the typist) that someone is typing.
	EventTyping
	// EventStopTyping clears the typing indicator.
	EventStopTyping
	// EventInvite offers a private room to the target connection only.
	EventInvite
	// EventInviteSent acknowledges a sent invite to the inviter only.
	EventInviteSent
	// EventError notifies the offending connection about a domain error.
	EventError
)

// Member is one entry of a presence snapshot.
type Member struct {
	ID       string
	Nickname string
	Badge    string
}

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind      EventKind
	Room      string
	User      string // display name for typing and invite events
	Message   *Message
	Messages  []Message // EventHistory
	Members   []Member  // EventOnlineUsers
	MessageID string    // EventMessageDeleted
	InviterID string    // EventInvite
	Error     *CoreError
}
