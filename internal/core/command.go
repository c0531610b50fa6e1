package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoinRoom switches the client into a room, leaving any previous one.
	CommandJoinRoom CommandKind = iota
	// CommandLeaveRoom removes the client from its current room.
	CommandLeaveRoom
	// CommandSendMessage appends a chat message to the current room.
	CommandSendMessage
	// CommandDeleteMessage removes one of the client's own messages.
	CommandDeleteMessage
	// CommandStartTyping signals the room that the client is typing.
	CommandStartTyping
	// CommandStopTyping clears the typing signal.
	CommandStopTyping
	// CommandInvite offers a private room to another connection.
	CommandInvite
	// CommandAcceptInvite completes the private invite handshake.
	CommandAcceptInvite
)

// Command represents an action requested by a client.
type Command struct {
	Kind      CommandKind
	Room      string
	Nickname  string // join only
	Text      string // send only
	MessageID string // delete only
	TargetID  string // invite only
	InviterID string // accept only
}
