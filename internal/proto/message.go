package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	ProtocolVersion = 1

	InboundTypeJoin   = "joinRoom"
	InboundTypeLeave  = "leaveRoom"
	InboundTypeChat   = "chatMessage"
	InboundTypeDelete = "deleteMessage"
	InboundTypeTyping = "typing"
	InboundTypeStop   = "stopTyping"
	InboundTypeInvite = "invitePrivate"
	InboundTypeAccept = "acceptInvite"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"

	EventRoomHistory    = "roomHistory"
	EventMessage        = "message"
	EventMessageDeleted = "messageDeleted"
	EventOnlineUsers    = "onlineUsers"
	EventDisplayTyping  = "displayTyping"
	EventRemoveTyping   = "removeTyping"
	EventPrivateInvite  = "privateInvite"
	EventInviteSent     = "inviteSent"
	EventErrorMsg       = "errorMsg"
)

// JoinData requests to join a specific room, optionally naming oneself.
type JoinData struct {
	Room     string `json:"room"`
	Nickname string `json:"nickname,omitempty"`
}

// ChatData is a chat message from the client.
type ChatData struct {
	Room    string `json:"room"`
	Message string `json:"message"`
}

// DeleteData asks to remove one of the sender's own messages.
type DeleteData struct {
	Room      string `json:"room"`
	MessageID string `json:"messageId"`
}

// TypingData scopes a typing signal to a room.
type TypingData struct {
	Room string `json:"room"`
}

// InviteData starts the private invite handshake.
type InviteData struct {
	TargetID string `json:"targetId"`
}

// AcceptData completes the private invite handshake.
type AcceptData struct {
	RoomID    string `json:"roomId"`
	InviterID string `json:"inviterId"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// WireMessage is a chat or system message on the wire.
type WireMessage struct {
	ID     string `json:"id,omitempty"`
	UserID string `json:"userId,omitempty"`
	User   string `json:"user"`
	Text   string `json:"text"`
	TS     int64  `json:"ts"`
}

// DeletedData announces a removed message.
type DeletedData struct {
	MessageID string `json:"messageId"`
}

// OnlineUser is one presence entry.
type OnlineUser struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Badge    string `json:"badge"`
}

// TypingUser names who is (or stopped) typing.
type TypingUser struct {
	User string `json:"user"`
}

// PrivateInviteData offers a freshly minted private room to the target.
type PrivateInviteData struct {
	From      string `json:"from"`
	RoomID    string `json:"roomId"`
	InviterID string `json:"inviterId"`
}

// InviteSentData acknowledges the offer to the inviter.
type InviteSentData struct {
	RoomID string `json:"roomId"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
