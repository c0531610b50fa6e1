package core

import "sort"

// Room groups clients subscribed to the same channel and owns their
// message log. All methods are called from the hub goroutine only.
type Room struct {
	ID      string
	Private bool

	members  map[string]*Client // keyed by connection id
	messages []*Message
	typing   map[string]struct{}
}

// NewRoom constructs a room with no clients.
func NewRoom(id string, private bool) *Room {
	return &Room{
		ID:      id,
		Private: private,
		members: make(map[string]*Client),
		typing:  make(map[string]struct{}),
	}
}

// AddMember inserts a client into the room, replacing any prior entry with
// the same connection id. Returns true if the client was newly added.
func (r *Room) AddMember(c *Client) bool {
	_, exists := r.members[c.ID]
	r.members[c.ID] = c
	return !exists
}

// RemoveMember deletes a client from the room by connection id.
// Returns true if a member was removed.
func (r *Room) RemoveMember(id string) bool {
	if _, exists := r.members[id]; !exists {
		return false
	}
	delete(r.members, id)
	delete(r.typing, id)
	return true
}

// HasMember reports whether a connection is in the room.
func (r *Room) HasMember(id string) bool {
	_, ok := r.members[id]
	return ok
}

// Empty returns true if no clients are in the room.
func (r *Room) Empty() bool {
	return len(r.members) == 0
}

// Presence returns the current member snapshot, ordered by nickname for
// stable output.
func (r *Room) Presence() []Member {
	out := make([]Member, 0, len(r.members))
	for _, c := range r.members {
		out = append(out, Member{
			ID:       c.ID,
			Nickname: c.Identity.Nickname,
			Badge:    c.Identity.Badge,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Nickname != out[j].Nickname {
			return out[i].Nickname < out[j].Nickname
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Append adds a message to the end of the log.
func (r *Room) Append(msg *Message) {
	r.messages = append(r.messages, msg)
}

// DeleteMessage removes the message with the given id if the requester is
// its author. Remaining messages keep their ids and relative order.
func (r *Room) DeleteMessage(messageID, requesterID string) error {
	for i, msg := range r.messages {
		if msg.ID != messageID {
			continue
		}
		if msg.AuthorID == "" || msg.AuthorID != requesterID {
			return ErrForbidden
		}
		r.messages = append(r.messages[:i], r.messages[i+1:]...)
		return nil
	}
	return ErrNotFound
}

// History returns a copy of the current log. Taken inside the hub turn, so
// it can never observe a torn append or delete.
func (r *Room) History() []Message {
	out := make([]Message, len(r.messages))
	for i, msg := range r.messages {
		out[i] = *msg
	}
	return out
}

// SetTyping marks a member as typing. Returns true on a fresh transition.
func (r *Room) SetTyping(id string) bool {
	if _, ok := r.typing[id]; ok {
		return false
	}
	r.typing[id] = struct{}{}
	return true
}

// ClearTyping clears a member's typing mark. Returns true if it was set.
func (r *Room) ClearTyping(id string) bool {
	if _, ok := r.typing[id]; !ok {
		return false
	}
	delete(r.typing, id)
	return true
}

// Broadcast sends an event to all clients in the room.
func (r *Room) Broadcast(event *Event) {
	for _, client := range r.members {
		sendEvent(client, event)
	}
}

// BroadcastExcept sends an event to all clients in the room but the sender.
func (r *Room) BroadcastExcept(senderID string, event *Event) {
	for id, client := range r.members {
		if id == senderID {
			continue
		}
		sendEvent(client, event)
	}
}

func sendEvent(c *Client, event *Event) {
	select {
	case c.Events <- event:
	default:
		// Drop if slow consumer.
	}
}
