package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/huddlechat/huddle-server/internal/store"
)

// Hub coordinates clients, rooms and the private invite handshake. It is
// a single-goroutine actor: every client command runs as one exclusive
// loop turn against the shared registry, so membership and message-log
// mutations for a room are serialized, and every broadcast snapshot is
// taken in the same turn as the mutation that produced it.
type Hub struct {
	registry *Registry
	history  store.HistoryStore // nil disables persistence
	log      zerolog.Logger

	register   chan *Client
	unregister chan *Client
	commands   chan clientCommand
	roomsReq   chan roomsRequest
	done       chan struct{}

	clients map[string]*Client
}

type clientCommand struct {
	client *Client
	cmd    *Command
}

type roomsRequest struct {
	reply chan []RoomInfo
}

// NewHub creates a new chat hub instance. history may be nil.
func NewHub(history store.HistoryStore, logger *zerolog.Logger) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Hub{
		registry:   NewRegistry(),
		history:    history,
		log:        *logger,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		commands:   make(chan clientCommand),
		roomsReq:   make(chan roomsRequest),
		done:       make(chan struct{}),
		clients:    make(map[string]*Client),
	}
}

// RegisterClient adds a connection to the hub and starts pumping its
// commands into the hub loop. The pump exits when the client's command
// channel is closed or the hub stops.
func (h *Hub) RegisterClient(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		return
	}

	go func() {
		for cmd := range c.Commands {
			select {
			case h.commands <- clientCommand{client: c, cmd: cmd}:
			case <-h.done:
				return
			}
		}
	}()
}

// UnregisterClient removes a connection, cleaning up its room membership.
func (h *Hub) UnregisterClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Rooms returns a directory snapshot of all live rooms.
func (h *Hub) Rooms() []RoomInfo {
	req := roomsRequest{reply: make(chan []RoomInfo, 1)}
	select {
	case h.roomsReq <- req:
		return <-req.reply
	case <-h.done:
		return nil
	}
}

// Run drives the hub until the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	defer h.teardown()

	for {
		select {
		case c := <-h.register:
			h.clients[c.ID] = c
			h.log.Debug().Str("client_id", c.ID).Msg("client registered")

		case c := <-h.unregister:
			if current, ok := h.clients[c.ID]; !ok || current != c {
				continue
			}
			delete(h.clients, c.ID)
			h.leaveRoom(ctx, c)
			close(c.Events)
			h.log.Debug().Str("client_id", c.ID).Msg("client unregistered")

		case cc := <-h.commands:
			// The pump can still deliver buffered commands after the client
			// unregistered; its Events channel is closed by then, so a send
			// would panic. Stale commands are dropped.
			if current, ok := h.clients[cc.client.ID]; !ok || current != cc.client {
				continue
			}
			h.dispatch(ctx, cc.client, cc.cmd)

		case req := <-h.roomsReq:
			req.reply <- h.registry.Snapshot()

		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) teardown() {
	for _, c := range h.clients {
		close(c.Events)
	}
	h.clients = make(map[string]*Client)
	h.registry.Clear()
}

func (h *Hub) dispatch(ctx context.Context, c *Client, cmd *Command) {
	switch cmd.Kind {
	case CommandJoinRoom:
		h.handleJoin(ctx, c, cmd.Room, cmd.Nickname)
	case CommandLeaveRoom:
		h.leaveRoom(ctx, c)
	case CommandSendMessage:
		h.handleSend(ctx, c, cmd.Room, cmd.Text)
	case CommandDeleteMessage:
		h.handleDelete(ctx, c, cmd.Room, cmd.MessageID)
	case CommandStartTyping:
		h.handleTyping(c, cmd.Room, true)
	case CommandStopTyping:
		h.handleTyping(c, cmd.Room, false)
	case CommandInvite:
		h.handleInvite(c, cmd.TargetID)
	case CommandAcceptInvite:
		h.handleAccept(ctx, c, cmd.Room, cmd.InviterID)
	default:
		h.sendError(c, ErrCodeBadRequest, "unknown command")
	}
}

// handleJoin switches the connection's current room. The previous room is
// left first so presence and the client's room field never disagree.
func (h *Hub) handleJoin(ctx context.Context, c *Client, roomID, nickname string) {
	if roomID == "" {
		h.sendError(c, ErrCodeBadRequest, "room is required")
		return
	}
	if nickname != "" {
		c.Identity = NewIdentity(nickname)
	}

	// Re-joining the current room replaces the membership entry instead of
	// cycling the room through an empty (and therefore deleted) state.
	if c.room != roomID {
		h.leaveRoom(ctx, c)
	}

	room, created := h.registry.Ensure(roomID, false)
	if created {
		h.loadHistory(ctx, room)
	}
	room.AddMember(c)
	c.room = roomID

	h.log.Info().Str("client_id", c.ID).Str("room", roomID).
		Str("nickname", c.Identity.Nickname).Msg("client joined room")

	sendEvent(c, &Event{Kind: EventHistory, Room: roomID, Messages: room.History()})
	sendEvent(c, h.systemNotice(roomID, fmt.Sprintf("Welcome to room %s, %s!", roomID, c.Identity.Nickname)))
	room.BroadcastExcept(c.ID, h.systemNotice(roomID, c.Identity.Nickname+" joined the chat."))
	room.Broadcast(&Event{Kind: EventOnlineUsers, Room: roomID, Members: room.Presence()})
}

// leaveRoom removes the client from its current room, if any, and deletes
// the room when it becomes empty.
func (h *Hub) leaveRoom(ctx context.Context, c *Client) {
	if c.room == "" {
		return
	}
	roomID := c.room
	c.room = ""

	room, ok := h.registry.Get(roomID)
	if !ok {
		return
	}

	if room.ClearTyping(c.ID) {
		room.BroadcastExcept(c.ID, &Event{Kind: EventStopTyping, Room: roomID, User: c.Identity.Nickname})
	}
	if !room.RemoveMember(c.ID) {
		return
	}

	if room.Empty() {
		h.registry.Remove(roomID)
		h.dropHistory(ctx, roomID)
		h.log.Debug().Str("room", roomID).Msg("empty room removed")
		return
	}

	room.Broadcast(h.systemNotice(roomID, c.Identity.Nickname+" has left the chat."))
	room.Broadcast(&Event{Kind: EventOnlineUsers, Room: roomID, Members: room.Presence()})
}

func (h *Hub) handleSend(ctx context.Context, c *Client, roomID, text string) {
	if strings.TrimSpace(text) == "" {
		// Empty or whitespace-only input is a user no-op, not an error.
		return
	}

	room := h.currentRoom(c, roomID)
	if room == nil {
		return
	}

	msg := &Message{
		ID:       uuid.NewString(),
		AuthorID: c.ID,
		Author:   c.Identity.Nickname,
		Text:     text,
		SentAt:   time.Now(),
	}
	room.Append(msg)
	h.saveHistory(ctx, roomID, msg)

	room.Broadcast(&Event{Kind: EventMessage, Room: roomID, Message: msg})
}

func (h *Hub) handleDelete(ctx context.Context, c *Client, roomID, messageID string) {
	room := h.currentRoom(c, roomID)
	if room == nil {
		return
	}

	switch err := room.DeleteMessage(messageID, c.ID); err {
	case nil:
		h.deleteHistory(ctx, roomID, messageID)
		room.Broadcast(&Event{Kind: EventMessageDeleted, Room: roomID, MessageID: messageID})
	case ErrForbidden:
		h.sendError(c, ErrCodeForbidden, "you can only delete your own messages")
	case ErrNotFound:
		h.sendError(c, ErrCodeNotFound, "message not found")
	}
}

func (h *Hub) handleTyping(c *Client, roomID string, typing bool) {
	room := h.currentRoom(c, roomID)
	if room == nil {
		return
	}

	if typing {
		if room.SetTyping(c.ID) {
			room.BroadcastExcept(c.ID, &Event{Kind: EventTyping, Room: roomID, User: c.Identity.Nickname})
		}
		return
	}
	if room.ClearTyping(c.ID) {
		room.BroadcastExcept(c.ID, &Event{Kind: EventStopTyping, Room: roomID, User: c.Identity.Nickname})
	}
}

// handleInvite starts the private handshake: no state is created beyond
// the values carried by the two events, so an ignored invite expires by
// itself.
func (h *Hub) handleInvite(c *Client, targetID string) {
	if targetID == "" {
		h.sendError(c, ErrCodeBadRequest, "target is required")
		return
	}
	if targetID == c.ID {
		h.sendError(c, ErrCodeSelfInvite, "you cannot invite yourself")
		return
	}
	target, ok := h.clients[targetID]
	if !ok {
		h.sendError(c, ErrCodeNotFound, "user is not online")
		return
	}

	roomID := h.registry.NewPrivateRoomID()

	sendEvent(target, &Event{Kind: EventInvite, Room: roomID, User: c.Identity.Nickname, InviterID: c.ID})
	sendEvent(c, &Event{Kind: EventInviteSent, Room: roomID})

	h.log.Info().Str("inviter", c.ID).Str("target", targetID).
		Str("room", roomID).Msg("private invite offered")
}

// handleAccept completes the handshake. The target joins first; if the
// inviter is gone the room keeps the target as its only member and the
// accepter gets an explicit error. Accepting twice never duplicates the
// inviter's membership.
func (h *Hub) handleAccept(ctx context.Context, c *Client, roomID, inviterID string) {
	if roomID == "" {
		h.sendError(c, ErrCodeBadRequest, "room is required")
		return
	}

	if c.room != roomID {
		h.leaveRoom(ctx, c)
	}
	room, created := h.registry.Ensure(roomID, true)
	if created {
		h.loadHistory(ctx, room)
	}
	room.AddMember(c)
	c.room = roomID

	inviter, live := h.clients[inviterID]
	if !live {
		sendEvent(c, &Event{Kind: EventHistory, Room: roomID, Messages: room.History()})
		room.Broadcast(&Event{Kind: EventOnlineUsers, Room: roomID, Members: room.Presence()})
		h.sendError(c, ErrCodeInviterGone, "the inviter is no longer online")
		return
	}

	if !room.HasMember(inviter.ID) {
		h.leaveRoom(ctx, inviter)
		room.AddMember(inviter)
		inviter.room = roomID

		paired := &Message{
			ID:     uuid.NewString(),
			Author: SystemAuthor,
			Text: fmt.Sprintf("%s and %s are now in a private chat.",
				inviter.Identity.Nickname, c.Identity.Nickname),
			SentAt: time.Now(),
		}
		room.Append(paired)
		h.saveHistory(ctx, roomID, paired)
	}

	history := room.History()
	sendEvent(c, &Event{Kind: EventHistory, Room: roomID, Messages: history})
	sendEvent(inviter, &Event{Kind: EventHistory, Room: roomID, Messages: history})
	room.Broadcast(&Event{Kind: EventOnlineUsers, Room: roomID, Members: room.Presence()})

	h.log.Info().Str("inviter", inviter.ID).Str("target", c.ID).
		Str("room", roomID).Msg("private invite accepted")
}

// currentRoom resolves a room-scoped command against the client's current
// room. Targeting any other room is a caller error.
func (h *Hub) currentRoom(c *Client, roomID string) *Room {
	if roomID == "" || roomID != c.room {
		h.sendError(c, ErrCodeInvalidRoom, "you are not in that room")
		return nil
	}
	room, ok := h.registry.Get(roomID)
	if !ok {
		h.sendError(c, ErrCodeInvalidRoom, "you are not in that room")
		return nil
	}
	return room
}

func (h *Hub) systemNotice(roomID, text string) *Event {
	// Notices carry no id and are never appended to the log.
	return &Event{
		Kind: EventMessage,
		Room: roomID,
		Message: &Message{
			Author: SystemAuthor,
			Text:   text,
			SentAt: time.Now(),
		},
	}
}

func (h *Hub) sendError(c *Client, code, msg string) {
	sendEvent(c, &Event{Kind: EventError, Error: coreError(code, msg)})
}

// ==== best-effort persistence ====

func (h *Hub) loadHistory(ctx context.Context, room *Room) {
	if h.history == nil {
		return
	}
	stored, err := h.history.RoomHistory(ctx, room.ID)
	if err != nil {
		h.log.Warn().Err(err).Str("room", room.ID).Msg("failed to load room history")
		return
	}
	for _, sm := range stored {
		room.Append(&Message{
			ID:       sm.ID,
			AuthorID: sm.AuthorID,
			Author:   sm.Author,
			Text:     sm.Text,
			SentAt:   sm.SentAt,
		})
	}
}

func (h *Hub) saveHistory(ctx context.Context, roomID string, msg *Message) {
	if h.history == nil {
		return
	}
	err := h.history.SaveMessage(ctx, &store.Message{
		ID:       msg.ID,
		RoomID:   roomID,
		AuthorID: msg.AuthorID,
		Author:   msg.Author,
		Text:     msg.Text,
		SentAt:   msg.SentAt,
	})
	if err != nil {
		h.log.Warn().Err(err).Str("room", roomID).Msg("failed to persist message")
	}
}

func (h *Hub) deleteHistory(ctx context.Context, roomID, messageID string) {
	if h.history == nil {
		return
	}
	if err := h.history.DeleteMessage(ctx, roomID, messageID); err != nil {
		h.log.Warn().Err(err).Str("room", roomID).Msg("failed to delete persisted message")
	}
}

func (h *Hub) dropHistory(ctx context.Context, roomID string) {
	if h.history == nil {
		return
	}
	if err := h.history.DropRoom(ctx, roomID); err != nil {
		h.log.Warn().Err(err).Str("room", roomID).Msg("failed to drop room history")
	}
}
