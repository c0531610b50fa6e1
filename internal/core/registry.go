package core

import (
	"sort"

	"github.com/huddlechat/huddle-server/internal/utils"
)

const privateRoomCodeLength = 6

// Registry owns the mapping from room id to live room state. It holds no
// notification channel of its own; creation and deletion become visible
// only through membership changes. Not safe for concurrent use; the hub
// goroutine is its only caller.
type Registry struct {
	rooms map[string]*Room
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// Ensure returns the room with the given id, creating it if absent.
// The private flag only applies on creation. The second result reports
// whether the room was created by this call.
func (g *Registry) Ensure(id string, private bool) (*Room, bool) {
	if room, ok := g.rooms[id]; ok {
		return room, false
	}
	room := NewRoom(id, private)
	g.rooms[id] = room
	return room, true
}

// Get returns the room with the given id, if present.
func (g *Registry) Get(id string) (*Room, bool) {
	room, ok := g.rooms[id]
	return room, ok
}

// Remove deletes a room from the registry. Only empty rooms may be
// removed; returns true if the room is gone afterwards.
func (g *Registry) Remove(id string) bool {
	room, ok := g.rooms[id]
	if !ok {
		return true
	}
	if !room.Empty() {
		return false
	}
	delete(g.rooms, id)
	return true
}

// NewPrivateRoomID generates a room code guaranteed to be absent from the
// registry, regenerating on collision.
func (g *Registry) NewPrivateRoomID() string {
	for {
		id := utils.NewRoomCode(privateRoomCodeLength)
		if _, exists := g.rooms[id]; !exists {
			return id
		}
	}
}

// Len returns the number of live rooms.
func (g *Registry) Len() int {
	return len(g.rooms)
}

// RoomInfo is a directory entry describing one live room.
type RoomInfo struct {
	ID      string
	Members int
	Private bool
}

// Snapshot lists all live rooms ordered by id.
func (g *Registry) Snapshot() []RoomInfo {
	out := make([]RoomInfo, 0, len(g.rooms))
	for id, room := range g.rooms {
		out = append(out, RoomInfo{
			ID:      id,
			Members: len(room.members),
			Private: room.Private,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Clear drops every room. Used on hub teardown.
func (g *Registry) Clear() {
	g.rooms = make(map[string]*Room)
}
