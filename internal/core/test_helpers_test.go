package core

import (
	"context"
	"testing"
	"time"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()

	hub := NewHub(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

// mustNoEvent drains the channel for a short window and fails if an event
// of the given kind shows up.
func mustNoEvent(t *testing.T, ch <-chan *Event, kind EventKind) {
	t.Helper()

	deadline := time.Now().Add(200 * time.Millisecond)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev != nil && ev.Kind == kind {
				t.Fatalf("unexpected event of kind %v: %+v", kind, ev)
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}

func mustError(t *testing.T, ch <-chan *Event, code string) {
	t.Helper()

	ev := mustEvent(t, ch, EventError)
	if ev.Error == nil || ev.Error.Code != code {
		t.Fatalf("expected %s error, got %+v", code, ev)
	}
}

func waitForRooms(t *testing.T, hub *Hub, want int) []RoomInfo {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	var rooms []RoomInfo
	for time.Now().Before(deadline) {
		rooms = hub.Rooms()
		if len(rooms) == want {
			return rooms
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected %d rooms, got %+v", want, rooms)
	return nil
}

func join(c *Client, room string) {
	c.Commands <- &Command{Kind: CommandJoinRoom, Room: room}
}
