package core

import (
	"testing"
	"time"
)

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

// mustNoEvent drains the channel for a short window and fails if an
// event of the given kind shows up.
func mustNoEvent(t *testing.T, ch <-chan *Event, kind EventKind) {
	t.Helper()

	deadline := time.Now().Add(200 * time.Millisecond)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev != nil && ev.Kind == kind {
				t.Fatalf("unexpected event kind %v received: %+v", kind, ev)
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}

// waitForPresence consumes events until a presence snapshot with n
// users arrives, which proves all n joins have been processed.
func waitForPresence(t *testing.T, ch <-chan *Event, n int) {
	t.Helper()

	for {
		if ev := mustEvent(t, ch, EventPresence); len(ev.Users) == n {
			return
		}
	}
}

func join(c *Client, username string) {
	c.Commands <- &Command{Kind: CommandJoin, Username: username}
}

func joinRoom(c *Client, room string) {
	c.Commands <- &Command{Kind: CommandJoinRoom, Room: room}
}
