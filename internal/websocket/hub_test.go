package websocket

import (
	"testing"
	"time"
)

// syncPoint blocks until the hub loop has processed everything sent to it
// before this call. Register/unregister are unbuffered, so a throwaway
// registration for an unrelated member acts as a barrier.
func syncPoint(h *Hub) {
	h.register <- &Client{UserID: "sync-barrier", send: make(chan []byte, 1)}
}

func TestReconnectDisplacesOldConnection(t *testing.T) {
	h := NewHub()
	go h.Run()

	first := &Client{hub: h, UserID: "member-1", send: make(chan []byte, 1)}
	second := &Client{hub: h, UserID: "member-1", send: make(chan []byte, 1)}

	h.register <- first
	h.register <- second
	syncPoint(h)

	// The displaced connection's send channel must be closed
	select {
	case _, open := <-first.send:
		if open {
			t.Error("Displaced client should have its send channel closed")
		}
	case <-time.After(time.Second):
		t.Fatal("Displaced client send channel was not closed")
	}

	if !h.SendToUser("member-1", map[string]string{"type": "PING"}) {
		t.Error("Replacement connection should receive messages")
	}
}

func TestDisplacedClientUnregisterKeepsReplacement(t *testing.T) {
	h := NewHub()
	go h.Run()

	first := &Client{hub: h, UserID: "member-1", send: make(chan []byte, 1)}
	second := &Client{hub: h, UserID: "member-1", send: make(chan []byte, 1)}

	h.register <- first
	h.register <- second

	// The displaced connection's readPump tears down and unregisters after
	// the replacement is already live. This must neither evict the
	// replacement nor close its channel twice.
	h.unregister <- first
	syncPoint(h)

	if !h.SendToUser("member-1", map[string]string{"type": "PING"}) {
		t.Error("Stale unregister must not evict the live connection")
	}

	select {
	case msg := <-second.send:
		if len(msg) == 0 {
			t.Error("Expected a message on the live connection")
		}
	case <-time.After(time.Second):
		t.Fatal("Live connection received nothing")
	}
}

func TestUnregisterRemovesClient(t *testing.T) {
	h := NewHub()
	go h.Run()

	client := &Client{hub: h, UserID: "member-2", send: make(chan []byte, 1)}
	h.register <- client
	h.unregister <- client
	syncPoint(h)

	if h.SendToUser("member-2", map[string]string{"type": "PING"}) {
		t.Error("Unregistered member should not be reachable")
	}
}
