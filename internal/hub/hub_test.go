package hub

import (
	"testing"

	"github.com/ishashanknigam/Peer-Connect/internal/config"
)

func TestSendToUnknownClientIsSilent(t *testing.T) {
	h := NewHub(config.WebSocketConfig{})

	if err := h.Send("ghost", map[string]string{"type": "user-count"}); err != nil {
		t.Fatalf("send to unknown client must be a silent drop, got %v", err)
	}
}

func TestSendQueuesForRegisteredClient(t *testing.T) {
	h := NewHub(config.WebSocketConfig{})
	c := &Client{ID: "c1", Hub: h, Send: make(chan []byte, 4)}
	h.Register(c)

	if err := h.Send("c1", map[string]string{"type": "pong"}); err != nil {
		t.Fatalf("send: %v", err)
	}

	select {
	case data := <-c.Send:
		if len(data) == 0 {
			t.Fatalf("empty payload queued")
		}
	default:
		t.Fatalf("message not queued")
	}
}

func TestUnregisterIsIdempotent(t *testing.T) {
	h := NewHub(config.WebSocketConfig{})
	c := &Client{ID: "c1", Hub: h, Send: make(chan []byte, 1)}
	h.Register(c)

	h.Unregister(c)
	// Second call must not close the send queue again.
	h.Unregister(c)

	if h.Len() != 0 {
		t.Fatalf("client still registered")
	}
}

func TestSendRejectsUnmarshalableMessage(t *testing.T) {
	h := NewHub(config.WebSocketConfig{})

	if err := h.Send("c1", make(chan int)); err == nil {
		t.Fatalf("expected marshal error")
	}
}
