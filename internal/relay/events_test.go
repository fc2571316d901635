package relay

import (
	"context"
	"testing"
	"time"
)

// fakeProducer records presence events.
type fakeProducer struct {
	joined []presenceRecord
	left   []presenceRecord
}

type presenceRecord struct {
	roomID   string
	clientID string
	count    int
}

func (p *fakeProducer) ProduceMemberJoined(ctx context.Context, roomID, clientID, username string, count int) error {
	p.joined = append(p.joined, presenceRecord{roomID, clientID, count})
	return nil
}

func (p *fakeProducer) ProduceMemberLeft(ctx context.Context, roomID, clientID, username string, count int) error {
	p.left = append(p.left, presenceRecord{roomID, clientID, count})
	return nil
}

func (p *fakeProducer) Close() error { return nil }

// fakeMirror signals each mirror update over a channel so tests can
// wait for the asynchronous writes.
type fakeMirror struct {
	ops chan string
}

func (m *fakeMirror) AddMember(ctx context.Context, roomID, clientID string) error {
	m.ops <- "add:" + roomID + ":" + clientID
	return nil
}

func (m *fakeMirror) RemoveMember(ctx context.Context, roomID, clientID string) error {
	m.ops <- "remove:" + roomID + ":" + clientID
	return nil
}

func (m *fakeMirror) PublishRoomUpdate(ctx context.Context, roomID string, count int) error {
	m.ops <- "publish:" + roomID
	return nil
}

func (m *fakeMirror) Close() error { return nil }

func TestPresenceEventsEmitted(t *testing.T) {
	producer := &fakeProducer{}
	r, _ := newTestRelay(WithEvents(producer))

	r.Join(ctxb(), "a", "r1", "Alice", false)
	r.Join(ctxb(), "b", "r1", "Bob", false)
	r.Disconnect(ctxb(), "a")

	if len(producer.joined) != 2 {
		t.Fatalf("expected 2 joined events, got %d", len(producer.joined))
	}
	if producer.joined[1].count != 2 {
		t.Fatalf("joined event should carry the room size after the join, got %d", producer.joined[1].count)
	}
	if len(producer.left) != 1 {
		t.Fatalf("expected 1 left event, got %d", len(producer.left))
	}
	if producer.left[0].count != 1 {
		t.Fatalf("left event should carry the room size after the leave, got %d", producer.left[0].count)
	}
}

func TestPresenceMirrorBestEffort(t *testing.T) {
	mirror := &fakeMirror{ops: make(chan string, 8)}
	r, _ := newTestRelay(WithPresence(mirror))

	r.Join(ctxb(), "a", "r1", "Alice", false)

	waitOp := func(want string) {
		select {
		case got := <-mirror.ops:
			if got != want {
				t.Fatalf("expected mirror op %q, got %q", want, got)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for mirror op %q", want)
		}
	}

	waitOp("add:r1:a")
	waitOp("publish:r1")

	r.Disconnect(ctxb(), "a")
	waitOp("remove:r1:a")
	waitOp("publish:r1")
}
