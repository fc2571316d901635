package relay

import (
	"context"
	"encoding/json"
)

// Sender delivers a message to exactly one connection. Implementations
// must treat unknown client ids as a silent drop, since the wire
// protocol has no error-reply channel.
type Sender interface {
	Send(clientID string, message interface{}) error
}

// RoomRelay is the signaling core: in-memory room membership,
// per-participant mic/camera state, and the fan-out rules for the
// fixed set of named events. All operations are fire-and-forget; the
// only output is messages emitted through the Sender.
type RoomRelay interface {
	// Join registers the connection in a room and exchanges presence
	// with existing members. A connection already in a room leaves it
	// first: a connection is in at most one room at a time.
	Join(ctx context.Context, clientID, roomID, username string, screenShare bool) error

	// Action updates the sender's mic/camera state and broadcasts the
	// raw action to the rest of the room. Unrecognised actions are
	// relayed unchanged without touching state.
	Action(ctx context.Context, clientID, action string) error

	// RelayOffer forwards an SDP offer to one target, together with
	// the sender's display name and mic/camera state.
	RelayOffer(ctx context.Context, clientID string, offer json.RawMessage, targetID string) error

	// RelayAnswer forwards an SDP answer to one target.
	RelayAnswer(ctx context.Context, clientID string, answer json.RawMessage, targetID string) error

	// RelayICECandidate forwards an ICE candidate to one target.
	RelayICECandidate(ctx context.Context, clientID string, candidate json.RawMessage, targetID string) error

	// Chat broadcasts a message to the given room and echoes it back
	// to the sender, all carrying one server-generated timestamp.
	Chat(ctx context.Context, clientID, text, username, roomID string) error

	// Draw broadcasts a whiteboard stroke to the sender's room.
	Draw(ctx context.Context, clientID string, payload json.RawMessage) error

	// ClearBoard wipes the stored canvas for the sender's room and
	// broadcasts the clear to the rest of the room.
	ClearBoard(ctx context.Context, clientID string) error

	// StoreCanvas stores a whiteboard snapshot for the sender's room.
	StoreCanvas(ctx context.Context, clientID, data string) error

	// GetCanvas replies to the sender with the stored canvas snapshot
	// for its room, if any.
	GetCanvas(ctx context.Context, clientID string) error

	// Disconnect removes the connection from its room and notifies the
	// remaining members. Idempotent: unknown connections are a no-op.
	Disconnect(ctx context.Context, clientID string) error

	// RoomCounts returns a snapshot of member counts per room.
	RoomCounts() map[string]int
}
