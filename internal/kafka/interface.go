package kafka

import "context"

// PresenceEvent records one membership change in a room.
type PresenceEvent struct {
	Type      string `json:"type"` // "member_joined" | "member_left"
	RoomID    string `json:"room_id"`
	ClientID  string `json:"client_id"`
	Username  string `json:"username"`
	Count     int    `json:"count"` // room size after the change
	Timestamp int64  `json:"timestamp"`
}

// Event types
const (
	EventMemberJoined = "member_joined"
	EventMemberLeft   = "member_left"
)

// PresenceEventProducer defines the interface for producing presence
// events. The relay tolerates a nil producer; events are then skipped.
type PresenceEventProducer interface {
	ProduceMemberJoined(ctx context.Context, roomID, clientID, username string, count int) error
	ProduceMemberLeft(ctx context.Context, roomID, clientID, username string, count int) error
	Close() error
}
