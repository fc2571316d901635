package store

import "context"

// PresenceStore mirrors room membership for external observers
// (dashboards, other instances reading counts). It is strictly
// best-effort: the relay's in-memory maps stay the source of truth and
// nothing is ever read back from the mirror.
type PresenceStore interface {
	// AddMember records a client in a room's member set.
	AddMember(ctx context.Context, roomID, clientID string) error

	// RemoveMember removes a client from a room's member set.
	RemoveMember(ctx context.Context, roomID, clientID string) error

	// PublishRoomUpdate publishes the room's member count on the
	// update channel.
	PublishRoomUpdate(ctx context.Context, roomID string, count int) error

	// Close closes the store connection.
	Close() error
}
