package relay

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/ishashanknigam/Peer-Connect/internal/audit"
	"github.com/ishashanknigam/Peer-Connect/internal/domain"
	"github.com/ishashanknigam/Peer-Connect/internal/kafka"
	"github.com/ishashanknigam/Peer-Connect/internal/store"
	pkglog "github.com/ishashanknigam/Peer-Connect/pkg/log"
)

// Relay implements RoomRelay. All maps are guarded by one mutex so
// every operation is an all-or-nothing mutation, matching the
// single-threaded event model the protocol assumes.
type Relay struct {
	mu     sync.Mutex
	sender Sender

	rooms        map[string][]string // roomID -> ordered member set
	roomByClient map[string]string   // clientID -> roomID (reverse index)
	// participants holds display name and mic/camera state. Entries
	// survive disconnect; only the reverse index and room membership
	// are removed.
	participants map[string]*domain.Participant
	sharers      map[string]string // roomID -> screen-sharing clientID
	canvases     map[string]string // roomID -> stored whiteboard snapshot

	events   kafka.PresenceEventProducer // may be nil
	presence store.PresenceStore         // may be nil

	now func() time.Time
}

// Option configures a Relay.
type Option func(*Relay)

// WithClock overrides the relay's time source.
func WithClock(now func() time.Time) Option {
	return func(r *Relay) { r.now = now }
}

// WithEvents attaches a presence event producer.
func WithEvents(p kafka.PresenceEventProducer) Option {
	return func(r *Relay) { r.events = p }
}

// WithPresence attaches a best-effort presence mirror.
func WithPresence(s store.PresenceStore) Option {
	return func(r *Relay) { r.presence = s }
}

// New creates a Relay that emits messages through the given sender.
func New(sender Sender, opts ...Option) *Relay {
	r := &Relay{
		sender:       sender,
		rooms:        make(map[string][]string),
		roomByClient: make(map[string]string),
		participants: make(map[string]*domain.Participant),
		sharers:      make(map[string]string),
		canvases:     make(map[string]string),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Relay) Join(ctx context.Context, clientID, roomID, username string, screenShare bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// A connection is in at most one room; leave the old one in full
	// (notices, remove-peer, count) before joining the new one.
	if current, ok := r.roomByClient[clientID]; ok {
		r.leaveLocked(ctx, clientID, current)
	}

	now := r.now()
	r.roomByClient[clientID] = roomID
	r.participants[clientID] = domain.NewParticipant(username, now)

	existing := r.rooms[roomID]
	r.rooms[roomID] = append(existing, clientID)

	if screenShare {
		if _, taken := r.sharers[roomID]; !taken {
			r.sharers[roomID] = clientID
		}
	}

	ack := &domain.JoinRoomAckMessage{
		Type:     domain.MsgTypeJoinRoomAck,
		RoomID:   roomID,
		SharerID: r.sharers[roomID],
	}

	if len(existing) > 0 {
		notice := &domain.ChatRelayMessage{
			Type:     domain.MsgTypeChatMessage,
			Text:     username + " joined the room.",
			Username: domain.SystemSender,
			Time:     now.Format(domain.ChatTimeLayout),
		}
		r.broadcastLocked(roomID, clientID, notice)

		peers := make([]domain.PeerInfo, 0, len(existing))
		for _, id := range existing {
			p := r.participants[id]
			if p == nil {
				continue
			}
			peers = append(peers, domain.PeerInfo{
				ID:       id,
				Username: p.Username,
				Mic:      p.Mic,
				Camera:   p.Camera,
			})
		}
		ack.Peers = peers
	}

	// A nil peer list tells the client it is first in the room and
	// should expect no negotiation peers.
	r.sender.Send(clientID, ack)

	count := len(r.rooms[roomID])
	r.broadcastLocked(roomID, clientID, &domain.UserCountMessage{
		Type:  domain.MsgTypeUserCount,
		Count: count,
	})

	audit.LogWithRoom(ctx, audit.ActionJoinRoom, clientID, roomID, "client joined room")
	r.publishJoined(ctx, roomID, clientID, username, count)
	return nil
}

func (r *Relay) Action(ctx context.Context, clientID, action string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	roomID, ok := r.roomByClient[clientID]
	if !ok {
		return nil
	}

	// Unrecognised actions skip the state update but are still
	// relayed verbatim.
	if p := r.participants[clientID]; p != nil {
		p.Apply(action)
	}

	r.broadcastLocked(roomID, clientID, &domain.ActionRelayMessage{
		Type:   domain.MsgTypeAction,
		Action: action,
		From:   clientID,
	})

	audit.LogWithRoom(ctx, audit.ActionToggle, clientID, roomID, "client toggled "+action)
	return nil
}

func (r *Relay) RelayOffer(ctx context.Context, clientID string, offer json.RawMessage, targetID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.roomByClient[clientID]; !ok {
		return nil
	}

	msg := &domain.VideoOfferRelayMessage{
		Type:  domain.MsgTypeVideoOffer,
		Offer: offer,
		From:  clientID,
	}
	if p := r.participants[clientID]; p != nil {
		msg.Username = p.Username
		msg.Mic = p.Mic
		msg.Camera = p.Camera
	}

	// The target is trusted as supplied; the relay never checks that
	// it shares a room with the sender.
	return r.sender.Send(targetID, msg)
}

func (r *Relay) RelayAnswer(ctx context.Context, clientID string, answer json.RawMessage, targetID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.roomByClient[clientID]; !ok {
		return nil
	}

	return r.sender.Send(targetID, &domain.VideoAnswerRelayMessage{
		Type:   domain.MsgTypeVideoAnswer,
		Answer: answer,
		From:   clientID,
	})
}

func (r *Relay) RelayICECandidate(ctx context.Context, clientID string, candidate json.RawMessage, targetID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.roomByClient[clientID]; !ok {
		return nil
	}

	return r.sender.Send(targetID, &domain.ICECandidateRelayMessage{
		Type:      domain.MsgTypeICECandidate,
		Candidate: candidate,
		From:      clientID,
	})
}

func (r *Relay) Chat(ctx context.Context, clientID, text, username, roomID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.roomByClient[clientID]; !ok {
		return nil
	}

	// One timestamp shared by broadcast and echo, so the sender's own
	// rendering matches everyone else's.
	msg := &domain.ChatRelayMessage{
		Type:     domain.MsgTypeChatMessage,
		Text:     text,
		Username: username,
		Time:     r.now().Format(domain.ChatTimeLayout),
	}

	r.broadcastLocked(roomID, clientID, msg)
	r.sender.Send(clientID, msg)

	audit.LogWithRoom(ctx, audit.ActionChat, clientID, roomID, "chat message relayed")
	return nil
}

func (r *Relay) Draw(ctx context.Context, clientID string, payload json.RawMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	roomID, ok := r.roomByClient[clientID]
	if !ok {
		return nil
	}

	r.broadcastLocked(roomID, clientID, &domain.DrawRelayMessage{
		Type:    domain.MsgTypeDraw,
		Payload: payload,
		From:    clientID,
	})
	return nil
}

func (r *Relay) ClearBoard(ctx context.Context, clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	roomID, ok := r.roomByClient[clientID]
	if !ok {
		return nil
	}

	delete(r.canvases, roomID)
	r.broadcastLocked(roomID, clientID, &domain.ClearBoardMessage{
		Type: domain.MsgTypeClearBoard,
	})
	return nil
}

func (r *Relay) StoreCanvas(ctx context.Context, clientID, data string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	roomID, ok := r.roomByClient[clientID]
	if !ok {
		return nil
	}

	r.canvases[roomID] = data
	return nil
}

func (r *Relay) GetCanvas(ctx context.Context, clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	roomID, ok := r.roomByClient[clientID]
	if !ok {
		return nil
	}

	data, ok := r.canvases[roomID]
	if !ok {
		return nil
	}

	return r.sender.Send(clientID, &domain.CanvasImageMessage{
		Type: domain.MsgTypeCanvasImage,
		Data: data,
	})
}

func (r *Relay) Disconnect(ctx context.Context, clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	roomID, ok := r.roomByClient[clientID]
	if !ok {
		return nil
	}

	r.leaveLocked(ctx, clientID, roomID)
	audit.LogWithRoom(ctx, audit.ActionDisconnect, clientID, roomID, "client disconnected")
	return nil
}

// RoomCounts returns a snapshot of member counts per room, including
// rooms that have drained to zero members.
func (r *Relay) RoomCounts() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[string]int, len(r.rooms))
	for roomID, members := range r.rooms {
		counts[roomID] = len(members)
	}
	return counts
}

// leaveLocked removes a client from a room with full notifications:
// a system leave notice, the remove-peer teardown signal, and the
// updated count to every remaining member. The caller holds r.mu.
//
// The room entry itself survives even when it drains to zero members;
// the participant record survives too. Only the reverse index and the
// sharer slot are cleaned up.
func (r *Relay) leaveLocked(ctx context.Context, clientID, roomID string) {
	now := r.now()

	name := ""
	if p := r.participants[clientID]; p != nil {
		name = p.Username
	}

	r.broadcastLocked(roomID, clientID, &domain.ChatRelayMessage{
		Type:     domain.MsgTypeChatMessage,
		Text:     name + " left the chat.",
		Username: domain.SystemSender,
		Time:     now.Format(domain.ChatTimeLayout),
	})
	r.broadcastLocked(roomID, clientID, &domain.RemovePeerMessage{
		Type:   domain.MsgTypeRemovePeer,
		PeerID: clientID,
	})

	members := r.rooms[roomID]
	for i, id := range members {
		if id == clientID {
			r.rooms[roomID] = append(members[:i], members[i+1:]...)
			break
		}
	}

	delete(r.roomByClient, clientID)
	if r.sharers[roomID] == clientID {
		delete(r.sharers, roomID)
	}

	count := len(r.rooms[roomID])
	r.broadcastLocked(roomID, clientID, &domain.UserCountMessage{
		Type:  domain.MsgTypeUserCount,
		Count: count,
	})

	audit.LogWithRoom(ctx, audit.ActionLeaveRoom, clientID, roomID, "client left room")
	r.publishLeft(ctx, roomID, clientID, name, count)
}

// broadcastLocked fans a message out to every room member except one.
// The caller holds r.mu.
func (r *Relay) broadcastLocked(roomID, exclude string, message interface{}) {
	for _, id := range r.rooms[roomID] {
		if id == exclude {
			continue
		}
		if err := r.sender.Send(id, message); err != nil {
			pkglog.L().Warn().Err(err).
				Str(pkglog.FieldClientID, id).
				Str(pkglog.FieldRoomID, roomID).
				Msg("failed to send to room member")
		}
	}
}

// publishJoined forwards a membership change to the optional event
// producer and presence mirror. Both are best-effort; the mirror runs
// off the event path so no relay operation blocks on Redis.
func (r *Relay) publishJoined(ctx context.Context, roomID, clientID, username string, count int) {
	if r.events != nil {
		if err := r.events.ProduceMemberJoined(ctx, roomID, clientID, username, count); err != nil {
			pkglog.L().Warn().Err(err).Str(pkglog.FieldRoomID, roomID).Msg("failed to produce member_joined event")
		}
	}
	if r.presence != nil {
		go r.mirror(roomID, clientID, count, true)
	}
}

func (r *Relay) publishLeft(ctx context.Context, roomID, clientID, username string, count int) {
	if r.events != nil {
		if err := r.events.ProduceMemberLeft(ctx, roomID, clientID, username, count); err != nil {
			pkglog.L().Warn().Err(err).Str(pkglog.FieldRoomID, roomID).Msg("failed to produce member_left event")
		}
	}
	if r.presence != nil {
		go r.mirror(roomID, clientID, count, false)
	}
}

func (r *Relay) mirror(roomID, clientID string, count int, joined bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var err error
	if joined {
		err = r.presence.AddMember(ctx, roomID, clientID)
	} else {
		err = r.presence.RemoveMember(ctx, roomID, clientID)
	}
	if err == nil {
		err = r.presence.PublishRoomUpdate(ctx, roomID, count)
	}
	if err != nil {
		pkglog.L().Warn().Err(err).Str(pkglog.FieldRoomID, roomID).Msg("presence mirror update failed")
	}
}
