package domain

import "time"

// Mic/camera states as they travel on the wire.
const (
	StateOn  = "on"
	StateOff = "off"
)

// Recognised action strings. Anything else leaves the participant
// record untouched but is still relayed to the room.
const (
	ActionMute     = "mute"
	ActionUnmute   = "unmute"
	ActionVideoOn  = "videoon"
	ActionVideoOff = "videooff"
)

// SystemSender is the display name on server-generated chat notices.
const SystemSender = "System"

// ChatTimeLayout is the human-readable, minute-precision timestamp
// format on chat messages and system notices.
const ChatTimeLayout = "3:04 pm"

// Participant is the per-connection record: display name plus mic and
// camera state. Both states default to on at join time. The record is
// owned by the relay and only mutated under its lock.
type Participant struct {
	Username string
	Mic      string
	Camera   string
	JoinedAt time.Time
}

// NewParticipant creates a participant with mic and camera on.
func NewParticipant(username string, now time.Time) *Participant {
	return &Participant{
		Username: username,
		Mic:      StateOn,
		Camera:   StateOn,
		JoinedAt: now,
	}
}

// Apply updates the mic or camera state for a recognised action and
// reports whether the action was recognised.
func (p *Participant) Apply(action string) bool {
	switch action {
	case ActionMute:
		p.Mic = StateOff
	case ActionUnmute:
		p.Mic = StateOn
	case ActionVideoOn:
		p.Camera = StateOn
	case ActionVideoOff:
		p.Camera = StateOff
	default:
		return false
	}
	return true
}
