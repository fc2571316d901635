package domain

import "encoding/json"

// WebSocket message types from client.
const (
	MsgTypeJoinRoom     = "join-room"
	MsgTypeAction       = "action"
	MsgTypeVideoOffer   = "video-offer"
	MsgTypeVideoAnswer  = "video-answer"
	MsgTypeICECandidate = "ice-candidate"
	MsgTypeChatMessage  = "chat-message"
	MsgTypeDraw         = "draw"
	MsgTypeClearBoard   = "clear-board"
	MsgTypeStoreCanvas  = "store-canvas"
	MsgTypeGetCanvas    = "get-canvas"
	MsgTypePing         = "ping"
)

// WebSocket message types to client.
const (
	MsgTypeJoinRoomAck = "join-room-ack"
	MsgTypeUserCount   = "user-count"
	MsgTypeRemovePeer  = "remove-peer"
	MsgTypeCanvasImage = "canvas-image"
	MsgTypePong        = "pong"
	MsgTypeError       = "error"
)

// BaseMessage is the base structure for all WebSocket messages.
type BaseMessage struct {
	Type string `json:"type"`
}

// Client -> Server messages

// JoinRoomMessage is sent by a client to join a room.
type JoinRoomMessage struct {
	Type        string `json:"type"`
	RoomID      string `json:"room_id"`
	Username    string `json:"username"`
	ScreenShare bool   `json:"screen_share,omitempty"`
}

// ActionMessage toggles the sender's mic or camera state.
type ActionMessage struct {
	Type   string `json:"type"`
	Action string `json:"action"`
}

// VideoOfferMessage carries an SDP offer to one target peer.
type VideoOfferMessage struct {
	Type     string          `json:"type"`
	Offer    json.RawMessage `json:"offer"`
	TargetID string          `json:"target_id"`
}

// VideoAnswerMessage carries an SDP answer to one target peer.
type VideoAnswerMessage struct {
	Type     string          `json:"type"`
	Answer   json.RawMessage `json:"answer"`
	TargetID string          `json:"target_id"`
}

// ICECandidateMessage carries an ICE candidate to one target peer.
type ICECandidateMessage struct {
	Type      string          `json:"type"`
	Candidate json.RawMessage `json:"candidate"`
	TargetID  string          `json:"target_id"`
}

// ChatMessage is sent by a client to its room.
type ChatMessage struct {
	Type     string `json:"type"`
	Text     string `json:"text"`
	Username string `json:"username"`
	RoomID   string `json:"room_id"`
}

// DrawMessage carries one whiteboard stroke. The payload is opaque
// to the relay.
type DrawMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// StoreCanvasMessage stores the current whiteboard snapshot for the
// sender's room, typically a data URL.
type StoreCanvasMessage struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

// Server -> Client messages

// PeerInfo describes one existing room member in a join ack.
type PeerInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Mic      string `json:"mic"`
	Camera   string `json:"camera"`
}

// JoinRoomAckMessage is the reply to a join. Peers is nil when the
// joiner is first in the room, so clients can tell "first in room"
// apart from "joined existing room".
type JoinRoomAckMessage struct {
	Type     string     `json:"type"`
	RoomID   string     `json:"room_id"`
	Peers    []PeerInfo `json:"peers"`
	SharerID string     `json:"sharer_id,omitempty"`
}

// ChatRelayMessage is a chat message fanned out to a room. System
// join/leave notices use the same shape with Username "System".
type ChatRelayMessage struct {
	Type     string `json:"type"`
	Text     string `json:"text"`
	Username string `json:"username"`
	Time     string `json:"time"`
}

// ActionRelayMessage notifies a room of a peer's mic/camera toggle.
type ActionRelayMessage struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	From   string `json:"from"`
}

// VideoOfferRelayMessage delivers an offer plus the caller's display
// state so the callee can render the tile before negotiation settles.
type VideoOfferRelayMessage struct {
	Type     string          `json:"type"`
	Offer    json.RawMessage `json:"offer"`
	From     string          `json:"from"`
	Username string          `json:"username"`
	Mic      string          `json:"mic"`
	Camera   string          `json:"camera"`
}

// VideoAnswerRelayMessage delivers an answer to the original caller.
type VideoAnswerRelayMessage struct {
	Type   string          `json:"type"`
	Answer json.RawMessage `json:"answer"`
	From   string          `json:"from"`
}

// ICECandidateRelayMessage delivers an ICE candidate to one peer.
type ICECandidateRelayMessage struct {
	Type      string          `json:"type"`
	Candidate json.RawMessage `json:"candidate"`
	From      string          `json:"from"`
}

// UserCountMessage carries the current room size.
type UserCountMessage struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// RemovePeerMessage tells clients to tear down the peer connection
// for a departed member. Distinct from the chat-style leave notice.
type RemovePeerMessage struct {
	Type   string `json:"type"`
	PeerID string `json:"peer_id"`
}

// DrawRelayMessage fans a whiteboard stroke out to a room.
type DrawRelayMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
	From    string          `json:"from"`
}

// ClearBoardMessage tells clients to wipe their whiteboard.
type ClearBoardMessage struct {
	Type string `json:"type"`
}

// CanvasImageMessage replies to a canvas request with the stored
// snapshot for the room.
type CanvasImageMessage struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

// ErrorMessage is sent when an inbound message cannot be handled.
type ErrorMessage struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// NewErrorMessage creates a new error message.
func NewErrorMessage(code, message string) *ErrorMessage {
	return &ErrorMessage{
		Type:    MsgTypeError,
		Code:    code,
		Message: message,
	}
}
