package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ishashanknigam/Peer-Connect/internal/domain"
	"github.com/ishashanknigam/Peer-Connect/internal/hub"
	"github.com/ishashanknigam/Peer-Connect/internal/relay"
	pkglog "github.com/ishashanknigam/Peer-Connect/pkg/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // the original server accepted any origin
	},
}

// WSHandler handles WebSocket connections and routes inbound events
// to the relay.
type WSHandler struct {
	hub   *hub.Hub
	relay relay.RoomRelay
}

// NewWSHandler creates a new WebSocket handler.
func NewWSHandler(h *hub.Hub, r relay.RoomRelay) *WSHandler {
	return &WSHandler{
		hub:   h,
		relay: r,
	}
}

// HandleWebSocket upgrades the connection, assigns it an id, and
// starts the read/write pumps.
func (h *WSHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	l := pkglog.Ctx(r.Context())

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		l.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := hub.NewClient(uuid.New().String(), h.hub, conn)

	client.SetDisconnectHandler(func(c *hub.Client) {
		if err := h.relay.Disconnect(context.Background(), c.ID); err != nil {
			l.Error().Err(err).Str(pkglog.FieldClientID, c.ID).Msg("disconnect handler error")
		}
	})

	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump(h.handleMessage)
}

func (h *WSHandler) handleMessage(client *hub.Client, message []byte) {
	l := pkglog.L()

	var base domain.BaseMessage
	if err := json.Unmarshal(message, &base); err != nil {
		client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "Invalid message format"))
		return
	}

	ctx := context.Background()

	switch base.Type {
	case domain.MsgTypeJoinRoom:
		var msg domain.JoinRoomMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "Invalid join-room message"))
			return
		}
		if err := h.relay.Join(ctx, client.ID, msg.RoomID, msg.Username, msg.ScreenShare); err != nil {
			l.Error().Err(err).Str(pkglog.FieldClientID, client.ID).Msg("join room failed")
		}

	case domain.MsgTypeAction:
		var msg domain.ActionMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "Invalid action message"))
			return
		}
		if err := h.relay.Action(ctx, client.ID, msg.Action); err != nil {
			l.Error().Err(err).Str(pkglog.FieldClientID, client.ID).Msg("action failed")
		}

	case domain.MsgTypeVideoOffer:
		var msg domain.VideoOfferMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "Invalid video-offer message"))
			return
		}
		if err := h.relay.RelayOffer(ctx, client.ID, msg.Offer, msg.TargetID); err != nil {
			l.Error().Err(err).Str(pkglog.FieldClientID, client.ID).Msg("offer relay failed")
		}

	case domain.MsgTypeVideoAnswer:
		var msg domain.VideoAnswerMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "Invalid video-answer message"))
			return
		}
		if err := h.relay.RelayAnswer(ctx, client.ID, msg.Answer, msg.TargetID); err != nil {
			l.Error().Err(err).Str(pkglog.FieldClientID, client.ID).Msg("answer relay failed")
		}

	case domain.MsgTypeICECandidate:
		var msg domain.ICECandidateMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "Invalid ice-candidate message"))
			return
		}
		if err := h.relay.RelayICECandidate(ctx, client.ID, msg.Candidate, msg.TargetID); err != nil {
			l.Error().Err(err).Str(pkglog.FieldClientID, client.ID).Msg("candidate relay failed")
		}

	case domain.MsgTypeChatMessage:
		var msg domain.ChatMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "Invalid chat-message"))
			return
		}
		if err := h.relay.Chat(ctx, client.ID, msg.Text, msg.Username, msg.RoomID); err != nil {
			l.Error().Err(err).Str(pkglog.FieldClientID, client.ID).Msg("chat relay failed")
		}

	case domain.MsgTypeDraw:
		var msg domain.DrawMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "Invalid draw message"))
			return
		}
		if err := h.relay.Draw(ctx, client.ID, msg.Payload); err != nil {
			l.Error().Err(err).Str(pkglog.FieldClientID, client.ID).Msg("draw relay failed")
		}

	case domain.MsgTypeClearBoard:
		if err := h.relay.ClearBoard(ctx, client.ID); err != nil {
			l.Error().Err(err).Str(pkglog.FieldClientID, client.ID).Msg("clear board failed")
		}

	case domain.MsgTypeStoreCanvas:
		var msg domain.StoreCanvasMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "Invalid store-canvas message"))
			return
		}
		if err := h.relay.StoreCanvas(ctx, client.ID, msg.Data); err != nil {
			l.Error().Err(err).Str(pkglog.FieldClientID, client.ID).Msg("store canvas failed")
		}

	case domain.MsgTypeGetCanvas:
		if err := h.relay.GetCanvas(ctx, client.ID); err != nil {
			l.Error().Err(err).Str(pkglog.FieldClientID, client.ID).Msg("get canvas failed")
		}

	case domain.MsgTypePing:
		client.SendMessage(map[string]string{"type": domain.MsgTypePong})

	default:
		client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "Unknown message type"))
	}
}

// RegisterRoutes registers the WebSocket and stats routes.
func (h *WSHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", h.HandleWebSocket)
	mux.HandleFunc("/api/rooms", h.handleRooms)
}

// handleRooms serves a snapshot of room member counts.
func (h *WSHandler) handleRooms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"rooms": h.relay.RoomCounts(),
	})
}
