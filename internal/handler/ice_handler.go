package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ishashanknigam/Peer-Connect/internal/config"
)

// ICEHandler serves ICE server configuration to clients before they
// build their RTCPeerConnection.
type ICEHandler struct {
	iceServers []config.ICEServer
}

// NewICEHandler creates a new ICE handler.
func NewICEHandler(iceServers []config.ICEServer) *ICEHandler {
	return &ICEHandler{
		iceServers: iceServers,
	}
}

// ServeHTTP handles ICE server requests.
func (h *ICEHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Content-Type", "application/json")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"iceServers": h.iceServers,
	})
}

// RegisterRoutes registers the ICE routes.
func (h *ICEHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/api/ice-servers", h)
}
