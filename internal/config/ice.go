package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	pkglog "github.com/ishashanknigam/Peer-Connect/pkg/log"
)

// ICEServer represents an ICE server entry as sent to WebRTC clients.
type ICEServer struct {
	URLs       []string `json:"urls"`
	Username   string   `json:"username,omitempty"`
	Credential string   `json:"credential,omitempty"`
}

// defaultSTUN is appended when no STUN server is configured; clients
// always need at least one to gather server-reflexive candidates.
const defaultSTUN = "stun:stun.l.google.com:19302"

// GetICEServers resolves the ICE server list for clients: the static
// configuration, a STUN fallback, and optionally short-lived Cloudflare
// TURN credentials when a TURN key is configured.
func (c *WebRTCConfig) GetICEServers() ([]ICEServer, error) {
	l := pkglog.L()

	servers := make([]ICEServer, 0, len(c.ICEServers)+2)
	for _, s := range c.ICEServers {
		servers = append(servers, ICEServer{
			URLs:       s.URLs,
			Username:   s.Username,
			Credential: s.Credential,
		})
	}

	if !hasSTUN(servers) {
		servers = append([]ICEServer{{URLs: []string{defaultSTUN}}}, servers...)
	}

	if c.TurnKeyID != "" && c.TurnKey != "" {
		turnServer, err := getCloudflareTURN(c.TurnKeyID, c.TurnKey)
		if err != nil {
			l.Warn().Err(err).Msg("failed to get Cloudflare TURN credentials")
		} else if turnServer != nil {
			l.Info().Int("urls", len(turnServer.URLs)).Msg("added Cloudflare TURN server")
			servers = append(servers, *turnServer)
		}
	}

	return servers, nil
}

func hasSTUN(servers []ICEServer) bool {
	for _, s := range servers {
		for _, url := range s.URLs {
			if strings.HasPrefix(url, "stun") {
				return true
			}
		}
	}
	return false
}

type cloudflareTURNResponse struct {
	ICEServers struct {
		URLs       []string `json:"urls"`
		Username   string   `json:"username"`
		Credential string   `json:"credential"`
	} `json:"iceServers"`
}

func getCloudflareTURN(keyID, key string) (*ICEServer, error) {
	url := fmt.Sprintf("https://rtc.live.cloudflare.com/v1/turn/keys/%s/credentials/generate", keyID)
	reqBody := []byte(`{"ttl": 86400}`)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call TURN API: %w", err)
	}
	defer resp.Body.Close()

	// Cloudflare TURN API returns 201 (Created) on success, not 200
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("TURN API returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var turnResp cloudflareTURNResponse
	if err := json.NewDecoder(resp.Body).Decode(&turnResp); err != nil {
		return nil, fmt.Errorf("failed to decode TURN response: %w", err)
	}

	return &ICEServer{
		URLs:       turnResp.ICEServers.URLs,
		Username:   turnResp.ICEServers.Username,
		Credential: turnResp.ICEServers.Credential,
	}, nil
}
