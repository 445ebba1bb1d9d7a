package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/scriptoria/witness/core/concord"
	"github.com/scriptoria/witness/internal/logging"
)

const (
	writeTimeout   = 10 * time.Second
	maxQueryLength = 512
)

func newUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		// Origin checks mirror the CORS configuration of the REST
		// endpoints: an empty allow-list accepts any origin.
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			allowed := originAllowed(origin, allowedOrigins)
			if !allowed {
				logging.Warn("websocket_origin_rejected", "origin", origin)
			}
			return allowed
		},
	}
}

// originAllowed matches origin against the allow-list. Non-browser clients
// send no Origin header and are accepted; "*" allows all, and a
// "*.example.com" entry allows subdomains.
func originAllowed(origin string, allowedOrigins []string) bool {
	if len(allowedOrigins) == 0 || origin == "" {
		return true
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
		if domain, ok := strings.CutPrefix(allowed, "*."); ok && strings.HasSuffix(origin, domain) {
			return true
		}
	}
	return false
}

// searchFrame is one websocket message of a streamed search. Type is "hit"
// while per-witness results arrive and "done" for the closing summary, so a
// client can render hits as each witness finishes scanning instead of
// waiting for the whole corpus.
type searchFrame struct {
	Type  string   `json:"type"`
	Query string   `json:"query,omitempty"`
	Hit   *hitJSON `json:"hit,omitempty"`
	Total int      `json:"total,omitempty"`
}

// handleSearchSocket upgrades the connection and serves search requests:
// each text message is a query; the response is one "hit" frame per witness
// with occurrences, in corpus order, followed by a "done" frame.
func (s *Server) handleSearchSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("websocket_upgrade_failed", "error", err.Error())
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxQueryLength)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		query := string(msg)
		if err := s.streamSearch(conn, query); err != nil {
			logging.Warn("websocket_write_failed", "error", err.Error())
			return
		}
	}
}

// streamSearch scans witnesses sequentially in corpus order, writing each
// hit as soon as its witness is scanned.
func (s *Server) streamSearch(conn *websocket.Conn, query string) error {
	total := 0
	for _, doc := range s.corpus.Documents() {
		hit := s.engine.SearchDocument(doc, query)
		if hit == nil {
			continue
		}
		total += hit.Count
		if err := writeFrame(conn, searchFrame{Type: "hit", Hit: frameHit(*hit)}); err != nil {
			return err
		}
	}
	return writeFrame(conn, searchFrame{Type: "done", Query: query, Total: total})
}

func frameHit(h concord.ManuscriptHit) *hitJSON {
	j := hitToJSON(h)
	return &j
}

func writeFrame(conn *websocket.Conn, frame searchFrame) error {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(frame)
}
