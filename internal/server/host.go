package server

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"

	"github.com/GabrielNunesIT/swagger-preview/internal/viewer"
)

// hostReply is the outgoing websocket message format.
type hostReply struct {
	Type  string           `json:"type"` // "state" or "error"
	State *viewer.Snapshot `json:"state,omitempty"`
	Error string           `json:"error,omitempty"`
}

func (s *Server) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{CheckOrigin: s.checkOrigin}
}

// checkOrigin admits local pages and browser extensions unless every
// origin is allowed.
func (s *Server) checkOrigin(r *http.Request) bool {
	if s.cfg.AllowAll {
		return true
	}

	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	u, err := url.Parse(origin)
	if err != nil {
		return false
	}

	switch u.Scheme {
	case "chrome-extension", "moz-extension", "vscode-webview":
		return true
	}
	host := u.Hostname()
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}

// handleHost reads host messages until the connection closes. Each
// message is answered with the resulting state or an error.
func (s *Server) handleHost(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader().Upgrade(w, r, nil)
	if err != nil {
		s.log.Errorf("host: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	s.log.Infof("host integration connected from %s", r.RemoteAddr)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Errorf("host: websocket read: %v", err)
			}
			return
		}

		var msg viewer.HostMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.reply(conn, hostReply{Type: "error", Error: "invalid message format"})
			continue
		}

		snap, err := s.coord.HandleHostMessage(r.Context(), msg)
		if err != nil {
			s.reply(conn, hostReply{Type: "error", Error: err.Error(), State: &snap})
			continue
		}
		s.reply(conn, hostReply{Type: "state", State: &snap})
	}
}

func (s *Server) reply(conn *websocket.Conn, msg hostReply) {
	if err := conn.WriteJSON(msg); err != nil {
		s.log.Errorf("host: websocket write: %v", err)
	}
}
