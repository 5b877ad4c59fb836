package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"connectrealm/internal/chat"
	"connectrealm/internal/verse"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// handleWebsocket upgrades the connection and registers it with the hub.
// The token rides in a query parameter; collections default to every live
// topic when the client does not narrow them.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	claims, err := s.tokens.Validate(r.URL.Query().Get("token"))
	if err != nil {
		respondError(w, "invalid token", http.StatusUnauthorized)
		return
	}

	collections := []string{chat.MessagesCollection, verse.VersesCollection}
	if raw := r.URL.Query().Get("collections"); raw != "" {
		collections = strings.Split(raw, ",")
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Websocket upgrade failed")
		return
	}
	s.hub.Register(claims.UserID, conn, collections)
}
