package ws

import (
	"net/http"
	"slices"

	"github.com/gorilla/websocket"

	"github.com/akinalp/bloglist/models"
)

// TokenValidator verifies the optional ?token= query parameter.
// Browsers cannot set an Authorization header on a WebSocket handshake.
type TokenValidator interface {
	ValidateToken(tokenString string) (*models.TokenClaims, error)
}

// Handler upgrades GET /api/blogs/live to a WebSocket.
type Handler struct {
	hub            *Hub
	tokenValidator TokenValidator
	upgrader       websocket.Upgrader
}

// NewHandler creates a Handler. Browser handshakes are accepted only from
// allowedOrigins ("*" allows any); requests without an Origin header are
// not from a browser and always pass.
func NewHandler(hub *Hub, tokenValidator TokenValidator, allowedOrigins []string) *Handler {
	return &Handler{
		hub:            hub,
		tokenValidator: tokenValidator,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

// HandleConnection godoc
// GET /api/blogs/live[?token=<token>]
//
// Viewing the feed needs no account. A token, when given, must be valid.
func (h *Handler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	var userID string
	if token := r.URL.Query().Get("token"); token != "" {
		claims, err := h.tokenValidator.ValidateToken(token)
		if err != nil {
			http.Error(w, "token invalid", http.StatusUnauthorized)
			return
		}
		userID = claims.ID
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		h.hub.log.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := newClient(h.hub, conn, userID)

	lastSeq, ok := h.hub.join(client)
	if !ok {
		conn.Close()
		return
	}

	// Written directly, before WritePump starts draining queued events.
	client.sendEvent(Event{Op: OpReady, Data: ReadyData{UserID: userID, Seq: lastSeq}})

	go client.WritePump()
	client.ReadPump() // blocks until the connection closes
}
