package realtime

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/hilthontt/tripsync/internal/infrastructure/json"
	"github.com/hilthontt/tripsync/internal/infrastructure/logging"
	"github.com/hilthontt/tripsync/internal/infrastructure/ws"
	"github.com/hilthontt/tripsync/internal/presentation/utils"
)

type Handler struct {
	hub        *ws.Hub
	dispatcher *Dispatcher
	opts       ws.ClientOptions
	upgrader   websocket.Upgrader
	logger     logging.Logger
}

func NewHandler(hub *ws.Hub, dispatcher *Dispatcher, opts ws.ClientOptions, allowedOrigins []string, logger logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Handler{
		hub:        hub,
		dispatcher: dispatcher,
		opts:       opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},
		logger: logger,
	}
}

func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(a, origin) {
				return true
			}
		}
		return false
	}
}

// ServeWS godoc
// @Summary      Open the realtime channel
// @Description  Upgrades to a websocket. The first frame is "connected" with the connection id to send as X-Connection-ID on HTTP calls.
// @Tags         realtime
// @Param        token query string false "Bearer token, for clients that cannot set headers"
// @Success      101 {string} string "Switching Protocols"
// @Failure      401 {object} json.ErrorResponse
// @Security     BearerAuth
// @Router       /ws [get]
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.IdentityFromContext(r.Context())
	if !ok {
		json.WriteUnauthorizedError(w, "Missing or invalid authentication")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn(logging.WebSocket, logging.Connection, "websocket upgrade failed", map[logging.ExtraKey]any{
			logging.UserID:       identity.UserID,
			logging.ErrorMessage: err.Error(),
		})
		return
	}

	username := identity.Name
	if username == "" {
		username = identity.UserID
	}

	client := ws.NewClient(conn, identity.UserID, username, h.opts)
	h.hub.Register(client)

	go client.WritePump()
	client.ReadPump(r.Context(), h.hub, h.dispatcher)

	h.dispatcher.Forget(client.ID)
}
