package handlers

import (
	"log/slog"
	"net/http"

	"social-service/internal/api/middleware"
	"social-service/internal/ws"

	"github.com/gin-gonic/gin"
)

type WSHandler struct {
	hub *ws.Hub
}

func NewWSHandler(hub *ws.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// HandleWebSocket godoc
// @Summary Upgrade to a live event connection
// @Description Establishes the persistent connection live events are pushed over. Requires a valid token query parameter.
// @Tags websocket
// @Param token query string true "JWT issued by the identity service"
// @Success 101 "Switching Protocols"
// @Router /ws [get]
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	// The ws auth middleware already rejected handshakes without a
	// resolvable user id.
	userID := middleware.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	conn, err := ws.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "userId", userID, "error", err)
		return
	}

	client := ws.NewClient(h.hub, conn, userID)
	h.hub.Register(client)
}
