package handlers

import (
	"net/http"

	"social-service/internal/services"
	"social-service/internal/ws"

	"github.com/gin-gonic/gin"
)

type PresenceHandler struct {
	registry     *ws.ConnectionRegistry
	redisService *services.RedisService
}

func NewPresenceHandler(registry *ws.ConnectionRegistry, redisService *services.RedisService) *PresenceHandler {
	return &PresenceHandler{registry: registry, redisService: redisService}
}

// OnlineUsers godoc
// @Summary List every currently online user id
// @Tags presence
// @Security BearerAuth
// @Router /presence/online [get]
func (h *PresenceHandler) OnlineUsers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"userIds": h.registry.OnlineUserIDs()})
}

// UserStatus godoc
// @Summary Report one user's status and last-seen time
// @Tags presence
// @Security BearerAuth
// @Router /presence/{id} [get]
func (h *PresenceHandler) UserStatus(c *gin.Context) {
	userID := c.Param("id")

	status := "offline"
	if h.registry.IsOnline(userID) {
		status = "online"
	}

	resp := gin.H{"userId": userID, "status": status}
	if lastSeen, err := h.redisService.LastSeen(c.Request.Context(), userID); err == nil {
		resp["lastSeen"] = lastSeen
	}
	c.JSON(http.StatusOK, resp)
}
