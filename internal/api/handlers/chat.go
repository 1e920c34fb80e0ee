package handlers

import (
	"net/http"

	"social-service/internal/api/middleware"
	"social-service/internal/models"
	"social-service/internal/service"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatService service.ChatService
}

func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// CreateConversation godoc
// @Summary Create a conversation
// @Tags conversations
// @Security BearerAuth
// @Router /conversations [post]
func (h *ChatHandler) CreateConversation(c *gin.Context) {
	var req models.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.chatService.CreateConversation(c.Request.Context(), middleware.UserID(c), req.ParticipantIDs)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, summary)
}

// ListConversations godoc
// @Summary List the caller's conversations, newest activity first
// @Tags conversations
// @Security BearerAuth
// @Router /conversations [get]
func (h *ChatHandler) ListConversations(c *gin.Context) {
	before, limit := pageParams(c)
	summaries, err := h.chatService.ListConversations(c.Request.Context(), middleware.UserID(c), before, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// GetConversation godoc
// @Summary Fetch one conversation's summary
// @Tags conversations
// @Security BearerAuth
// @Router /conversations/{id} [get]
func (h *ChatHandler) GetConversation(c *gin.Context) {
	summary, err := h.chatService.GetConversation(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ListMessages godoc
// @Summary Page through a conversation's messages, oldest first
// @Tags conversations
// @Security BearerAuth
// @Router /conversations/{id}/messages [get]
func (h *ChatHandler) ListMessages(c *gin.Context) {
	before, limit := pageParams(c)
	messages, err := h.chatService.ListMessages(c.Request.Context(), middleware.UserID(c), c.Param("id"), before, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// SendMessage godoc
// @Summary Send a message into a conversation
// @Tags messages
// @Security BearerAuth
// @Router /conversations/{id}/messages [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.chatService.SendMessage(c.Request.Context(), middleware.UserID(c), c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// EditMessage godoc
// @Summary Edit a message's text
// @Tags messages
// @Security BearerAuth
// @Router /messages/{id} [put]
func (h *ChatHandler) EditMessage(c *gin.Context) {
	var req models.EditMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.chatService.EditMessage(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Text)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// DeleteMessage godoc
// @Summary Delete a message
// @Tags messages
// @Security BearerAuth
// @Router /messages/{id} [delete]
func (h *ChatHandler) DeleteMessage(c *gin.Context) {
	if err := h.chatService.DeleteMessage(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkSeen godoc
// @Summary Mark every message in a conversation as seen
// @Tags conversations
// @Security BearerAuth
// @Router /conversations/{id}/seen [post]
func (h *ChatHandler) MarkSeen(c *gin.Context) {
	if err := h.chatService.MarkConversationSeen(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
