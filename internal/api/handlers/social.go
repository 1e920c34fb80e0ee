package handlers

import (
	"net/http"

	"social-service/internal/api/middleware"
	"social-service/internal/models"
	"social-service/internal/service"

	"github.com/gin-gonic/gin"
)

type SocialHandler struct {
	socialService service.SocialService
}

func NewSocialHandler(socialService service.SocialService) *SocialHandler {
	return &SocialHandler{socialService: socialService}
}

// CreatePost godoc
// @Summary Create a post
// @Tags posts
// @Security BearerAuth
// @Router /posts [post]
func (h *SocialHandler) CreatePost(c *gin.Context) {
	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Text == "" && req.ImageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "post needs text or an image"})
		return
	}

	post, err := h.socialService.CreatePost(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// Reply godoc
// @Summary Reply to a post
// @Tags posts
// @Security BearerAuth
// @Router /posts/{id}/replies [post]
func (h *SocialHandler) Reply(c *gin.Context) {
	var req models.CreateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.socialService.ReplyToPost(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Text)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reply)
}

// Like godoc
// @Summary Like a post
// @Tags posts
// @Security BearerAuth
// @Router /posts/{id}/like [post]
func (h *SocialHandler) Like(c *gin.Context) {
	like, err := h.socialService.LikePost(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, like)
}

// Unlike godoc
// @Summary Remove a like
// @Tags posts
// @Security BearerAuth
// @Router /posts/{id}/like [delete]
func (h *SocialHandler) Unlike(c *gin.Context) {
	if err := h.socialService.UnlikePost(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Follow godoc
// @Summary Follow a user
// @Tags follows
// @Security BearerAuth
// @Router /users/{id}/follow [post]
func (h *SocialHandler) Follow(c *gin.Context) {
	follow, err := h.socialService.FollowUser(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, follow)
}

// AcceptFollow godoc
// @Summary Accept a pending follow request
// @Tags follows
// @Security BearerAuth
// @Router /users/{id}/follow/accept [post]
func (h *SocialHandler) AcceptFollow(c *gin.Context) {
	if err := h.socialService.AcceptFollow(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Unfollow godoc
// @Summary Unfollow a user
// @Tags follows
// @Security BearerAuth
// @Router /users/{id}/follow [delete]
func (h *SocialHandler) Unfollow(c *gin.Context) {
	if err := h.socialService.UnfollowUser(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
