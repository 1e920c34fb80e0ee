package handlers

import (
	"net/http"

	"social-service/internal/database"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	blobs *database.MinIOClient
}

func NewUploadHandler(blobs *database.MinIOClient) *UploadHandler {
	return &UploadHandler{blobs: blobs}
}

// UploadImage godoc
// @Summary Upload an image and get back its URL
// @Tags uploads
// @Security BearerAuth
// @Accept multipart/form-data
// @Router /uploads [post]
func (h *UploadHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	url, err := h.blobs.UploadImage(c.Request.Context(), file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
