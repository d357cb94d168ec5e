package handler

import (
	"net/http"
	"strconv"

	"aichat-server/internal/services"
	"aichat-server/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	service *services.UploadService
}

func NewUploadHandler(service *services.UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// Credentials hands the client signed parameters for a direct upload.
// Content type and size are optional hints; when supplied they are
// baked into the signature.
func (h *UploadHandler) Credentials(c *gin.Context) {
	ownerID, ok := services.OwnerIDFromContext(c.Request.Context())
	if !ok {
		c.String(http.StatusUnauthorized, "Unauthenticated!")
		return
	}

	contentType := c.Query("content_type")
	sizeBytes, _ := strconv.ParseInt(c.Query("size"), 10, 64)

	creds, err := h.service.Credentials(c.Request.Context(), ownerID, contentType, sizeBytes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("Error signing upload!"))
		return
	}

	c.JSON(http.StatusOK, creds)
}
