package handler

import (
	"errors"
	"net/http"

	"aichat-server/internal/services"
	"aichat-server/internal/transport/httpdto"
	aichat_errors "aichat-server/pkg/errors"
	"aichat-server/pkg/logger"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	service *services.ChatService
	logger  *logger.Logger
}

func NewChatHandler(service *services.ChatService, l *logger.Logger) *ChatHandler {
	return &ChatHandler{service: service, logger: l}
}

func (h *ChatHandler) Start(c *gin.Context) {
	ownerID, ok := services.OwnerIDFromContext(c.Request.Context())
	if !ok {
		c.String(http.StatusUnauthorized, "Unauthenticated!")
		return
	}

	var req httpdto.StartChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request"))
		return
	}

	id, err := h.service.Start(c.Request.Context(), ownerID, req.Text)
	if err != nil {
		h.logError(c, "creating chat", err)
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("Error creating chat!"))
		return
	}

	c.String(http.StatusCreated, id)
}

func (h *ChatHandler) List(c *gin.Context) {
	ownerID, ok := services.OwnerIDFromContext(c.Request.Context())
	if !ok {
		c.String(http.StatusUnauthorized, "Unauthenticated!")
		return
	}

	chats, err := h.service.List(c.Request.Context(), ownerID)
	if err != nil {
		if errors.Is(err, aichat_errors.ErrNoChats) {
			c.JSON(http.StatusNotFound, httpdto.NewErrorResponse("No chats found for this user!"))
			return
		}
		h.logError(c, "fetching userchats", err)
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("Error fetching userchats!"))
		return
	}

	c.JSON(http.StatusOK, chats)
}

func (h *ChatHandler) GetByID(c *gin.Context) {
	ownerID, ok := services.OwnerIDFromContext(c.Request.Context())
	if !ok {
		c.String(http.StatusUnauthorized, "Unauthenticated!")
		return
	}

	conv, err := h.service.Get(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		// Missing and not-owned answer identically so conversation
		// ids cannot be probed.
		if errors.Is(err, aichat_errors.ErrNotFound) {
			c.JSON(http.StatusNotFound, httpdto.NewErrorResponse("Chat not found!"))
			return
		}
		h.logError(c, "fetching chat", err)
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("Error fetching chat!"))
		return
	}

	c.JSON(http.StatusOK, conv)
}

func (h *ChatHandler) Continue(c *gin.Context) {
	ownerID, ok := services.OwnerIDFromContext(c.Request.Context())
	if !ok {
		c.String(http.StatusUnauthorized, "Unauthenticated!")
		return
	}

	var req httpdto.ContinueChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request"))
		return
	}

	matched, err := h.service.Continue(c.Request.Context(), ownerID, services.ContinueInput{
		ChatID:   c.Param("id"),
		Question: req.Question,
		Answer:   req.Answer,
		Img:      req.Img,
	})
	if err != nil {
		if errors.Is(err, aichat_errors.ErrNotFound) {
			c.JSON(http.StatusNotFound, httpdto.NewErrorResponse("Chat not found!"))
			return
		}
		h.logError(c, "adding conversation", err)
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("Error adding conversation!"))
		return
	}

	c.JSON(http.StatusOK, httpdto.UpdateAck{Matched: matched})
}

func (h *ChatHandler) logError(c *gin.Context, action string, err error) {
	log := h.logger
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	if log != nil {
		log.ErrorfCtx(c.Request.Context(), "error %s: %s", action, err.Error())
	}
}
