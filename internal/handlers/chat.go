package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"consult-chat/internal/middleware"
	"consult-chat/internal/models"
	"consult-chat/internal/service"
)

// ChatHandler manages message endpoints.
type ChatHandler struct {
	chat service.ChatService
}

// NewChatHandler builds a ChatHandler.
func NewChatHandler(chat service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Send stores a new message in the session.
func (h *ChatHandler) Send(c *gin.Context) {
	sessionID, ok := parseID(c, "session_id")
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.chat.Send(c.Request.Context(), sessionID, req.Content, middleware.Token(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// Fetch returns the session metadata with its messages in insertion order.
func (h *ChatHandler) Fetch(c *gin.Context) {
	sessionID, ok := parseID(c, "session_id")
	if !ok {
		return
	}

	session, msgs, err := h.chat.Fetch(c.Request.Context(), sessionID, middleware.Token(c))
	if err != nil {
		respondError(c, err)
		return
	}

	if msgs == nil {
		msgs = []models.Message{}
	}
	c.JSON(http.StatusOK, gin.H{
		"session":  session,
		"messages": msgs,
	})
}

// Edit updates a message's content.
func (h *ChatHandler) Edit(c *gin.Context) {
	messageID, ok := parseID(c, "message_id")
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.chat.Edit(c.Request.Context(), messageID, req.Content, middleware.Token(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, msg)
}

// Delete soft-deletes a message.
func (h *ChatHandler) Delete(c *gin.Context) {
	messageID, ok := parseID(c, "message_id")
	if !ok {
		return
	}

	msg, err := h.chat.Delete(c.Request.Context(), messageID, middleware.Token(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, msg)
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}
