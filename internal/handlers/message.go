package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Riwantoro/Toro-Chat/internal/models"
	"github.com/Riwantoro/Toro-Chat/internal/services"
	"github.com/Riwantoro/Toro-Chat/internal/ws"
)

// MessageHandler manages the message ledger endpoints. Mutations performed
// over HTTP are fanned out to the same rooms the gateway serves, so
// connected clients observe them live.
type MessageHandler struct {
	messages services.MessageLedger
	hub      *ws.Hub
}

// NewMessageHandler builds a MessageHandler.
func NewMessageHandler(messages services.MessageLedger, hub *ws.Hub) *MessageHandler {
	return &MessageHandler{messages: messages, hub: hub}
}

// ListMessages returns all messages of a chat, soft-deleted ones included.
func (h *MessageHandler) ListMessages(c *gin.Context) {
	chatID := c.Param("chat_id")
	userID := c.GetString("userID")

	msgs, err := h.messages.ListMessages(c.Request.Context(), chatID, userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// SendMessage appends a message to the chat and broadcasts it.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	chatID := c.Param("chat_id")
	userID := c.GetString("userID")

	var req struct {
		Text     string `json:"text"`
		ImageURL string `json:"imageUrl"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.messages.SendMessage(c.Request.Context(), chatID, userID, req.Text, req.ImageURL)
	if err != nil {
		abortWithError(c, err)
		return
	}

	h.hub.BroadcastToRoom(msg.ChatID, ws.ServerEvent{Event: ws.EventMessageNew, Data: msg})
	c.JSON(http.StatusCreated, msg)
}

// DeleteMessage soft-deletes a message and broadcasts the redacted record.
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	messageID := c.Param("message_id")
	userID := c.GetString("userID")
	isAdmin := c.GetString("role") == string(models.RoleAdmin)

	msg, err := h.messages.DeleteMessage(c.Request.Context(), messageID, userID, isAdmin)
	if err != nil {
		abortWithError(c, err)
		return
	}

	h.hub.BroadcastToRoom(msg.ChatID, ws.ServerEvent{Event: ws.EventMessageDeleted, Data: msg})
	c.JSON(http.StatusOK, msg)
}
