package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Riwantoro/Toro-Chat/internal/services"
	"github.com/Riwantoro/Toro-Chat/internal/telemetry"
)

// ChatHandler manages the chat directory endpoints.
type ChatHandler struct {
	chats services.ChatDirectory
	audit *telemetry.AuditEmitter
}

// NewChatHandler builds a ChatHandler.
func NewChatHandler(chats services.ChatDirectory, audit *telemetry.AuditEmitter) *ChatHandler {
	return &ChatHandler{chats: chats, audit: audit}
}

// ListChats returns the chats the authenticated user belongs to.
func (h *ChatHandler) ListChats(c *gin.Context) {
	userID := c.GetString("userID")

	chats, err := h.chats.ListForUser(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"chats": chats})
}

// CreateDirect creates or returns the direct chat with another user.
func (h *ChatHandler) CreateDirect(c *gin.Context) {
	var req struct {
		OtherUserID string `json:"otherUserId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("userID")
	chat, err := h.chats.CreateDirect(c.Request.Context(), userID, req.OtherUserID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, chat)
}

// CreateGroup creates a group chat with the caller as a member.
func (h *ChatHandler) CreateGroup(c *gin.Context) {
	var req struct {
		Name      string   `json:"name" binding:"required"`
		MemberIDs []string `json:"memberIds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("userID")
	chat, err := h.chats.CreateGroup(c.Request.Context(), userID, req.Name, req.MemberIDs)
	if err != nil {
		abortWithError(c, err)
		return
	}

	h.audit.Emit(c.Request.Context(), "INFO", "group chat created", requestIDFromContext(c), userIDFromContext(c))
	c.JSON(http.StatusCreated, chat)
}
