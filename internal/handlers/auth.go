package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Riwantoro/Toro-Chat/internal/models"
	"github.com/Riwantoro/Toro-Chat/internal/services"
	"github.com/Riwantoro/Toro-Chat/internal/telemetry"
)

// authService is the surface AuthHandler needs from the auth layer.
type authService interface {
	Register(ctx context.Context, email, password, displayName string) (models.User, error)
	Login(ctx context.Context, email, password string) (string, models.User, error)
	ListPending(ctx context.Context) ([]models.User, error)
	Approve(ctx context.Context, userID string) (models.User, error)
	ListActiveUsers(ctx context.Context, userID string) ([]models.PublicUser, error)
}

// AuthHandler manages registration, login and the admin approval flow.
type AuthHandler struct {
	auth  authService
	audit *telemetry.AuditEmitter
}

// NewAuthHandler builds an AuthHandler.
func NewAuthHandler(auth authService, audit *telemetry.AuditEmitter) *AuthHandler {
	return &AuthHandler{auth: auth, audit: audit}
}

// Register handles POST /auth/register. New accounts start pending.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required,email"`
		DisplayName string `json:"displayName" binding:"required"`
		Password    string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "status": user.Status})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":          user.ID,
			"email":       user.Email,
			"displayName": user.DisplayName,
			"role":        user.Role,
			"status":      user.Status,
		},
	})
}

// ListPending handles GET /auth/admin/pending (admin only).
func (h *AuthHandler) ListPending(c *gin.Context) {
	users, err := h.auth.ListPending(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	type pendingUser struct {
		ID          string `json:"id"`
		Email       string `json:"email"`
		DisplayName string `json:"displayName"`
		CreatedAt   string `json:"createdAt"`
	}
	resp := make([]pendingUser, 0, len(users))
	for _, u := range users {
		resp = append(resp, pendingUser{
			ID:          u.ID,
			Email:       u.Email,
			DisplayName: u.DisplayName,
			CreatedAt:   u.CreatedAt.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, gin.H{"users": resp})
}

// Approve handles POST /auth/admin/approve (admin only).
func (h *AuthHandler) Approve(c *gin.Context) {
	var req struct {
		UserID string `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.auth.Approve(c.Request.Context(), req.UserID)
	if err != nil {
		h.audit.Emit(c.Request.Context(), "ERROR", "approve failed", requestIDFromContext(c), userIDFromContext(c))
		abortWithError(c, err)
		return
	}

	h.audit.Emit(c.Request.Context(), "INFO", "user approved", requestIDFromContext(c), userIDFromContext(c))
	c.JSON(http.StatusOK, gin.H{"id": user.ID, "status": user.Status})
}

// ListUsers handles GET /users: active users other than the caller.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.auth.ListActiveUsers(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

var _ authService = (*services.AuthService)(nil)
