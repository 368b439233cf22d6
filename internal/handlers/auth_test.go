package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Riwantoro/Toro-Chat/internal/services"
	"github.com/Riwantoro/Toro-Chat/internal/store"
)

func setupAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	auth := services.NewAuthService(store.New(), []byte("test-secret"), time.Hour)
	handler := NewAuthHandler(auth, nil)

	r := gin.New()
	r.POST("/auth/register", handler.Register)
	r.POST("/auth/login", handler.Login)
	r.POST("/auth/admin/approve", handler.Approve)
	return r
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRegisterThenApproveThenLogin(t *testing.T) {
	router := setupAuthRouter(t)

	rec := postJSON(t, router, "/auth/register", `{"email":"alice@example.com","displayName":"Alice","password":"password1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var registered struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&registered))
	require.Equal(t, "pending", registered.Status)

	// Pending login is refused with a Forbidden status.
	rec = postJSON(t, router, "/auth/login", `{"email":"alice@example.com","password":"password1"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = postJSON(t, router, "/auth/admin/approve", `{"userId":"`+registered.ID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, router, "/auth/login", `{"email":"alice@example.com","password":"password1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var logged struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&logged))
	require.NotEmpty(t, logged.Token)
}

func TestRegisterValidation(t *testing.T) {
	router := setupAuthRouter(t)

	rec := postJSON(t, router, "/auth/register", `{"email":"not-an-email","displayName":"Alice","password":"password1"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, router, "/auth/register", `{"email":"alice@example.com","displayName":"Alice","password":"short"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	router := setupAuthRouter(t)

	rec := postJSON(t, router, "/auth/register", `{"email":"alice@example.com","displayName":"Alice","password":"password1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, router, "/auth/register", `{"email":"alice@example.com","displayName":"Alice","password":"password1"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginInvalidCredentials(t *testing.T) {
	router := setupAuthRouter(t)

	rec := postJSON(t, router, "/auth/login", `{"email":"ghost@example.com","password":"password1"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
