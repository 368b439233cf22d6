package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Riwantoro/Toro-Chat/internal/mocks"
	"github.com/Riwantoro/Toro-Chat/internal/models"
	"github.com/Riwantoro/Toro-Chat/internal/services"
	"github.com/Riwantoro/Toro-Chat/internal/ws"
)

func setupMessageRouter(handler *MessageHandler, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", "alice")
		c.Set("role", role)
		c.Next()
	})
	r.GET("/messages/:chat_id", handler.ListMessages)
	r.POST("/messages/:chat_id", handler.SendMessage)
	r.DELETE("/messages/:message_id", handler.DeleteMessage)
	return r
}

func TestListMessagesSuccess(t *testing.T) {
	ledger := new(mocks.MessageLedgerMock)
	handler := NewMessageHandler(ledger, ws.NewHub())
	router := setupMessageRouter(handler, "user")

	text := "hi"
	ledger.On("ListMessages", mock.Anything, "c1", "alice").
		Return([]models.Message{{ID: "m1", ChatID: "c1", SenderID: "bob", Text: &text}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/messages/c1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	ledger.AssertExpectations(t)
}

func TestListMessagesForbidden(t *testing.T) {
	ledger := new(mocks.MessageLedgerMock)
	handler := NewMessageHandler(ledger, ws.NewHub())
	router := setupMessageRouter(handler, "user")

	ledger.On("ListMessages", mock.Anything, "c1", "alice").
		Return(([]models.Message)(nil), services.ErrNotChatMember).Once()

	req := httptest.NewRequest(http.MethodGet, "/messages/c1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	ledger.AssertExpectations(t)
}

func TestSendMessageSuccess(t *testing.T) {
	ledger := new(mocks.MessageLedgerMock)
	handler := NewMessageHandler(ledger, ws.NewHub())
	router := setupMessageRouter(handler, "user")

	text := "hi"
	ledger.On("SendMessage", mock.Anything, "c1", "alice", "hi", "").
		Return(models.Message{ID: "m1", ChatID: "c1", SenderID: "alice", Text: &text}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/messages/c1", bytes.NewBufferString(`{"text":"hi"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	ledger.AssertExpectations(t)
}

func TestSendMessageEmptyBodyForbidden(t *testing.T) {
	ledger := new(mocks.MessageLedgerMock)
	handler := NewMessageHandler(ledger, ws.NewHub())
	router := setupMessageRouter(handler, "user")

	ledger.On("SendMessage", mock.Anything, "c1", "alice", "", "").
		Return(models.Message{}, services.ErrEmptyMessage).Once()

	req := httptest.NewRequest(http.MethodPost, "/messages/c1", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	ledger.AssertExpectations(t)
}

func TestDeleteMessageAsAdmin(t *testing.T) {
	ledger := new(mocks.MessageLedgerMock)
	handler := NewMessageHandler(ledger, ws.NewHub())
	router := setupMessageRouter(handler, "admin")

	ledger.On("DeleteMessage", mock.Anything, "m1", "alice", true).
		Return(models.Message{ID: "m1", ChatID: "c1", SenderID: "bob"}, nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/messages/m1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	ledger.AssertExpectations(t)
}

func TestDeleteMessageNotFound(t *testing.T) {
	ledger := new(mocks.MessageLedgerMock)
	handler := NewMessageHandler(ledger, ws.NewHub())
	router := setupMessageRouter(handler, "user")

	ledger.On("DeleteMessage", mock.Anything, "m404", "alice", false).
		Return(models.Message{}, services.ErrMessageNotFound).Once()

	req := httptest.NewRequest(http.MethodDelete, "/messages/m404", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	ledger.AssertExpectations(t)
}
