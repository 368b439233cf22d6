package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Riwantoro/Toro-Chat/internal/models"
	"github.com/Riwantoro/Toro-Chat/internal/services"
)

type ChatDirectoryMock struct {
	mock.Mock
}

func (m *ChatDirectoryMock) ListForUser(ctx context.Context, userID string) ([]models.Chat, error) {
	args := m.Called(ctx, userID)
	var chats []models.Chat
	if val := args.Get(0); val != nil {
		chats = val.([]models.Chat)
	}
	return chats, args.Error(1)
}

func (m *ChatDirectoryMock) GetByID(ctx context.Context, chatID, userID string) (models.Chat, error) {
	args := m.Called(ctx, chatID, userID)
	var chat models.Chat
	if val := args.Get(0); val != nil {
		chat = val.(models.Chat)
	}
	return chat, args.Error(1)
}

func (m *ChatDirectoryMock) CreateDirect(ctx context.Context, userID, otherUserID string) (models.Chat, error) {
	args := m.Called(ctx, userID, otherUserID)
	var chat models.Chat
	if val := args.Get(0); val != nil {
		chat = val.(models.Chat)
	}
	return chat, args.Error(1)
}

func (m *ChatDirectoryMock) CreateGroup(ctx context.Context, userID, name string, memberIDs []string) (models.Chat, error) {
	args := m.Called(ctx, userID, name, memberIDs)
	var chat models.Chat
	if val := args.Get(0); val != nil {
		chat = val.(models.Chat)
	}
	return chat, args.Error(1)
}

type MessageLedgerMock struct {
	mock.Mock
}

func (m *MessageLedgerMock) ListMessages(ctx context.Context, chatID, userID string) ([]models.Message, error) {
	args := m.Called(ctx, chatID, userID)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

func (m *MessageLedgerMock) SendMessage(ctx context.Context, chatID, userID, text, imageURL string) (models.Message, error) {
	args := m.Called(ctx, chatID, userID, text, imageURL)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageLedgerMock) DeleteMessage(ctx context.Context, messageID, userID string, isAdmin bool) (models.Message, error) {
	args := m.Called(ctx, messageID, userID, isAdmin)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

type IdentityVerifierMock struct {
	mock.Mock
}

func (m *IdentityVerifierMock) Verify(ctx context.Context, token string) (services.Identity, error) {
	args := m.Called(ctx, token)
	var identity services.Identity
	if val := args.Get(0); val != nil {
		identity = val.(services.Identity)
	}
	return identity, args.Error(1)
}

var _ services.ChatDirectory = (*ChatDirectoryMock)(nil)
var _ services.MessageLedger = (*MessageLedgerMock)(nil)
var _ services.IdentityVerifier = (*IdentityVerifierMock)(nil)
