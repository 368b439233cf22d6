package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Riwantoro/Toro-Chat/internal/models"
	"github.com/Riwantoro/Toro-Chat/internal/store"
)

// MessageLedger owns message entities scoped to a chat.
type MessageLedger interface {
	ListMessages(ctx context.Context, chatID, userID string) ([]models.Message, error)
	SendMessage(ctx context.Context, chatID, userID, text, imageURL string) (models.Message, error)
	DeleteMessage(ctx context.Context, messageID, userID string, isAdmin bool) (models.Message, error)
}

// MessageService is the in-memory MessageLedger implementation. Every
// operation defers the membership check to the chat directory so the
// NotFound/Forbidden distinction is made in exactly one place.
type MessageService struct {
	store *store.Store
	chats ChatDirectory
}

// NewMessageService constructs a MessageService.
func NewMessageService(st *store.Store, chats ChatDirectory) *MessageService {
	return &MessageService{store: st, chats: chats}
}

// ListMessages returns the chat's messages in creation order. Soft-deleted
// messages are included; clients render the deleted state.
func (s *MessageService) ListMessages(ctx context.Context, chatID, userID string) ([]models.Message, error) {
	if _, err := s.chats.GetByID(ctx, chatID, userID); err != nil {
		return nil, err
	}
	return s.store.MessagesByChat(chatID), nil
}

// SendMessage appends a message for a member of the chat. Empty text and
// empty imageURL together are rejected.
func (s *MessageService) SendMessage(ctx context.Context, chatID, userID, text, imageURL string) (models.Message, error) {
	chat, err := s.chats.GetByID(ctx, chatID, userID)
	if err != nil {
		return models.Message{}, err
	}
	if text == "" && imageURL == "" {
		return models.Message{}, ErrEmptyMessage
	}

	msg := models.Message{
		ID:        uuid.NewString(),
		ChatID:    chat.ID,
		SenderID:  userID,
		CreatedAt: time.Now().UTC(),
	}
	if text != "" {
		msg.Text = &text
	}
	if imageURL != "" {
		msg.ImageURL = &imageURL
	}
	s.store.InsertMessage(msg)
	return msg, nil
}

// DeleteMessage soft-deletes a message: deletedAt is stamped and the body
// cleared. Allowed for the original sender or an admin who is a member of
// the chat. Re-deleting only re-stamps deletedAt.
func (s *MessageService) DeleteMessage(ctx context.Context, messageID, userID string, isAdmin bool) (models.Message, error) {
	msg, ok := s.store.MessageByID(messageID)
	if !ok {
		return models.Message{}, ErrMessageNotFound
	}
	if _, err := s.chats.GetByID(ctx, msg.ChatID, userID); err != nil {
		return models.Message{}, err
	}
	if msg.SenderID != userID && !isAdmin {
		return models.Message{}, ErrNotMessageOwner
	}

	redacted, ok := s.store.RedactMessage(messageID, time.Now().UTC())
	if !ok {
		return models.Message{}, ErrMessageNotFound
	}
	return redacted, nil
}
