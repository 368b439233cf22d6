package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Riwantoro/Toro-Chat/internal/models"
	"github.com/Riwantoro/Toro-Chat/internal/store"
)

// ChatDirectory owns chat entities and membership.
type ChatDirectory interface {
	ListForUser(ctx context.Context, userID string) ([]models.Chat, error)
	GetByID(ctx context.Context, chatID, userID string) (models.Chat, error)
	CreateDirect(ctx context.Context, userID, otherUserID string) (models.Chat, error)
	CreateGroup(ctx context.Context, userID, name string, memberIDs []string) (models.Chat, error)
}

// ChatService is the in-memory ChatDirectory implementation.
type ChatService struct {
	store *store.Store
}

// NewChatService constructs a ChatService.
func NewChatService(st *store.Store) *ChatService {
	return &ChatService{store: st}
}

// ListForUser returns every chat whose member set contains the user.
func (s *ChatService) ListForUser(ctx context.Context, userID string) ([]models.Chat, error) {
	return s.store.ChatsForUser(userID), nil
}

// GetByID returns the chat when the caller is a member. A missing chat is
// ErrChatNotFound; an existing chat the caller does not belong to is
// ErrNotChatMember.
func (s *ChatService) GetByID(ctx context.Context, chatID, userID string) (models.Chat, error) {
	chat, ok := s.store.ChatByID(chatID)
	if !ok {
		return models.Chat{}, ErrChatNotFound
	}
	if !chat.HasMember(userID) {
		return models.Chat{}, ErrNotChatMember
	}
	return chat, nil
}

// CreateDirect returns the existing direct chat for the unordered pair or
// creates one. Calling it twice, in either argument order, yields the same
// chat.
func (s *ChatService) CreateDirect(ctx context.Context, userID, otherUserID string) (models.Chat, error) {
	if userID == otherUserID {
		return models.Chat{}, ErrSelfChat
	}
	chat := models.Chat{
		ID:        uuid.NewString(),
		Name:      nil,
		IsGroup:   false,
		MemberIDs: []string{userID, otherUserID},
		CreatedAt: time.Now().UTC(),
	}
	chat, _ = s.store.CreateOrGetDirectChat(chat)
	return chat, nil
}

// CreateGroup creates a group chat from the deduplicated union of the
// creator and the requested members. Groups are never deduplicated against
// existing ones.
func (s *ChatService) CreateGroup(ctx context.Context, userID, name string, memberIDs []string) (models.Chat, error) {
	seen := map[string]struct{}{userID: {}}
	members := []string{userID}
	for _, id := range memberIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		members = append(members, id)
	}
	if len(members) < 3 {
		return models.Chat{}, ErrGroupTooSmall
	}

	chat := models.Chat{
		ID:        uuid.NewString(),
		Name:      &name,
		IsGroup:   true,
		MemberIDs: members,
		CreatedAt: time.Now().UTC(),
	}
	s.store.InsertChat(chat)
	return chat, nil
}
