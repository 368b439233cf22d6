package store

import (
	"sync"
	"time"

	"github.com/Riwantoro/Toro-Chat/internal/models"
)

// Store owns every shared collection: users, chats, messages and the
// online-user set. All access goes through its methods; each method is
// atomic under a single mutex, which also serializes message commits so
// broadcast order matches ledger order.
type Store struct {
	mu       sync.Mutex
	users    []models.User
	chats    []models.Chat
	messages []models.Message
	online   map[string]bool
}

// New creates an empty store.
func New() *Store {
	return &Store{online: make(map[string]bool)}
}

// CreateUser inserts the user unless the email is already registered.
func (s *Store) CreateUser(user models.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return false
		}
	}
	s.users = append(s.users, user)
	return true
}

// UserByEmail looks up a user by email.
func (s *Store) UserByEmail(email string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, true
		}
	}
	return models.User{}, false
}

// UserByID looks up a user by id.
func (s *Store) UserByID(id string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// ActiveUsersExcept returns all active users other than the given one.
func (s *Store) ActiveUsersExcept(userID string) []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []models.User
	for _, u := range s.users {
		if u.Status == models.StatusActive && u.ID != userID {
			result = append(result, u)
		}
	}
	return result
}

// PendingUsers returns users awaiting admin approval.
func (s *Store) PendingUsers() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []models.User
	for _, u := range s.users {
		if u.Status == models.StatusPending {
			result = append(result, u)
		}
	}
	return result
}

// ApproveUser marks the user active and returns the updated record.
func (s *Store) ApproveUser(userID string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == userID {
			s.users[i].Status = models.StatusActive
			return s.users[i], true
		}
	}
	return models.User{}, false
}

// ChatByID looks up a chat by id.
func (s *Store) ChatByID(chatID string) (models.Chat, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.chats {
		if c.ID == chatID {
			return c, true
		}
	}
	return models.Chat{}, false
}

// ChatsForUser returns every chat the user belongs to.
func (s *Store) ChatsForUser(userID string) []models.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []models.Chat
	for _, c := range s.chats {
		if c.HasMember(userID) {
			result = append(result, c)
		}
	}
	return result
}

// CreateOrGetDirectChat returns the existing two-party chat for the pair
// if one exists, otherwise inserts the given chat. The lookup and insert
// run under one lock so concurrent callers cannot create duplicates. The
// second return value reports whether the chat was created.
func (s *Store) CreateOrGetDirectChat(chat models.Chat) (models.Chat, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, b := chat.MemberIDs[0], chat.MemberIDs[1]
	for _, c := range s.chats {
		if !c.IsGroup && len(c.MemberIDs) == 2 && c.HasMember(a) && c.HasMember(b) {
			return c, false
		}
	}
	s.chats = append(s.chats, chat)
	return chat, true
}

// InsertChat appends a chat. Group chats are never deduplicated.
func (s *Store) InsertChat(chat models.Chat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats = append(s.chats, chat)
}

// MessagesByChat returns the chat's messages in creation order,
// soft-deleted ones included.
func (s *Store) MessagesByChat(chatID string) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []models.Message
	for _, m := range s.messages {
		if m.ChatID == chatID {
			result = append(result, m)
		}
	}
	return result
}

// MessageByID looks up a message by id.
func (s *Store) MessageByID(messageID string) (models.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.messages {
		if m.ID == messageID {
			return m, true
		}
	}
	return models.Message{}, false
}

// InsertMessage appends a message to the ledger.
func (s *Store) InsertMessage(msg models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

// RedactMessage stamps deletedAt and clears the message body. The message
// keeps its id and position in the ledger.
func (s *Store) RedactMessage(messageID string, at time.Time) (models.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID == messageID {
			s.messages[i].DeletedAt = &at
			s.messages[i].Text = nil
			s.messages[i].ImageURL = nil
			return s.messages[i], true
		}
	}
	return models.Message{}, false
}

// SetOnline adds the user to the online set.
func (s *Store) SetOnline(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.online[userID] = true
}

// SetOffline removes the user from the online set.
func (s *Store) SetOffline(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.online, userID)
}

// OnlineUsers returns the ids currently marked online.
func (s *Store) OnlineUsers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.online))
	for id := range s.online {
		ids = append(ids, id)
	}
	return ids
}
