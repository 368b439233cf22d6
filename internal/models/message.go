package models

import "time"

// Message is an entry in a chat's ledger. At creation at least one of
// Text/ImageURL is set; once DeletedAt is set both are cleared and the
// message is terminal.
type Message struct {
	ID        string     `json:"id"`
	ChatID    string     `json:"chatId"`
	SenderID  string     `json:"senderId"`
	Text      *string    `json:"text"`
	ImageURL  *string    `json:"imageUrl"`
	DeletedAt *time.Time `json:"deletedAt"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Deleted reports whether the message has been soft-deleted.
func (m Message) Deleted() bool {
	return m.DeletedAt != nil
}

// PresenceUpdate is broadcast to every connected client when a user
// comes online or goes offline.
type PresenceUpdate struct {
	UserID string `json:"userId"`
	Online bool   `json:"online"`
}
