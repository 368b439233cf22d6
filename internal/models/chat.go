package models

import "time"

// Chat is a membership-scoped conversation, either direct (exactly two
// members) or group (three or more, name required). Membership is fixed
// at creation.
type Chat struct {
	ID        string    `json:"id"`
	Name      *string   `json:"name"`
	IsGroup   bool      `json:"isGroup"`
	MemberIDs []string  `json:"memberIds"`
	CreatedAt time.Time `json:"createdAt"`
}

// HasMember reports whether the user belongs to the chat.
func (c Chat) HasMember(userID string) bool {
	for _, id := range c.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
