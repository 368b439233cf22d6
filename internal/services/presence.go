package services

import (
	"github.com/Riwantoro/Toro-Chat/internal/models"
	"github.com/Riwantoro/Toro-Chat/internal/store"
)

// PresenceTracker owns the set of currently-connected user identities.
// Membership is per identity, not per connection: a second connection from
// the same user collapses into one entry, and the first disconnect removes
// it. Both operations are total and always yield an event.
type PresenceTracker interface {
	MarkOnline(userID string) models.PresenceUpdate
	MarkOffline(userID string) models.PresenceUpdate
	Online() []string
}

// PresenceService is the in-memory PresenceTracker implementation.
type PresenceService struct {
	store *store.Store
}

// NewPresenceService constructs a PresenceService.
func NewPresenceService(st *store.Store) *PresenceService {
	return &PresenceService{store: st}
}

// MarkOnline adds the user to the online set.
func (s *PresenceService) MarkOnline(userID string) models.PresenceUpdate {
	s.store.SetOnline(userID)
	return models.PresenceUpdate{UserID: userID, Online: true}
}

// MarkOffline removes the user from the online set.
func (s *PresenceService) MarkOffline(userID string) models.PresenceUpdate {
	s.store.SetOffline(userID)
	return models.PresenceUpdate{UserID: userID, Online: false}
}

// Online returns the ids currently marked online.
func (s *PresenceService) Online() []string {
	return s.store.OnlineUsers()
}
