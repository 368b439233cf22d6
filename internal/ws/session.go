package ws

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/Riwantoro/Toro-Chat/internal/models"
)

// Session binds a live connection to its verified identity. It is created
// once when the connection authenticates and reused at teardown, so
// identity is never re-derived from the credential after the handshake.
type Session struct {
	ConnID      string
	UserID      string
	Role        models.Role
	DeviceID    string
	IP          string
	RequestID   string
	TraceID     string
	ConnectedAt time.Time
}

// IsAdmin reports whether the session's identity carries the admin role.
func (s Session) IsAdmin() bool {
	return s.Role == models.RoleAdmin
}

func newConnID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return ""
	}
	return hex.EncodeToString(buf)
}
