package ws

import "encoding/json"

// Client-to-server event names.
const (
	EventChatJoin      = "chat:join"
	EventMessageSend   = "message:send"
	EventMessageDelete = "message:delete"
)

// Server-to-client event names.
const (
	EventMessageNew     = "message:new"
	EventMessageDeleted = "message:deleted"
	EventPresenceUpdate = "presence:update"
	EventError          = "error"
)

// ClientEvent is a request received over a connection.
type ClientEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ServerEvent is pushed to connected clients.
type ServerEvent struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type joinPayload struct {
	ChatID string `json:"chatId"`
}

type sendPayload struct {
	ChatID   string `json:"chatId"`
	Text     string `json:"text"`
	ImageURL string `json:"imageUrl"`
}

type deletePayload struct {
	MessageID string `json:"messageId"`
}

type errorPayload struct {
	Error string `json:"error"`
}
