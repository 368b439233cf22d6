package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"

	"github.com/Riwantoro/Toro-Chat/internal/observability"
	"github.com/Riwantoro/Toro-Chat/internal/services"
)

const wsRoutingKey = "ws_events.gateway"

// Gateway upgrades client connections, binds them to verified identities
// and turns ledger/directory operations invoked over the connection into
// room and presence broadcasts.
type Gateway struct {
	hub      *Hub
	verifier services.IdentityVerifier
	chats    services.ChatDirectory
	messages services.MessageLedger
	presence services.PresenceTracker
}

// NewGateway constructs a Gateway.
func NewGateway(hub *Hub, verifier services.IdentityVerifier, chats services.ChatDirectory, messages services.MessageLedger, presence services.PresenceTracker) *Gateway {
	return &Gateway{
		hub:      hub,
		verifier: verifier,
		chats:    chats,
		messages: messages,
		presence: presence,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handle authenticates the handshake, upgrades the connection and serves
// its event loop. Connections that fail verification are refused before
// the upgrade and never reach the hub.
func (g *Gateway) Handle(c *gin.Context) {
	ctx, span := otel.Tracer("torochat/ws").Start(c.Request.Context(), "ws.handshake")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	token := extractToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	identity, err := g.verifier.Verify(ctx, token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	session := Session{
		ConnID:      newConnID(),
		UserID:      identity.UserID,
		Role:        identity.Role,
		DeviceID:    observability.DeviceIDFromRequest(c.Request),
		IP:          observability.IPFromRequest(c.Request),
		RequestID:   observability.RequestIDFromRequest(c.Request),
		TraceID:     span.SpanContext().TraceID().String(),
		ConnectedAt: time.Now(),
	}
	g.hub.Register(conn, session)

	observability.IncWSActive()
	observability.IncWSEvent("ws_connect")
	g.publishLifecycle(context.Background(), session, "ws_connect", "")

	update := g.presence.MarkOnline(session.UserID)
	observability.SetOnlineUsers(len(g.presence.Online()))
	g.hub.BroadcastAll(ServerEvent{Event: EventPresenceUpdate, Data: update})

	go g.serve(conn, session)
}

func (g *Gateway) serve(conn *websocket.Conn, session Session) {
	ctx := context.Background()
	var closeReason string
	defer func() {
		// The hub's dead-connection cleanup may have dropped the session
		// already; MarkOffline is total, so teardown always yields the
		// offline event.
		g.hub.Unregister(conn)
		update := g.presence.MarkOffline(session.UserID)
		observability.SetOnlineUsers(len(g.presence.Online()))
		g.hub.BroadcastAll(ServerEvent{Event: EventPresenceUpdate, Data: update})
		observability.DecWSActive()
		observability.IncWSEvent("ws_disconnect")
		g.publishLifecycle(ctx, session, "ws_disconnect", closeReason)
		conn.Close()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			closeReason = err.Error()
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				observability.IncWSEvent("ws_error")
				g.publishLifecycle(ctx, session, "ws_error", closeReason)
			}
			return
		}

		var event ClientEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			g.replyError(conn, "malformed event")
			continue
		}
		g.dispatch(ctx, conn, session, event)
	}
}

func (g *Gateway) dispatch(ctx context.Context, conn *websocket.Conn, session Session, event ClientEvent) {
	observability.IncWSEvent(event.Event)

	switch event.Event {
	case EventChatJoin:
		var payload joinPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			g.replyError(conn, "malformed event")
			return
		}
		// Join is refused silently on NotFound/Forbidden; callers needing
		// feedback pre-check membership via the chat listing.
		if _, err := g.chats.GetByID(ctx, payload.ChatID, session.UserID); err != nil {
			return
		}
		g.hub.JoinRoom(payload.ChatID, conn)

	case EventMessageSend:
		var payload sendPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			g.replyError(conn, "malformed event")
			return
		}
		msg, err := g.messages.SendMessage(ctx, payload.ChatID, session.UserID, payload.Text, payload.ImageURL)
		if err != nil {
			g.replyError(conn, err.Error())
			return
		}
		g.hub.BroadcastToRoom(msg.ChatID, ServerEvent{Event: EventMessageNew, Data: msg})

	case EventMessageDelete:
		var payload deletePayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			g.replyError(conn, "malformed event")
			return
		}
		msg, err := g.messages.DeleteMessage(ctx, payload.MessageID, session.UserID, session.IsAdmin())
		if err != nil {
			g.replyError(conn, err.Error())
			return
		}
		g.hub.BroadcastToRoom(msg.ChatID, ServerEvent{Event: EventMessageDeleted, Data: msg})

	default:
		g.replyError(conn, "unknown event")
	}
}

// replyError answers only the invoking connection. Errors are never
// broadcast to rooms.
func (g *Gateway) replyError(conn *websocket.Conn, message string) {
	if err := g.hub.SendTo(conn, ServerEvent{Event: EventError, Data: errorPayload{Error: message}}); err != nil {
		log.Printf("websocket error reply failed: %v", err)
	}
}

func (g *Gateway) publishLifecycle(ctx context.Context, session Session, event, reason string) {
	_ = observability.PublishEvent(ctx, wsRoutingKey, observability.EventEnvelope{
		EventType: "ws_events",
		EventName: event,
		Payload: map[string]interface{}{
			"ws": observability.WSEventPayload{
				Event:      event,
				ConnID:     session.ConnID,
				DurationMS: time.Since(session.ConnectedAt).Milliseconds(),
				Reason:     reason,
			},
			"identity": observability.IdentityPayload{
				UserID:   session.UserID,
				DeviceID: session.DeviceID,
				IP:       session.IP,
			},
		},
	}, observability.BuildHeaders(session.RequestID, session.TraceID))
}

// extractToken pulls the bearer credential from the handshake: the token
// query parameter first, then the Authorization header.
func extractToken(c *gin.Context) string {
	if token := c.Query("token"); token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}
