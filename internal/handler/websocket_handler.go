// internal/handler/websocket_handler.go
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"qo100-console/internal/config"
	"qo100-console/internal/model"
	"qo100-console/internal/service"
	"qo100-console/internal/utils"
)

// WebSocketHandler manages the operator UI connections. Every client
// receives the console event stream; clients can also push raw commands
// at the firmware through the socket.
type WebSocketHandler struct {
	upgrader         websocket.Upgrader
	connections      *ConnectionManager
	consoleService   *service.ConsoleService
	discoveryService *service.DiscoveryService
	logger           *utils.ServiceLogger
}

// NewWebSocketHandler creates a new WebSocket handler wired to the bus
func NewWebSocketHandler(
	consoleService *service.ConsoleService,
	discoveryService *service.DiscoveryService,
	bus *EventBus,
	cfg *config.Config,
	logger *zap.Logger,
) *WebSocketHandler {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(&cfg.Security),
	}

	handler := &WebSocketHandler{
		upgrader:         upgrader,
		connections:      NewConnectionManager(),
		consoleService:   consoleService,
		discoveryService: discoveryService,
		logger:           utils.NewServiceLogger(logger, "websocket-handler"),
	}

	go handler.consumeEvents(bus.SubscribeAll())

	return handler
}

// originChecker builds the upgrade origin policy from the allowed CORS
// origins. A browser without an Origin header passes.
func originChecker(cfg *config.SecurityConfig) func(r *http.Request) bool {
	if allowsAnyOriginWS(cfg.AllowedOrigins) {
		return func(r *http.Request) bool { return true }
	}

	allowed := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		allowed[origin] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowed[origin]
	}
}

func allowsAnyOriginWS(origins []string) bool {
	if len(origins) == 0 {
		return true
	}
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// RegisterRoutes registers WebSocket routes
func (h *WebSocketHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/console", h.HandleConsoleConnection)
}

// HandleConsoleConnection upgrades an operator UI onto the event stream
func (h *WebSocketHandler) HandleConsoleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade WebSocket connection", zap.Error(err))
		return
	}

	client := &Client{
		ID:          uuid.New().String(),
		Connection:  conn,
		Send:        make(chan []byte, 256),
		UserAgent:   c.Request.UserAgent(),
		RemoteAddr:  c.Request.RemoteAddr,
		ConnectedAt: time.Now(),
	}

	h.connections.Register(client)
	h.logger.Info("Console WebSocket client connected",
		zap.String("client_id", client.ID),
		zap.String("remote_addr", client.RemoteAddr),
	)

	go h.sendInitialState(client)

	go h.handleClientRead(client)
	go h.handleClientWrite(client)
}

// handleClientRead handles reading messages from WebSocket client
func (h *WebSocketHandler) handleClientRead(client *Client) {
	defer func() {
		h.connections.Unregister(client)
		client.Connection.Close()
	}()

	client.Connection.SetReadDeadline(time.Now().Add(60 * time.Second))
	client.Connection.SetPongHandler(func(string) error {
		client.Connection.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, messageBytes, err := client.Connection.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Error("WebSocket read error",
					zap.Error(err),
					zap.String("client_id", client.ID),
				)
			}
			break
		}

		var message WebSocketMessage
		if err := json.Unmarshal(messageBytes, &message); err != nil {
			h.logger.Error("Failed to parse WebSocket message",
				zap.Error(err),
				zap.String("client_id", client.ID),
			)
			continue
		}

		h.handleClientMessage(client, &message)
	}
}

// handleClientWrite handles writing messages to WebSocket client
func (h *WebSocketHandler) handleClientWrite(client *Client) {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		client.Connection.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			client.Connection.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				client.Connection.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := client.Connection.WriteMessage(websocket.TextMessage, message); err != nil {
				h.logger.Error("WebSocket write error",
					zap.Error(err),
					zap.String("client_id", client.ID),
				)
				return
			}

		case <-ticker.C:
			client.Connection.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.Connection.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleClientMessage handles incoming client messages
func (h *WebSocketHandler) handleClientMessage(client *Client, message *WebSocketMessage) {
	switch message.Type {
	case "subscribe":
		h.handleSubscription(client, message, true)
	case "unsubscribe":
		h.handleSubscription(client, message, false)
	case "command":
		h.handleCommand(client, message)
	case "ping":
		h.sendMessage(client, &WebSocketMessage{
			Type:      "pong",
			Timestamp: time.Now(),
			RequestID: message.RequestID,
		})
	default:
		h.logger.Warn("Unknown message type",
			zap.String("type", message.Type),
			zap.String("client_id", client.ID),
		)
	}
}

// handleSubscription narrows or widens the client's event filter
func (h *WebSocketHandler) handleSubscription(client *Client, message *WebSocketMessage, on bool) {
	data, ok := message.Data.(map[string]interface{})
	if !ok {
		return
	}
	topic, ok := data["event_type"].(string)
	if !ok {
		return
	}

	eventType := model.EventType(topic)
	if on {
		client.subscribe(eventType)
	} else {
		client.unsubscribe(eventType)
	}

	h.logger.Info("Client subscription changed",
		zap.String("client_id", client.ID),
		zap.String("event_type", topic),
		zap.Bool("subscribed", on),
	)

	h.sendMessage(client, &WebSocketMessage{
		Type:      "subscription_confirmed",
		Data:      map[string]interface{}{"event_type": topic, "subscribed": on},
		Timestamp: time.Now(),
		RequestID: message.RequestID,
	})
}

// handleCommand pushes a raw console line at the firmware. The echo and
// any replies arrive through the feed events, the ack only reports
// whether the send worked.
func (h *WebSocketHandler) handleCommand(client *Client, message *WebSocketMessage) {
	data, ok := message.Data.(map[string]interface{})
	if !ok {
		h.sendError(client, "invalid command data", message.RequestID)
		return
	}

	command, ok := data["command"].(string)
	if !ok || command == "" {
		h.sendError(client, "command is required", message.RequestID)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := h.consoleService.Dispatch(ctx, command)

		response := &WebSocketMessage{
			Type: "command_response",
			Data: map[string]interface{}{
				"command": command,
				"success": err == nil,
			},
			Timestamp: time.Now(),
			RequestID: message.RequestID,
		}
		if err != nil {
			response.Data.(map[string]interface{})["error"] = err.Error()
		}

		h.sendMessage(client, response)
	}()
}

// sendInitialState pushes the current console snapshot and port list so
// a freshly attached UI renders without waiting for events
func (h *WebSocketHandler) sendInitialState(client *Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	snapshot := h.consoleService.Snapshot(ctx)

	ports, err := h.discoveryService.ListPorts(ctx)
	if err != nil {
		h.logger.Error("Failed to list ports for initial state", zap.Error(err))
	}

	h.sendMessage(client, &WebSocketMessage{
		Type: "initial_state",
		Data: map[string]interface{}{
			"console": snapshot,
			"ports":   ports,
			"clients": h.GetConnectionStats(),
		},
		Timestamp: time.Now(),
	})
}

// consumeEvents pumps bus events into the connected clients
func (h *WebSocketHandler) consumeEvents(events <-chan *model.ConsoleEvent) {
	for event := range events {
		h.BroadcastEvent(event)
	}
}

// BroadcastEvent sends one console event to every interested client
func (h *WebSocketHandler) BroadcastEvent(event *model.ConsoleEvent) {
	message := &WebSocketMessage{
		Type:      "event",
		Data:      event,
		Timestamp: event.Timestamp,
	}

	messageBytes, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("Failed to marshal broadcast message", zap.Error(err))
		return
	}

	for _, client := range h.connections.Clients() {
		if !client.wants(event.EventType) {
			continue
		}
		select {
		case client.Send <- messageBytes:
		default:
			h.logger.Warn("Client send channel full during broadcast",
				zap.String("client_id", client.ID),
			)
		}
	}
}

// sendMessage sends a message to a client
func (h *WebSocketHandler) sendMessage(client *Client, message *WebSocketMessage) {
	messageBytes, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("Failed to marshal WebSocket message", zap.Error(err))
		return
	}

	select {
	case client.Send <- messageBytes:
	default:
		h.logger.Warn("Client send channel full, dropping message",
			zap.String("client_id", client.ID),
		)
	}
}

// sendError sends an error message to a client
func (h *WebSocketHandler) sendError(client *Client, errorMsg, requestID string) {
	h.sendMessage(client, &WebSocketMessage{
		Type:      "error",
		Data:      map[string]interface{}{"error": errorMsg},
		Timestamp: time.Now(),
		RequestID: requestID,
	})
}

// GetConnectionStats returns connection statistics
func (h *WebSocketHandler) GetConnectionStats() *ConnectionStats {
	return h.connections.GetStats()
}
