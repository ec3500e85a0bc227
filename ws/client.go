package ws

import (
	"context"
	"encoding/json"

	"github.com/gorilla/websocket"

	"privdm_backend/internal/logger"
	"privdm_backend/internal/models"
	"privdm_backend/internal/services"
)

type IncomingWSMessage struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type Client struct {
	ID   string
	Role models.UserRole
	Conn *websocket.Conn
	Send chan Event

	Manager *WebSocketManager
}

func (c *Client) readPump() {
	defer func() {
		c.Manager.unregister <- c
		c.Conn.Close()
	}()

	for {
		_, msgBytes, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("WebSocket read error", "user_id", c.ID, "error", err)
			}
			break
		}

		var msg IncomingWSMessage
		if err := json.Unmarshal(msgBytes, &msg); err != nil {
			logger.Warn("Failed to parse ws message", "user_id", c.ID, "error", err)
			continue
		}

		c.handleMessage(msg)
	}
}

func (c *Client) writePump() {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteJSON(msg); err != nil {
			logger.Warn("WebSocket write error", "user_id", c.ID, "error", err)
			break
		}
	}
}

// Централизованный обработчик входящих действий.
func (c *Client) handleMessage(msg IncomingWSMessage) {
	svcs := c.Manager.services
	if svcs == nil {
		return
	}

	switch msg.Action {

	case "send_message":
		var payload struct {
			RecipientID string `json:"recipientId"`
			Content     string `json:"content"`
		}
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			logger.Warn("Invalid send_message payload", "user_id", c.ID, "error", err)
			return
		}
		_, err := svcs.ChatService.SendMessage(context.Background(), services.SendMessageInput{
			SenderRole:  c.Role,
			SenderID:    c.ID,
			RecipientID: payload.RecipientID,
			Content:     payload.Content,
			Kind:        models.MessageKindText,
		})
		if err != nil {
			logger.Warn("Failed to send message over ws", "user_id", c.ID, "error", err)
			c.Manager.reply(c, Event{Type: "error", Payload: err.Error()})
		}

	case "mark_viewed":
		var payload struct {
			MessageID string `json:"messageId"`
		}
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			logger.Warn("Invalid mark_viewed payload", "user_id", c.ID, "error", err)
			return
		}
		if err := svcs.ChatService.ExpireTimedMessage(context.Background(), payload.MessageID); err != nil {
			logger.Warn("Failed to expire timed message", "user_id", c.ID, "error", err)
		}

	default:
		logger.Warn("Unhandled ws action", "user_id", c.ID, "action", msg.Action)
	}
}
