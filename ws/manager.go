package ws

import (
	"context"
	"sync"

	"privdm_backend/internal/logger"
	"privdm_backend/internal/models"
	"privdm_backend/internal/services"
)

// Event - событие, отправляемое клиентам по WebSocket.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// WebSocketManager хранит активные соединения и раздаёт события чата.
// Реализует services.Notifier.
type WebSocketManager struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan Event
	mu         sync.RWMutex

	adminHandle string
	services    *services.ServiceContainer
}

func NewWebSocketManager(adminHandle string) *WebSocketManager {
	return &WebSocketManager{
		clients:     make(map[string]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan Event),
		adminHandle: adminHandle,
	}
}

// Bind подключает сервисы после их создания. Менеджер создаётся раньше
// контейнера, потому что контейнеру нужен Notifier.
func (manager *WebSocketManager) Bind(svcs *services.ServiceContainer) {
	manager.services = svcs
}

func (manager *WebSocketManager) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			logger.Info("WebSocket manager stopped")
			return

		case client := <-manager.register:
			manager.mu.Lock()
			if old, ok := manager.clients[client.ID]; ok {
				close(old.Send)
			}
			manager.clients[client.ID] = client
			total := len(manager.clients)
			manager.mu.Unlock()
			manager.setOnline(client.ID, true)
			logger.Info("Client registered", "user_id", client.ID, "total", total)

		case client := <-manager.unregister:
			manager.mu.Lock()
			if current, ok := manager.clients[client.ID]; ok && current == client {
				close(client.Send)
				delete(manager.clients, client.ID)
			}
			total := len(manager.clients)
			manager.mu.Unlock()
			manager.setOnline(client.ID, false)
			logger.Info("Client unregistered", "user_id", client.ID, "total", total)

		case event := <-manager.broadcast:
			manager.broadcastEvent(event)
		}
	}
}

// MessageCreated рассылает новое сообщение его участникам.
// Администратор видит все диалоги, поэтому событие уходит и ему.
func (manager *WebSocketManager) MessageCreated(msg *models.Message) {
	event := Event{Type: "message_created", Payload: msg}
	manager.sendToClient(msg.SenderID, event)
	if msg.RecipientID != "" && msg.RecipientID != msg.SenderID {
		manager.sendToClient(msg.RecipientID, event)
	}
	if msg.SenderID != manager.adminHandle && msg.RecipientID != manager.adminHandle {
		manager.sendToClient(manager.adminHandle, event)
	}
}

func (manager *WebSocketManager) sendToClient(clientID string, event Event) {
	// Send закрывается только под mu, поэтому отправка не выходит из-под RLock.
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	client, ok := manager.clients[clientID]
	if !ok {
		return
	}

	select {
	case client.Send <- event:
	default:
		logger.Warn("Client send channel full, disconnecting", "user_id", clientID)
		go func() {
			manager.unregister <- client
		}()
	}
}

// reply отправляет событие конкретному соединению. Вытесненный повторной
// регистрацией клиент уже не числится в clients, и его закрытый канал не
// трогается; read pump никогда не пишет в c.Send напрямую.
func (manager *WebSocketManager) reply(client *Client, event Event) {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	if manager.clients[client.ID] != client {
		return
	}

	select {
	case client.Send <- event:
	default:
	}
}

func (manager *WebSocketManager) broadcastEvent(event Event) {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	for clientID, client := range manager.clients {
		select {
		case client.Send <- event:
		default:
			logger.Warn("Client send channel full, disconnecting", "user_id", clientID)
			go func(c *Client) {
				manager.unregister <- c
			}(client)
		}
	}
}

func (manager *WebSocketManager) setOnline(clientID string, online bool) {
	if manager.services == nil || clientID == manager.adminHandle {
		return
	}
	manager.services.SessionService.SetOnline(clientID, online)
}
