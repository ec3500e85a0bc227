package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"privdm_backend/internal/logger"
	"privdm_backend/internal/middleware"
	"privdm_backend/internal/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // продакшн: проверка origin
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type WebSocketHandler struct {
	Manager *WebSocketManager
}

func NewWebSocketHandler(manager *WebSocketManager) *WebSocketHandler {
	return &WebSocketHandler{Manager: manager}
}

// ServeWS апгрейдит соединение. Личность берется из auth middleware, а не из
// query-параметров: токен обязателен.
func (h *WebSocketHandler) ServeWS(c *gin.Context) {
	role := middleware.RoleFromContext(c)
	userID := middleware.UserIDFromContext(c)
	if userID == "" && role == models.UserRoleAdmin {
		// Админ идентифицируется дескриптором, а не id.
		userID = middleware.HandleFromContext(c)
	}
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("WebSocket upgrade error", "error", err)
		return
	}

	client := &Client{
		ID:      userID,
		Role:    role,
		Conn:    conn,
		Send:    make(chan Event, 16),
		Manager: h.Manager,
	}

	h.Manager.register <- client

	go client.readPump()
	go client.writePump()
}
