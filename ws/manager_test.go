package ws

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"privdm_backend/internal/access"
	"privdm_backend/internal/config"
	"privdm_backend/internal/models"
	"privdm_backend/internal/registry"
	"privdm_backend/internal/services"
	"privdm_backend/internal/state"
)

const testAdminHandle = "desireddit4us"

func newTestManager(t *testing.T) *WebSocketManager {
	t.Helper()

	policy, err := access.ForName(access.PolicyRequestApproval)
	require.NoError(t, err)

	store := state.NewSeededStore(testAdminHandle)
	manager := NewWebSocketManager(testAdminHandle)
	svcs := services.NewServiceContainer(config.GetConfig(), store, policy, registry.NewMemoryRegistry(), nil, manager)
	manager.Bind(svcs)
	return manager
}

func newTestClient(manager *WebSocketManager, id string) *Client {
	return &Client{
		ID:      id,
		Role:    models.UserRoleUser,
		Send:    make(chan Event, 16),
		Manager: manager,
	}
}

// Второе соединение того же пользователя вытесняет первое; ошибка сервиса,
// пришедшая по уже вытесненному соединению, молча отбрасывается.
func TestHandleMessage_StaleClientErrorDropped(t *testing.T) {
	// Arrange
	manager := newTestManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go manager.Run(ctx)

	stale := newTestClient(manager, "1")
	fresh := newTestClient(manager, "1")
	manager.register <- stale
	manager.register <- fresh
	for range stale.Send {
		// Канал закрывается менеджером при повторной регистрации
	}

	// Act: пустой content даёт ошибку валидации, ответ уходит в reply
	payload := IncomingWSMessage{
		Action: "send_message",
		Data:   json.RawMessage(`{"content": ""}`),
	}
	require.NotPanics(t, func() {
		stale.handleMessage(payload)
	})

	// Assert: ошибка вытесненного соединения не попадает свежему
	select {
	case ev := <-fresh.Send:
		t.Fatalf("Неожиданное событие %q у активного соединения", ev.Type)
	default:
	}
}

func TestHandleMessage_ErrorReachesActiveClient(t *testing.T) {
	// Arrange
	manager := newTestManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go manager.Run(ctx)

	client := newTestClient(manager, "1")
	manager.register <- client
	// Вторая регистрация подтверждает, что первая уже обработана
	other := newTestClient(manager, "2")
	manager.register <- other

	// Act
	client.handleMessage(IncomingWSMessage{
		Action: "send_message",
		Data:   json.RawMessage(`{"content": ""}`),
	})

	// Assert: reply синхронный, событие уже в буфере канала
	select {
	case ev := <-client.Send:
		assert.Equal(t, "error", ev.Type)
	default:
		t.Fatal("Ожидалось событие об ошибке у активного соединения")
	}
}
