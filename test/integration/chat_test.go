package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"privdm_backend/test/helpers"
)

// TestChatFlow — переписка пользователя с админом и админские вкладки.
func TestChatFlow(t *testing.T) {
	// 1. Подготовка (Arrange)
	ts := helpers.NewTestServer(t)
	defer ts.Close()

	userToken := ts.LoginUser(t, "testuser123")
	adminToken := ts.LoginAdmin(t)

	// 2. Действие: пользователь пишет (получатель всегда админ) (Act)
	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/messages", userToken, map[string]interface{}{
		"content": "hello admin",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Contains(t, bodyStr, "hello admin")

	// Админ без выбранного собеседника получает отказ
	res, bodyStr = ts.SendRequest(t, "POST", "/api/v1/messages", adminToken, map[string]interface{}{
		"content": "hello user",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "INVALID_TARGET")

	// С выбранным собеседником — проходит
	res, _ = ts.SendRequest(t, "POST", "/api/v1/messages", adminToken, map[string]interface{}{
		"recipientId": "1",
		"content":     "hello user",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	// 3. Проверка: обе стороны видят переписку (Assert)
	res, bodyStr = ts.SendRequest(t, "GET", "/api/v1/messages", userToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "hello admin")
	assert.Contains(t, bodyStr, "hello user")

	res, bodyStr = ts.SendRequest(t, "GET", "/api/v1/messages?user=1", adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "hello admin")

	// Админ без ?user= получает отказ
	res, _ = ts.SendRequest(t, "GET", "/api/v1/messages", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	// Админские вкладки
	res, bodyStr = ts.SendRequest(t, "GET", "/api/v1/users", adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "testuser123")

	res, bodyStr = ts.SendRequest(t, "GET", "/api/v1/chats/active", adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "1")

	// Пользователю админские вкладки закрыты
	res, _ = ts.SendRequest(t, "GET", "/api/v1/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

// TestTimedImageFlow — таймерное изображение: отправка, истечение, гейт медиа.
func TestTimedImageFlow(t *testing.T) {
	ts := helpers.NewTestServer(t)
	defer ts.Close()

	userToken := ts.LoginUser(t, "testuser123")
	adminToken := ts.LoginAdmin(t)

	// Пользователь не может отправить таймерное изображение
	res, _ := ts.SendRequest(t, "POST", "/api/v1/messages/timed-image", userToken, map[string]interface{}{
		"recipientId":     "1",
		"url":             "/files/chat/pic.jpg",
		"durationSeconds": 30,
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	// Админ отправляет
	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/messages/timed-image", adminToken, map[string]interface{}{
		"recipientId":     "1",
		"url":             "/files/chat/pic.jpg",
		"durationSeconds": 30,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var created struct {
		Message struct {
			ID string `json:"id"`
		} `json:"message"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &created))
	messageID := created.Message.ID

	// Верифицированный получатель видит медиа до истечения
	res, bodyStr = ts.SendRequest(t, "GET", "/api/v1/messages/"+messageID+"/media", userToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "/files/chat/pic.jpg")

	// Таймер вышел: клиент сообщает об истечении
	res, _ = ts.SendRequest(t, "POST", "/api/v1/messages/"+messageID+"/expire", userToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// После истечения медиа закрыто для всех, включая админа
	res, _ = ts.SendRequest(t, "GET", "/api/v1/messages/"+messageID+"/media", userToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	res, _ = ts.SendRequest(t, "GET", "/api/v1/messages/"+messageID+"/media", adminToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	// Повторное истечение — no-op
	res, _ = ts.SendRequest(t, "POST", "/api/v1/messages/"+messageID+"/expire", userToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

// TestTimedImage_DurationValidation — границы таймера.
func TestTimedImage_DurationValidation(t *testing.T) {
	ts := helpers.NewTestServer(t)
	defer ts.Close()

	adminToken := ts.LoginAdmin(t)

	for _, duration := range []int{0, -5, 3601} {
		res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/messages/timed-image", adminToken, map[string]interface{}{
			"recipientId":     "1",
			"url":             "/files/chat/pic.jpg",
			"durationSeconds": duration,
		})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, "duration %d", duration)
		assert.Contains(t, bodyStr, "VALIDATION_FAILED")
	}
}
