package integration_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"privdm_backend/test/helpers"
)

// TestPaymentFlow_GiftCardPolicy — платежный вариант допуска: молчаливая
// регистрация, оплата картой, открытие премиум-контента.
func TestPaymentFlow_GiftCardPolicy(t *testing.T) {
	t.Setenv("ACCESS_POLICY", "gift_card_payment")

	ts := helpers.NewTestServer(t)
	defer ts.Close()

	// Незнакомый хэндл входит сразу, без одобрения
	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/session", "", map[string]interface{}{
		"handle": "freshbuyer",
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "session_established")
	userToken := extractSessionToken(t, bodyStr)

	adminToken := ts.LoginAdmin(t)

	// Админ публикует премиум-элемент
	res, _ = ts.SendRequest(t, "POST", "/api/v1/content", adminToken, map[string]interface{}{
		"title": "Premium clip",
		"kind":  "video",
		"url":   "https://example.com/v/premium",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	// До оплаты контент закрыт: URL вычищен
	res, bodyStr = ts.SendRequest(t, "GET", "/api/v1/content", userToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotContains(t, bodyStr, "https://example.com/v/premium")

	// Неправильный формат кода отклоняется
	res, bodyStr = ts.SendRequest(t, "POST", "/api/v1/payments/gift-card", userToken, map[string]interface{}{
		"code": "bad",
		"pin":  "12",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "VALIDATION_FAILED")

	// Оплата проходит
	res, bodyStr = ts.SendRequest(t, "POST", "/api/v1/payments/gift-card", userToken, map[string]interface{}{
		"code":   "AMZN-1234567890",
		"pin":    "1234",
		"amount": 500,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Contains(t, bodyStr, `"paymentStatus":"verified"`)
	assert.Contains(t, bodyStr, `"totalPaid":500`)
	// Полного кода нет нигде в ответе
	assert.NotContains(t, bodyStr, "AMZN-1234567890")

	// Контент открылся
	res, bodyStr = ts.SendRequest(t, "GET", "/api/v1/content", userToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "https://example.com/v/premium")

	// История содержит маскированный код
	res, bodyStr = ts.SendRequest(t, "GET", "/api/v1/payments/history", userToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "AMZN")
	assert.NotContains(t, bodyStr, "AMZN-1234567890")
}

// TestContentGrantFlow — поштучные гранты в варианте ручной верификации.
func TestContentGrantFlow(t *testing.T) {
	ts := helpers.NewTestServer(t)
	defer ts.Close()

	userToken := ts.LoginUser(t, "testuser123")
	adminToken := ts.LoginAdmin(t)

	// Новый элемент каталога, гранта еще нет
	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/content", adminToken, map[string]interface{}{
		"title": "Second drop",
		"kind":  "image",
		"url":   "https://example.com/i/2",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	contentID := extractContentID(t, bodyStr)

	res, bodyStr = ts.SendRequest(t, "GET", "/api/v1/content", userToken, nil)
	assert.NotContains(t, bodyStr, "https://example.com/i/2")

	// Грант открывает элемент и просмотр считается
	res, _ = ts.SendRequest(t, "POST", "/api/v1/content/"+contentID+"/grant/1", adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, bodyStr = ts.SendRequest(t, "GET", "/api/v1/content", userToken, nil)
	assert.Contains(t, bodyStr, "https://example.com/i/2")

	res, bodyStr = ts.SendRequest(t, "POST", "/api/v1/content/"+contentID+"/view", userToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, `"viewCount":1`)

	// Отзыв закрывает элемент, просмотр перестает проходить
	res, _ = ts.SendRequest(t, "POST", "/api/v1/content/"+contentID+"/revoke/1", adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, "POST", "/api/v1/content/"+contentID+"/view", userToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}
