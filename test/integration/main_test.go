package integration_test

import (
	"encoding/json"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	os.Setenv("SERVER_ENV", "test")
	os.Setenv("JWT_SECRET", "my_super_secret_key_for_tests_12345")
	os.Exit(m.Run())
}

func extractSessionToken(t *testing.T, bodyStr string) string {
	t.Helper()

	var parsed struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal([]byte(bodyStr), &parsed); err != nil {
		t.Fatalf("Не удалось разобрать ответ сессии: %v", err)
	}
	if parsed.Token == "" {
		t.Fatalf("В ответе сессии нет токена: %s", bodyStr)
	}
	return parsed.Token
}

func extractContentID(t *testing.T, bodyStr string) string {
	t.Helper()

	var parsed struct {
		Content struct {
			ID string `json:"id"`
		} `json:"content"`
	}
	if err := json.Unmarshal([]byte(bodyStr), &parsed); err != nil {
		t.Fatalf("Не удалось разобрать ответ контента: %v", err)
	}
	if parsed.Content.ID == "" {
		t.Fatalf("В ответе контента нет id: %s", bodyStr)
	}
	return parsed.Content.ID
}
