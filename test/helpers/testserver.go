package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"privdm_backend/internal/app"
	"privdm_backend/internal/config"
	"privdm_backend/internal/logger"
)

// TestServer — сервер с собственным свежим снапшотом состояния. Состояние
// живет в памяти, поэтому изоляция тестов достигается отдельным сервером
// на тест, а не транзакциями.
type TestServer struct {
	Server *httptest.Server
	Config *config.Config

	cancel  context.CancelFunc
	cleanup func()
}

// NewTestServer создает и настраивает тестовый сервер.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	os.Setenv("SERVER_ENV", "test")
	if os.Getenv("JWT_SECRET") == "" {
		os.Setenv("JWT_SECRET", "my_super_secret_key_for_tests_12345")
	}

	config.LoadConfig()
	cfg := config.GetConfig()
	cfg.Storage.BasePath = t.TempDir()
	logger.Init(cfg.Server.Env)

	ctx, cancel := context.WithCancel(context.Background())
	router, cleanup := app.SetupRouter(ctx, cfg)

	server := httptest.NewServer(router)

	return &TestServer{
		Server:  server,
		Config:  cfg,
		cancel:  cancel,
		cleanup: cleanup,
	}
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	ts.cancel()
	ts.cleanup()
}

// SendRequest выполняет запрос к тестовому серверу и возвращает ответ
// вместе с телом строкой.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	url := ts.Server.URL + path

	var reqBody io.Reader = nil
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Ошибка кодирования JSON для запроса: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("Ошибка создания HTTP-запроса: %v", err)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("Ошибка отправки HTTP-запроса: %v", err)
	}

	resBodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("Ошибка чтения тела ответа: %v", err)
	}
	defer res.Body.Close()

	return res, string(resBodyBytes)
}

// LoginAdmin устанавливает админскую сессию и возвращает токен.
func (ts *TestServer) LoginAdmin(t *testing.T) string {
	t.Helper()

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/session", "", map[string]interface{}{
		"handle": ts.Config.Access.AdminHandle,
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("Админский вход провалился (%d): %s", res.StatusCode, bodyStr)
	}
	return extractToken(t, bodyStr)
}

// LoginUser устанавливает сессию существующего допущенного пользователя.
func (ts *TestServer) LoginUser(t *testing.T, handle string) string {
	t.Helper()

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/session", "", map[string]interface{}{
		"handle": handle,
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("Вход пользователя %s провалился (%d): %s", handle, res.StatusCode, bodyStr)
	}
	return extractToken(t, bodyStr)
}

func extractToken(t *testing.T, bodyStr string) string {
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
