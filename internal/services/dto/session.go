package dto

import "privdm_backend/internal/models"

type SubmitHandleRequest struct {
	// Хэндл может прийти с префиксом "u/", нормализация его отрежет
	Handle string `json:"handle" validate:"required,is-handle"`
}

// SessionResponse — исход submitHandle. При request_submitted токена нет:
// клиент повторяет вход после одобрения.
type SessionResponse struct {
	Outcome string       `json:"outcome"` // session_established | request_submitted
	Token   string       `json:"token,omitempty"`
	Role    string       `json:"role,omitempty"`
	User    *models.User `json:"user,omitempty"`
	Message string       `json:"message,omitempty"`
}

type SessionInfo struct {
	Handle string       `json:"handle"`
	Role   string       `json:"role"`
	User   *models.User `json:"user,omitempty"`
}
