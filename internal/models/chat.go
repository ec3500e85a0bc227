package models

import "time"

type ChatRequest struct {
	ID          string        `json:"id"`
	Handle      string        `json:"handle"`
	RequestedAt time.Time     `json:"requestedAt"`
	Status      RequestStatus `json:"status"`
	Message     string        `json:"message,omitempty"`
}

type Message struct {
	ID            string      `json:"id"`
	SenderID      string      `json:"senderId"`
	RecipientID   string      `json:"recipientId"`
	Content       string      `json:"content"`
	Kind          MessageKind `json:"kind"`
	FileURL       string      `json:"fileUrl,omitempty"`
	FileName      string      `json:"fileName,omitempty"`
	PreviewURL    string      `json:"previewUrl,omitempty"`
	TimerDuration int         `json:"timerDuration,omitempty"` // секунды, только timed_image
	ExpiresAt     *time.Time  `json:"expiresAt,omitempty"`
	IsExpired     bool        `json:"isExpired"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// Timed — сообщение с таймером самоуничтожения.
func (m *Message) Timed() bool {
	return m.Kind == MessageKindTimedImage
}

// Protected — медиа закрыто гейтом (см. internal/access).
func (m *Message) Protected() bool {
	return m.Kind == MessageKindTimedImage || m.Kind == MessageKindPremiumImage
}

// Between — сообщение принадлежит переписке пользователя userID с админом.
func (m *Message) Between(userID string) bool {
	return m.SenderID == userID || m.RecipientID == userID
}
