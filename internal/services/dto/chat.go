package dto

import "privdm_backend/internal/models"

type SendMessageRequest struct {
	// Для админа обязателен выбранный собеседник, иначе InvalidTargetError
	RecipientID string `json:"recipientId,omitempty"`
	Content     string `json:"content" validate:"required"`
	Kind        string `json:"kind,omitempty" validate:"omitempty,is-message-kind"`
	FileURL     string `json:"fileUrl,omitempty"`
	FileName    string `json:"fileName,omitempty"`
	PreviewURL  string `json:"previewUrl,omitempty"`
}

type SendTimedImageRequest struct {
	RecipientID     string `json:"recipientId" validate:"required"`
	URL             string `json:"url" validate:"required"`
	DurationSeconds int    `json:"durationSeconds" validate:"required,gte=1,lte=3600"`
}

// MessageView — сообщение глазами конкретного зрителя: Viewable=false значит
// "закрытая заглушка", медиа-URL в таком случае вычищен.
type MessageView struct {
	models.Message
	Viewable bool `json:"viewable"`
}

type AcceptRequestRequest struct {
	VerificationID string `json:"verificationId" validate:"required"`
}
