package models

import "time"

// Feedback — отзыв, который админ публикует от имени пользователя.
// Phrase — одноразовая фраза для сверки, чисто отображаемый артефакт.
type Feedback struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Phrase      string    `json:"phrase"`
	Content     string    `json:"content"`
	Rating      int       `json:"rating"`
	IsVerified  bool      `json:"isVerified"`
	PostURL     string    `json:"postUrl,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}
