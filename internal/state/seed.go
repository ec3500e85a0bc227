package state

import (
	"time"

	"privdm_backend/internal/models"
)

// Seed наполняет снапшот литеральными фикстурами референсного приложения:
// один верифицированный пользователь, один ожидающий запрос, приветственное
// сообщение, один элемент приватного контента и один подтвержденный отзыв.
func Seed(d *Data, adminHandle string) {
	joined := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	d.Users["1"] = &models.User{
		ID:            "1",
		Handle:        "testuser123",
		UniqueID:      "VERIFY-ABC123",
		Status:        models.VerificationVerified,
		PaymentStatus: models.PaymentNone,
		JoinedAt:      joined,
		LastActive:    time.Now(),
		IsOnline:      true,
		MessageCount:  25,
		AccessGrantedContent: map[string]bool{
			"1": true,
		},
	}

	d.Requests["1"] = &models.ChatRequest{
		ID:          "1",
		Handle:      "newuser456",
		RequestedAt: time.Date(2024, 1, 20, 10, 30, 0, 0, time.UTC),
		Status:      models.RequestStatusPending,
		Message:     "Hi, I would like to access your private content. I'm a genuine user.",
	}

	d.Messages = append(d.Messages, &models.Message{
		ID:          "1",
		SenderID:    adminHandle,
		RecipientID: "1",
		Content:     "Welcome! You are now verified and have access to exclusive content.",
		Kind:        models.MessageKindText,
		CreatedAt:   time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	})

	d.Content["1"] = &models.PrivateContent{
		ID:          "1",
		Title:       "Exclusive RedGIF Collection",
		Description: "Premium content for verified users only",
		Kind:        models.ContentKindRedgif,
		URL:         "https://redgifs.com/watch/example",
		UploadedAt:  joined,
		AccessGrantedUsers: map[string]bool{
			"1": true,
		},
		ViewCounts: map[string]int{
			"1": 5,
		},
	}

	d.Feedback["1"] = &models.Feedback{
		ID:          "1",
		UserID:      "1",
		Phrase:      "stellar-4567",
		Content:     "Amazing content and great communication. Highly recommended!",
		Rating:      5,
		IsVerified:  true,
		PostURL:     "https://reddit.com/r/example/comments/123",
		SubmittedAt: time.Date(2024, 1, 18, 0, 0, 0, 0, time.UTC),
	}
}
