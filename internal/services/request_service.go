package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"privdm_backend/internal/logger"
	"privdm_backend/internal/models"
	"privdm_backend/internal/state"
	"privdm_backend/pkg/apperrors"

	"github.com/google/uuid"
)

// RequestService — админский разбор запросов на чат.
type RequestService struct {
	store       *state.Store
	adminHandle string
	notifier    Notifier
}

func NewRequestService(store *state.Store, adminHandle string, notifier Notifier) *RequestService {
	return &RequestService{
		store:       store,
		adminHandle: adminHandle,
		notifier:    notifier,
	}
}

// List возвращает ожидающие запросы.
func (s *RequestService) List() []*models.ChatRequest {
	var out []*models.ChatRequest
	s.store.View(func(d *state.Data) {
		out = d.ListRequests(models.RequestStatusPending)
	})
	return out
}

// Accept принимает запрос: запрос удаляется, появляется пользователь в статусе
// pending, привязанный к верификационному id, и системное сообщение с
// инструкцией передать id вне платформы.
func (s *RequestService) Accept(ctx context.Context, requestID, verificationID string) (*models.User, error) {
	verificationID = strings.TrimSpace(verificationID)
	if verificationID == "" {
		return nil, apperrors.ValidationError(map[string]string{
			"verificationId": "is required",
		})
	}

	var created *models.User
	var systemMsg *models.Message

	err := s.store.Mutate(func(d *state.Data) error {
		request := d.RequestByID(requestID)
		if request == nil {
			return apperrors.NotFoundError("chat_request", "Chat request not found")
		}

		now := time.Now()
		user := &models.User{
			ID:                   uuid.New().String(),
			Handle:               request.Handle,
			UniqueID:             verificationID,
			Status:               models.VerificationPending,
			PaymentStatus:        models.PaymentNone,
			JoinedAt:             now,
			LastActive:           now,
			IsOnline:             false,
			AccessGrantedContent: make(map[string]bool),
		}

		delete(d.Requests, requestID)
		d.Users[user.ID] = user

		msg := &models.Message{
			ID:          uuid.New().String(),
			SenderID:    s.adminHandle,
			RecipientID: user.ID,
			Content: fmt.Sprintf(
				"Your chat request has been accepted! Please send this unique ID to u/%s for verification: %s",
				s.adminHandle, verificationID),
			Kind:      models.MessageKindText,
			CreatedAt: now,
		}
		d.Messages = append(d.Messages, msg)

		created = user.Clone()
		cp := *msg
		systemMsg = &cp
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.MessageCreated(systemMsg)
	}
	logger.CtxInfo(ctx, "chat request accepted", "request_id", requestID, "user_id", created.ID)
	return created, nil
}

// Reject удаляет запрос. Идемпотентно: отсутствие запроса — no-op.
func (s *RequestService) Reject(ctx context.Context, requestID string) error {
	return s.store.Mutate(func(d *state.Data) error {
		if _, ok := d.Requests[requestID]; ok {
			delete(d.Requests, requestID)
			logger.CtxInfo(ctx, "chat request rejected", "request_id", requestID)
		}
		return nil
	})
}

// MarkVerified переводит пользователя pending -> verified (ручная сверка
// верификационного id завершилась вне платформы).
func (s *RequestService) MarkVerified(ctx context.Context, userID string) (*models.User, error) {
	var updated *models.User
	err := s.store.Mutate(func(d *state.Data) error {
		user := d.UserByID(userID)
		if user == nil {
			return apperrors.NotFoundError("user", "User not found")
		}
		user.Status = models.VerificationVerified
		updated = user.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.CtxInfo(ctx, "user verified", "user_id", userID)
	return updated, nil
}
