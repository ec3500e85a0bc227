package services

import (
	"context"
	"strings"
	"time"

	"privdm_backend/internal/access"
	"privdm_backend/internal/logger"
	"privdm_backend/internal/models"
	"privdm_backend/internal/services/dto"
	"privdm_backend/internal/state"
	"privdm_backend/pkg/apperrors"

	"github.com/google/uuid"
)

// Notifier получает события о новых сообщениях (ws-хаб).
type Notifier interface {
	MessageCreated(msg *models.Message)
}

// ChatService — журнал сообщений 1:1 каждого пользователя с админом.
type ChatService struct {
	store       *state.Store
	policy      access.Policy
	adminHandle string
	notifier    Notifier
}

func NewChatService(store *state.Store, policy access.Policy, adminHandle string, notifier Notifier) *ChatService {
	return &ChatService{
		store:       store,
		policy:      policy,
		adminHandle: adminHandle,
		notifier:    notifier,
	}
}

type SendMessageInput struct {
	SenderRole  models.UserRole
	SenderID    string // id пользователя; для админа пустой
	RecipientID string // обязателен для админа
	Content     string
	Kind        models.MessageKind
	FileURL     string
	FileName    string
	PreviewURL  string
}

// SendMessage добавляет сообщение в журнал. Пустой текст отклоняется; админ
// без выбранного собеседника получает InvalidTargetError. Счетчик сообщений
// растет только у не-админских отправителей.
func (s *ChatService) SendMessage(ctx context.Context, input SendMessageInput) (*models.Message, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, apperrors.ValidationError(map[string]string{"content": "is required"})
	}

	kind := input.Kind
	if kind == "" {
		kind = models.MessageKindText
	}
	if !models.ValidMessageKind(kind) {
		return nil, apperrors.ValidationError(map[string]string{"kind": "invalid message kind"})
	}

	var created *models.Message
	err := s.store.Mutate(func(d *state.Data) error {
		senderID := input.SenderID
		recipientID := input.RecipientID

		if input.SenderRole == models.UserRoleAdmin {
			if recipientID == "" {
				return apperrors.InvalidTargetError("Select a user to chat with first")
			}
			if d.UserByID(recipientID) == nil {
				return apperrors.NotFoundError("user", "Recipient not found")
			}
			senderID = s.adminHandle
		} else {
			sender := d.UserByID(senderID)
			if sender == nil {
				return apperrors.NotFoundError("user", "Sender not found")
			}
			// Не-админ пишет только админу
			recipientID = s.adminHandle
			sender.MessageCount++
			sender.LastActive = time.Now()
		}

		msg := &models.Message{
			ID:          uuid.New().String(),
			SenderID:    senderID,
			RecipientID: recipientID,
			Content:     input.Content,
			Kind:        kind,
			FileURL:     input.FileURL,
			FileName:    input.FileName,
			PreviewURL:  input.PreviewURL,
			CreatedAt:   time.Now(),
		}
		d.Messages = append(d.Messages, msg)

		cp := *msg
		created = &cp
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.MessageCreated(created)
	}
	return created, nil
}

// SendTimedImage — только админ; абсолютный срок истечения считается сразу,
// isExpired стартует как false.
func (s *ChatService) SendTimedImage(ctx context.Context, senderRole models.UserRole, req *dto.SendTimedImageRequest) (*models.Message, error) {
	if senderRole != models.UserRoleAdmin {
		return nil, apperrors.ForbiddenError("Only admin can send timed images")
	}

	var created *models.Message
	err := s.store.Mutate(func(d *state.Data) error {
		if d.UserByID(req.RecipientID) == nil {
			return apperrors.NotFoundError("user", "Recipient not found")
		}

		now := time.Now()
		expiresAt := now.Add(time.Duration(req.DurationSeconds) * time.Second)
		msg := &models.Message{
			ID:            uuid.New().String(),
			SenderID:      s.adminHandle,
			RecipientID:   req.RecipientID,
			Content:       "Timed image",
			Kind:          models.MessageKindTimedImage,
			FileURL:       req.URL,
			TimerDuration: req.DurationSeconds,
			ExpiresAt:     &expiresAt,
			IsExpired:     false,
			CreatedAt:     now,
		}
		d.Messages = append(d.Messages, msg)

		cp := *msg
		created = &cp
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.MessageCreated(created)
	}
	logger.CtxInfo(ctx, "timed image sent", "message_id", created.ID, "duration", req.DurationSeconds)
	return created, nil
}

// ExpireTimedMessage переводит isExpired false -> true один раз и навсегда.
// Отсутствующее или уже истекшее сообщение — no-op.
func (s *ChatService) ExpireTimedMessage(ctx context.Context, messageID string) error {
	return s.store.Mutate(func(d *state.Data) error {
		msg := d.MessageByID(messageID)
		if msg == nil || !msg.Timed() || msg.IsExpired {
			return nil
		}
		msg.IsExpired = true
		logger.CtxInfo(ctx, "timed message expired", "message_id", messageID)
		return nil
	})
}

// ExpireOverdue помечает истекшими все просроченные timed-сообщения.
// Возвращает количество затронутых; используется воркером.
func (s *ChatService) ExpireOverdue(now time.Time) int {
	expired := 0
	_ = s.store.Mutate(func(d *state.Data) error {
		for _, m := range d.Messages {
			if m.Timed() && !m.IsExpired && m.ExpiresAt != nil && !m.ExpiresAt.After(now) {
				m.IsExpired = true
				expired++
			}
		}
		return nil
	})
	return expired
}

// MessagesFor возвращает переписку глазами зрителя: защищенные медиа, не
// прошедшие гейт, отдаются закрытой заглушкой (без URL оригинала).
func (s *ChatService) MessagesFor(viewerRole models.UserRole, viewerID, targetUserID string) ([]*dto.MessageView, error) {
	userID := viewerID
	if viewerRole == models.UserRoleAdmin {
		if targetUserID == "" {
			return nil, apperrors.InvalidTargetError("Select a user to view the chat")
		}
		userID = targetUserID
	}

	var views []*dto.MessageView
	s.store.View(func(d *state.Data) {
		viewer := d.UserByID(viewerID)
		viewerKey := viewerID
		if viewerRole == models.UserRoleAdmin {
			viewerKey = s.adminHandle
		}
		for _, m := range d.MessagesForUser(userID) {
			viewable := access.CanViewMedia(s.policy, viewerKey, viewerRole, viewer, m)
			view := &dto.MessageView{Message: *m, Viewable: viewable}
			if !viewable {
				view.FileURL = ""
			}
			views = append(views, view)
		}
	})
	return views, nil
}

// MediaFor отдает URL медиа-вложения после проверки гейта. Не прошедшему
// зрителю (и всем после истечения timed-сообщения) — ForbiddenError.
func (s *ChatService) MediaFor(viewerRole models.UserRole, viewerID, messageID string) (string, error) {
	var (
		fileURL string
		err     error
	)
	s.store.View(func(d *state.Data) {
		msg := d.MessageByID(messageID)
		if msg == nil {
			err = apperrors.NotFoundError("message", "Message not found")
			return
		}
		if msg.FileURL == "" {
			err = apperrors.NotFoundError("message", "Message has no media attachment")
			return
		}
		viewer := d.UserByID(viewerID)
		viewerKey := viewerID
		if viewerRole == models.UserRoleAdmin {
			viewerKey = s.adminHandle
		}
		if !access.CanViewMedia(s.policy, viewerKey, viewerRole, viewer, msg) {
			err = apperrors.ForbiddenError("Media is locked")
			return
		}
		fileURL = msg.FileURL
	})
	return fileURL, err
}

// ActiveChats — id пользователей, с которыми есть переписка.
func (s *ChatService) ActiveChats() []string {
	var ids []string
	s.store.View(func(d *state.Data) {
		ids = d.ActiveChatUserIDs(s.adminHandle)
	})
	return ids
}

// ListUsers — снапшот пользователей для админских вкладок.
func (s *ChatService) ListUsers() []*models.User {
	var users []*models.User
	s.store.View(func(d *state.Data) {
		users = d.ListUsers()
	})
	return users
}
