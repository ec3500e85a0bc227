package services

import (
	"privdm_backend/internal/access"
	"privdm_backend/internal/config"
	"privdm_backend/internal/imageprocessor"
	"privdm_backend/internal/registry"
	"privdm_backend/internal/state"
	"privdm_backend/internal/storage"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	SessionService  *SessionService
	RequestService  *RequestService
	ChatService     *ChatService
	ContentService  *ContentService
	FeedbackService *FeedbackService
	PaymentService  *PaymentService
	UploadService   *UploadService
	Policy          access.Policy
}

// NewServiceContainer собирает сервисы поверх одного снапшота и политики
// доступа, выбранной конфигом.
func NewServiceContainer(
	cfg *config.Config,
	store *state.Store,
	policy access.Policy,
	reg registry.Registry,
	st storage.Storage,
	notifier Notifier,
) *ServiceContainer {
	processor := imageprocessor.NewProcessor(cfg.Upload.PreviewMaxWidth, 60)

	return &ServiceContainer{
		SessionService:  NewSessionService(store, policy, reg, cfg.Access.AdminHandle),
		RequestService:  NewRequestService(store, cfg.Access.AdminHandle, notifier),
		ChatService:     NewChatService(store, policy, cfg.Access.AdminHandle, notifier),
		ContentService:  NewContentService(store, policy),
		FeedbackService: NewFeedbackService(store),
		PaymentService:  NewPaymentService(store, cfg.Access.AdminHandle, cfg.Access.DefaultAmount, notifier),
		UploadService:   NewUploadService(st, processor, cfg.Upload.MaxSize, cfg.Upload.AllowedExtensions),
		Policy:          policy,
	}
}
