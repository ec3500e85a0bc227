package handlers

import (
	"privdm_backend/internal/services"
	"privdm_backend/internal/validator"
)

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	SessionHandler  *SessionHandler
	RequestHandler  *RequestHandler
	ChatHandler     *ChatHandler
	ContentHandler  *ContentHandler
	FeedbackHandler *FeedbackHandler
	PaymentHandler  *PaymentHandler
	FileHandler     *FileHandler
}

func NewAppHandlers(v *validator.Validator, svcs *services.ServiceContainer) *AppHandlers {
	base := NewBaseHandler(v)
	return &AppHandlers{
		SessionHandler:  NewSessionHandler(base, svcs.SessionService),
		RequestHandler:  NewRequestHandler(base, svcs.RequestService),
		ChatHandler:     NewChatHandler(base, svcs.ChatService),
		ContentHandler:  NewContentHandler(base, svcs.ContentService),
		FeedbackHandler: NewFeedbackHandler(base, svcs.FeedbackService),
		PaymentHandler:  NewPaymentHandler(base, svcs.PaymentService),
		FileHandler:     NewFileHandler(base, svcs.UploadService),
	}
}
