package workers

import (
	"context"
	"time"

	"privdm_backend/internal/logger"
	"privdm_backend/internal/services"
)

// ExpiryWorker раз в секунду помечает истекшими просроченные timed-сообщения.
// Останавливается отменой контекста — после остановки состояние не мутируется.
type ExpiryWorker struct {
	chat     *services.ChatService
	interval time.Duration
}

func NewExpiryWorker(chat *services.ChatService) *ExpiryWorker {
	return &ExpiryWorker{
		chat:     chat,
		interval: time.Second,
	}
}

// Start запускает цикл воркера в отдельной горутине.
func (w *ExpiryWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *ExpiryWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Expiry worker stopped")
			return
		case now := <-ticker.C:
			if n := w.chat.ExpireOverdue(now); n > 0 {
				logger.Info("Expired timed messages", "count", n)
			}
		}
	}
}
