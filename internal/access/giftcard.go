package access

import (
	"time"

	"privdm_backend/internal/models"
	"privdm_backend/internal/state"

	"github.com/google/uuid"
)

// GiftCardPaymentPolicy — допуск через оплату: любой незнакомый не-админский
// хэндл молча регистрируется свежим неоплаченным пользователем с нулевой
// историей, сессия устанавливается сразу, без этапа одобрения.
type GiftCardPaymentPolicy struct{}

func (p *GiftCardPaymentPolicy) Name() string {
	return PolicyGiftCardPayment
}

func (p *GiftCardPaymentPolicy) Admit(d *state.Data, handle string, now time.Time) (*AdmitResult, error) {
	if existing := d.UserByHandle(handle); existing != nil {
		existing.LastActive = now
		existing.IsOnline = true
		return &AdmitResult{
			Outcome: OutcomeSessionEstablished,
			User:    existing.Clone(),
		}, nil
	}

	user := &models.User{
		ID:                   uuid.New().String(),
		Handle:               handle,
		Status:               models.VerificationPending,
		PaymentStatus:        models.PaymentNone,
		JoinedAt:             now,
		LastActive:           now,
		IsOnline:             true,
		AccessGrantedContent: make(map[string]bool),
	}
	d.Users[user.ID] = user

	return &AdmitResult{
		Outcome: OutcomeSessionEstablished,
		User:    user.Clone(),
	}, nil
}

// UserGate: гейт варианта — оплата подтверждена.
func (p *GiftCardPaymentPolicy) UserGate(u *models.User) bool {
	return u.PaymentStatus == models.PaymentVerified
}

// CanAccessContent: в платном варианте контент открывается статусом оплаты,
// а не поштучными грантами.
func (p *GiftCardPaymentPolicy) CanAccessContent(u *models.User, c *models.PrivateContent) bool {
	return u.PaymentStatus == models.PaymentVerified
}
