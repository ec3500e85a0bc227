package access

import (
	"fmt"
	"time"

	"privdm_backend/internal/models"
	"privdm_backend/internal/state"
)

// Два варианта допуска (ручная верификация и оплата подарочной картой)
// намеренно не сливаются в один: деплой выбирает политику конфигом.

const (
	PolicyRequestApproval = "request_approval"
	PolicyGiftCardPayment = "gift_card_payment"
)

type AdmitOutcome string

const (
	// OutcomeSessionEstablished — сессия установлена, User в результате
	OutcomeSessionEstablished AdmitOutcome = "session_established"
	// OutcomeRequestSubmitted — сессии нет, создан (или уже висит) запрос на чат
	OutcomeRequestSubmitted AdmitOutcome = "request_submitted"
)

// AdmitResult — исход допуска не-админского хэндла.
type AdmitResult struct {
	Outcome AdmitOutcome
	User    *models.User        // копия, nil при OutcomeRequestSubmitted
	Request *models.ChatRequest // копия запроса при OutcomeRequestSubmitted
}

// Policy — вариант модели доступа: собственная операция допуска плюс
// гейт-проверки для защищенных медиа и приватного контента.
type Policy interface {
	Name() string

	// Admit решает судьбу не-админского хэндла. Вызывается под Store.Mutate,
	// поэтому вправе создавать запросы/пользователей в d.
	Admit(d *state.Data, handle string, now time.Time) (*AdmitResult, error)

	// UserGate — удовлетворяет ли запись пользователя гейту варианта.
	UserGate(u *models.User) bool

	// CanAccessContent — видит ли пользователь элемент приватного контента.
	CanAccessContent(u *models.User, c *models.PrivateContent) bool
}

// ForName возвращает политику по имени из конфига.
func ForName(name string) (Policy, error) {
	switch name {
	case PolicyRequestApproval:
		return &RequestApprovalPolicy{}, nil
	case PolicyGiftCardPayment:
		return &GiftCardPaymentPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown access policy: %s", name)
	}
}

// CanViewMedia — правило видимости медиа в premium_image/timed_image
// сообщениях: отправитель, админ, либо получатель, чья запись проходит гейт
// варианта. Просроченный timed_image не виден никому и навсегда.
func CanViewMedia(p Policy, viewerID string, role models.UserRole, viewer *models.User, m *models.Message) bool {
	if !m.Protected() {
		return true
	}
	if m.Timed() && m.IsExpired {
		return false
	}
	if role == models.UserRoleAdmin {
		return true
	}
	if m.SenderID == viewerID {
		return true
	}
	if m.RecipientID == viewerID && viewer != nil && p.UserGate(viewer) {
		return true
	}
	return false
}
