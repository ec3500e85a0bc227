package access

import (
	"time"

	"privdm_backend/internal/models"
	"privdm_backend/internal/state"
	"privdm_backend/pkg/apperrors"

	"github.com/google/uuid"
)

// RequestApprovalPolicy — допуск через ручную верификацию: незнакомый хэндл
// оставляет запрос на чат и ждет, пока админ его примет и выдаст
// верификационный id.
type RequestApprovalPolicy struct{}

func (p *RequestApprovalPolicy) Name() string {
	return PolicyRequestApproval
}

func (p *RequestApprovalPolicy) Admit(d *state.Data, handle string, now time.Time) (*AdmitResult, error) {
	if existing := d.UserByHandle(handle); existing != nil {
		if existing.Status != models.VerificationVerified {
			// Сессия не устанавливается, снапшот не меняется
			return nil, apperrors.PendingApprovalError(handle)
		}
		existing.LastActive = now
		existing.IsOnline = true
		return &AdmitResult{
			Outcome: OutcomeSessionEstablished,
			User:    existing.Clone(),
		}, nil
	}

	// Повторная подача тем же хэндлом не плодит дубликаты запросов
	if pending := d.RequestByHandle(handle); pending != nil {
		cp := *pending
		return &AdmitResult{
			Outcome: OutcomeRequestSubmitted,
			Request: &cp,
		}, nil
	}

	request := &models.ChatRequest{
		ID:          uuid.New().String(),
		Handle:      handle,
		RequestedAt: now,
		Status:      models.RequestStatusPending,
	}
	d.Requests[request.ID] = request

	cp := *request
	return &AdmitResult{
		Outcome: OutcomeRequestSubmitted,
		Request: &cp,
	}, nil
}

// UserGate: гейт варианта — ручная верификация пройдена.
func (p *RequestApprovalPolicy) UserGate(u *models.User) bool {
	return u.Status == models.VerificationVerified
}

// CanAccessContent: членство в access-списке элемента.
func (p *RequestApprovalPolicy) CanAccessContent(u *models.User, c *models.PrivateContent) bool {
	return c.AccessGrantedUsers[u.ID]
}
