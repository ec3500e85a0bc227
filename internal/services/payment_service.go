package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"privdm_backend/internal/logger"
	"privdm_backend/internal/models"
	"privdm_backend/internal/services/dto"
	"privdm_backend/internal/state"
	"privdm_backend/pkg/apperrors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Поверхностный фильтр формата кода. Успех не означает реального погашения
// карты — внешней проверки здесь нет по построению.
var giftCardCodePattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// PaymentService — платежный вариант допуска: "погашение" подарочной карты
// переводит пользователя в оплаченный статус.
type PaymentService struct {
	store         *state.Store
	adminHandle   string
	defaultAmount int
	notifier      Notifier
}

func NewPaymentService(store *state.Store, adminHandle string, defaultAmount int, notifier Notifier) *PaymentService {
	return &PaymentService{
		store:         store,
		adminHandle:   adminHandle,
		defaultAmount: defaultAmount,
		notifier:      notifier,
	}
}

// RecordGiftCardPayment валидирует формат кода и PIN, помечает пользователя
// оплаченным, накапливает totalPaid, добавляет запись о карте и
// подтверждающее сообщение. При любой ошибке снапшот не меняется.
func (s *PaymentService) RecordGiftCardPayment(ctx context.Context, userID string, req *dto.GiftCardPaymentRequest) (*dto.GiftCardPaymentResponse, error) {
	code := strings.TrimSpace(req.Code)
	pin := strings.TrimSpace(req.Pin)

	fieldErrors := make(map[string]string)
	if len(code) < 10 || !giftCardCodePattern.MatchString(code) {
		fieldErrors["code"] = "must be at least 10 alphanumeric characters or hyphens"
	}
	if pin == "" {
		fieldErrors["pin"] = "is required"
	}
	if len(fieldErrors) > 0 {
		return nil, apperrors.ValidationError(fieldErrors)
	}

	amount := req.Amount
	if amount == 0 {
		amount = s.defaultAmount
	}

	pinHash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	var resp *dto.GiftCardPaymentResponse
	var confirmMsg *models.Message

	err = s.store.Mutate(func(d *state.Data) error {
		user := d.UserByID(userID)
		if user == nil {
			return apperrors.NotFoundError("user", "User not found")
		}

		now := time.Now()
		card := &models.GiftCard{
			ID:         uuid.New().String(),
			UserID:     userID,
			MaskedCode: models.MaskGiftCardCode(code),
			PinHash:    string(pinHash),
			Amount:     amount,
			Status:     models.GiftCardStatusCompleted,
			CreatedAt:  now,
		}

		user.PaymentStatus = models.PaymentVerified
		user.TotalPaid += amount
		d.GiftCards = append(d.GiftCards, card)

		msg := &models.Message{
			ID:          uuid.New().String(),
			SenderID:    s.adminHandle,
			RecipientID: userID,
			Content: fmt.Sprintf(
				"Payment received (%s, amount %d). Premium content is now unlocked for you.",
				card.MaskedCode, amount),
			Kind:      models.MessageKindText,
			CreatedAt: now,
		}
		d.Messages = append(d.Messages, msg)

		cardCopy := *card
		msgCopy := *msg
		confirmMsg = &msgCopy
		resp = &dto.GiftCardPaymentResponse{
			GiftCard:      &cardCopy,
			PaymentStatus: user.PaymentStatus,
			TotalPaid:     user.TotalPaid,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.MessageCreated(confirmMsg)
	}
	logger.CtxInfo(ctx, "gift card payment recorded", "user_id", userID, "amount", amount)
	return resp, nil
}

// History — записи об оплатах пользователя (коды маскированы).
func (s *PaymentService) History(userID string) []*models.GiftCard {
	var out []*models.GiftCard
	s.store.View(func(d *state.Data) {
		out = d.GiftCardsForUser(userID)
	})
	return out
}
