package dto

import "privdm_backend/internal/models"

type GiftCardPaymentRequest struct {
	Code   string `json:"code" validate:"required,is-gift-card-code"`
	Pin    string `json:"pin" validate:"required"`
	Amount int    `json:"amount,omitempty" validate:"omitempty,gte=1"`
}

type GiftCardPaymentResponse struct {
	GiftCard      *models.GiftCard     `json:"giftCard"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus"`
	TotalPaid     int                  `json:"totalPaid"`
}
