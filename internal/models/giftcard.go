package models

import "time"

// GiftCard — запись о "погашенной" подарочной карте. Код храним маскированным,
// PIN — только bcrypt-хешем. Проверка формата на входе поверхностная,
// запись не является финансово достоверной.
type GiftCard struct {
	ID         string         `json:"id"`
	UserID     string         `json:"userId"`
	MaskedCode string         `json:"maskedCode"`
	PinHash    string         `json:"-"`
	Amount     int            `json:"amount"`
	Status     GiftCardStatus `json:"status"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// MaskGiftCardCode оставляет первые и последние 4 символа кода.
func MaskGiftCardCode(code string) string {
	if len(code) <= 8 {
		return "********"
	}
	return code[:4] + "****" + code[len(code)-4:]
}
