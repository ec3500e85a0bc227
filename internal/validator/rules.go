package validator

import (
	"log"
	"regexp"
	"strings"

	"privdm_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// giftCardCodePattern — поверхностный фильтр формата, не реальная проверка карты.
var giftCardCodePattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// registerCustomRules регистрирует кастомные функции валидации.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Ошибка регистрации правила — ошибка конфигурации приложения
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-handle", validateHandle)
	mustRegister("is-gift-card-code", validateGiftCardCode)
	mustRegister("is-message-kind", validateMessageKind)
	mustRegister("is-content-kind", validateContentKind)
}

// validateHandle: минимум 3 символа после отрезания префикса "u/".
func validateHandle(fl validator.FieldLevel) bool {
	handle := strings.TrimPrefix(fl.Field().String(), "u/")
	return len(handle) >= 3
}

// validateGiftCardCode: длина >= 10, только буквы/цифры/дефисы.
func validateGiftCardCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	return len(code) >= 10 && giftCardCodePattern.MatchString(code)
}

func validateMessageKind(fl validator.FieldLevel) bool {
	return models.ValidMessageKind(models.MessageKind(fl.Field().String()))
}

func validateContentKind(fl validator.FieldLevel) bool {
	return models.ValidContentKind(models.ContentKind(fl.Field().String()))
}
