package apperrors

import (
	"net/http"
)

/*
Фабрики для ошибок доменных операций. Виды соответствуют контроллеру сессий/доступа:
валидация входа, отсутствующий id, нераспознанная/неподтвержденная учетка,
админ-действие без выбранного собеседника.
*/

// ValidationError - ошибка валидации входных данных (400)
func ValidationError(details interface{}) *AppError {
	return New(CodeValidationFailed, "validation", "Validation failed", http.StatusBadRequest).
		WithDetails(details)
}

// NotFoundError - операция над отсутствующим id (404)
func NotFoundError(domain, message string) *AppError {
	return New(CodeNotFound, domain, message, http.StatusNotFound)
}

// PendingApprovalError - хэндл известен, но еще не верифицирован (403)
func PendingApprovalError(handle string) *AppError {
	return New(CodePendingApproval, "session",
		"Your chat request is still pending admin approval", http.StatusForbidden).
		WithDetails(map[string]string{"handle": handle})
}

// InvalidTargetError - админ-действие без выбранного собеседника (400)
func InvalidTargetError(message string) *AppError {
	return New(CodeInvalidTarget, "chat", message, http.StatusBadRequest)
}

// HandleInUseError - хэндл уже в активной сессии (409)
func HandleInUseError(handle string) *AppError {
	return New(CodeHandleInUse, "session",
		"This handle is already in an active chat session", http.StatusConflict).
		WithDetails(map[string]string{"handle": handle})
}

// UnauthorizedError - нет или невалидная сессия (401)
func UnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, "auth", message, http.StatusUnauthorized)
}

// ForbiddenError - роль не дает права на операцию (403)
func ForbiddenError(message string) *AppError {
	return New(CodeForbidden, "auth", message, http.StatusForbidden)
}

// NewBadRequestError - некорректное тело запроса (400)
func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, "request", message, http.StatusBadRequest)
}

// LimitExceededError - превышен лимит (размер файла и т.п.) (400)
func LimitExceededError(domain, message string) *AppError {
	return New(CodeLimitExceeded, domain, message, http.StatusBadRequest)
}

// InternalError - все прочее (500)
func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "system", "Internal server error", http.StatusInternalServerError)
}

// StorageError - ошибка файлового хранилища (500)
func StorageError(err error) *AppError {
	return Wrap(err, CodeStorageError, "storage", "File storage error", http.StatusInternalServerError)
}
