package services

import (
	"context"
	"strings"
	"time"

	"privdm_backend/internal/access"
	"privdm_backend/internal/auth"
	"privdm_backend/internal/logger"
	"privdm_backend/internal/models"
	"privdm_backend/internal/registry"
	"privdm_backend/internal/services/dto"
	"privdm_backend/internal/state"
	"privdm_backend/pkg/apperrors"
)

// SessionService — вход, выход и снапшот текущей сессии.
type SessionService struct {
	store       *state.Store
	policy      access.Policy
	registry    registry.Registry
	adminHandle string
}

func NewSessionService(store *state.Store, policy access.Policy, reg registry.Registry, adminHandle string) *SessionService {
	return &SessionService{
		store:       store,
		policy:      policy,
		registry:    reg,
		adminHandle: adminHandle,
	}
}

// NormalizeHandle отрезает ведущий префикс "u/" и пробелы.
func NormalizeHandle(raw string) string {
	return strings.TrimPrefix(strings.TrimSpace(raw), "u/")
}

// SubmitHandle — операция входа. Админская константа устанавливает админскую
// сессию без каких-либо проверок; остальные хэндлы проходят политику допуска
// варианта. Повторный одновременный вход тем же хэндлом отклоняется реестром.
func (s *SessionService) SubmitHandle(ctx context.Context, rawHandle string) (*dto.SessionResponse, error) {
	handle := NormalizeHandle(rawHandle)
	if len(handle) < 3 {
		return nil, apperrors.ValidationError(map[string]string{
			"handle": "must be at least 3 characters",
		})
	}

	if handle == s.adminHandle {
		token, err := auth.GenerateToken("", handle, models.UserRoleAdmin)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if err := s.registry.Add(handle); err != nil {
			logger.CtxWithError(ctx, "failed to register admin handle", err)
		}
		logger.CtxInfo(ctx, "admin session established")
		return &dto.SessionResponse{
			Outcome: string(access.OutcomeSessionEstablished),
			Token:   token,
			Role:    string(models.UserRoleAdmin),
		}, nil
	}

	inUse, err := s.registry.Contains(handle)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if inUse {
		return nil, apperrors.HandleInUseError(handle)
	}

	var result *access.AdmitResult
	err = s.store.Mutate(func(d *state.Data) error {
		var admitErr error
		result, admitErr = s.policy.Admit(d, handle, time.Now())
		return admitErr
	})
	if err != nil {
		return nil, err
	}

	if result.Outcome == access.OutcomeRequestSubmitted {
		logger.CtxInfo(ctx, "chat request submitted", "handle", handle, "request_id", result.Request.ID)
		return &dto.SessionResponse{
			Outcome: string(access.OutcomeRequestSubmitted),
			Message: "Chat request submitted! Please wait for admin approval.",
		}, nil
	}

	token, err := auth.GenerateToken(result.User.ID, handle, models.UserRoleUser)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.registry.Add(handle); err != nil {
		logger.CtxWithError(ctx, "failed to register handle", err, "handle", handle)
	}
	logger.CtxInfo(ctx, "user session established", "handle", handle, "user_id", result.User.ID)

	return &dto.SessionResponse{
		Outcome: string(access.OutcomeSessionEstablished),
		Token:   token,
		Role:    string(models.UserRoleUser),
		User:    result.User,
	}, nil
}

// Logout снимает сессию: хэндл убирается из реестра, тот же хэндл может
// войти заново.
func (s *SessionService) Logout(ctx context.Context, handle, userID string) error {
	if userID != "" {
		_ = s.store.Mutate(func(d *state.Data) error {
			if u := d.UserByID(userID); u != nil {
				u.IsOnline = false
			}
			return nil
		})
	}
	if err := s.registry.Remove(handle); err != nil {
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "session closed", "handle", handle)
	return nil
}

// CurrentSession возвращает снапшот идентичности для презентации.
func (s *SessionService) CurrentSession(handle, userID string, role models.UserRole) *dto.SessionInfo {
	info := &dto.SessionInfo{
		Handle: handle,
		Role:   string(role),
	}
	if userID != "" {
		s.store.View(func(d *state.Data) {
			if u := d.UserByID(userID); u != nil {
				info.User = u.Clone()
			}
		})
	}
	return info
}

// SetOnline отмечает пользователя онлайн/оффлайн (дергается ws-хабом).
func (s *SessionService) SetOnline(userID string, online bool) {
	if userID == "" {
		return
	}
	_ = s.store.Mutate(func(d *state.Data) error {
		if u := d.UserByID(userID); u != nil {
			u.IsOnline = online
			if online {
				u.LastActive = time.Now()
			}
		}
		return nil
	})
}
