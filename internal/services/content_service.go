package services

import (
	"context"
	"time"

	"privdm_backend/internal/access"
	"privdm_backend/internal/logger"
	"privdm_backend/internal/models"
	"privdm_backend/internal/services/dto"
	"privdm_backend/internal/state"
	"privdm_backend/pkg/apperrors"

	"github.com/google/uuid"
)

// ContentService — каталог приватного контента и поштучные гранты доступа.
type ContentService struct {
	store  *state.Store
	policy access.Policy
}

func NewContentService(store *state.Store, policy access.Policy) *ContentService {
	return &ContentService{store: store, policy: policy}
}

// List возвращает каталог глазами зрителя. Админ видит всё вместе со
// списками грантов и счётчиками просмотров; пользователь — элементы с
// вычищенным URL там, где гейт не пройден, и без чужих счётчиков.
func (s *ContentService) List(viewerRole models.UserRole, viewerID string) []*dto.ContentView {
	var views []*dto.ContentView
	s.store.View(func(d *state.Data) {
		viewer := d.UserByID(viewerID)
		for _, c := range d.ListContent() {
			view := &dto.ContentView{PrivateContent: *c}
			switch {
			case viewerRole == models.UserRoleAdmin:
				view.Accessible = true
				view.AccessGrantedUsers = c.GrantedUserIDs()
			case viewer != nil && s.policy.CanAccessContent(viewer, c):
				view.Accessible = true
				view.ViewCounts = nil
			default:
				view.Accessible = false
				view.URL = ""
				view.ViewCounts = nil
			}
			views = append(views, view)
		}
	})
	return views
}

// Create добавляет элемент каталога (только админ, роль проверяет маршрут).
func (s *ContentService) Create(ctx context.Context, req *dto.CreateContentRequest) (*models.PrivateContent, error) {
	content := &models.PrivateContent{
		ID:                 uuid.New().String(),
		Title:              req.Title,
		Description:        req.Description,
		Kind:               models.ContentKind(req.Kind),
		URL:                req.URL,
		UploadedAt:         time.Now(),
		AccessGrantedUsers: make(map[string]bool),
		ViewCounts:         make(map[string]int),
	}

	err := s.store.Mutate(func(d *state.Data) error {
		d.Content[content.ID] = content
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.CtxInfo(ctx, "private content created", "content_id", content.ID, "kind", req.Kind)
	return content.Clone(), nil
}

// Update правит поля элемента; пустые поля запроса не трогаются.
func (s *ContentService) Update(ctx context.Context, contentID string, req *dto.UpdateContentRequest) (*models.PrivateContent, error) {
	var updated *models.PrivateContent
	err := s.store.Mutate(func(d *state.Data) error {
		content := d.ContentByID(contentID)
		if content == nil {
			return apperrors.NotFoundError("content", "Content not found")
		}
		if req.Title != "" {
			content.Title = req.Title
		}
		if req.Description != "" {
			content.Description = req.Description
		}
		if req.Kind != "" {
			content.Kind = models.ContentKind(req.Kind)
		}
		if req.URL != "" {
			content.URL = req.URL
		}
		updated = content.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete удаляет элемент. Идемпотентно.
func (s *ContentService) Delete(ctx context.Context, contentID string) error {
	return s.store.Mutate(func(d *state.Data) error {
		delete(d.Content, contentID)
		return nil
	})
}

// GrantAccess — идемпотентное добавление пользователя в access-список.
func (s *ContentService) GrantAccess(ctx context.Context, contentID, userID string) error {
	err := s.store.Mutate(func(d *state.Data) error {
		content := d.ContentByID(contentID)
		if content == nil {
			return apperrors.NotFoundError("content", "Content not found")
		}
		user := d.UserByID(userID)
		if user == nil {
			return apperrors.NotFoundError("user", "User not found")
		}
		content.AccessGrantedUsers[userID] = true
		user.AccessGrantedContent[contentID] = true
		return nil
	})
	if err != nil {
		return err
	}
	logger.CtxInfo(ctx, "content access granted", "content_id", contentID, "user_id", userID)
	return nil
}

// RevokeAccess — идемпотентное удаление из access-списка.
func (s *ContentService) RevokeAccess(ctx context.Context, contentID, userID string) error {
	err := s.store.Mutate(func(d *state.Data) error {
		content := d.ContentByID(contentID)
		if content == nil {
			return apperrors.NotFoundError("content", "Content not found")
		}
		delete(content.AccessGrantedUsers, userID)
		if user := d.UserByID(userID); user != nil {
			delete(user.AccessGrantedContent, contentID)
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.CtxInfo(ctx, "content access revoked", "content_id", contentID, "user_id", userID)
	return nil
}

// RecordView фиксирует разрешенный просмотр: счетчик только растет и только
// явным действием. Непройденный гейт — ForbiddenError, счетчик не трогается.
func (s *ContentService) RecordView(ctx context.Context, viewerRole models.UserRole, viewerID, contentID string) (int, error) {
	var count int
	err := s.store.Mutate(func(d *state.Data) error {
		content := d.ContentByID(contentID)
		if content == nil {
			return apperrors.NotFoundError("content", "Content not found")
		}
		if viewerRole == models.UserRoleAdmin {
			// Админские просмотры не считаем
			count = 0
			return nil
		}
		viewer := d.UserByID(viewerID)
		if viewer == nil {
			return apperrors.NotFoundError("user", "User not found")
		}
		if !s.policy.CanAccessContent(viewer, content) {
			return apperrors.ForbiddenError("Content access denied")
		}
		content.ViewCounts[viewerID]++
		count = content.ViewCounts[viewerID]
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
