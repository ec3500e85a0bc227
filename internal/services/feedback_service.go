package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"privdm_backend/internal/logger"
	"privdm_backend/internal/models"
	"privdm_backend/internal/services/dto"
	"privdm_backend/internal/state"
	"privdm_backend/pkg/apperrors"

	"github.com/google/uuid"
)

// Слова для генератора одноразовых фраз, как в референсе.
var phraseWords = []string{
	"stellar", "amazing", "premium", "exclusive",
	"verified", "authentic", "quality", "professional",
}

// FeedbackService — отзывы, которые админ публикует от имени пользователей.
type FeedbackService struct {
	store *state.Store
}

func NewFeedbackService(store *state.Store) *FeedbackService {
	return &FeedbackService{store: store}
}

func (s *FeedbackService) List() []*models.Feedback {
	var out []*models.Feedback
	s.store.View(func(d *state.Data) {
		out = d.ListFeedback()
	})
	return out
}

// Add создает отзыв. Пользователь должен существовать.
func (s *FeedbackService) Add(ctx context.Context, req *dto.AddFeedbackRequest) (*models.Feedback, error) {
	var created *models.Feedback
	err := s.store.Mutate(func(d *state.Data) error {
		if d.UserByID(req.UserID) == nil {
			return apperrors.NotFoundError("user", "User not found")
		}
		fb := &models.Feedback{
			ID:          uuid.New().String(),
			UserID:      req.UserID,
			Phrase:      req.Phrase,
			Content:     req.Content,
			Rating:      req.Rating,
			IsVerified:  false,
			PostURL:     req.PostURL,
			SubmittedAt: time.Now(),
		}
		d.Feedback[fb.ID] = fb
		cp := *fb
		created = &cp
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.CtxInfo(ctx, "feedback added", "feedback_id", created.ID, "user_id", req.UserID)
	return created, nil
}

// Verify помечает отзыв подтвержденным.
func (s *FeedbackService) Verify(ctx context.Context, feedbackID string) error {
	return s.store.Mutate(func(d *state.Data) error {
		fb := d.FeedbackByID(feedbackID)
		if fb == nil {
			return apperrors.NotFoundError("feedback", "Feedback not found")
		}
		fb.IsVerified = true
		return nil
	})
}

// Delete удаляет отзыв. Идемпотентно.
func (s *FeedbackService) Delete(ctx context.Context, feedbackID string) error {
	return s.store.Mutate(func(d *state.Data) error {
		delete(d.Feedback, feedbackID)
		return nil
	})
}

// GeneratePhrase — одноразовая фраза вида "word-NNNN". Отображаемый артефакт,
// криптографической силы не требуется.
func (s *FeedbackService) GeneratePhrase() string {
	word := phraseWords[rand.Intn(len(phraseWords))]
	number := rand.Intn(9000) + 1000
	return fmt.Sprintf("%s-%d", word, number)
}
