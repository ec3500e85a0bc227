package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"privdm_backend/internal/access"
	"privdm_backend/internal/models"
	"privdm_backend/internal/services/dto"
	"privdm_backend/internal/state"
	"privdm_backend/pkg/apperrors"
)

func newChatService(t *testing.T) (*ChatService, *state.Store, *recordingNotifier) {
	t.Helper()
	store := state.NewSeededStore(testAdminHandle)
	notifier := &recordingNotifier{}
	return NewChatService(store, &access.RequestApprovalPolicy{}, testAdminHandle, notifier), store, notifier
}

func TestSendMessage_EmptyContentRejected(t *testing.T) {
	svc, _, _ := newChatService(t)

	_, err := svc.SendMessage(context.Background(), SendMessageInput{
		SenderRole: models.UserRoleUser,
		SenderID:   "1",
		Content:    "   ",
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))
}

func TestSendMessage_AdminWithoutTargetRejected(t *testing.T) {
	svc, _, _ := newChatService(t)

	_, err := svc.SendMessage(context.Background(), SendMessageInput{
		SenderRole: models.UserRoleAdmin,
		Content:    "hello",
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidTarget))
}

func TestSendMessage_UserAlwaysWritesToAdmin(t *testing.T) {
	svc, store, notifier := newChatService(t)

	msg, err := svc.SendMessage(context.Background(), SendMessageInput{
		SenderRole:  models.UserRoleUser,
		SenderID:    "1",
		RecipientID: "somebody-else", // игнорируется
		Content:     "hi there",
	})
	require.NoError(t, err)

	assert.Equal(t, "1", msg.SenderID)
	assert.Equal(t, testAdminHandle, msg.RecipientID)
	assert.Equal(t, models.MessageKindText, msg.Kind)

	store.View(func(d *state.Data) {
		// Счетчик сообщений отправителя вырос (фикстура стартует с 25)
		assert.Equal(t, 26, d.Users["1"].MessageCount)
	})
	require.Len(t, notifier.messages, 1)
}

func TestSendMessage_AdminCounterSelected(t *testing.T) {
	svc, _, _ := newChatService(t)

	msg, err := svc.SendMessage(context.Background(), SendMessageInput{
		SenderRole:  models.UserRoleAdmin,
		RecipientID: "1",
		Content:     "hello from admin",
	})
	require.NoError(t, err)

	assert.Equal(t, testAdminHandle, msg.SenderID)
	assert.Equal(t, "1", msg.RecipientID)
}

func TestSendTimedImage_AdminOnly(t *testing.T) {
	svc, _, _ := newChatService(t)

	_, err := svc.SendTimedImage(context.Background(), models.UserRoleUser, &dto.SendTimedImageRequest{
		RecipientID:     "1",
		URL:             "/files/chat/pic.jpg",
		DurationSeconds: 30,
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))
}

func TestSendTimedImage_SetsAbsoluteExpiry(t *testing.T) {
	svc, _, _ := newChatService(t)

	before := time.Now()
	msg, err := svc.SendTimedImage(context.Background(), models.UserRoleAdmin, &dto.SendTimedImageRequest{
		RecipientID:     "1",
		URL:             "/files/chat/pic.jpg",
		DurationSeconds: 30,
	})
	require.NoError(t, err)

	assert.Equal(t, models.MessageKindTimedImage, msg.Kind)
	assert.False(t, msg.IsExpired)
	assert.Equal(t, 30, msg.TimerDuration)
	require.NotNil(t, msg.ExpiresAt)
	assert.WithinDuration(t, before.Add(30*time.Second), *msg.ExpiresAt, 2*time.Second)
}

func TestExpireTimedMessage_Monotonic(t *testing.T) {
	svc, store, _ := newChatService(t)

	msg, err := svc.SendTimedImage(context.Background(), models.UserRoleAdmin, &dto.SendTimedImageRequest{
		RecipientID:     "1",
		URL:             "/files/chat/pic.jpg",
		DurationSeconds: 30,
	})
	require.NoError(t, err)

	require.NoError(t, svc.ExpireTimedMessage(context.Background(), msg.ID))
	store.View(func(d *state.Data) {
		assert.True(t, d.MessageByID(msg.ID).IsExpired)
	})

	// Повтор и чужие id — no-op
	require.NoError(t, svc.ExpireTimedMessage(context.Background(), msg.ID))
	require.NoError(t, svc.ExpireTimedMessage(context.Background(), "no-such-message"))
}

func TestExpireOverdue(t *testing.T) {
	svc, store, _ := newChatService(t)

	msg, err := svc.SendTimedImage(context.Background(), models.UserRoleAdmin, &dto.SendTimedImageRequest{
		RecipientID:     "1",
		URL:             "/files/chat/pic.jpg",
		DurationSeconds: 10,
	})
	require.NoError(t, err)

	// До срока ничего не истекает
	assert.Zero(t, svc.ExpireOverdue(time.Now()))

	// После срока — ровно одно
	assert.Equal(t, 1, svc.ExpireOverdue(time.Now().Add(11*time.Second)))
	store.View(func(d *state.Data) {
		assert.True(t, d.MessageByID(msg.ID).IsExpired)
	})

	// Повторный проход уже ничего не находит
	assert.Zero(t, svc.ExpireOverdue(time.Now().Add(time.Minute)))
}

func TestMessagesFor_RedactsLockedMedia(t *testing.T) {
	svc, store, _ := newChatService(t)

	// Получатель в статусе pending не проходит гейт
	_ = store.Mutate(func(d *state.Data) error {
		d.Users["1"].Status = models.VerificationPending
		return nil
	})

	_, err := svc.SendTimedImage(context.Background(), models.UserRoleAdmin, &dto.SendTimedImageRequest{
		RecipientID:     "1",
		URL:             "/files/chat/secret.jpg",
		DurationSeconds: 60,
	})
	require.NoError(t, err)

	views, err := svc.MessagesFor(models.UserRoleUser, "1", "")
	require.NoError(t, err)
	require.NotEmpty(t, views)

	last := views[len(views)-1]
	assert.False(t, last.Viewable)
	assert.Empty(t, last.FileURL)

	// Админ видит оригинал
	adminViews, err := svc.MessagesFor(models.UserRoleAdmin, "", "1")
	require.NoError(t, err)
	adminLast := adminViews[len(adminViews)-1]
	assert.True(t, adminLast.Viewable)
	assert.Equal(t, "/files/chat/secret.jpg", adminLast.FileURL)
}

func TestMessagesFor_AdminNeedsTarget(t *testing.T) {
	svc, _, _ := newChatService(t)

	_, err := svc.MessagesFor(models.UserRoleAdmin, "", "")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidTarget))
}

func TestMediaFor_GateChecked(t *testing.T) {
	svc, store, _ := newChatService(t)

	msg, err := svc.SendTimedImage(context.Background(), models.UserRoleAdmin, &dto.SendTimedImageRequest{
		RecipientID:     "1",
		URL:             "/files/chat/secret.jpg",
		DurationSeconds: 60,
	})
	require.NoError(t, err)

	// Верифицированный получатель проходит
	url, err := svc.MediaFor(models.UserRoleUser, "1", msg.ID)
	require.NoError(t, err)
	assert.Equal(t, "/files/chat/secret.jpg", url)

	// После истечения закрыто для всех
	_ = store.Mutate(func(d *state.Data) error {
		d.MessageByID(msg.ID).IsExpired = true
		return nil
	})
	_, err = svc.MediaFor(models.UserRoleAdmin, "", msg.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))

	_, err = svc.MediaFor(models.UserRoleUser, "1", "no-such-message")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}
