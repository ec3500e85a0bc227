package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"privdm_backend/internal/access"
	"privdm_backend/internal/models"
	"privdm_backend/internal/registry"
	"privdm_backend/internal/state"
	"privdm_backend/pkg/apperrors"
)

const testAdminHandle = "desireddit4us"

func newSessionService(t *testing.T, policyName string) (*SessionService, *state.Store) {
	t.Helper()

	policy, err := access.ForName(policyName)
	require.NoError(t, err)

	store := state.NewSeededStore(testAdminHandle)
	return NewSessionService(store, policy, registry.NewMemoryRegistry(), testAdminHandle), store
}

func TestNormalizeHandle(t *testing.T) {
	assert.Equal(t, "testuser123", NormalizeHandle("u/testuser123"))
	assert.Equal(t, "testuser123", NormalizeHandle("  testuser123  "))
	assert.Equal(t, "testuser123", NormalizeHandle(" u/testuser123"))
}

func TestSubmitHandle_TooShortRejected(t *testing.T) {
	svc, _ := newSessionService(t, access.PolicyRequestApproval)

	_, err := svc.SubmitHandle(context.Background(), "ab")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))

	// Длина проверяется после нормализации
	_, err = svc.SubmitHandle(context.Background(), "u/ab")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))
}

func TestSubmitHandle_AdminShortCircuit(t *testing.T) {
	svc, _ := newSessionService(t, access.PolicyRequestApproval)

	response, err := svc.SubmitHandle(context.Background(), testAdminHandle)

	require.NoError(t, err)
	assert.Equal(t, string(access.OutcomeSessionEstablished), response.Outcome)
	assert.Equal(t, string(models.UserRoleAdmin), response.Role)
	assert.NotEmpty(t, response.Token)
	assert.Nil(t, response.User)
}

func TestSubmitHandle_VerifiedUserGetsSession(t *testing.T) {
	svc, _ := newSessionService(t, access.PolicyRequestApproval)

	response, err := svc.SubmitHandle(context.Background(), "u/testuser123")

	require.NoError(t, err)
	assert.Equal(t, string(access.OutcomeSessionEstablished), response.Outcome)
	assert.Equal(t, string(models.UserRoleUser), response.Role)
	assert.NotEmpty(t, response.Token)
	require.NotNil(t, response.User)
	assert.Equal(t, "1", response.User.ID)
}

func TestSubmitHandle_UnknownHandleSubmitsRequest(t *testing.T) {
	svc, store := newSessionService(t, access.PolicyRequestApproval)

	response, err := svc.SubmitHandle(context.Background(), "stranger789")

	require.NoError(t, err)
	assert.Equal(t, string(access.OutcomeRequestSubmitted), response.Outcome)
	assert.Empty(t, response.Token)
	assert.Contains(t, response.Message, "wait for admin approval")

	store.View(func(d *state.Data) {
		assert.NotNil(t, d.RequestByHandle("stranger789"))
	})
}

func TestSubmitHandle_ActiveHandleRejected(t *testing.T) {
	svc, _ := newSessionService(t, access.PolicyRequestApproval)

	_, err := svc.SubmitHandle(context.Background(), "testuser123")
	require.NoError(t, err)

	_, err = svc.SubmitHandle(context.Background(), "testuser123")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeHandleInUse))
}

func TestSubmitHandle_GiftCardPolicyRegistersStranger(t *testing.T) {
	svc, store := newSessionService(t, access.PolicyGiftCardPayment)

	response, err := svc.SubmitHandle(context.Background(), "freshbuyer")

	require.NoError(t, err)
	assert.Equal(t, string(access.OutcomeSessionEstablished), response.Outcome)
	assert.NotEmpty(t, response.Token)
	require.NotNil(t, response.User)
	assert.Equal(t, models.PaymentNone, response.User.PaymentStatus)

	store.View(func(d *state.Data) {
		assert.NotNil(t, d.UserByHandle("freshbuyer"))
	})
}

func TestLogout_FreesHandleForReentry(t *testing.T) {
	svc, _ := newSessionService(t, access.PolicyRequestApproval)

	response, err := svc.SubmitHandle(context.Background(), "testuser123")
	require.NoError(t, err)

	err = svc.Logout(context.Background(), "testuser123", response.User.ID)
	require.NoError(t, err)

	// Тот же хэндл снова проходит
	again, err := svc.SubmitHandle(context.Background(), "testuser123")
	require.NoError(t, err)
	assert.NotEmpty(t, again.Token)
}

func TestSetOnline(t *testing.T) {
	svc, store := newSessionService(t, access.PolicyRequestApproval)

	svc.SetOnline("1", false)
	store.View(func(d *state.Data) {
		assert.False(t, d.Users["1"].IsOnline)
	})

	svc.SetOnline("1", true)
	store.View(func(d *state.Data) {
		assert.True(t, d.Users["1"].IsOnline)
	})
}
