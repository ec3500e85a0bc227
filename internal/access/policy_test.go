package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"privdm_backend/internal/models"
	"privdm_backend/internal/state"
	"privdm_backend/pkg/apperrors"
)

const adminHandle = "desireddit4us"

func seededData() *state.Data {
	d := state.NewData()
	state.Seed(d, adminHandle)
	return d
}

func TestForName(t *testing.T) {
	approval, err := ForName(PolicyRequestApproval)
	require.NoError(t, err)
	assert.Equal(t, PolicyRequestApproval, approval.Name())

	giftcard, err := ForName(PolicyGiftCardPayment)
	require.NoError(t, err)
	assert.Equal(t, PolicyGiftCardPayment, giftcard.Name())

	_, err = ForName("free_for_all")
	assert.Error(t, err)
}

func TestRequestApproval_VerifiedUserGetsSession(t *testing.T) {
	d := seededData()
	p := &RequestApprovalPolicy{}

	result, err := p.Admit(d, "testuser123", time.Now())

	require.NoError(t, err)
	assert.Equal(t, OutcomeSessionEstablished, result.Outcome)
	require.NotNil(t, result.User)
	assert.Equal(t, "1", result.User.ID)
	assert.True(t, d.Users["1"].IsOnline)
}

func TestRequestApproval_UnverifiedUserRejected(t *testing.T) {
	d := seededData()
	d.Users["2"] = &models.User{
		ID:     "2",
		Handle: "pendinguser",
		Status: models.VerificationPending,
	}
	p := &RequestApprovalPolicy{}

	_, err := p.Admit(d, "pendinguser", time.Now())

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodePendingApproval))
}

func TestRequestApproval_BlockedUserRejected(t *testing.T) {
	d := seededData()
	d.Users["2"] = &models.User{
		ID:     "2",
		Handle: "blockeduser",
		Status: models.VerificationBlocked,
	}
	p := &RequestApprovalPolicy{}

	_, err := p.Admit(d, "blockeduser", time.Now())

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodePendingApproval))
}

func TestRequestApproval_UnknownHandleCreatesRequest(t *testing.T) {
	d := seededData()
	p := &RequestApprovalPolicy{}

	result, err := p.Admit(d, "stranger789", time.Now())

	require.NoError(t, err)
	assert.Equal(t, OutcomeRequestSubmitted, result.Outcome)
	assert.Nil(t, result.User)
	require.NotNil(t, result.Request)
	assert.Equal(t, "stranger789", result.Request.Handle)
	assert.Equal(t, models.RequestStatusPending, result.Request.Status)
	assert.NotNil(t, d.RequestByHandle("stranger789"))
}

func TestRequestApproval_ResubmitDoesNotDuplicate(t *testing.T) {
	d := seededData()
	p := &RequestApprovalPolicy{}

	first, err := p.Admit(d, "stranger789", time.Now())
	require.NoError(t, err)
	second, err := p.Admit(d, "stranger789", time.Now())
	require.NoError(t, err)

	assert.Equal(t, OutcomeRequestSubmitted, second.Outcome)
	assert.Equal(t, first.Request.ID, second.Request.ID)

	count := 0
	for _, r := range d.Requests {
		if r.Handle == "stranger789" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestGiftCardPayment_UnknownHandleRegisteredSilently(t *testing.T) {
	d := seededData()
	p := &GiftCardPaymentPolicy{}

	result, err := p.Admit(d, "freshbuyer", time.Now())

	require.NoError(t, err)
	assert.Equal(t, OutcomeSessionEstablished, result.Outcome)
	require.NotNil(t, result.User)
	assert.Equal(t, models.PaymentNone, result.User.PaymentStatus)
	assert.Zero(t, result.User.MessageCount)
	assert.Zero(t, result.User.TotalPaid)
	assert.NotNil(t, d.UserByHandle("freshbuyer"))
}

func TestGiftCardPayment_GateRequiresVerifiedPayment(t *testing.T) {
	p := &GiftCardPaymentPolicy{}

	assert.False(t, p.UserGate(&models.User{PaymentStatus: models.PaymentNone}))
	assert.False(t, p.UserGate(&models.User{PaymentStatus: models.PaymentPending}))
	assert.True(t, p.UserGate(&models.User{PaymentStatus: models.PaymentVerified}))
}

func TestCanViewMedia_PlainMessagesVisibleToAll(t *testing.T) {
	p := &RequestApprovalPolicy{}
	msg := &models.Message{
		SenderID:    adminHandle,
		RecipientID: "1",
		Kind:        models.MessageKindText,
	}

	assert.True(t, CanViewMedia(p, "someone-else", models.UserRoleUser, nil, msg))
}

func TestCanViewMedia_ProtectedMessageGates(t *testing.T) {
	p := &RequestApprovalPolicy{}
	msg := &models.Message{
		SenderID:    adminHandle,
		RecipientID: "1",
		Kind:        models.MessageKindPremiumImage,
		FileURL:     "/files/chat/secret.jpg",
	}

	verified := &models.User{ID: "1", Status: models.VerificationVerified}
	pending := &models.User{ID: "1", Status: models.VerificationPending}

	// Отправитель и админ видят всегда
	assert.True(t, CanViewMedia(p, adminHandle, models.UserRoleAdmin, nil, msg))
	assert.True(t, CanViewMedia(p, adminHandle, models.UserRoleUser, nil, msg))

	// Получатель — только пройдя гейт
	assert.True(t, CanViewMedia(p, "1", models.UserRoleUser, verified, msg))
	assert.False(t, CanViewMedia(p, "1", models.UserRoleUser, pending, msg))

	// Посторонний не видит
	assert.False(t, CanViewMedia(p, "99", models.UserRoleUser, verified, msg))
}

func TestCanViewMedia_ExpiredTimedImageHiddenForever(t *testing.T) {
	p := &RequestApprovalPolicy{}
	expiresAt := time.Now().Add(-time.Minute)
	msg := &models.Message{
		SenderID:    adminHandle,
		RecipientID: "1",
		Kind:        models.MessageKindTimedImage,
		FileURL:     "/files/chat/timed.jpg",
		ExpiresAt:   &expiresAt,
		IsExpired:   true,
	}

	verified := &models.User{ID: "1", Status: models.VerificationVerified}

	// После истечения не видит никто, даже отправитель и админ
	assert.False(t, CanViewMedia(p, adminHandle, models.UserRoleAdmin, nil, msg))
	assert.False(t, CanViewMedia(p, adminHandle, models.UserRoleUser, nil, msg))
	assert.False(t, CanViewMedia(p, "1", models.UserRoleUser, verified, msg))
}
