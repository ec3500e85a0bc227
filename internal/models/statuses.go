package models

type UserRole string
type VerificationStatus string
type PaymentStatus string
type RequestStatus string
type MessageKind string
type ContentKind string
type GiftCardStatus string

const (
	UserRoleAnonymous UserRole = "anonymous"
	UserRoleUser      UserRole = "user"
	UserRoleAdmin     UserRole = "admin"

	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationBlocked  VerificationStatus = "blocked"

	PaymentNone     PaymentStatus = "none"
	PaymentPending  PaymentStatus = "pending"
	PaymentVerified PaymentStatus = "verified"

	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
	RequestStatusRejected RequestStatus = "rejected"

	MessageKindText         MessageKind = "text"
	MessageKindImage        MessageKind = "image"
	MessageKindVoice        MessageKind = "voice"
	MessageKindFile         MessageKind = "file"
	MessageKindTimedImage   MessageKind = "timed_image"
	MessageKindPremiumImage MessageKind = "premium_image"

	ContentKindRedgif ContentKind = "redgif"
	ContentKindVideo  ContentKind = "video"
	ContentKindImage  ContentKind = "image"

	GiftCardStatusCompleted GiftCardStatus = "completed"
	GiftCardStatusPending   GiftCardStatus = "pending"
	GiftCardStatusFailed    GiftCardStatus = "failed"
)

// ValidMessageKind проверяет, что тип сообщения из допустимого набора.
func ValidMessageKind(k MessageKind) bool {
	switch k {
	case MessageKindText, MessageKindImage, MessageKindVoice, MessageKindFile,
		MessageKindTimedImage, MessageKindPremiumImage:
		return true
	}
	return false
}

// ValidContentKind проверяет тип приватного контента.
func ValidContentKind(k ContentKind) bool {
	switch k {
	case ContentKindRedgif, ContentKindVideo, ContentKindImage:
		return true
	}
	return false
}
