package models

import "time"

type User struct {
	ID                   string             `json:"id"`
	Handle               string             `json:"handle"`
	UniqueID             string             `json:"uniqueId,omitempty"`
	Status               VerificationStatus `json:"status"`
	PaymentStatus        PaymentStatus      `json:"paymentStatus"`
	JoinedAt             time.Time          `json:"joinedAt"`
	LastActive           time.Time          `json:"lastActive"`
	IsOnline             bool               `json:"isOnline"`
	MessageCount         int                `json:"messageCount"`
	TotalPaid            int                `json:"totalPaid"`
	AccessGrantedContent map[string]bool    `json:"-"`
}

// Clone возвращает глубокую копию — снапшоты наружу всегда копии,
// презентация не должна получать ссылку на внутреннее состояние.
func (u *User) Clone() *User {
	cp := *u
	cp.AccessGrantedContent = make(map[string]bool, len(u.AccessGrantedContent))
	for id := range u.AccessGrantedContent {
		cp.AccessGrantedContent[id] = true
	}
	return &cp
}

// GrantedContentIDs — список id контента, выданного пользователю напрямую.
func (u *User) GrantedContentIDs() []string {
	ids := make([]string, 0, len(u.AccessGrantedContent))
	for id := range u.AccessGrantedContent {
		ids = append(ids, id)
	}
	return ids
}
