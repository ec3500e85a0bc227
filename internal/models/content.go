package models

import "time"

type PrivateContent struct {
	ID                 string          `json:"id"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	Kind               ContentKind     `json:"kind"`
	URL                string          `json:"url"`
	UploadedAt         time.Time       `json:"uploadedAt"`
	AccessGrantedUsers map[string]bool `json:"-"`
	ViewCounts         map[string]int  `json:"viewCounts,omitempty"`
}

func (c *PrivateContent) Clone() *PrivateContent {
	cp := *c
	cp.AccessGrantedUsers = make(map[string]bool, len(c.AccessGrantedUsers))
	for id := range c.AccessGrantedUsers {
		cp.AccessGrantedUsers[id] = true
	}
	cp.ViewCounts = make(map[string]int, len(c.ViewCounts))
	for id, n := range c.ViewCounts {
		cp.ViewCounts[id] = n
	}
	return &cp
}

// GrantedUserIDs — кому контент выдан напрямую.
func (c *PrivateContent) GrantedUserIDs() []string {
	ids := make([]string, 0, len(c.AccessGrantedUsers))
	for id := range c.AccessGrantedUsers {
		ids = append(ids, id)
	}
	return ids
}
