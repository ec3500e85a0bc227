package dto

import "privdm_backend/internal/models"

type CreateContentRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Kind        string `json:"kind" validate:"required,is-content-kind"`
	URL         string `json:"url" validate:"required"`
}

type UpdateContentRequest struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Kind        string `json:"kind,omitempty" validate:"omitempty,is-content-kind"`
	URL         string `json:"url,omitempty"`
}

// ContentView — элемент контента глазами зрителя. Для не прошедших гейт
// URL вычищен, Accessible=false.
type ContentView struct {
	models.PrivateContent
	AccessGrantedUsers []string `json:"accessGrantedUsers,omitempty"` // только для админа
	Accessible         bool     `json:"accessible"`
}
