package dto

type AddFeedbackRequest struct {
	UserID  string `json:"userId" validate:"required"`
	Phrase  string `json:"phrase" validate:"required"`
	Content string `json:"content" validate:"required"`
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	PostURL string `json:"postUrl,omitempty" validate:"omitempty,url"`
}
