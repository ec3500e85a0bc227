package dto

type UploadResponse struct {
	FileURL    string `json:"fileUrl"`
	FileName   string `json:"fileName"`
	PreviewURL string `json:"previewUrl,omitempty"`
	Kind       string `json:"kind"` // image | voice | file
	Size       int64  `json:"size"`
}
