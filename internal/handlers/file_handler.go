package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"privdm_backend/internal/middleware"
	"privdm_backend/internal/services"
	"privdm_backend/pkg/apperrors"
)

// FileHandler - загрузка вложений чата и раздача локального хранилища.
type FileHandler struct {
	*BaseHandler
	uploadService *services.UploadService
}

func NewFileHandler(base *BaseHandler, uploadService *services.UploadService) *FileHandler {
	return &FileHandler{
		BaseHandler:   base,
		uploadService: uploadService,
	}
}

func (h *FileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	files := rg.Group("/files")
	files.Use(middleware.AuthMiddleware())
	{
		files.POST("", h.Upload)
		files.GET("/*path", h.Serve)
	}
}

func (h *FileHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("File is required: "+err.Error()))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	defer file.Close()

	response, err := h.uploadService.Upload(c.Request.Context(), fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

func (h *FileHandler) Serve(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")

	reader, contentType, err := h.uploadService.Serve(c.Request.Context(), path)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer reader.Close()

	c.DataFromReader(http.StatusOK, -1, contentType, reader, nil)
}
