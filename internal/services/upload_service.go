package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"privdm_backend/internal/imageprocessor"
	"privdm_backend/internal/logger"
	"privdm_backend/internal/models"
	"privdm_backend/internal/services/dto"
	"privdm_backend/internal/storage"
	"privdm_backend/pkg/apperrors"

	"github.com/google/uuid"
)

// UploadService принимает медиа для сообщений чата: проверяет расширение и
// размер по конфигу, кладет файл в хранилище, для картинок дополнительно
// готовит уменьшенное превью-заглушку.
type UploadService struct {
	storage           storage.Storage
	processor         *imageprocessor.Processor
	maxSize           int64
	allowedExtensions map[string]bool
}

func NewUploadService(st storage.Storage, processor *imageprocessor.Processor, maxSize int64, allowedExtensions []string) *UploadService {
	allowed := make(map[string]bool, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}
	return &UploadService{
		storage:           st,
		processor:         processor,
		maxSize:           maxSize,
		allowedExtensions: allowed,
	}
}

var imageExtensions = map[string]bool{"jpg": true, "jpeg": true, "png": true, "gif": true}
var voiceExtensions = map[string]bool{"mp3": true, "ogg": true, "wav": true}

// Upload сохраняет файл и возвращает URL (и URL превью для картинок).
func (s *UploadService) Upload(ctx context.Context, fileName string, size int64, reader io.Reader) (*dto.UploadResponse, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	if ext == "" || !s.allowedExtensions[ext] {
		return nil, apperrors.ValidationError(map[string]string{
			"file": fmt.Sprintf("extension '%s' is not allowed", ext),
		})
	}
	if size > s.maxSize {
		return nil, apperrors.LimitExceededError("upload",
			fmt.Sprintf("file exceeds the %d byte limit", s.maxSize))
	}

	// Весь файл уже ограничен maxSize, читаем в память: превью требует
	// второго прохода по данным
	data, err := io.ReadAll(io.LimitReader(reader, s.maxSize+1))
	if err != nil {
		return nil, apperrors.StorageError(err)
	}
	if int64(len(data)) > s.maxSize {
		return nil, apperrors.LimitExceededError("upload",
			fmt.Sprintf("file exceeds the %d byte limit", s.maxSize))
	}

	id := uuid.New().String()
	path := fmt.Sprintf("chat/%s.%s", id, ext)
	contentType := contentTypeForExtension(ext)

	if err := s.storage.Save(ctx, path, bytes.NewReader(data), contentType); err != nil {
		return nil, apperrors.StorageError(err)
	}

	fileURL, err := s.storage.GetURL(ctx, path)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	resp := &dto.UploadResponse{
		FileURL:  fileURL,
		FileName: fileName,
		Kind:     string(kindForExtension(ext)),
		Size:     int64(len(data)),
	}

	// Превью только для картинок; ошибка превью не валит загрузку
	if imageExtensions[ext] && s.processor != nil {
		preview, previewType, perr := s.processor.Preview(bytes.NewReader(data))
		if perr != nil {
			logger.CtxWarn(ctx, "failed to build preview", "file", fileName, "error", perr)
		} else {
			previewPath := fmt.Sprintf("previews/%s.%s", id, ext)
			if serr := s.storage.Save(ctx, previewPath, preview, previewType); serr == nil {
				if previewURL, uerr := s.storage.GetURL(ctx, previewPath); uerr == nil {
					resp.PreviewURL = previewURL
				}
			}
		}
	}

	return resp, nil
}

// Serve отдает файл из хранилища (для local-бэкенда).
func (s *UploadService) Serve(ctx context.Context, path string) (io.ReadCloser, string, error) {
	reader, err := s.storage.Get(ctx, path)
	if err != nil {
		return nil, "", apperrors.NotFoundError("file", "File not found")
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	return reader, contentTypeForExtension(ext), nil
}

func kindForExtension(ext string) models.MessageKind {
	switch {
	case imageExtensions[ext]:
		return models.MessageKindImage
	case voiceExtensions[ext]:
		return models.MessageKindVoice
	default:
		return models.MessageKindFile
	}
}

func contentTypeForExtension(ext string) string {
	switch ext {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "mp4":
		return "video/mp4"
	case "mp3":
		return "audio/mpeg"
	case "ogg":
		return "audio/ogg"
	case "wav":
		return "audio/wav"
	case "pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
