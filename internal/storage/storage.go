package storage

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Storage — интерфейс файлового хранилища для медиа чата
// (картинки, голосовые, вложения и превью-заглушки).
type Storage interface {
	// Save сохраняет файл по пути
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error

	// Get читает файл
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete удаляет файл
	Delete(ctx context.Context, path string) error

	// Exists проверяет наличие файла
	Exists(ctx context.Context, path string) (bool, error)

	// GetURL возвращает публичный URL файла
	GetURL(ctx context.Context, path string) (string, error)

	// GetSignedURL возвращает временный подписанный URL
	GetSignedURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

// Config — конфигурация хранилища
type Config struct {
	Type       string // local, s3
	BasePath   string // для local
	BaseURL    string // публичный префикс URL
	Bucket     string // для s3
	Region     string // для s3
	AccessKey  string // для s3
	SecretKey  string // для s3
	Endpoint   string // кастомный s3-совместимый endpoint
	PublicRead bool
}

// NewStorage создает хранилище по конфигурации
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
