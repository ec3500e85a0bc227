package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// activeHandle — строка реестра. ListName позволяет держать несколько
// именованных списков в одном файле, ключ фиксируется конфигом.
type activeHandle struct {
	ListName string `gorm:"primaryKey;size:64"`
	Handle   string `gorm:"primaryKey;size:128"`
}

func (activeHandle) TableName() string {
	return "active_handles"
}

// SQLiteRegistry — реестр, переживающий рестарт процесса.
type SQLiteRegistry struct {
	db   *gorm.DB
	name string
}

func NewSQLiteRegistry(cfg Config) (*SQLiteRegistry, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite registry requires a path")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create registry directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open registry database: %w", err)
	}

	if err := db.AutoMigrate(&activeHandle{}); err != nil {
		return nil, fmt.Errorf("failed to migrate registry schema: %w", err)
	}

	return &SQLiteRegistry{db: db, name: cfg.Name}, nil
}

func (r *SQLiteRegistry) Add(handle string) error {
	row := activeHandle{ListName: r.name, Handle: handle}
	// Повторная вставка того же хэндла — no-op
	return r.db.Where(&row).FirstOrCreate(&row).Error
}

func (r *SQLiteRegistry) Remove(handle string) error {
	return r.db.Delete(&activeHandle{ListName: r.name, Handle: handle}).Error
}

func (r *SQLiteRegistry) Contains(handle string) (bool, error) {
	var count int64
	err := r.db.Model(&activeHandle{}).
		Where("list_name = ? AND handle = ?", r.name, handle).
		Count(&count).Error
	return count > 0, err
}

func (r *SQLiteRegistry) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
