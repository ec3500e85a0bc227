package registry

import "fmt"

// Registry — список хэндлов в активных сессиях. Нужен только чтобы отклонить
// повторный одновременный вход под тем же хэндлом; источником истины по
// верификации и оплате не является.
type Registry interface {
	Add(handle string) error
	Remove(handle string) error
	Contains(handle string) (bool, error)
	Close() error
}

// Config выбирает реализацию реестра.
type Config struct {
	Type string // memory, sqlite
	Path string // путь к файлу sqlite
	Name string // имя списка (фиксированный ключ хранилища)
}

// New создает реестр по конфигурации.
func New(cfg Config) (Registry, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryRegistry(), nil
	case "sqlite":
		return NewSQLiteRegistry(cfg)
	default:
		return nil, fmt.Errorf("unsupported registry type: %s", cfg.Type)
	}
}
