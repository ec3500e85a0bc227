package state

import "sync"

// Store сериализует доступ к снапшоту одним мьютексом: каждая операция
// контроллера выполняется целиком до следующей, как в исходной
// однопоточной событийной модели. Операция либо мутирует снапшот и
// возвращает nil, либо возвращает ошибку, не тронув состояние — проверки
// выполняются до первой записи.
type Store struct {
	mu   sync.RWMutex
	data *Data
}

func NewStore() *Store {
	return &Store{data: NewData()}
}

// NewSeededStore создает стор с фикстурами референсного приложения.
func NewSeededStore(adminHandle string) *Store {
	s := NewStore()
	Seed(s.data, adminHandle)
	return s
}

// View выполняет читающую функцию под RLock. Функция не должна удерживать
// ссылки на внутренние объекты после возврата — наружу отдаются копии.
func (s *Store) View(fn func(d *Data)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.data)
}

// Mutate выполняет операцию под эксклюзивной блокировкой.
func (s *Store) Mutate(fn func(d *Data) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}
