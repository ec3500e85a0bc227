package contextkeys

// ContextKey - типизированный ключ для gin/context значений
type ContextKey string

const (
	// UserIDContextKey - id текущего пользователя (пустой для админа, у него своя константа-хэндл)
	UserIDContextKey ContextKey = "userID"
	// HandleContextKey - хэндл текущего актора
	HandleContextKey ContextKey = "handle"
	// RoleContextKey - роль текущего актора
	RoleContextKey ContextKey = "role"
)
