package users

import "time"

type Role string

const (
	RoleUser   Role = "user"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// IsOperator сообщает может ли роль обрабатывать заявки на покупку
func (r Role) IsOperator() bool {
	return r == RoleAdmin || r == RoleSeller
}

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	TelegramID   int64
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Критерии для получения пользователя
type GetCriteria struct {
	ID         *int64
	TelegramID *int64
	Username   *string
}

// Критерии для списка пользователей
type ListCriteria struct {
	Roles  []Role
	Limit  int
	Offset int
}
