package users

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

var (
	// ErrAlreadyExists возвращается при конфликте username/email/telegram_id
	ErrAlreadyExists = errors.New("user already exists")
	// ErrInvalidCredentials возвращается при неверном пароле или telegram_id
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service provides business logic for user operations
type Service struct {
	storage Storage
}

// NewService creates a new user service
func NewService(storage Storage) *Service {
	return &Service{
		storage: storage,
	}
}

type RegisterParams struct {
	Username   string
	Email      string
	Password   string
	TelegramID int64
}

// Register регистрирует покупателя. Роль всегда user,
// админов и селлеров назначают напрямую в БД.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*User, error) {
	user := User{
		Username:     strings.ToLower(params.Username),
		Email:        strings.ToLower(params.Email),
		PasswordHash: HashPassword(params.Password),
		TelegramID:   params.TelegramID,
		Role:         RoleUser,
	}

	return s.storage.CreateUser(ctx, user)
}

// Authenticate проверяет пару логин/пароль и привязку telegram_id
func (s *Service) Authenticate(ctx context.Context, username, password string, telegramID int64) (*User, error) {
	username = strings.ToLower(username)
	user, err := s.storage.GetUser(ctx, GetCriteria{Username: &username})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	if user.PasswordHash != HashPassword(password) {
		return nil, ErrInvalidCredentials
	}
	if user.TelegramID != telegramID {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetByTelegramID получает пользователя по Telegram ID, nil если не зарегистрирован
func (s *Service) GetByTelegramID(ctx context.Context, telegramID int64) (*User, error) {
	return s.storage.GetUser(ctx, GetCriteria{TelegramID: &telegramID})
}

// GetByUsername получает пользователя по имени, nil если не найден
func (s *Service) GetByUsername(ctx context.Context, username string) (*User, error) {
	username = strings.ToLower(username)
	return s.storage.GetUser(ctx, GetCriteria{Username: &username})
}

// ListOperators возвращает всех админов и селлеров
func (s *Service) ListOperators(ctx context.Context) ([]*User, error) {
	return s.storage.ListUsers(ctx, ListCriteria{
		Roles: []Role{RoleAdmin, RoleSeller},
	})
}

// ListAll возвращает всех зарегистрированных пользователей
func (s *Service) ListAll(ctx context.Context) ([]*User, error) {
	return s.storage.ListUsers(ctx, ListCriteria{})
}

// HashPassword хеширует пароль так же, как это делал исходный бэкенд
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
