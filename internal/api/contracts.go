package api

import (
	"context"

	"jembox-bot/internal/catalog"
	"jembox-bot/internal/stories/purchases"
	"jembox-bot/internal/stories/users"
)

type userService interface {
	Register(ctx context.Context, params users.RegisterParams) (*users.User, error)
	Authenticate(ctx context.Context, username, password string, telegramID int64) (*users.User, error)
	GetByUsername(ctx context.Context, username string) (*users.User, error)
}

type purchaseService interface {
	Submit(ctx context.Context, params purchases.SubmitParams) (*purchases.Purchase, error)
	ListByUsername(ctx context.Context, username string) ([]*purchases.Purchase, error)
	ListAll(ctx context.Context) ([]*purchases.Purchase, error)
	Approve(ctx context.Context, id int64, accountEmail, accountPassword, approvedBy string) (*purchases.Purchase, error)
	Reject(ctx context.Context, id int64, reason, rejectedBy string) (*purchases.Purchase, error)
	CancelPending(ctx context.Context, id int64) (*purchases.Purchase, error)
}

// channelChecker проверяет подписку на канал магазина.
// Когда бот не сконфигурирован, проверка пропускается с предупреждением.
type channelChecker interface {
	IsChannelMember(channelChatID, telegramID int64) (bool, error)
}

type planCatalog interface {
	HasPlan(service, plan string) bool
	Services() []catalog.Service
}
