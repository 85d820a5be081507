package reminder

import (
	"context"

	"jembox-bot/internal/stories/purchases"
	"jembox-bot/internal/stories/users"
)

type purchaseService interface {
	ListStalePending(ctx context.Context, criteria purchases.ListCriteria) ([]*purchases.Purchase, error)
}

type userService interface {
	ListOperators(ctx context.Context) ([]*users.User, error)
}

type notifier interface {
	SendMessage(chatID int64, text string) error
}
