package review

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"jembox-bot/internal/stories/purchases"
	"jembox-bot/internal/stories/users"
	"jembox-bot/internal/telegram/flows"
	"jembox-bot/internal/telegram/states"
)

type botApi interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type stateManager interface {
	GetState(telegramID int64) states.State
	SetState(telegramID int64, state states.State, data any)
	Clear(telegramID int64)
	GetReviewData(telegramID int64) (*flows.ReviewFlowData, error)
}

type userService interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*users.User, error)
}

type purchaseService interface {
	GetByID(ctx context.Context, id int64) (*purchases.Purchase, error)
	Approve(ctx context.Context, id int64, accountEmail, accountPassword, approvedBy string) (*purchases.Purchase, error)
	Reject(ctx context.Context, id int64, reason, rejectedBy string) (*purchases.Purchase, error)
}
