package cmds

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"jembox-bot/internal/stories/users"
)

type botApi interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type userService interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*users.User, error)
	ListAll(ctx context.Context) ([]*users.User, error)
}
