package cmds

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"jembox-bot/internal/telegram/messages"
)

// StartCommand отвечает на /start: приветствие с учетом роли
// или приглашение зарегистрироваться с Telegram ID.
type StartCommand struct {
	bot         botApi
	userService userService
	logger      *slog.Logger
}

func NewStartCommand(bot botApi, userService userService, logger *slog.Logger) *StartCommand {
	return &StartCommand{
		bot:         bot,
		userService: userService,
		logger:      logger,
	}
}

func (c *StartCommand) Execute(ctx context.Context, telegramID, chatID int64, firstName string) error {
	user, err := c.userService.GetByTelegramID(ctx, telegramID)
	if err != nil {
		_, _ = c.bot.Send(tgbotapi.NewMessage(chatID, messages.ErrorCheckingAccount))
		return fmt.Errorf("get user by telegram id %d: %w", telegramID, err)
	}

	if user == nil {
		_, err = c.bot.Send(tgbotapi.NewMessage(chatID, messages.FormatWelcomeUnregistered(firstName, telegramID)))
		return err
	}

	c.logger.Info("пользователь открыл бота",
		slog.String("username", user.Username),
		slog.String("role", string(user.Role)))

	_, err = c.bot.Send(tgbotapi.NewMessage(chatID, messages.FormatWelcome(user)))
	return err
}
