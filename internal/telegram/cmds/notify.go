package cmds

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"jembox-bot/internal/metrics"
	"jembox-bot/internal/stories/users"
	"jembox-bot/internal/telegram/messages"
)

// NotifyCommand рассылает сообщение всем зарегистрированным
// пользователям. Доступна только администраторам.
type NotifyCommand struct {
	bot         botApi
	userService userService
	delay       time.Duration // пауза между сообщениями, чтобы не упереться в лимиты Telegram
	logger      *slog.Logger
}

func NewNotifyCommand(bot botApi, userService userService, delay time.Duration, logger *slog.Logger) *NotifyCommand {
	return &NotifyCommand{
		bot:         bot,
		userService: userService,
		delay:       delay,
		logger:      logger,
	}
}

func (c *NotifyCommand) Execute(ctx context.Context, telegramID, chatID int64, text string) error {
	user, err := c.userService.GetByTelegramID(ctx, telegramID)
	if err != nil {
		_, _ = c.bot.Send(tgbotapi.NewMessage(chatID, messages.ErrorCheckingPermission))
		return fmt.Errorf("get user by telegram id %d: %w", telegramID, err)
	}
	if user == nil || user.Role != users.RoleAdmin {
		_, err = c.bot.Send(tgbotapi.NewMessage(chatID, messages.NotifyAdminsOnly))
		return err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		_, err = c.bot.Send(tgbotapi.NewMessage(chatID, messages.NotifyUsage))
		return err
	}

	recipients, err := c.userService.ListAll(ctx)
	if err != nil {
		_, _ = c.bot.Send(tgbotapi.NewMessage(chatID, messages.NotifyErrorListingUsers))
		return fmt.Errorf("list users for broadcast: %w", err)
	}

	_, _ = c.bot.Send(tgbotapi.NewMessage(chatID, messages.FormatBroadcastStarted(len(recipients))))

	broadcast := messages.FormatBroadcast(text)
	sent, failed := 0, 0
	for _, recipient := range recipients {
		if _, err := c.bot.Send(tgbotapi.NewMessage(recipient.TelegramID, broadcast)); err != nil {
			failed++
			metrics.BroadcastFailed.Inc()
			c.logger.Warn("сообщение не доставлено",
				slog.String("username", recipient.Username),
				slog.Any("error", err))
		} else {
			sent++
			metrics.BroadcastSent.Inc()
		}

		time.Sleep(c.delay)
	}

	c.logger.Info("рассылка завершена",
		slog.Int("sent", sent), slog.Int("failed", failed))

	_, err = c.bot.Send(tgbotapi.NewMessage(chatID, messages.FormatBroadcastDone(sent, failed, len(recipients))))
	return err
}
