package telegram

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Команды операторов принимаются в двух написаниях:
// /approve_15 (из уведомления) и /approve15 (набрано вручную)
var (
	approveCmdRegex = regexp.MustCompile(`^approve_?(\d+)$`)
	rejectCmdRegex  = regexp.MustCompile(`^reject_?(\d+)$`)
)

type reviewHandler interface {
	StartApproval(ctx context.Context, telegramID, chatID, purchaseID int64) error
	StartRejection(ctx context.Context, telegramID, chatID, purchaseID int64) error
	HandleText(ctx context.Context, telegramID, chatID int64, text string) error
	Cancel(ctx context.Context, telegramID, chatID int64) error
}

type startCommand interface {
	Execute(ctx context.Context, telegramID, chatID int64, firstName string) error
}

type notifyCommand interface {
	Execute(ctx context.Context, telegramID, chatID int64, text string) error
}

type Router struct {
	reviewHandler reviewHandler
	startCommand  startCommand
	notifyCommand notifyCommand
	logger        *slog.Logger
}

func NewRouter(
	reviewHandler reviewHandler,
	startCommand startCommand,
	notifyCommand notifyCommand,
	logger *slog.Logger,
) *Router {
	return &Router{
		reviewHandler: reviewHandler,
		startCommand:  startCommand,
		notifyCommand: notifyCommand,
		logger:        logger,
	}
}

func (r *Router) Route(update *tgbotapi.Update) error {
	ctx := context.Background()

	if update.Message == nil || update.Message.From == nil {
		return nil
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	// Команды разбираются первыми: текст с ведущим "/" никогда
	// не попадает в обработчик ответа оператора. Начатое действие
	// команды не сбрасывают, отмена только явная через /cancel.
	if update.Message.IsCommand() {
		return r.handleCommand(ctx, update, telegramID, chatID)
	}

	if text := update.Message.Text; text != "" {
		// Telegram размечает entity только для ASCII-команд, поэтому
		// IsCommand() недостаточно: любой текст с ведущим "/" не
		// считается ответом оператора.
		if strings.HasPrefix(text, "/") {
			r.logger.Debug("текст с ведущим слэшем пропущен", slog.String("text", text))
			return nil
		}
		return r.reviewHandler.HandleText(ctx, telegramID, chatID, text)
	}

	return nil
}

func (r *Router) handleCommand(ctx context.Context, update *tgbotapi.Update, telegramID, chatID int64) error {
	cmd := update.Message.Command()

	switch cmd {
	case "start":
		return r.startCommand.Execute(ctx, telegramID, chatID, update.Message.From.FirstName)
	case "cancel":
		return r.reviewHandler.Cancel(ctx, telegramID, chatID)
	case "notify":
		return r.notifyCommand.Execute(ctx, telegramID, chatID, update.Message.CommandArguments())
	}

	if m := approveCmdRegex.FindStringSubmatch(cmd); m != nil {
		purchaseID, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return nil
		}
		return r.reviewHandler.StartApproval(ctx, telegramID, chatID, purchaseID)
	}

	if m := rejectCmdRegex.FindStringSubmatch(cmd); m != nil {
		purchaseID, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return nil
		}
		return r.reviewHandler.StartRejection(ctx, telegramID, chatID, purchaseID)
	}

	// Незнакомые команды молча игнорируем
	r.logger.Debug("неизвестная команда", slog.String("command", cmd))
	return nil
}
