package environment

import (
	"log/slog"

	"github.com/pkg/errors"

	"jembox-bot/internal/api"
	"jembox-bot/internal/catalog"
	"jembox-bot/internal/config"
	"jembox-bot/internal/storage"
	"jembox-bot/internal/stories/purchases"
	"jembox-bot/internal/stories/users"
	"jembox-bot/internal/telegram"
	"jembox-bot/internal/telegram/cmds"
	"jembox-bot/internal/telegram/flows/review"
	"jembox-bot/internal/telegram/states"
	"jembox-bot/internal/workers"
	"jembox-bot/internal/workers/reminder"
)

type Services struct {
	Users     *users.Service
	Purchases *purchases.Service

	// TelegramRouter и Workers nil когда бот не сконфигурирован
	TelegramRouter *telegram.Router
	Workers        *workers.Manager

	APIServer *api.Server
}

func newServices(clients *Clients, cfg *config.Config, logger *slog.Logger) (*Services, error) {
	var s Services

	storageImpl := storage.New(clients.SQLiteDB.DB)

	userService := users.NewService(storageImpl)
	s.Users = userService

	var purchaseService *purchases.Service
	if clients.TelegramBot != nil {
		purchaseService = purchases.NewService(storageImpl, userService, clients.TelegramBot, logger)
	} else {
		purchaseService = purchases.NewService(storageImpl, userService, noopNotifier{logger: logger}, logger)
	}
	s.Purchases = purchaseService

	planCatalog, err := catalog.New()
	if err != nil {
		return nil, errors.Wrap(err, "catalog")
	}

	if clients.TelegramBot != nil {
		stateManager := states.NewManager()

		reviewHandler := review.NewHandler(
			clients.TelegramBot,
			stateManager,
			userService,
			purchaseService,
			logger,
		)

		// Команды ходят через rate-limited клиент, рассылка /notify
		// без этого упирается в лимиты Telegram
		startCommand := cmds.NewStartCommand(clients.TelegramBot, userService, logger)
		notifyCommand := cmds.NewNotifyCommand(clients.TelegramBot, userService, cfg.Broadcast.Delay, logger)

		s.TelegramRouter = telegram.NewRouter(reviewHandler, startCommand, notifyCommand, logger)

		reminderWorker := reminder.NewWorker(
			purchaseService,
			userService,
			clients.TelegramBot,
			cfg.Reminder.Schedule,
			cfg.Reminder.PendingAge,
			logger,
		)
		s.Workers = workers.NewManager(logger, reminderWorker)
	}

	if clients.TelegramBot != nil {
		s.APIServer = api.NewServer(userService, purchaseService, planCatalog,
			clients.TelegramBot, cfg.Telegram.ChannelChatID, cfg.API.MaxScreenshotBytes, logger)
	} else {
		s.APIServer = api.NewServer(userService, purchaseService, planCatalog,
			nil, cfg.Telegram.ChannelChatID, cfg.API.MaxScreenshotBytes, logger)
	}

	return &s, nil
}

// noopNotifier подменяет бота в API-процессе без токена:
// рассылки операторам просто не отправляются.
type noopNotifier struct {
	logger *slog.Logger
}

func (n noopNotifier) SendMessage(chatID int64, _ string) error {
	n.logger.Warn("уведомление пропущено: бот не сконфигурирован", slog.Int64("chat_id", chatID))
	return nil
}

func (n noopNotifier) SendPhoto(chatID int64, _ []byte, _ string) error {
	n.logger.Warn("уведомление пропущено: бот не сконфигурирован", slog.Int64("chat_id", chatID))
	return nil
}
