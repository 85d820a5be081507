package environment

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"jembox-bot/internal/config"
	"jembox-bot/internal/infra/sqlite3"
	"jembox-bot/internal/infra/telegram"
)

type Clients struct {
	SQLiteDB *sqlite3.DB

	// TelegramBot nil когда токен не задан. Бот-процесс с этим
	// не стартует, API лишь отключает проверку канала.
	TelegramBot *telegram.Client
}

func newClients(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Clients, error) {
	sqliteDB, err := provideSQLiteDB(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "sqlite")
	}

	if err := sqliteDB.Migrate(); err != nil {
		return nil, errors.Wrap(err, "migrate")
	}

	telegramBot, err := provideTelegramBot(cfg, logger)
	if err != nil {
		return nil, errors.Wrap(err, "telegram")
	}

	return &Clients{
		SQLiteDB:    sqliteDB,
		TelegramBot: telegramBot,
	}, nil
}

func provideSQLiteDB(ctx context.Context, cfg config.Config) (*sqlite3.DB, error) {
	maxLifetimeStr := cfg.DB.MaxLifetime
	if maxLifetimeStr == "" {
		maxLifetimeStr = "5m"
	}
	maxLifetime, err := time.ParseDuration(maxLifetimeStr)
	if err != nil {
		return nil, err
	}

	return sqlite3.New(ctx,
		sqlite3.WithDSN(cfg.DB.Path),
		sqlite3.WithMaxOpenConns(cfg.DB.MaxOpenConns),
		sqlite3.WithMaxIdleConns(cfg.DB.MaxIdleConns),
		sqlite3.WithConnMaxLifetime(maxLifetime),
	)
}

func provideTelegramBot(cfg config.Config, logger *slog.Logger) (*telegram.Client, error) {
	if cfg.Telegram.BotToken == "" {
		return nil, nil
	}

	return telegram.NewClient(cfg.Telegram.BotToken, logger)
}
