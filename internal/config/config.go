package config

import (
	"fmt"
	"time"
)

type Config struct {
	Env              string                  `env:"ENV,default=local"`
	Logger           LoggerConfig            `env:",prefix=LOGGER_"`
	Observability    ObservabilityHTTPConfig `env:",prefix=OBSERVABILITY_"`
	ShutdownDuration time.Duration           `env:"SHUTDOWN_DURATION,default=30s"`
	DB               SQLiteConfig            `env:",prefix=DB_"`
	Telegram         TelegramConfig          `env:",prefix=TELEGRAM_"`
	API              APIConfig               `env:",prefix=API_"`
	Broadcast        BroadcastConfig         `env:",prefix=BROADCAST_"`
	Reminder         ReminderConfig          `env:",prefix=REMINDER_"`
}

type TelegramConfig struct {
	// BotToken пустой допустим только для API-процесса:
	// бот без токена не стартует, API лишь отключает проверку канала.
	BotToken      string        `env:"BOT_TOKEN"`
	Timeout       time.Duration `env:"TIMEOUT,default=30s"`
	ChannelChatID int64         `env:"CHANNEL_CHAT_ID"`
}

type APIConfig struct {
	Host         string        `env:"HOST,default=0.0.0.0"`
	Port         uint16        `env:"PORT,default=3001"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT,default=30s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT,default=30s"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT,default=1m"`
	// Максимальный размер скриншота оплаты в байтах
	MaxScreenshotBytes int64 `env:"MAX_SCREENSHOT_BYTES,default=5242880"`
}

func (a APIConfig) ADDR() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

type BroadcastConfig struct {
	// Задержка между сообщениями массовой рассылки
	Delay time.Duration `env:"DELAY,default=50ms"`
}

type ReminderConfig struct {
	// Расписание cron для напоминаний о зависших заявках
	Schedule string `env:"SCHEDULE,default=0 10 * * *"`
	// Возраст pending-заявки, после которого шлем напоминание
	PendingAge time.Duration `env:"PENDING_AGE,default=24h"`
}

type LoggerConfig struct {
	Level string `env:"LEVEL,default=debug"`
}

type ObservabilityHTTPConfig struct {
	Host         string        `env:"HOST,default=127.0.0.1"`
	Port         uint16        `env:"PORT,default=8383"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT,default=30s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT,default=30s"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT,default=1m"`
}

func (a ObservabilityHTTPConfig) ADDR() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

type SQLiteConfig struct {
	Path         string `env:"PATH,default=./data/jembox.db"`
	MaxOpenConns int    `env:"MAX_OPEN_CONNS,default=25"`
	MaxIdleConns int    `env:"MAX_IDLE_CONNS,default=5"`
	MaxLifetime  string `env:"MAX_LIFETIME,default=5m"`
}
