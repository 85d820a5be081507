package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"jembox-bot/internal/stories/purchases"
	"jembox-bot/internal/telegram/messages"
)

// Worker напоминает операторам о заявках, зависших в pending.
// Запускается по cron-расписанию из конфига.
type Worker struct {
	purchases  purchaseService
	users      userService
	notifier   notifier
	schedule   string
	pendingAge time.Duration
	logger     *slog.Logger
	cron       *cron.Cron
}

func NewWorker(
	purchaseSvc purchaseService,
	userSvc userService,
	notifier notifier,
	schedule string,
	pendingAge time.Duration,
	logger *slog.Logger,
) *Worker {
	return &Worker{
		purchases:  purchaseSvc,
		users:      userSvc,
		notifier:   notifier,
		schedule:   schedule,
		pendingAge: pendingAge,
		logger:     logger,
		cron:       cron.New(),
	}
}

func (w *Worker) Name() string {
	return "pending-reminder"
}

func (w *Worker) Start() error {
	if _, err := w.cron.AddFunc(w.schedule, w.run); err != nil {
		return err
	}
	w.cron.Start()
	return nil
}

func (w *Worker) Stop() {
	<-w.cron.Stop().Done()
}

func (w *Worker) run() {
	ctx := context.Background()

	cutoff := time.Now().Add(-w.pendingAge)
	stale, err := w.purchases.ListStalePending(ctx, purchases.ListCriteria{
		CreatedBefore: &cutoff,
	})
	if err != nil {
		w.logger.Error("не удалось получить зависшие заявки", slog.Any("error", err))
		return
	}
	if len(stale) == 0 {
		return
	}

	ids := make([]int64, 0, len(stale))
	for _, p := range stale {
		ids = append(ids, p.ID)
	}

	operators, err := w.users.ListOperators(ctx)
	if err != nil {
		w.logger.Error("не удалось получить список операторов", slog.Any("error", err))
		return
	}

	text := messages.FormatPendingReminder(len(stale), ids)
	for _, op := range operators {
		if err := w.notifier.SendMessage(op.TelegramID, text); err != nil {
			w.logger.Warn("напоминание не доставлено",
				slog.Int64("operator_id", op.TelegramID),
				slog.Any("error", err))
		}
	}

	w.logger.Info("операторам отправлено напоминание",
		slog.Int("stale_count", len(stale)),
		slog.Int("operator_count", len(operators)))
}
