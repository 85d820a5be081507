package purchases

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"jembox-bot/internal/metrics"
	"jembox-bot/internal/stories/users"
)

type operatorLister interface {
	ListOperators(ctx context.Context) ([]*users.User, error)
}

type notifier interface {
	SendMessage(chatID int64, text string) error
	SendPhoto(chatID int64, photo []byte, caption string) error
}

type Service struct {
	storage   Storage
	operators operatorLister
	notifier  notifier
	logger    *slog.Logger
}

func NewService(storage Storage, operators operatorLister, notifier notifier, logger *slog.Logger) *Service {
	return &Service{
		storage:   storage,
		operators: operators,
		notifier:  notifier,
		logger:    logger,
	}
}

type SubmitParams struct {
	Username      string
	TelegramID    int64
	Service       string
	Plan          string
	Duration      string
	Price         string
	Country       string
	PaymentMethod string
	Screenshot    []byte
}

// Submit создает pending-заявку и рассылает скриншот оплаты операторам.
// Рассылка best-effort: ошибка отправки не откатывает созданную заявку.
func (s *Service) Submit(ctx context.Context, params SubmitParams) (*Purchase, error) {
	purchase, err := s.storage.CreatePurchase(ctx, Purchase{
		Username:      params.Username,
		TelegramID:    params.TelegramID,
		Service:       params.Service,
		Plan:          params.Plan,
		Duration:      params.Duration,
		Price:         params.Price,
		Country:       params.Country,
		PaymentMethod: params.PaymentMethod,
		Screenshot:    encodeScreenshot(params.Screenshot),
		Status:        StatusPending,
	})
	if err != nil {
		return nil, fmt.Errorf("create purchase: %w", err)
	}

	metrics.PurchasesSubmitted.Inc()

	s.announceToOperators(ctx, purchase, params.Screenshot)

	return purchase, nil
}

// GetByID получает заявку, ErrNotFound если ее нет
func (s *Service) GetByID(ctx context.Context, id int64) (*Purchase, error) {
	purchase, err := s.storage.GetPurchase(ctx, GetCriteria{ID: &id})
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, ErrNotFound
	}
	return purchase, nil
}

// ListByUsername возвращает заявки покупателя, новые первыми
func (s *Service) ListByUsername(ctx context.Context, username string) ([]*Purchase, error) {
	return s.storage.ListPurchases(ctx, ListCriteria{Username: &username})
}

// ListAll возвращает все заявки, новые первыми
func (s *Service) ListAll(ctx context.Context) ([]*Purchase, error) {
	return s.storage.ListPurchases(ctx, ListCriteria{})
}

// ListStalePending возвращает pending-заявки, созданные раньше заданного момента
func (s *Service) ListStalePending(ctx context.Context, criteria ListCriteria) ([]*Purchase, error) {
	criteria.Status = lo.ToPtr(StatusPending)
	return s.storage.ListPurchases(ctx, criteria)
}

// Approve переводит заявку pending -> approved и сохраняет выданные доступы.
// Переход атомарный: UPDATE обусловлен текущим статусом pending,
// поэтому двойная обработка невозможна и через прямой API-обход.
func (s *Service) Approve(ctx context.Context, id int64, accountEmail, accountPassword, approvedBy string) (*Purchase, error) {
	updated, err := s.storage.UpdatePurchase(ctx,
		GetCriteria{
			ID:     &id,
			Status: lo.ToPtr(StatusPending),
		},
		UpdateParams{
			Status:          lo.ToPtr(StatusApproved),
			AccountEmail:    &accountEmail,
			AccountPassword: &accountPassword,
			ApprovedBy:      &approvedBy,
		})
	if err != nil {
		return nil, fmt.Errorf("update purchase: %w", err)
	}
	if updated == nil {
		return nil, s.transitionConflict(ctx, id)
	}

	metrics.PurchasesApproved.Inc()
	return updated, nil
}

// Reject переводит заявку pending -> rejected с причиной отказа
func (s *Service) Reject(ctx context.Context, id int64, reason, rejectedBy string) (*Purchase, error) {
	updated, err := s.storage.UpdatePurchase(ctx,
		GetCriteria{
			ID:     &id,
			Status: lo.ToPtr(StatusPending),
		},
		UpdateParams{
			Status:          lo.ToPtr(StatusRejected),
			RejectionReason: &reason,
			RejectedBy:      &rejectedBy,
		})
	if err != nil {
		return nil, fmt.Errorf("update purchase: %w", err)
	}
	if updated == nil {
		return nil, s.transitionConflict(ctx, id)
	}

	metrics.PurchasesRejected.Inc()
	return updated, nil
}

// CancelPending удаляет pending-заявку по инициативе покупателя
// и уведомляет операторов. Обработанные заявки удалять нельзя.
func (s *Service) CancelPending(ctx context.Context, id int64) (*Purchase, error) {
	purchase, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase.Status != StatusPending {
		return nil, &AlreadyProcessedError{Status: purchase.Status}
	}

	deleted, err := s.storage.DeletePurchase(ctx, GetCriteria{
		ID:     &id,
		Status: lo.ToPtr(StatusPending),
	})
	if err != nil {
		return nil, fmt.Errorf("delete purchase: %w", err)
	}
	if !deleted {
		return nil, s.transitionConflict(ctx, id)
	}

	s.announceCancellation(ctx, purchase)

	return purchase, nil
}

// transitionConflict выясняет почему условный UPDATE/DELETE не нашел запись
func (s *Service) transitionConflict(ctx context.Context, id int64) error {
	current, err := s.storage.GetPurchase(ctx, GetCriteria{ID: &id})
	if err != nil {
		return fmt.Errorf("get purchase after conflict: %w", err)
	}
	if current == nil {
		return ErrNotFound
	}
	return &AlreadyProcessedError{Status: current.Status}
}

func (s *Service) announceToOperators(ctx context.Context, purchase *Purchase, screenshot []byte) {
	operators, err := s.operators.ListOperators(ctx)
	if err != nil {
		s.logger.Error("не удалось получить список операторов",
			slog.Int64("purchase_id", purchase.ID),
			slog.Any("error", err))
		return
	}

	caption := formatAnnouncement(purchase)
	for _, op := range operators {
		if err := s.notifier.SendPhoto(op.TelegramID, screenshot, caption); err != nil {
			s.logger.Error("не удалось уведомить оператора",
				slog.Int64("purchase_id", purchase.ID),
				slog.Int64("operator_id", op.TelegramID),
				slog.Any("error", err))
		}
	}
}

func (s *Service) announceCancellation(ctx context.Context, purchase *Purchase) {
	operators, err := s.operators.ListOperators(ctx)
	if err != nil {
		s.logger.Error("не удалось получить список операторов",
			slog.Int64("purchase_id", purchase.ID),
			slog.Any("error", err))
		return
	}

	text := formatCancellation(purchase)
	for _, op := range operators {
		if err := s.notifier.SendMessage(op.TelegramID, text); err != nil {
			s.logger.Error("не удалось уведомить оператора об отмене",
				slog.Int64("purchase_id", purchase.ID),
				slog.Int64("operator_id", op.TelegramID),
				slog.Any("error", err))
		}
	}
}
