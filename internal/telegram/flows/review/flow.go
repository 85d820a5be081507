package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"jembox-bot/internal/stories/purchases"
	"jembox-bot/internal/telegram/flows"
	"jembox-bot/internal/telegram/messages"
	"jembox-bot/internal/telegram/states"
)

// Handler ведет диалог обработки заявки: команда оператора,
// ожидание данных или причины, завершение.
type Handler struct {
	bot             botApi
	stateManager    stateManager
	userService     userService
	purchaseService purchaseService
	logger          *slog.Logger
}

func NewHandler(
	bot botApi,
	stateManager stateManager,
	userService userService,
	purchaseService purchaseService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		bot:             bot,
		stateManager:    stateManager,
		userService:     userService,
		purchaseService: purchaseService,
		logger:          logger,
	}
}

// StartApproval начинает одобрение заявки: /approve_ID
func (h *Handler) StartApproval(ctx context.Context, telegramID, chatID, purchaseID int64) error {
	return h.begin(ctx, telegramID, chatID, purchaseID, flows.KindApproval)
}

// StartRejection начинает отклонение заявки: /reject_ID
func (h *Handler) StartRejection(ctx context.Context, telegramID, chatID, purchaseID int64) error {
	return h.begin(ctx, telegramID, chatID, purchaseID, flows.KindRejection)
}

// begin проверяет права и заявку, запоминает начатое действие
// и просит оператора прислать данные или причину.
// Права проверяются только здесь: уже начатый диалог
// смена роли не прерывает.
func (h *Handler) begin(ctx context.Context, telegramID, chatID, purchaseID int64, kind flows.ReviewKind) error {
	user, err := h.userService.GetByTelegramID(ctx, telegramID)
	if err != nil {
		h.logger.Error("не удалось проверить права оператора",
			slog.Int64("telegram_id", telegramID), slog.Any("error", err))
		return h.reply(chatID, messages.ErrorCheckingPermission)
	}
	if user == nil || !user.Role.IsOperator() {
		if kind == flows.KindApproval {
			return h.reply(chatID, messages.NoPermissionApprove)
		}
		return h.reply(chatID, messages.NoPermissionReject)
	}

	purchase, err := h.purchaseService.GetByID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, purchases.ErrNotFound) {
			return h.reply(chatID, messages.FormatPurchaseNotFound(purchaseID))
		}
		h.logger.Error("не удалось получить заявку",
			slog.Int64("purchase_id", purchaseID), slog.Any("error", err))
		return h.reply(chatID, messages.Error)
	}
	if purchase.Status != purchases.StatusPending {
		return h.reply(chatID, messages.FormatAlreadyProcessed(purchase.Status))
	}

	// Новая команда перезаписывает незавершенное действие оператора
	flowData := &flows.ReviewFlowData{
		Kind:         kind,
		PurchaseID:   purchase.ID,
		OperatorName: user.Username,
		Purchase: flows.PurchaseSnapshot{
			Service:   purchase.Service,
			Plan:      purchase.Plan,
			Duration:  purchase.Duration,
			Price:     purchase.Price,
			Username:  purchase.Username,
			Country:   purchase.Country,
			BuyerChat: purchase.TelegramID,
		},
	}

	if kind == flows.KindApproval {
		h.stateManager.SetState(telegramID, states.ReviewWaitCredentials, flowData)
		return h.reply(chatID, messages.FormatApprovalPrompt(
			purchase.ID, purchase.Service, purchase.Plan, purchase.Duration,
			purchase.Price, purchase.Username, purchase.Country))
	}

	h.stateManager.SetState(telegramID, states.ReviewWaitReason, flowData)
	return h.reply(chatID, messages.FormatRejectionPrompt(
		purchase.ID, purchase.Service, purchase.Plan, purchase.Duration,
		purchase.Price, purchase.Username))
}

// HandleText обрабатывает текстовый ответ оператора в рамках начатого действия.
// При ошибке валидации действие сохраняется и ввод запрашивается повторно.
func (h *Handler) HandleText(ctx context.Context, telegramID, chatID int64, text string) error {
	state := h.stateManager.GetState(telegramID)
	if !state.IsReview() {
		// Текст без начатого действия молча игнорируем
		return nil
	}

	data, err := h.stateManager.GetReviewData(telegramID)
	if err != nil {
		h.logger.Error(messages.FlowErrorGettingData,
			slog.Int64("telegram_id", telegramID), slog.Any("error", err))
		h.stateManager.Clear(telegramID)
		return h.reply(chatID, messages.Error)
	}

	switch state {
	case states.ReviewWaitCredentials:
		return h.completeApproval(ctx, telegramID, chatID, data, text)
	case states.ReviewWaitReason:
		return h.completeRejection(ctx, telegramID, chatID, data, text)
	}

	return nil
}

func (h *Handler) completeApproval(ctx context.Context, telegramID, chatID int64, data *flows.ReviewFlowData, text string) error {
	email, password, errMsg := parseCredentials(text)
	if errMsg != "" {
		return h.reply(chatID, errMsg)
	}

	updated, err := h.purchaseService.Approve(ctx, data.PurchaseID, email, password, data.OperatorName)
	if err != nil {
		return h.completionFailed(telegramID, chatID, data.PurchaseID, err, messages.ErrorApproving)
	}

	// Дальше действие завершено при любом исходе уведомлений
	defer h.stateManager.Clear(telegramID)

	h.notifyBuyer(data.Purchase.BuyerChat, data.PurchaseID, messages.FormatBuyerApproved(
		updated.Service, updated.Plan, updated.Duration, email, password))

	return h.reply(chatID, messages.FormatApprovalDone(updated.ID, updated.Username, email, password))
}

func (h *Handler) completeRejection(ctx context.Context, telegramID, chatID int64, data *flows.ReviewFlowData, text string) error {
	reason, errMsg := parseReason(text)
	if errMsg != "" {
		return h.reply(chatID, errMsg)
	}

	updated, err := h.purchaseService.Reject(ctx, data.PurchaseID, reason, data.OperatorName)
	if err != nil {
		return h.completionFailed(telegramID, chatID, data.PurchaseID, err, messages.ErrorRejecting)
	}

	defer h.stateManager.Clear(telegramID)

	h.notifyBuyer(data.Purchase.BuyerChat, data.PurchaseID, messages.FormatBuyerRejected(
		updated.Service, updated.Plan, reason))

	return h.reply(chatID, messages.FormatRejectionDone(updated.ID, updated.Username, reason))
}

// completionFailed разбирает ошибку завершения. Гонка (заявка уже обработана
// или удалена) завершает действие, временная ошибка хранилища оставляет его —
// оператор может прислать ответ еще раз.
func (h *Handler) completionFailed(telegramID, chatID, purchaseID int64, err error, storeErrMsg string) error {
	if processed, ok := purchases.AsAlreadyProcessed(err); ok {
		h.stateManager.Clear(telegramID)
		return h.reply(chatID, messages.FormatAlreadyProcessed(processed.Status))
	}
	if errors.Is(err, purchases.ErrNotFound) {
		h.stateManager.Clear(telegramID)
		return h.reply(chatID, messages.FormatPurchaseNotFound(purchaseID))
	}

	h.logger.Error("не удалось завершить обработку заявки",
		slog.Int64("purchase_id", purchaseID), slog.Any("error", err))
	return h.reply(chatID, storeErrMsg)
}

// Cancel отменяет незавершенное действие оператора. Идемпотентна.
func (h *Handler) Cancel(_ context.Context, telegramID, chatID int64) error {
	if !h.stateManager.GetState(telegramID).IsReview() {
		return h.reply(chatID, messages.CancelNothing)
	}

	h.stateManager.Clear(telegramID)
	return h.reply(chatID, messages.CancelDone)
}

// notifyBuyer уведомляет покупателя. Неудача только логируется:
// завершение обработки от доставки уведомления не зависит.
func (h *Handler) notifyBuyer(buyerChat, purchaseID int64, text string) {
	if _, err := h.bot.Send(tgbotapi.NewMessage(buyerChat, text)); err != nil {
		h.logger.Error("не удалось уведомить покупателя",
			slog.Int64("purchase_id", purchaseID),
			slog.Int64("buyer_chat", buyerChat),
			slog.Any("error", err))
	}
}

func (h *Handler) reply(chatID int64, text string) error {
	if _, err := h.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("send message to chat %d: %w", chatID, err)
	}
	return nil
}
