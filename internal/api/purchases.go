package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"jembox-bot/internal/stories/purchases"
)

type submitPurchaseResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	PurchaseID int64  `json:"purchaseId"`
}

type purchaseListResponse struct {
	Success   bool           `json:"success"`
	Purchases []purchaseJSON `json:"purchases"`
}

type purchaseResponse struct {
	Success  bool         `json:"success"`
	Purchase purchaseJSON `json:"purchase"`
}

type approveRequest struct {
	PurchaseID      int64  `json:"purchaseId"`
	AccountEmail    string `json:"accountEmail"`
	AccountPassword string `json:"accountPassword"`
	ApprovedBy      string `json:"approvedBy"`
}

type rejectRequest struct {
	PurchaseID int64  `json:"purchaseId"`
	Reason     string `json:"reason"`
	RejectedBy string `json:"rejectedBy"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"services": s.catalog.Services(),
	})
}

func (s *Server) handleSubmitPurchase(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.maxScreenshotBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Некорректная форма")
		return
	}

	file, _, err := r.FormFile("screenshot")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Не получен скриншот оплаты")
		return
	}
	defer file.Close()

	// Читаем на байт больше лимита: урезанный скриншот хуже отказа
	screenshot, err := io.ReadAll(io.LimitReader(file, s.maxScreenshotBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Не удалось прочитать скриншот")
		return
	}
	if int64(len(screenshot)) > s.maxScreenshotBytes {
		writeError(w, http.StatusBadRequest, "Скриншот слишком большой")
		return
	}

	username := r.FormValue("username")
	service := r.FormValue("service")
	plan := r.FormValue("plan")
	if username == "" || service == "" || plan == "" {
		writeError(w, http.StatusBadRequest, "Не заполнены обязательные поля")
		return
	}

	if !s.catalog.HasPlan(service, plan) {
		writeError(w, http.StatusBadRequest, "Неизвестный сервис или план")
		return
	}

	user, err := s.users.GetByUsername(r.Context(), username)
	if err != nil {
		s.logger.Error("ошибка поиска пользователя", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "Не удалось обработать покупку")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "Пользователь не найден")
		return
	}

	purchase, err := s.purchases.Submit(r.Context(), purchases.SubmitParams{
		Username:      user.Username,
		TelegramID:    user.TelegramID,
		Service:       service,
		Plan:          plan,
		Duration:      r.FormValue("duration"),
		Price:         r.FormValue("price"),
		Country:       r.FormValue("country"),
		PaymentMethod: r.FormValue("paymentMethod"),
		Screenshot:    screenshot,
	})
	if err != nil {
		s.logger.Error("ошибка сохранения покупки", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "Не удалось сохранить покупку")
		return
	}

	writeJSON(w, http.StatusOK, submitPurchaseResponse{
		Success:    true,
		Message:    "Покупка отправлена на проверку",
		PurchaseID: purchase.ID,
	})
}

func (s *Server) handleListUserPurchases(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	items, err := s.purchases.ListByUsername(r.Context(), username)
	if err != nil {
		s.logger.Error("ошибка получения покупок", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "Не удалось получить покупки")
		return
	}

	writeJSON(w, http.StatusOK, purchaseListResponse{Success: true, Purchases: toPurchaseListJSON(items)})
}

func (s *Server) handleListAllPurchases(w http.ResponseWriter, r *http.Request) {
	items, err := s.purchases.ListAll(r.Context())
	if err != nil {
		s.logger.Error("ошибка получения покупок", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "Не удалось получить покупки")
		return
	}

	writeJSON(w, http.StatusOK, purchaseListResponse{Success: true, Purchases: toPurchaseListJSON(items)})
}

func (s *Server) handleApprovePurchase(w http.ResponseWriter, r *http.Request) {
	var req approveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Некорректный запрос")
		return
	}
	if req.PurchaseID == 0 || req.AccountEmail == "" || req.AccountPassword == "" {
		writeError(w, http.StatusBadRequest, "purchaseId, accountEmail и accountPassword обязательны")
		return
	}
	if req.ApprovedBy == "" {
		req.ApprovedBy = "api"
	}

	purchase, err := s.purchases.Approve(r.Context(), req.PurchaseID, req.AccountEmail, req.AccountPassword, req.ApprovedBy)
	if err != nil {
		s.writeTransitionError(w, req.PurchaseID, err, "Не удалось одобрить покупку")
		return
	}

	writeJSON(w, http.StatusOK, purchaseResponse{Success: true, Purchase: toPurchaseJSON(purchase)})
}

func (s *Server) handleRejectPurchase(w http.ResponseWriter, r *http.Request) {
	var req rejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Некорректный запрос")
		return
	}
	if req.PurchaseID == 0 || req.Reason == "" {
		writeError(w, http.StatusBadRequest, "purchaseId и reason обязательны")
		return
	}
	if req.RejectedBy == "" {
		req.RejectedBy = "api"
	}

	purchase, err := s.purchases.Reject(r.Context(), req.PurchaseID, req.Reason, req.RejectedBy)
	if err != nil {
		s.writeTransitionError(w, req.PurchaseID, err, "Не удалось отклонить покупку")
		return
	}

	writeJSON(w, http.StatusOK, purchaseResponse{Success: true, Purchase: toPurchaseJSON(purchase)})
}

func (s *Server) handleCancelPurchase(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Некорректный id")
		return
	}

	if _, err := s.purchases.CancelPending(r.Context(), id); err != nil {
		if _, ok := purchases.AsAlreadyProcessed(err); ok {
			writeError(w, http.StatusBadRequest, "Отменить можно только необработанную покупку")
			return
		}
		if errors.Is(err, purchases.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Покупка не найдена")
			return
		}
		s.logger.Error("ошибка отмены покупки", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "Не удалось отменить покупку")
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Покупка отменена"})
}

// writeTransitionError переводит ошибки перехода статуса в HTTP-коды:
// гонка с ботом или повторный вызов дают 409, отсутствие заявки 404.
func (s *Server) writeTransitionError(w http.ResponseWriter, purchaseID int64, err error, fallback string) {
	if processed, ok := purchases.AsAlreadyProcessed(err); ok {
		writeError(w, http.StatusConflict, "Покупка уже обработана: "+string(processed.Status))
		return
	}
	if errors.Is(err, purchases.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Покупка не найдена")
		return
	}
	s.logger.Error("ошибка обработки покупки",
		slog.Int64("purchase_id", purchaseID), slog.Any("error", err))
	writeError(w, http.StatusInternalServerError, fallback)
}
