package api

import (
	"encoding/json"
	"net/http"
	"time"

	"jembox-bot/internal/stories/purchases"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// purchaseJSON — представление заявки в ответах API.
// Выданные доступы наружу не отдаются.
type purchaseJSON struct {
	ID              int64     `json:"id"`
	Username        string    `json:"username"`
	Service         string    `json:"service"`
	Plan            string    `json:"plan"`
	Duration        string    `json:"duration"`
	Price           string    `json:"price"`
	Country         string    `json:"country"`
	PaymentMethod   string    `json:"paymentMethod"`
	Status          string    `json:"status"`
	RejectionReason *string   `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toPurchaseJSON(p *purchases.Purchase) purchaseJSON {
	return purchaseJSON{
		ID:              p.ID,
		Username:        p.Username,
		Service:         p.Service,
		Plan:            p.Plan,
		Duration:        p.Duration,
		Price:           p.Price,
		Country:         p.Country,
		PaymentMethod:   p.PaymentMethod,
		Status:          string(p.Status),
		RejectionReason: p.RejectionReason,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toPurchaseListJSON(items []*purchases.Purchase) []purchaseJSON {
	result := make([]purchaseJSON, 0, len(items))
	for _, p := range items {
		result = append(result, toPurchaseJSON(p))
	}
	return result
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
