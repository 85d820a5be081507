package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jembox-bot/internal/catalog"
	"jembox-bot/internal/stories/purchases"
	"jembox-bot/internal/stories/users"
)

type stubUserService struct {
	byUsername map[string]*users.User
}

func (s *stubUserService) Register(_ context.Context, params users.RegisterParams) (*users.User, error) {
	username := strings.ToLower(params.Username)
	if _, exists := s.byUsername[username]; exists {
		return nil, users.ErrAlreadyExists
	}
	user := &users.User{
		ID:           int64(len(s.byUsername) + 1),
		Username:     username,
		Email:        strings.ToLower(params.Email),
		PasswordHash: users.HashPassword(params.Password),
		TelegramID:   params.TelegramID,
		Role:         users.RoleUser,
	}
	s.byUsername[username] = user
	return user, nil
}

func (s *stubUserService) Authenticate(_ context.Context, username, password string, telegramID int64) (*users.User, error) {
	user := s.byUsername[strings.ToLower(username)]
	if user == nil {
		return nil, nil
	}
	if user.PasswordHash != users.HashPassword(password) || user.TelegramID != telegramID {
		return nil, users.ErrInvalidCredentials
	}
	return user, nil
}

func (s *stubUserService) GetByUsername(_ context.Context, username string) (*users.User, error) {
	return s.byUsername[strings.ToLower(username)], nil
}

type stubPurchaseService struct {
	items  map[int64]*purchases.Purchase
	nextID int64
}

func (s *stubPurchaseService) Submit(_ context.Context, params purchases.SubmitParams) (*purchases.Purchase, error) {
	s.nextID++
	p := &purchases.Purchase{
		ID:         s.nextID,
		Username:   params.Username,
		TelegramID: params.TelegramID,
		Service:    params.Service,
		Plan:       params.Plan,
		Status:     purchases.StatusPending,
	}
	s.items[p.ID] = p
	return p, nil
}

func (s *stubPurchaseService) ListByUsername(_ context.Context, username string) ([]*purchases.Purchase, error) {
	var result []*purchases.Purchase
	for _, p := range s.items {
		if p.Username == username {
			result = append(result, p)
		}
	}
	return result, nil
}

func (s *stubPurchaseService) ListAll(_ context.Context) ([]*purchases.Purchase, error) {
	var result []*purchases.Purchase
	for _, p := range s.items {
		result = append(result, p)
	}
	return result, nil
}

func (s *stubPurchaseService) Approve(_ context.Context, id int64, email, password, approvedBy string) (*purchases.Purchase, error) {
	p, ok := s.items[id]
	if !ok {
		return nil, purchases.ErrNotFound
	}
	if p.Status != purchases.StatusPending {
		return nil, &purchases.AlreadyProcessedError{Status: p.Status}
	}
	p.Status = purchases.StatusApproved
	p.AccountEmail = &email
	p.AccountPassword = &password
	p.ApprovedBy = &approvedBy
	return p, nil
}

func (s *stubPurchaseService) Reject(_ context.Context, id int64, reason, rejectedBy string) (*purchases.Purchase, error) {
	p, ok := s.items[id]
	if !ok {
		return nil, purchases.ErrNotFound
	}
	if p.Status != purchases.StatusPending {
		return nil, &purchases.AlreadyProcessedError{Status: p.Status}
	}
	p.Status = purchases.StatusRejected
	p.RejectionReason = &reason
	p.RejectedBy = &rejectedBy
	return p, nil
}

func (s *stubPurchaseService) CancelPending(_ context.Context, id int64) (*purchases.Purchase, error) {
	p, ok := s.items[id]
	if !ok {
		return nil, purchases.ErrNotFound
	}
	if p.Status != purchases.StatusPending {
		return nil, &purchases.AlreadyProcessedError{Status: p.Status}
	}
	delete(s.items, id)
	return p, nil
}

type stubCatalog struct{}

func (stubCatalog) HasPlan(service, plan string) bool {
	return service == "Netflix" && plan == "Премиум"
}

func (stubCatalog) Services() []catalog.Service {
	return []catalog.Service{{Name: "Netflix"}}
}

func newTestServer(t *testing.T) (*Server, *stubUserService, *stubPurchaseService) {
	t.Helper()

	userSvc := &stubUserService{byUsername: make(map[string]*users.User)}
	purchaseSvc := &stubPurchaseService{items: make(map[int64]*purchases.Purchase)}

	// без channelChecker проверка подписки пропускается
	server := NewServer(userSvc, purchaseSvc, stubCatalog{}, nil, 0, 5<<20,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	return server, userSvc, purchaseSvc
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name       string
		body       map[string]string
		wantStatus int
	}{
		{
			name: "success",
			body: map[string]string{
				"username": "Buyer", "email": "buyer@mail.ru",
				"password": "secret1", "confirmPassword": "secret1",
				"telegramId": "555",
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "missing email",
			body: map[string]string{
				"username": "buyer", "password": "secret1",
				"confirmPassword": "secret1", "telegramId": "555",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "passwords mismatch",
			body: map[string]string{
				"username": "buyer", "email": "buyer@mail.ru",
				"password": "secret1", "confirmPassword": "other",
				"telegramId": "555",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "telegram id not a number",
			body: map[string]string{
				"username": "buyer", "email": "buyer@mail.ru",
				"password": "secret1", "confirmPassword": "secret1",
				"telegramId": "abc",
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _, _ := newTestServer(t)
			rec := doJSON(t, server.Handler(), http.MethodPost, "/api/register", tt.body)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d, body %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestRegisterConflict(t *testing.T) {
	server, _, _ := newTestServer(t)
	body := map[string]string{
		"username": "buyer", "email": "buyer@mail.ru",
		"password": "secret1", "confirmPassword": "secret1",
		"telegramId": "555",
	}

	if rec := doJSON(t, server.Handler(), http.MethodPost, "/api/register", body); rec.Code != http.StatusOK {
		t.Fatalf("first register = %d", rec.Code)
	}
	if rec := doJSON(t, server.Handler(), http.MethodPost, "/api/register", body); rec.Code != http.StatusConflict {
		t.Errorf("duplicate register = %d, want 409", rec.Code)
	}
}

func TestLogin(t *testing.T) {
	server, userSvc, _ := newTestServer(t)
	if _, err := userSvc.Register(context.Background(), users.RegisterParams{
		Username: "buyer", Email: "buyer@mail.ru", Password: "secret1", TelegramID: 555,
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	tests := []struct {
		name       string
		body       map[string]string
		wantStatus int
	}{
		{
			name:       "success",
			body:       map[string]string{"username": "buyer", "password": "secret1", "telegramId": "555"},
			wantStatus: http.StatusOK,
		},
		{
			// логин регистронезависимый
			name:       "uppercase username",
			body:       map[string]string{"username": "BUYER", "password": "secret1", "telegramId": "555"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong password",
			body:       map[string]string{"username": "buyer", "password": "wrong", "telegramId": "555"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong telegram id",
			body:       map[string]string{"username": "buyer", "password": "secret1", "telegramId": "777"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unknown user",
			body:       map[string]string{"username": "ghost", "password": "secret1", "telegramId": "555"},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, server.Handler(), http.MethodPost, "/api/login", tt.body)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d, body %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func submitForm(t *testing.T, fields map[string]string, withScreenshot bool) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	if withScreenshot {
		part, err := writer.CreateFormFile("screenshot", "screenshot.jpg")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte("fake-jpeg-bytes")); err != nil {
			t.Fatalf("write screenshot: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestSubmitPurchase(t *testing.T) {
	fields := map[string]string{
		"username": "buyer", "service": "Netflix", "plan": "Премиум",
		"duration": "1 месяц", "price": "450 сом", "country": "Кыргызстан",
		"paymentMethod": "MBank",
	}

	tests := []struct {
		name           string
		fields         map[string]string
		withScreenshot bool
		seedUser       bool
		wantStatus     int
	}{
		{
			name:           "success",
			fields:         fields,
			withScreenshot: true,
			seedUser:       true,
			wantStatus:     http.StatusOK,
		},
		{
			name:           "no screenshot",
			fields:         fields,
			withScreenshot: false,
			seedUser:       true,
			wantStatus:     http.StatusBadRequest,
		},
		{
			name: "unknown plan",
			fields: map[string]string{
				"username": "buyer", "service": "Netflix", "plan": "Такого нет",
			},
			withScreenshot: true,
			seedUser:       true,
			wantStatus:     http.StatusBadRequest,
		},
		{
			name:           "unregistered user",
			fields:         fields,
			withScreenshot: true,
			seedUser:       false,
			wantStatus:     http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, userSvc, purchaseSvc := newTestServer(t)
			if tt.seedUser {
				if _, err := userSvc.Register(context.Background(), users.RegisterParams{
					Username: "buyer", Email: "buyer@mail.ru", Password: "secret1", TelegramID: 555,
				}); err != nil {
					t.Fatalf("seed user: %v", err)
				}
			}

			body, contentType := submitForm(t, tt.fields, tt.withScreenshot)
			req := httptest.NewRequest(http.MethodPost, "/api/purchase", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			server.Handler().ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus == http.StatusOK {
				var resp submitPurchaseResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("decode response: %v", err)
				}
				if purchaseSvc.items[resp.PurchaseID] == nil {
					t.Errorf("purchase %d not created", resp.PurchaseID)
				}
			}
		})
	}
}

func TestSubmitPurchaseScreenshotTooLarge(t *testing.T) {
	userSvc := &stubUserService{byUsername: make(map[string]*users.User)}
	purchaseSvc := &stubPurchaseService{items: make(map[int64]*purchases.Purchase)}
	server := NewServer(userSvc, purchaseSvc, stubCatalog{}, nil, 0, 64,
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	if _, err := userSvc.Register(context.Background(), users.RegisterParams{
		Username: "buyer", Email: "buyer@mail.ru", Password: "secret1", TelegramID: 555,
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range map[string]string{
		"username": "buyer", "service": "Netflix", "plan": "Премиум",
	} {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	part, err := writer.CreateFormFile("screenshot", "screenshot.jpg")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(bytes.Repeat([]byte("x"), 128)); err != nil {
		t.Fatalf("write screenshot: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/purchase", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	// Превышение лимита — отказ, а не молча обрезанный файл
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", rec.Code, rec.Body.String())
	}
	if len(purchaseSvc.items) != 0 {
		t.Errorf("oversized purchase was stored: %+v", purchaseSvc.items)
	}
}

func TestApproveTransitions(t *testing.T) {
	server, _, purchaseSvc := newTestServer(t)
	purchaseSvc.items[1] = &purchases.Purchase{ID: 1, Username: "buyer", Status: purchases.StatusPending}
	purchaseSvc.nextID = 1

	body := map[string]any{
		"purchaseId": 1, "accountEmail": "a@b.com", "accountPassword": "pass", "approvedBy": "admin",
	}

	if rec := doJSON(t, server.Handler(), http.MethodPost, "/api/purchase/approve", body); rec.Code != http.StatusOK {
		t.Fatalf("approve = %d, body %s", rec.Code, rec.Body.String())
	}
	// Повторное одобрение — конфликт, не перезапись
	if rec := doJSON(t, server.Handler(), http.MethodPost, "/api/purchase/approve", body); rec.Code != http.StatusConflict {
		t.Errorf("second approve = %d, want 409", rec.Code)
	}

	body["purchaseId"] = 99
	if rec := doJSON(t, server.Handler(), http.MethodPost, "/api/purchase/approve", body); rec.Code != http.StatusNotFound {
		t.Errorf("approve missing = %d, want 404", rec.Code)
	}
}

func TestCancelPurchase(t *testing.T) {
	server, _, purchaseSvc := newTestServer(t)
	purchaseSvc.items[1] = &purchases.Purchase{ID: 1, Username: "buyer", Status: purchases.StatusPending}
	purchaseSvc.items[2] = &purchases.Purchase{ID: 2, Username: "buyer", Status: purchases.StatusApproved}

	if rec := doJSON(t, server.Handler(), http.MethodDelete, "/api/purchase/1", nil); rec.Code != http.StatusOK {
		t.Errorf("cancel pending = %d, want 200", rec.Code)
	}
	if rec := doJSON(t, server.Handler(), http.MethodDelete, "/api/purchase/2", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("cancel approved = %d, want 400", rec.Code)
	}
	if rec := doJSON(t, server.Handler(), http.MethodDelete, "/api/purchase/99", nil); rec.Code != http.StatusNotFound {
		t.Errorf("cancel missing = %d, want 404", rec.Code)
	}
}
