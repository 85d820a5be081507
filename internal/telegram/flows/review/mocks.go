package review

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"jembox-bot/internal/stories/purchases"
	"jembox-bot/internal/stories/users"
	"jembox-bot/internal/telegram/states"
)

// MockBotApi - мок Telegram Bot API
type MockBotApi struct {
	SentMessages []tgbotapi.Chattable
	SendErr      error
}

func (m *MockBotApi) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if m.SendErr != nil {
		return tgbotapi.Message{}, m.SendErr
	}
	m.SentMessages = append(m.SentMessages, c)
	return tgbotapi.Message{MessageID: len(m.SentMessages)}, nil
}

// LastText возвращает текст последнего отправленного сообщения
func (m *MockBotApi) LastText() string {
	if len(m.SentMessages) == 0 {
		return ""
	}
	msg, ok := m.SentMessages[len(m.SentMessages)-1].(tgbotapi.MessageConfig)
	if !ok {
		return ""
	}
	return msg.Text
}

// TextsFor возвращает тексты сообщений, отправленных в заданный чат
func (m *MockBotApi) TextsFor(chatID int64) []string {
	var texts []string
	for _, c := range m.SentMessages {
		msg, ok := c.(tgbotapi.MessageConfig)
		if !ok {
			continue
		}
		if msg.ChatID == chatID {
			texts = append(texts, msg.Text)
		}
	}
	return texts
}

// MockUserService - мок сервиса пользователей
type MockUserService struct {
	Users map[int64]*users.User
	Err   error
}

func (m *MockUserService) GetByTelegramID(_ context.Context, telegramID int64) (*users.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Users[telegramID], nil
}

// MockPurchaseService - мок сервиса заявок.
// Хранит заявки в памяти и повторяет семантику переходов:
// одобрить или отклонить можно только pending-заявку.
type MockPurchaseService struct {
	Purchases map[int64]*purchases.Purchase
	Err       error
}

func NewMockPurchaseService(items ...*purchases.Purchase) *MockPurchaseService {
	m := &MockPurchaseService{Purchases: make(map[int64]*purchases.Purchase)}
	for _, p := range items {
		m.Purchases[p.ID] = p
	}
	return m
}

func (m *MockPurchaseService) GetByID(_ context.Context, id int64) (*purchases.Purchase, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.Purchases[id]
	if !ok {
		return nil, purchases.ErrNotFound
	}
	return p, nil
}

func (m *MockPurchaseService) Approve(_ context.Context, id int64, accountEmail, accountPassword, approvedBy string) (*purchases.Purchase, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.Purchases[id]
	if !ok {
		return nil, purchases.ErrNotFound
	}
	if p.Status != purchases.StatusPending {
		return nil, &purchases.AlreadyProcessedError{Status: p.Status}
	}

	p.Status = purchases.StatusApproved
	p.AccountEmail = &accountEmail
	p.AccountPassword = &accountPassword
	p.ApprovedBy = &approvedBy
	p.UpdatedAt = time.Now()
	return p, nil
}

func (m *MockPurchaseService) Reject(_ context.Context, id int64, reason, rejectedBy string) (*purchases.Purchase, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.Purchases[id]
	if !ok {
		return nil, purchases.ErrNotFound
	}
	if p.Status != purchases.StatusPending {
		return nil, &purchases.AlreadyProcessedError{Status: p.Status}
	}

	p.Status = purchases.StatusRejected
	p.RejectionReason = &reason
	p.RejectedBy = &rejectedBy
	p.UpdatedAt = time.Now()
	return p, nil
}

var _ botApi = (*MockBotApi)(nil)
var _ userService = (*MockUserService)(nil)
var _ purchaseService = (*MockPurchaseService)(nil)
var _ stateManager = (*states.Manager)(nil)
