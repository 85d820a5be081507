package states

import (
	"fmt"
	"sync"

	"jembox-bot/internal/telegram/flows"
)

// Manager управляет состояниями операторов в памяти.
// На оператора приходится не больше одной записи; новая команда
// перезаписывает старую. При рестарте процесса все теряется.
type Manager struct {
	mu         sync.RWMutex
	userStates map[int64]State
	userData   map[int64]any
}

// NewManager создает новый менеджер состояний
func NewManager() *Manager {
	return &Manager{
		userStates: make(map[int64]State),
		userData:   make(map[int64]any),
	}
}

// GetState получает текущее состояние оператора
func (m *Manager) GetState(telegramID int64) State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, exists := m.userStates[telegramID]
	if !exists {
		return StateNone
	}
	return state
}

// SetState устанавливает состояние оператора
func (m *Manager) SetState(telegramID int64, state State, data any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.userStates[telegramID] = state
	if data != nil {
		m.userData[telegramID] = data
	}
}

// Clear очищает состояние оператора
func (m *Manager) Clear(telegramID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.userStates, telegramID)
	delete(m.userData, telegramID)
}

// GetReviewData получает данные незавершенного действия оператора
func (m *Manager) GetReviewData(telegramID int64) (*flows.ReviewFlowData, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, exists := m.userData[telegramID]
	if !exists {
		return nil, fmt.Errorf("no data for chat %d", telegramID)
	}

	flowData, ok := data.(*flows.ReviewFlowData)
	if !ok {
		return nil, fmt.Errorf("invalid data type for chat %d", telegramID)
	}

	return flowData, nil
}
