package states

type StateManager interface {
	GetState(telegramID int64) State
	SetState(telegramID int64, state State, data any)
	Clear(telegramID int64)
}
