package purchases

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Purchase — заявка на покупку подписки.
// Статус монотонный: покинув pending, назад не возвращается.
type Purchase struct {
	ID            int64
	Username      string
	TelegramID    int64 // chat id покупателя для уведомлений
	Service       string
	Plan          string
	Duration      string
	Price         string
	Country       string
	PaymentMethod string
	Screenshot    string // base64, как хранил исходный бэкенд

	Status Status

	// Заполняются при одобрении
	AccountEmail    *string
	AccountPassword *string
	ApprovedBy      *string

	// Заполняются при отклонении
	RejectionReason *string
	RejectedBy      *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Критерии для получения заявки
type GetCriteria struct {
	ID *int64
	// Если задан, запись должна быть в этом статусе —
	// так совершается атомарный переход pending -> approved/rejected
	Status *Status
}

// Критерии для списка заявок
type ListCriteria struct {
	Username *string
	Status   *Status
	// Только заявки созданные раньше этого момента
	CreatedBefore *time.Time
}

// Параметры для обновления заявки
type UpdateParams struct {
	Status          *Status
	AccountEmail    *string
	AccountPassword *string
	ApprovedBy      *string
	RejectionReason *string
	RejectedBy      *string
}
