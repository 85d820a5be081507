package flows

// ReviewKind — вид начатого оператором действия
type ReviewKind string

const (
	KindApproval  ReviewKind = "approval"
	KindRejection ReviewKind = "rejection"
)

// PurchaseSnapshot — копия полей заявки на момент команды оператора.
// Сама заявка не трогается до завершения диалога.
type PurchaseSnapshot struct {
	Service   string
	Plan      string
	Duration  string
	Price     string
	Username  string
	Country   string
	BuyerChat int64
}

// ReviewFlowData — PendingAction: незавершенное действие оператора.
// Держится в памяти между командой и ответом, на диск не пишется.
type ReviewFlowData struct {
	Kind         ReviewKind
	PurchaseID   int64
	OperatorName string
	Purchase     PurchaseSnapshot
}
