package states

type State string

const (
	StateNone State = "none"
)

// apr -> operator approve purchase
// rej -> operator reject purchase

// operator review states
const (
	ReviewWaitCredentials State = "apr_wt_credentials"
	ReviewWaitReason      State = "rej_wt_reason"
)

// IsReview сообщает относится ли состояние к обработке заявки
func (s State) IsReview() bool {
	return s == ReviewWaitCredentials || s == ReviewWaitReason
}
