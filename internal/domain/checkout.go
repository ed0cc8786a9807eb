package domain

type CheckoutState int

const (
	CheckoutIdle CheckoutState = iota
	CheckoutPending
	CheckoutSuccess
	CheckoutFailure
)

func (s CheckoutState) String() string {
	switch s {
	case CheckoutIdle:
		return "IDLE"
	case CheckoutPending:
		return "PENDING"
	case CheckoutSuccess:
		return "SUCCESS"
	case CheckoutFailure:
		return "FAILURE"
	default:
		return "UNKNOWN"
	}
}

func (s CheckoutState) IsTerminal() bool {
	return s == CheckoutSuccess || s == CheckoutFailure
}

// Order is the body posted to the checkout endpoint.
type Order struct {
	Email string `json:"email"`
	Cart  []Item `json:"cart"`
}

// CheckoutTicket is the cart snapshot taken when a checkout attempt starts.
type CheckoutTicket struct {
	Attempt uint64
	Entries []Item
}
