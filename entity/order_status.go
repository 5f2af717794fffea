package entity

// OrderStatus values are part of the wire contract; clients and the admin UI
// match on these exact strings.
type OrderStatus string

const (
	StatusPending        OrderStatus = "PENDING"
	StatusAccepted       OrderStatus = "ACCEPTED"
	StatusRejected       OrderStatus = "REJECTED"
	StatusPreparing      OrderStatus = "PREPARING"
	StatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	StatusDelivered      OrderStatus = "DELIVERED"
	StatusCancelled      OrderStatus = "CANCELLED"
)

// allowedTransitions is the full lifecycle graph. REJECTED, DELIVERED and
// CANCELLED are terminal.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:        {StatusAccepted, StatusRejected, StatusCancelled},
	StatusAccepted:       {StatusPreparing},
	StatusPreparing:      {StatusOutForDelivery},
	StatusOutForDelivery: {StatusDelivered},
	StatusRejected:       {},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

func (s OrderStatus) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

func (s OrderStatus) Terminal() bool {
	next, ok := allowedTransitions[s]
	return ok && len(next) == 0
}

// NextStates returns the legal targets from s. The slice is a copy; callers
// may not mutate the table through it.
func (s OrderStatus) NextStates() []OrderStatus {
	next := allowedTransitions[s]
	out := make([]OrderStatus, len(next))
	copy(out, next)
	return out
}

func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, n := range allowedTransitions[s] {
		if n == target {
			return true
		}
	}
	return false
}
