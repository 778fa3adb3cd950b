package model

type OrderStatus uint8

const (
	OrderStatusUnspecified OrderStatus = iota
	OrderStatusPending
	OrderStatusCompleted
	OrderStatusCancelled
)

var orderStatusNames = []string{"", "Pending", "Completed", "Cancelled"}

func ParseOrderStatus(s string) (OrderStatus, error) {
	return parseEnum[OrderStatus](orderStatusNames, "order status", s)
}

// CanTransitionTo reports whether an order may move from s to next.
// Cancelled is terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusCompleted || next == OrderStatusCancelled
	case OrderStatusCompleted:
		return next == OrderStatusCancelled
	default:
		return false
	}
}

func (s OrderStatus) String() string {
	return enumName(orderStatusNames, "OrderStatus", s)
}

func (s OrderStatus) Validate() error {
	return validateEnum(orderStatusNames, "order status", s)
}

func (s OrderStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *OrderStatus) UnmarshalText(text []byte) error {
	v, err := ParseOrderStatus(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
