package model

type PaymentMethod uint8

const (
	PaymentMethodUnspecified PaymentMethod = iota
	PaymentMethodCash
	PaymentMethodCard
	PaymentMethodUPI
)

var paymentMethodNames = []string{"", "Cash", "Card", "UPI"}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	return parseEnum[PaymentMethod](paymentMethodNames, "payment method", s)
}

func (m PaymentMethod) String() string {
	return enumName(paymentMethodNames, "PaymentMethod", m)
}

func (m PaymentMethod) Validate() error {
	return validateEnum(paymentMethodNames, "payment method", m)
}

func (m PaymentMethod) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *PaymentMethod) UnmarshalText(text []byte) error {
	v, err := ParsePaymentMethod(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
