package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PaymentMethod is the closed set of payment methods a settlement accepts.
// Methods without a configured fee channel (Dinheiro, Crediário, Outros)
// resolve to a 0% rate.
type PaymentMethod int

const (
	PaymentMethodPix PaymentMethod = iota
	PaymentMethodDebito
	PaymentMethodCredito
	PaymentMethodDinheiro
	PaymentMethodCrediario
	PaymentMethodOutros
)

var paymentMethodLabels = [...]string{
	"Pix",
	"Débito",
	"Crédito",
	"Dinheiro",
	"Crediário",
	"Outros",
}

func (m PaymentMethod) String() string {
	if m < 0 || int(m) >= len(paymentMethodLabels) {
		return "Outros"
	}
	return paymentMethodLabels[m]
}

// IsValid reports whether the value maps to a known method
func (m PaymentMethod) IsValid() bool {
	return m >= PaymentMethodPix && m <= PaymentMethodOutros
}

// ParsePaymentMethod maps a label to its PaymentMethod
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for i, label := range paymentMethodLabels {
		if label == s {
			return PaymentMethod(i), nil
		}
	}
	return PaymentMethodOutros, fmt.Errorf("unknown payment method: %q", s)
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMethod(i)
		return nil
	}
	parsed, err := ParsePaymentMethod(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodOutros
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}
