package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// SaleStatus represents the payment status of a sale
type SaleStatus int

const (
	SaleStatusPago SaleStatus = iota
	SaleStatusAReceber
	SaleStatusEncomenda
	SaleStatusEstornadoCredito
	SaleStatusEstornadoDinheiro
)

var saleStatusLabels = [...]string{
	"Pago",
	"A Receber",
	"Encomenda",
	"Estornado (Crédito)",
	"Estornado (Dinheiro)",
}

func (s SaleStatus) String() string {
	if s < 0 || int(s) >= len(saleStatusLabels) {
		return "Pago"
	}
	return saleStatusLabels[s]
}

// IsRefunded reports whether the sale has been reversed. Refunded sales are
// terminal: no status mutation is accepted afterwards.
func (s SaleStatus) IsRefunded() bool {
	return s == SaleStatusEstornadoCredito || s == SaleStatusEstornadoDinheiro
}

func (s SaleStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SaleStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = SaleStatus(i)
		return nil
	}
	for i, label := range saleStatusLabels {
		if label == str {
			*s = SaleStatus(i)
			return nil
		}
	}
	return fmt.Errorf("unknown sale status: %q", str)
}

func (s SaleStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *SaleStatus) Scan(value interface{}) error {
	if value == nil {
		*s = SaleStatusPago
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = SaleStatus(v)
	case int:
		*s = SaleStatus(v)
	}
	return nil
}
