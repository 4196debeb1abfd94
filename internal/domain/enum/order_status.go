package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// OrderStatus represents the lifecycle status of a service order
type OrderStatus int

const (
	OrderStatusEmAnalise OrderStatus = iota
	OrderStatusAprovado
	OrderStatusNaoAprovado
	OrderStatusAguardandoPeca
	OrderStatusEmAndamento
	OrderStatusAguardandoRetirada
	OrderStatusFinalizado
	OrderStatusEntregue
)

var orderStatusLabels = [...]string{
	"Em Análise",
	"Aprovado",
	"Não Aprovado",
	"Aguardando Peça",
	"Em Andamento",
	"Aguardando Retirada",
	"Finalizado",
	"Entregue",
}

func (s OrderStatus) String() string {
	if s < 0 || int(s) >= len(orderStatusLabels) {
		return "Em Análise"
	}
	return orderStatusLabels[s]
}

// IsValid reports whether the value maps to a known status
func (s OrderStatus) IsValid() bool {
	return s >= OrderStatusEmAnalise && s <= OrderStatusEntregue
}

// IsTerminal reports whether the status accepts no further transitions.
// Não Aprovado closes a rejected order; Entregue closes a delivered one.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusNaoAprovado || s == OrderStatusEntregue
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderStatus(i)
		return nil
	}
	for i, label := range orderStatusLabels {
		if label == str {
			*s = OrderStatus(i)
			return nil
		}
	}
	return fmt.Errorf("unknown order status: %q", str)
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusEmAnalise
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	}
	return nil
}
