package enum

import (
	"encoding/json"
	"fmt"
)

// RefundKind selects how a sale is reversed: store credit keeps the cash in
// the drawer, a money refund posts a compensating exit to the ledger.
type RefundKind int

const (
	RefundKindCredito RefundKind = iota
	RefundKindDinheiro
)

func (k RefundKind) String() string {
	return [...]string{"Crédito", "Dinheiro"}[k]
}

func (k RefundKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *RefundKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*k = RefundKind(i)
		return nil
	}
	switch str {
	case "Crédito", "Credito":
		*k = RefundKindCredito
	case "Dinheiro":
		*k = RefundKindDinheiro
	default:
		return fmt.Errorf("unknown refund kind: %q", str)
	}
	return nil
}
