package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ItemKind distinguishes catalog services from stocked products
type ItemKind int

const (
	ItemKindServico ItemKind = iota
	ItemKindProduto
)

func (k ItemKind) String() string {
	return [...]string{"Serviço", "Produto"}[k]
}

func (k ItemKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *ItemKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*k = ItemKind(i)
		return nil
	}
	switch str {
	case "Produto":
		*k = ItemKindProduto
	default:
		*k = ItemKindServico
	}
	return nil
}

func (k ItemKind) Value() (driver.Value, error) {
	return int64(k), nil
}

func (k *ItemKind) Scan(value interface{}) error {
	if value == nil {
		*k = ItemKindServico
		return nil
	}
	switch v := value.(type) {
	case int64:
		*k = ItemKind(v)
	case int:
		*k = ItemKind(v)
	}
	return nil
}
