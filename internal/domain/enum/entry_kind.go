package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// EntryKind distinguishes cash movements into and out of the drawer
type EntryKind int

const (
	EntryKindEntrada EntryKind = iota
	EntryKindSaida
)

func (k EntryKind) String() string {
	return [...]string{"Entrada", "Saída"}[k]
}

// Sign returns the signed contribution factor of the kind: +1 for entries,
// -1 for exits. The ledger balance is the sum of Sign()*amount over the log.
func (k EntryKind) Sign() int64 {
	if k == EntryKindSaida {
		return -1
	}
	return 1
}

func (k EntryKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *EntryKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*k = EntryKind(i)
		return nil
	}
	switch str {
	case "Saída", "Saida":
		*k = EntryKindSaida
	default:
		*k = EntryKindEntrada
	}
	return nil
}

func (k EntryKind) Value() (driver.Value, error) {
	return int64(k), nil
}

func (k *EntryKind) Scan(value interface{}) error {
	if value == nil {
		*k = EntryKindEntrada
		return nil
	}
	switch v := value.(type) {
	case int64:
		*k = EntryKind(v)
	case int:
		*k = EntryKind(v)
	}
	return nil
}
