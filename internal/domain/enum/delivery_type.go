package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// DeliveryType distinguishes counter pickups from deliveries. Shipping cost
// only applies to deliveries.
type DeliveryType int

const (
	DeliveryTypeRetirada DeliveryType = iota
	DeliveryTypeEntrega
)

func (d DeliveryType) String() string {
	return [...]string{"Retirada", "Entrega"}[d]
}

func (d DeliveryType) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *DeliveryType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*d = DeliveryType(i)
		return nil
	}
	switch str {
	case "Entrega":
		*d = DeliveryTypeEntrega
	default:
		*d = DeliveryTypeRetirada
	}
	return nil
}

func (d DeliveryType) Value() (driver.Value, error) {
	return int64(d), nil
}

func (d *DeliveryType) Scan(value interface{}) error {
	if value == nil {
		*d = DeliveryTypeRetirada
		return nil
	}
	switch v := value.(type) {
	case int64:
		*d = DeliveryType(v)
	case int:
		*d = DeliveryType(v)
	}
	return nil
}
