package entity

import (
	"encoding/json"
	"time"

	"github.com/assistec/assistec-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceOrder represents a repair order (OS). Customer and device data are
// stored as snapshots taken at creation time; the optional CustomerID link is
// informational and not enforced.
//
// Fee and NetTotal stay nil until the order is settled. Once settled,
// NetTotal = Total - Fee and the order status is Finalizado.
type ServiceOrder struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Number        int64            `gorm:"autoIncrement;uniqueIndex" json:"number"`
	CustomerID    *uuid.UUID       `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CustomerName  string           `gorm:"size:255;not null" json:"customer_name"`
	CustomerPhone string           `gorm:"size:50" json:"customer_phone"`
	DeviceBrand   string           `gorm:"size:100" json:"device_brand"`
	DeviceModel   string           `gorm:"size:100" json:"device_model"`
	DeviceSerial  string           `gorm:"size:100" json:"device_serial"`
	Defect        string           `gorm:"type:text" json:"defect"`
	Status        enum.OrderStatus `gorm:"default:0;index" json:"status"`
	Total         int64            `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	PaymentMethod *enum.PaymentMethod `gorm:"" json:"payment_method,omitempty"`
	Installments  int              `gorm:"default:1" json:"installments"`
	Fee           *int64           `gorm:"" json:"-"` // Stored in cents, nil until settled
	NetTotal      *int64           `gorm:"" json:"-"` // Stored in cents, nil until settled
	SettledAt     *time.Time       `json:"settled_at,omitempty"`
	OperatorID    uuid.UUID        `gorm:"type:uuid;index" json:"operator_id"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Customer *Customer          `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []ServiceOrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o ServiceOrder) MarshalJSON() ([]byte, error) {
	type Alias ServiceOrder
	out := &struct {
		Alias
		Total    float64  `json:"total"`
		Fee      *float64 `json:"fee,omitempty"`
		NetTotal *float64 `json:"net_total,omitempty"`
	}{
		Alias: Alias(o),
		Total: float64(o.Total) / 100,
	}
	if o.Fee != nil {
		fee := float64(*o.Fee) / 100
		out.Fee = &fee
	}
	if o.NetTotal != nil {
		net := float64(*o.NetTotal) / 100
		out.NetTotal = &net
	}
	return json.Marshal(out)
}

// BeforeCreate generates a UUID before creating a new service order
func (o *ServiceOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ServiceOrder model
func (ServiceOrder) TableName() string {
	return "service_orders"
}

// IsSettled reports whether the order has already gone through settlement.
// The timestamp is checked as well as the status so a settled order that was
// later moved back into the workflow is still recognized.
func (o *ServiceOrder) IsSettled() bool {
	return o.SettledAt != nil || o.Status == enum.OrderStatusFinalizado
}

// ServiceOrderItem is a budgeted line on a service order. Prices are
// snapshots; the catalog is only consulted when the item is added.
type ServiceOrderItem struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Kind      enum.ItemKind  `gorm:"default:0" json:"kind"`
	UnitPrice int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Order ServiceOrder `gorm:"foreignKey:OrderID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i ServiceOrderItem) MarshalJSON() ([]byte, error) {
	type Alias ServiceOrderItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
	}{
		Alias:     Alias(i),
		UnitPrice: float64(i.UnitPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order item
func (i *ServiceOrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ServiceOrderItem model
func (ServiceOrderItem) TableName() string {
	return "service_order_items"
}
