package entity

import (
	"encoding/json"
	"time"

	"github.com/assistec/assistec-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a catalog item: a stocked product or a repair service.
// Services carry no stock; Quantity is ignored for them.
type Product struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Code       string         `gorm:"size:100;unique;not null" json:"code"`
	Kind       enum.ItemKind  `gorm:"default:0" json:"kind"`
	Price      int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Cost       int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Quantity   int            `gorm:"default:0" json:"quantity"`
	MinStock   int            `gorm:"default:0" json:"min_stock"`
	Notes      *string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
		Cost  float64 `json:"cost"`
	}{
		Alias: Alias(p),
		Price: float64(p.Price) / 100,
		Cost:  float64(p.Cost) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// GetPriceDecimal returns the selling price as a decimal (for display)
func (p *Product) GetPriceDecimal() float64 {
	return float64(p.Price) / 100
}

// SetPriceFromDecimal sets the selling price from a decimal value
func (p *Product) SetPriceFromDecimal(price float64) {
	p.Price = int64(price * 100)
}

// SetCostFromDecimal sets the cost price from a decimal value
func (p *Product) SetCostFromDecimal(cost float64) {
	p.Cost = int64(cost * 100)
}
