package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/assistec/assistec-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxInstallments is the longest credit plan a card channel can be
// configured for.
const MaxInstallments = 18

// PixVariant distinguishes Pix routed through a card terminal from Pix
// received directly in a bank account.
type PixVariant string

const (
	PixVariantMaquina PixVariant = "maquina"
	PixVariantBanco   PixVariant = "banco"
)

// InstallmentRates holds one percentage per installment count, 1..18.
// Persisted as a JSON array.
type InstallmentRates []float64

// Value implements driver.Valuer
func (r InstallmentRates) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements sql.Scanner
func (r *InstallmentRates) Scan(value interface{}) error {
	if value == nil {
		*r = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	}
	return errors.New("unsupported type for installment rates")
}

// CardChannel is a configured card machine with its fee percentages.
// Position 0 is the default channel used when a settlement does not name one.
type CardChannel struct {
	ID               uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Label            string           `gorm:"size:100;not null" json:"label"`
	Position         int              `gorm:"default:0;index" json:"position"`
	DebitRate        float64          `gorm:"default:0" json:"debit_rate"`
	CreditSightRate  float64          `gorm:"default:0" json:"credit_sight_rate"`
	InstallmentRates InstallmentRates `gorm:"type:jsonb" json:"installment_rates"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	DeletedAt        gorm.DeletedAt   `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new card channel
func (c *CardChannel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CardChannel model
func (CardChannel) TableName() string {
	return "card_channels"
}

// PixChannel is a configured Pix route with its fee percentage.
type PixChannel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Label     string         `gorm:"size:100;not null" json:"label"`
	Variant   PixVariant     `gorm:"size:20;default:'maquina'" json:"variant"`
	Position  int            `gorm:"default:0;index" json:"position"`
	Rate      float64        `gorm:"default:0" json:"rate"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new pix channel
func (p *PixChannel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PixChannel model
func (PixChannel) TableName() string {
	return "pix_channels"
}

// RateTable is the read-only fee configuration handed to the settlement
// flows. Channels are ordered by position; the first of each kind is the
// default. An empty table resolves every method to 0% so that missing
// configuration never blocks money from being recorded.
type RateTable struct {
	CardChannels []CardChannel `json:"card_channels"`
	PixChannels  []PixChannel  `json:"pix_channels"`
}

// FeeFor resolves the fee percentage for a payment method. Installments
// below 2 use the sight rate; methods without a configured channel and
// methods that carry no processor fee (Dinheiro, Crediário, Outros)
// resolve to 0.
func (t *RateTable) FeeFor(method enum.PaymentMethod, installments int) float64 {
	switch method {
	case enum.PaymentMethodPix:
		return t.pixRate()
	case enum.PaymentMethodDebito:
		if len(t.CardChannels) == 0 {
			return 0
		}
		return t.CardChannels[0].DebitRate
	case enum.PaymentMethodCredito:
		if len(t.CardChannels) == 0 {
			return 0
		}
		card := t.CardChannels[0]
		if installments < 2 {
			return card.CreditSightRate
		}
		if installments > MaxInstallments {
			installments = MaxInstallments
		}
		if len(card.InstallmentRates) < installments {
			return 0
		}
		return card.InstallmentRates[installments-1]
	default:
		return 0
	}
}

// pixRate returns the first terminal Pix channel's rate, falling back to the
// first channel of any variant.
func (t *RateTable) pixRate() float64 {
	for _, ch := range t.PixChannels {
		if ch.Variant == PixVariantMaquina {
			return ch.Rate
		}
	}
	if len(t.PixChannels) > 0 {
		return t.PixChannels[0].Rate
	}
	return 0
}

// ValidRate reports whether a configured percentage is within bounds
func ValidRate(rate float64) bool {
	return rate >= 0 && rate <= 100
}
