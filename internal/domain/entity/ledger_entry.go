package entity

import (
	"encoding/json"
	"time"

	"github.com/assistec/assistec-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LedgerEntry is one cash movement in the append-only cashier ledger.
// Entries are never updated or deleted; corrections are new offsetting
// entries. The entity deliberately carries no UpdatedAt or soft-delete
// column, and the repository exposes no update or delete operation.
type LedgerEntry struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Kind        enum.EntryKind `gorm:"default:0;index" json:"kind"`
	Category    string         `gorm:"size:100;not null;index" json:"category"`
	Amount      int64          `gorm:"not null" json:"-"` // Gross amount in cents, always positive
	Description string         `gorm:"type:text" json:"description"`
	Operator    string         `gorm:"size:255" json:"operator"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (e LedgerEntry) MarshalJSON() ([]byte, error) {
	type Alias LedgerEntry
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(e),
		Amount: float64(e.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new ledger entry
func (e *LedgerEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the LedgerEntry model
func (LedgerEntry) TableName() string {
	return "ledger_entries"
}

// Signed returns the entry's signed contribution to the cash balance
func (e *LedgerEntry) Signed() int64 {
	return e.Kind.Sign() * e.Amount
}

// Ledger categories used by the settlement flows. Manual cashier movements
// may use free-text categories on top of these.
const (
	CategoryServico = "Serviço"
	CategoryVenda   = "Venda"
	CategoryEstorno = "Estorno"
)
