package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanyProfile holds the shop's identification, printed on receipts and
// shown in the UI. A single row exists.
type CompanyProfile struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	CNPJ      *string        `gorm:"size:20;column:cnpj" json:"cnpj,omitempty"`
	Phone     *string        `gorm:"size:50" json:"phone,omitempty"`
	Email     *string        `gorm:"size:255" json:"email,omitempty"`
	Address   *string        `gorm:"type:text" json:"address,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating the company profile
func (c *CompanyProfile) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CompanyProfile model
func (CompanyProfile) TableName() string {
	return "company_profiles"
}

// RevenueGoal is the configured monthly revenue target used by the
// dashboard. One row per month, keyed by year/month.
type RevenueGoal struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Year      int            `gorm:"not null;uniqueIndex:idx_goal_month" json:"year"`
	Month     int            `gorm:"not null;uniqueIndex:idx_goal_month" json:"month"`
	Amount    int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (g RevenueGoal) MarshalJSON() ([]byte, error) {
	type Alias RevenueGoal
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(g),
		Amount: float64(g.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new revenue goal
func (g *RevenueGoal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the RevenueGoal model
func (RevenueGoal) TableName() string {
	return "revenue_goals"
}
