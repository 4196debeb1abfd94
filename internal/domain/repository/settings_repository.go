package repository

import (
	"context"

	"github.com/assistec/assistec-api/internal/domain/entity"
)

// RateTableRepository loads and replaces the fee configuration. The
// settlement core only ever calls GetRateTable; the replace operations are
// owned by the settings API.
type RateTableRepository interface {
	// GetRateTable loads all channels ordered by position
	GetRateTable(ctx context.Context) (*entity.RateTable, error)
	ReplaceCardChannels(ctx context.Context, channels []entity.CardChannel) error
	ReplacePixChannels(ctx context.Context, channels []entity.PixChannel) error
}

// CompanyRepository stores the single company profile row
type CompanyRepository interface {
	Get(ctx context.Context) (*entity.CompanyProfile, error)
	Upsert(ctx context.Context, profile *entity.CompanyProfile) error
}

// GoalRepository stores monthly revenue goals
type GoalRepository interface {
	GetByMonth(ctx context.Context, year, month int) (*entity.RevenueGoal, error)
	Upsert(ctx context.Context, goal *entity.RevenueGoal) error
}
