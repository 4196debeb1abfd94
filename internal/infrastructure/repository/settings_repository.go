package repository

import (
	"context"
	"errors"

	"github.com/assistec/assistec-api/internal/domain/entity"
	domainRepo "github.com/assistec/assistec-api/internal/domain/repository"
	"gorm.io/gorm"
)

type rateTableRepository struct {
	db *gorm.DB
}

// NewRateTableRepository creates a new rate table repository
func NewRateTableRepository(db *gorm.DB) domainRepo.RateTableRepository {
	return &rateTableRepository{db: db}
}

func (r *rateTableRepository) GetRateTable(ctx context.Context) (*entity.RateTable, error) {
	var table entity.RateTable

	if err := r.db.WithContext(ctx).
		Order("position ASC").
		Find(&table.CardChannels).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Order("position ASC").
		Find(&table.PixChannels).Error; err != nil {
		return nil, err
	}

	return &table, nil
}

// ReplaceCardChannels swaps the whole card configuration in one transaction
// so a settlement never sees a half-replaced table.
func (r *rateTableRepository) ReplaceCardChannels(ctx context.Context, channels []entity.CardChannel) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&entity.CardChannel{}).Error; err != nil {
			return err
		}
		if len(channels) == 0 {
			return nil
		}
		return tx.Create(&channels).Error
	})
}

func (r *rateTableRepository) ReplacePixChannels(ctx context.Context, channels []entity.PixChannel) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&entity.PixChannel{}).Error; err != nil {
			return err
		}
		if len(channels) == 0 {
			return nil
		}
		return tx.Create(&channels).Error
	})
}

type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new company profile repository
func NewCompanyRepository(db *gorm.DB) domainRepo.CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Get(ctx context.Context) (*entity.CompanyProfile, error) {
	var profile entity.CompanyProfile
	err := r.db.WithContext(ctx).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &profile, err
}

func (r *companyRepository) Upsert(ctx context.Context, profile *entity.CompanyProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new revenue goal repository
func NewGoalRepository(db *gorm.DB) domainRepo.GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) GetByMonth(ctx context.Context, year, month int) (*entity.RevenueGoal, error) {
	var goal entity.RevenueGoal
	err := r.db.WithContext(ctx).First(&goal, "year = ? AND month = ?", year, month).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &goal, err
}

func (r *goalRepository) Upsert(ctx context.Context, goal *entity.RevenueGoal) error {
	return r.db.WithContext(ctx).Save(goal).Error
}
