package service

import (
	"context"
	"fmt"
	"math"

	"github.com/assistec/assistec-api/internal/domain/entity"
	"github.com/assistec/assistec-api/internal/domain/repository"
	"github.com/assistec/assistec-api/pkg/apperror"
)

// SettingsService manages the rate table, company profile and revenue goals
type SettingsService struct {
	rateRepo    repository.RateTableRepository
	companyRepo repository.CompanyRepository
	goalRepo    repository.GoalRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(rateRepo repository.RateTableRepository, companyRepo repository.CompanyRepository, goalRepo repository.GoalRepository) *SettingsService {
	return &SettingsService{
		rateRepo:    rateRepo,
		companyRepo: companyRepo,
		goalRepo:    goalRepo,
	}
}

// CardChannelInput represents a card machine configuration
type CardChannelInput struct {
	Label            string    `json:"label"`
	DebitRate        float64   `json:"debit_rate"`
	CreditSightRate  float64   `json:"credit_sight_rate"`
	InstallmentRates []float64 `json:"installment_rates"`
}

// PixChannelInput represents a Pix route configuration
type PixChannelInput struct {
	Label   string            `json:"label"`
	Variant entity.PixVariant `json:"variant"`
	Rate    float64           `json:"rate"`
}

// GetRateTable returns the full fee configuration
func (s *SettingsService) GetRateTable(ctx context.Context) (*entity.RateTable, error) {
	return s.rateRepo.GetRateTable(ctx)
}

// ReplaceCardChannels replaces the card machine configuration. Input order
// becomes channel position; the first channel is the default.
func (s *SettingsService) ReplaceCardChannels(ctx context.Context, inputs []CardChannelInput) error {
	channels := make([]entity.CardChannel, 0, len(inputs))
	for i, in := range inputs {
		if in.Label == "" {
			return apperror.NewValidationError([]apperror.FieldError{
				{Field: fmt.Sprintf("channels[%d].label", i), Message: "Label is required"},
			})
		}
		if !entity.ValidRate(in.DebitRate) || !entity.ValidRate(in.CreditSightRate) {
			return apperror.NewBadRequestError("Rates must be between 0 and 100")
		}
		if len(in.InstallmentRates) > entity.MaxInstallments {
			return apperror.NewBadRequestError(fmt.Sprintf("At most %d installment rates are allowed", entity.MaxInstallments))
		}
		for _, rate := range in.InstallmentRates {
			if !entity.ValidRate(rate) {
				return apperror.NewBadRequestError("Rates must be between 0 and 100")
			}
		}

		channels = append(channels, entity.CardChannel{
			Label:            in.Label,
			Position:         i,
			DebitRate:        in.DebitRate,
			CreditSightRate:  in.CreditSightRate,
			InstallmentRates: in.InstallmentRates,
		})
	}
	return s.rateRepo.ReplaceCardChannels(ctx, channels)
}

// ReplacePixChannels replaces the Pix route configuration
func (s *SettingsService) ReplacePixChannels(ctx context.Context, inputs []PixChannelInput) error {
	channels := make([]entity.PixChannel, 0, len(inputs))
	for i, in := range inputs {
		if in.Label == "" {
			return apperror.NewValidationError([]apperror.FieldError{
				{Field: fmt.Sprintf("channels[%d].label", i), Message: "Label is required"},
			})
		}
		if !entity.ValidRate(in.Rate) {
			return apperror.NewBadRequestError("Rates must be between 0 and 100")
		}
		variant := in.Variant
		if variant != entity.PixVariantBanco {
			variant = entity.PixVariantMaquina
		}

		channels = append(channels, entity.PixChannel{
			Label:    in.Label,
			Variant:  variant,
			Position: i,
			Rate:     in.Rate,
		})
	}
	return s.rateRepo.ReplacePixChannels(ctx, channels)
}

// CompanyInput represents the company profile data
type CompanyInput struct {
	Name    string  `json:"name"`
	CNPJ    *string `json:"cnpj"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
}

// GetCompany returns the company profile, nil when not configured yet
func (s *SettingsService) GetCompany(ctx context.Context) (*entity.CompanyProfile, error) {
	return s.companyRepo.Get(ctx)
}

// UpdateCompany creates or replaces the company profile
func (s *SettingsService) UpdateCompany(ctx context.Context, input *CompanyInput) (*entity.CompanyProfile, error) {
	if input.Name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "name", Message: "Name is required"},
		})
	}

	profile, err := s.companyRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &entity.CompanyProfile{}
	}

	profile.Name = input.Name
	profile.CNPJ = input.CNPJ
	profile.Phone = input.Phone
	profile.Email = input.Email
	profile.Address = input.Address

	if err := s.companyRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// GoalInput represents a monthly revenue goal
type GoalInput struct {
	Year   int     `json:"year"`
	Month  int     `json:"month"`
	Amount float64 `json:"amount"`
}

// GetGoal returns the goal for a month, nil when none is set
func (s *SettingsService) GetGoal(ctx context.Context, year, month int) (*entity.RevenueGoal, error) {
	if month < 1 || month > 12 {
		return nil, apperror.NewBadRequestError("Month must be between 1 and 12")
	}
	return s.goalRepo.GetByMonth(ctx, year, month)
}

// SetGoal creates or updates the goal for a month
func (s *SettingsService) SetGoal(ctx context.Context, input *GoalInput) (*entity.RevenueGoal, error) {
	if input.Month < 1 || input.Month > 12 {
		return nil, apperror.NewBadRequestError("Month must be between 1 and 12")
	}
	if input.Amount < 0 {
		return nil, apperror.ErrInvalidAmount
	}

	goal, err := s.goalRepo.GetByMonth(ctx, input.Year, input.Month)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		goal = &entity.RevenueGoal{Year: input.Year, Month: input.Month}
	}
	goal.Amount = int64(math.Round(input.Amount * 100))

	if err := s.goalRepo.Upsert(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}
