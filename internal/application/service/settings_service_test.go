package service

import (
	"context"
	"testing"

	"github.com/assistec/assistec-api/internal/domain/entity"
	"github.com/assistec/assistec-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSettingsFixture() (*SettingsService, *memStore) {
	s := newMemStore()
	svc := NewSettingsService(&fakeRateRepo{s}, &fakeCompanyRepo{s}, &fakeGoalRepo{s})
	return svc, s
}

func TestReplaceCardChannelsAssignsPositions(t *testing.T) {
	svc, s := newSettingsFixture()

	err := svc.ReplaceCardChannels(context.Background(), []CardChannelInput{
		{Label: "Maquininha principal", DebitRate: 1.39, CreditSightRate: 3.15},
		{Label: "Maquininha reserva", DebitRate: 1.99},
	})
	require.NoError(t, err)

	require.Len(t, s.rateTable.CardChannels, 2)
	assert.Equal(t, 0, s.rateTable.CardChannels[0].Position)
	assert.Equal(t, "Maquininha principal", s.rateTable.CardChannels[0].Label)
	assert.Equal(t, 1, s.rateTable.CardChannels[1].Position)
}

func TestReplaceCardChannelsValidatesRates(t *testing.T) {
	svc, _ := newSettingsFixture()

	err := svc.ReplaceCardChannels(context.Background(), []CardChannelInput{
		{Label: "Maquininha", DebitRate: 101},
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	err = svc.ReplaceCardChannels(context.Background(), []CardChannelInput{
		{Label: "Maquininha", InstallmentRates: []float64{3.15, -1}},
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	err = svc.ReplaceCardChannels(context.Background(), []CardChannelInput{
		{Label: ""},
	})
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)
}

func TestReplaceCardChannelsRejectsTooManyInstallments(t *testing.T) {
	svc, _ := newSettingsFixture()

	rates := make([]float64, entity.MaxInstallments+1)
	err := svc.ReplaceCardChannels(context.Background(), []CardChannelInput{
		{Label: "Maquininha", InstallmentRates: rates},
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestReplacePixChannelsDefaultsVariant(t *testing.T) {
	svc, s := newSettingsFixture()

	err := svc.ReplacePixChannels(context.Background(), []PixChannelInput{
		{Label: "Pix maquininha", Rate: 0.99},
		{Label: "Pix conta", Variant: entity.PixVariantBanco},
	})
	require.NoError(t, err)

	require.Len(t, s.rateTable.PixChannels, 2)
	assert.Equal(t, entity.PixVariantMaquina, s.rateTable.PixChannels[0].Variant)
	assert.Equal(t, entity.PixVariantBanco, s.rateTable.PixChannels[1].Variant)
}

func TestUpdateCompanyUpserts(t *testing.T) {
	svc, _ := newSettingsFixture()
	ctx := context.Background()

	profile, err := svc.UpdateCompany(ctx, &CompanyInput{Name: "Assistec Celulares"})
	require.NoError(t, err)
	assert.Equal(t, "Assistec Celulares", profile.Name)

	phone := "(11) 99999-0000"
	updated, err := svc.UpdateCompany(ctx, &CompanyInput{Name: "Assistec", Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, profile.ID, updated.ID)
	assert.Equal(t, "Assistec", updated.Name)

	loaded, err := svc.GetCompany(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded.Phone)
	assert.Equal(t, phone, *loaded.Phone)
}

func TestSetGoalStoresCents(t *testing.T) {
	svc, _ := newSettingsFixture()
	ctx := context.Background()

	goal, err := svc.SetGoal(ctx, &GoalInput{Year: 2026, Month: 9, Amount: 15000.50})
	require.NoError(t, err)
	assert.Equal(t, int64(1500050), goal.Amount)

	// Setting the same month again updates in place
	goal2, err := svc.SetGoal(ctx, &GoalInput{Year: 2026, Month: 9, Amount: 20000})
	require.NoError(t, err)
	assert.Equal(t, goal.ID, goal2.ID)
	assert.Equal(t, int64(2000000), goal2.Amount)
}

func TestSetGoalValidation(t *testing.T) {
	svc, _ := newSettingsFixture()
	ctx := context.Background()

	_, err := svc.SetGoal(ctx, &GoalInput{Year: 2026, Month: 13, Amount: 100})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	_, err = svc.SetGoal(ctx, &GoalInput{Year: 2026, Month: 1, Amount: -5})
	assert.ErrorIs(t, err, apperror.ErrInvalidAmount)
}
