package service

import (
	"context"
	"testing"

	"github.com/assistec/assistec-api/internal/domain/enum"
	"github.com/assistec/assistec-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCashierFixture() (*CashierService, *memStore) {
	s := newMemStore()
	return NewCashierService(&fakeLedgerRepo{s}), s
}

func TestManualMovementAppendsEntry(t *testing.T) {
	svc, s := newCashierFixture()

	entry, err := svc.ManualMovement(context.Background(), &ManualMovementInput{
		Kind:        enum.EntryKindEntrada,
		Category:    "Suprimento",
		Amount:      150.00,
		Description: "Troco inicial",
		Operator:    "Maria",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(15000), entry.Amount)
	assert.Equal(t, "Suprimento", entry.Category)
	require.Len(t, s.ledger, 1)
}

func TestManualMovementRejectsNonPositiveAmount(t *testing.T) {
	svc, s := newCashierFixture()

	for _, amount := range []float64{0, -10, 0.004} {
		_, err := svc.ManualMovement(context.Background(), &ManualMovementInput{
			Kind:     enum.EntryKindEntrada,
			Category: "Suprimento",
			Amount:   amount,
		})
		assert.ErrorIs(t, err, apperror.ErrInvalidAmount, "amount %v", amount)
	}
	assert.Empty(t, s.ledger)
}

func TestManualMovementRequiresCategory(t *testing.T) {
	svc, _ := newCashierFixture()

	_, err := svc.ManualMovement(context.Background(), &ManualMovementInput{
		Kind:   enum.EntryKindSaida,
		Amount: 20,
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 422, appErr.Code)
}

func TestBalanceReplaysTheLog(t *testing.T) {
	svc, _ := newCashierFixture()
	ctx := context.Background()

	_, err := svc.ManualMovement(ctx, &ManualMovementInput{
		Kind: enum.EntryKindEntrada, Category: "Suprimento", Amount: 200,
	})
	require.NoError(t, err)
	_, err = svc.ManualMovement(ctx, &ManualMovementInput{
		Kind: enum.EntryKindSaida, Category: "Sangria", Amount: 75.50,
	})
	require.NoError(t, err)

	balance, err := svc.Balance(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 124.50, balance, 0.001)
}

func TestGetEntryNotFound(t *testing.T) {
	svc, _ := newCashierFixture()

	_, err := svc.GetEntry(context.Background(), uuid.New())
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 404, appErr.Code)
}
