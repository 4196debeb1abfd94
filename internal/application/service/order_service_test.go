package service

import (
	"context"
	"errors"
	"testing"

	"github.com/assistec/assistec-api/internal/domain/entity"
	"github.com/assistec/assistec-api/internal/domain/enum"
	"github.com/assistec/assistec-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderFixture() (*OrderService, *memStore, *fakeNotifier) {
	s := newMemStore()
	notifier := &fakeNotifier{}
	svc := NewOrderService(
		&fakeOrderRepo{s},
		&fakeOrderItemRepo{s},
		&fakeCustomerRepo{s},
		&fakeRateRepo{s},
		&fakeLedgerRepo{s},
		notifier,
	)
	return svc, s, notifier
}

func createTestOrder(t *testing.T, svc *OrderService, price float64) *entity.ServiceOrder {
	t.Helper()
	order, err := svc.CreateOrder(context.Background(), &CreateOrderInput{
		CustomerName: "João Silva",
		DeviceBrand:  "Samsung",
		DeviceModel:  "Galaxy A52",
		Defect:       "Tela quebrada",
		Items: []OrderItemInput{
			{Name: "Troca de tela", Kind: enum.ItemKindServico, UnitPrice: price},
		},
	})
	require.NoError(t, err)
	return order
}

func TestCreateOrderComputesTotalInCents(t *testing.T) {
	svc, _, _ := newOrderFixture()

	order, err := svc.CreateOrder(context.Background(), &CreateOrderInput{
		CustomerName: "João Silva",
		Items: []OrderItemInput{
			{Name: "Troca de tela", Kind: enum.ItemKindServico, UnitPrice: 180.00},
			{Name: "Película", Kind: enum.ItemKindProduto, UnitPrice: 19.90},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(19990), order.Total)
	assert.Equal(t, enum.OrderStatusEmAnalise, order.Status)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, int64(1), order.Number)
}

func TestCreateOrderRequiresCustomerName(t *testing.T) {
	svc, _, _ := newOrderFixture()

	_, err := svc.CreateOrder(context.Background(), &CreateOrderInput{})
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, 422, appErr.Code)
}

func TestSettleAppliesChannelFee(t *testing.T) {
	svc, s, _ := newOrderFixture()
	s.rateTable.PixChannels = []entity.PixChannel{
		{Label: "Pix maquininha", Variant: entity.PixVariantMaquina, Rate: 0.99},
	}

	order := createTestOrder(t, svc, 250.00)

	settled, err := svc.Settle(context.Background(), &SettleOrderInput{
		OrderID:  order.ID,
		Method:   enum.PaymentMethodPix,
		Operator: "Maria",
	})
	require.NoError(t, err)

	// 250.00 at 0.99% rounds to a 2.48 fee
	assert.Equal(t, enum.OrderStatusFinalizado, settled.Status)
	require.NotNil(t, settled.Fee)
	require.NotNil(t, settled.NetTotal)
	assert.Equal(t, int64(248), *settled.Fee)
	assert.Equal(t, int64(24752), *settled.NetTotal)
	assert.Equal(t, settled.Total, *settled.Fee+*settled.NetTotal)
	require.NotNil(t, settled.SettledAt)

	// The ledger got one gross entry
	require.Len(t, s.ledger, 1)
	assert.Equal(t, enum.EntryKindEntrada, s.ledger[0].Kind)
	assert.Equal(t, entity.CategoryServico, s.ledger[0].Category)
	assert.Equal(t, int64(25000), s.ledger[0].Amount)
	assert.Equal(t, "Maria", s.ledger[0].Operator)
}

func TestSettleCreditInstallmentRates(t *testing.T) {
	svc, s, _ := newOrderFixture()
	s.rateTable.CardChannels = []entity.CardChannel{{
		Label:            "Maquininha principal",
		DebitRate:        1.39,
		CreditSightRate:  3.15,
		InstallmentRates: entity.InstallmentRates{3.15, 4.20, 5.10},
	}}

	order := createTestOrder(t, svc, 100.00)

	settled, err := svc.Settle(context.Background(), &SettleOrderInput{
		OrderID:      order.ID,
		Method:       enum.PaymentMethodCredito,
		Installments: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, settled.Installments)
	assert.Equal(t, int64(510), *settled.Fee)
	assert.Equal(t, int64(9490), *settled.NetTotal)
}

func TestSettleIsExactlyOnce(t *testing.T) {
	svc, s, _ := newOrderFixture()

	order := createTestOrder(t, svc, 100.00)

	_, err := svc.Settle(context.Background(), &SettleOrderInput{
		OrderID: order.ID,
		Method:  enum.PaymentMethodDinheiro,
	})
	require.NoError(t, err)

	_, err = svc.Settle(context.Background(), &SettleOrderInput{
		OrderID: order.ID,
		Method:  enum.PaymentMethodDinheiro,
	})
	assert.ErrorIs(t, err, apperror.ErrAlreadySettled)

	// Only the first settlement reached the ledger
	assert.Len(t, s.ledger, 1)
}

func TestSettleRejectedAfterStatusMovesOffFinalizado(t *testing.T) {
	svc, s, _ := newOrderFixture()

	order := createTestOrder(t, svc, 100.00)

	_, err := svc.Settle(context.Background(), &SettleOrderInput{
		OrderID: order.ID,
		Method:  enum.PaymentMethodDinheiro,
	})
	require.NoError(t, err)

	// Finalizado is not terminal, so the workflow may pull the order back
	_, err = svc.UpdateStatus(context.Background(), order.ID, enum.OrderStatusEmAndamento)
	require.NoError(t, err)

	// The settlement timestamp survives the move and still blocks a re-settle
	_, err = svc.Settle(context.Background(), &SettleOrderInput{
		OrderID: order.ID,
		Method:  enum.PaymentMethodPix,
	})
	assert.ErrorIs(t, err, apperror.ErrAlreadySettled)
	assert.Len(t, s.ledger, 1)
}

func TestSettleRejectsZeroTotalWithoutOverride(t *testing.T) {
	svc, _, _ := newOrderFixture()

	order, err := svc.CreateOrder(context.Background(), &CreateOrderInput{
		CustomerName: "João Silva",
	})
	require.NoError(t, err)
	require.Equal(t, int64(0), order.Total)

	_, err = svc.Settle(context.Background(), &SettleOrderInput{
		OrderID: order.ID,
		Method:  enum.PaymentMethodDinheiro,
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 400, appErr.Code)
}

func TestSettleWithOverrideAmount(t *testing.T) {
	svc, s, _ := newOrderFixture()

	order, err := svc.CreateOrder(context.Background(), &CreateOrderInput{
		CustomerName: "João Silva",
	})
	require.NoError(t, err)

	override := 80.00
	settled, err := svc.Settle(context.Background(), &SettleOrderInput{
		OrderID:        order.ID,
		Method:         enum.PaymentMethodDinheiro,
		OverrideAmount: &override,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(8000), settled.Total)
	require.Len(t, s.ledger, 1)
	assert.Equal(t, int64(8000), s.ledger[0].Amount)
}

func TestSettleFailsOpenWhenRatesUnavailable(t *testing.T) {
	svc, s, _ := newOrderFixture()
	s.rateErr = errors.New("connection refused")

	order := createTestOrder(t, svc, 150.00)

	settled, err := svc.Settle(context.Background(), &SettleOrderInput{
		OrderID: order.ID,
		Method:  enum.PaymentMethodPix,
	})
	require.NoError(t, err)

	// Unreadable configuration settles at 0% rather than blocking the money
	assert.Equal(t, int64(0), *settled.Fee)
	assert.Equal(t, settled.Total, *settled.NetTotal)
}

func TestSettleRevertsOrderWhenLedgerFails(t *testing.T) {
	svc, s, _ := newOrderFixture()

	order := createTestOrder(t, svc, 100.00)

	s.ledgerErr = errors.New("disk full")
	_, err := svc.Settle(context.Background(), &SettleOrderInput{
		OrderID: order.ID,
		Method:  enum.PaymentMethodDinheiro,
	})
	require.Error(t, err)

	// The order is back in its pre-settlement state and can be retried
	reloaded, err := svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusEmAnalise, reloaded.Status)
	assert.Nil(t, reloaded.Fee)
	assert.Nil(t, reloaded.SettledAt)

	s.ledgerErr = nil
	settled, err := svc.Settle(context.Background(), &SettleOrderInput{
		OrderID: order.ID,
		Method:  enum.PaymentMethodDinheiro,
	})
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusFinalizado, settled.Status)
	assert.Len(t, s.ledger, 1)
}

func TestUpdateStatusRejectsDirectFinalizado(t *testing.T) {
	svc, _, _ := newOrderFixture()

	order := createTestOrder(t, svc, 100.00)

	_, err := svc.UpdateStatus(context.Background(), order.ID, enum.OrderStatusFinalizado)
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 400, appErr.Code)
}

func TestUpdateStatusRejectsTerminalOrders(t *testing.T) {
	svc, _, _ := newOrderFixture()

	order := createTestOrder(t, svc, 100.00)

	_, err := svc.UpdateStatus(context.Background(), order.ID, enum.OrderStatusNaoAprovado)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), order.ID, enum.OrderStatusAprovado)
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 409, appErr.Code)
}

func TestUpdateStatusNotifiesPickup(t *testing.T) {
	svc, s, notifier := newOrderFixture()

	email := "joao@example.com"
	customer := &entity.Customer{Name: "João Silva", Email: &email}
	require.NoError(t, (&fakeCustomerRepo{s}).Create(context.Background(), customer))

	order, err := svc.CreateOrder(context.Background(), &CreateOrderInput{
		CustomerID: &customer.ID,
		Items: []OrderItemInput{
			{Name: "Reparo", Kind: enum.ItemKindServico, UnitPrice: 50},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "João Silva", order.CustomerName)

	_, err = svc.UpdateStatus(context.Background(), order.ID, enum.OrderStatusAguardandoRetirada)
	require.NoError(t, err)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, order.Number, notifier.sent[0])
}

func TestSettleTerminalOrderRejected(t *testing.T) {
	svc, _, _ := newOrderFixture()

	order := createTestOrder(t, svc, 100.00)
	_, err := svc.UpdateStatus(context.Background(), order.ID, enum.OrderStatusNaoAprovado)
	require.NoError(t, err)

	_, err = svc.Settle(context.Background(), &SettleOrderInput{
		OrderID: order.ID,
		Method:  enum.PaymentMethodPix,
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 409, appErr.Code)
}
