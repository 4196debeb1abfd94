package service

import (
	"context"
	"errors"
	"testing"

	"github.com/assistec/assistec-api/internal/domain/entity"
	"github.com/assistec/assistec-api/internal/domain/enum"
	"github.com/assistec/assistec-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSaleFixture() (*SaleService, *memStore) {
	s := newMemStore()
	svc := NewSaleService(
		&fakeSaleRepo{s},
		&fakeSaleItemRepo{s},
		&fakeProductRepo{s},
		&fakeCustomerRepo{s},
		&fakeLedgerRepo{s},
	)
	return svc, s
}

func seedProduct(t *testing.T, s *memStore, name string, price float64, quantity int) *entity.Product {
	t.Helper()
	product := &entity.Product{
		ID:       uuid.New(),
		Name:     name,
		Code:     "P-" + name,
		Kind:     enum.ItemKindProduto,
		Price:    int64(price * 100),
		Quantity: quantity,
	}
	s.products[product.ID] = product
	return product
}

func TestCreateSaleComputesTotalsAndDecrementsStock(t *testing.T) {
	svc, s := newSaleFixture()
	product := seedProduct(t, s, "Capinha", 35.00, 10)

	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CustomerName: "Ana",
		Method:       enum.PaymentMethodPix,
		DeliveryType: enum.DeliveryTypeEntrega,
		ShippingCost: 12.50,
		AmountPaid:   82.50,
		Items: []SaleItemInput{
			{ProductID: &product.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)

	// 2 x 35.00 + 12.50 shipping, catalog price taken from the product
	assert.Equal(t, int64(7000), sale.SubTotal)
	assert.Equal(t, int64(1250), sale.ShippingCost)
	assert.Equal(t, int64(8250), sale.Total)
	assert.Equal(t, enum.SaleStatusPago, sale.Status)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, "Capinha", sale.Items[0].ProductName)

	assert.Equal(t, 8, s.products[product.ID].Quantity)

	require.Len(t, s.ledger, 1)
	assert.Equal(t, enum.EntryKindEntrada, s.ledger[0].Kind)
	assert.Equal(t, entity.CategoryVenda, s.ledger[0].Category)
	assert.Equal(t, int64(8250), s.ledger[0].Amount)
}

func TestCreateSaleUnderpaidIsAReceber(t *testing.T) {
	svc, _ := newSaleFixture()

	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CustomerName: "Ana",
		Method:       enum.PaymentMethodDinheiro,
		AmountPaid:   10,
		Items: []SaleItemInput{
			{Name: "Troca de bateria", Quantity: 1, UnitPrice: 120},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, enum.SaleStatusAReceber, sale.Status)
}

func TestCreateSalePreOrderIsEncomenda(t *testing.T) {
	svc, _ := newSaleFixture()

	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CustomerName: "Ana",
		Method:       enum.PaymentMethodPix,
		PreOrder:     true,
		AmountPaid:   500,
		Items: []SaleItemInput{
			{Name: "iPhone usado", Quantity: 1, UnitPrice: 500},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, enum.SaleStatusEncomenda, sale.Status)
}

func TestCreateSaleInsufficientStock(t *testing.T) {
	svc, s := newSaleFixture()
	product := seedProduct(t, s, "Fone", 50.00, 1)

	_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CustomerName: "Ana",
		Method:       enum.PaymentMethodPix,
		Items: []SaleItemInput{
			{ProductID: &product.ID, Quantity: 3},
		},
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 400, appErr.Code)

	// Nothing was persisted
	assert.Equal(t, 1, s.products[product.ID].Quantity)
	assert.Empty(t, s.sales)
	assert.Empty(t, s.ledger)
}

func TestCreateSaleUnwindsOnLedgerFailure(t *testing.T) {
	svc, s := newSaleFixture()
	product := seedProduct(t, s, "Fone", 50.00, 5)

	s.ledgerErr = errors.New("disk full")
	_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CustomerName: "Ana",
		Method:       enum.PaymentMethodPix,
		Items: []SaleItemInput{
			{ProductID: &product.ID, Quantity: 2},
		},
	})
	require.Error(t, err)

	// Stock came back and the sale was removed
	assert.Equal(t, 5, s.products[product.ID].Quantity)
	assert.Empty(t, s.sales)
}

func TestRefundDinheiroPostsSaidaAndRestoresStock(t *testing.T) {
	svc, s := newSaleFixture()
	product := seedProduct(t, s, "Carregador", 40.00, 10)

	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CustomerName: "Ana",
		Operator:     "Maria",
		Method:       enum.PaymentMethodDinheiro,
		AmountPaid:   80,
		Items: []SaleItemInput{
			{ProductID: &product.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 8, s.products[product.ID].Quantity)

	refunded, err := svc.Refund(context.Background(), &RefundInput{
		SaleID:   sale.ID,
		Kind:     enum.RefundKindDinheiro,
		Operator: "Maria",
	})
	require.NoError(t, err)

	assert.Equal(t, enum.SaleStatusEstornadoDinheiro, refunded.Status)
	require.NotNil(t, refunded.RefundedAt)
	assert.Equal(t, 10, s.products[product.ID].Quantity)

	// ENTRADA at checkout plus a compensating SAIDA, netting to zero
	require.Len(t, s.ledger, 2)
	assert.Equal(t, enum.EntryKindSaida, s.ledger[1].Kind)
	assert.Equal(t, entity.CategoryEstorno, s.ledger[1].Category)
	assert.Equal(t, sale.Total, s.ledger[1].Amount)

	balance, err := (&fakeLedgerRepo{s}).Balance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestRefundDinheiroDoesNotRestockServices(t *testing.T) {
	svc, s := newSaleFixture()
	product := seedProduct(t, s, "Película", 20.00, 5)
	cleaning := &entity.Product{
		ID:    uuid.New(),
		Name:  "Limpeza interna",
		Code:  "S-Limpeza",
		Kind:  enum.ItemKindServico,
		Price: 5000,
	}
	s.products[cleaning.ID] = cleaning

	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CustomerName: "Ana",
		Method:       enum.PaymentMethodDinheiro,
		AmountPaid:   70,
		Items: []SaleItemInput{
			{ProductID: &product.ID, Quantity: 1},
			{ProductID: &cleaning.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 4, s.products[product.ID].Quantity)
	require.Equal(t, 0, s.products[cleaning.ID].Quantity)

	_, err = svc.Refund(context.Background(), &RefundInput{
		SaleID: sale.ID,
		Kind:   enum.RefundKindDinheiro,
	})
	require.NoError(t, err)

	// The product goes back on the shelf; the service never held stock
	assert.Equal(t, 5, s.products[product.ID].Quantity)
	assert.Equal(t, 0, s.products[cleaning.ID].Quantity)
}

func TestRefundCreditoKeepsCash(t *testing.T) {
	svc, s := newSaleFixture()
	product := seedProduct(t, s, "Cabo", 25.00, 10)

	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CustomerName: "Ana",
		Method:       enum.PaymentMethodPix,
		AmountPaid:   25,
		Items: []SaleItemInput{
			{ProductID: &product.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	refunded, err := svc.Refund(context.Background(), &RefundInput{
		SaleID: sale.ID,
		Kind:   enum.RefundKindCredito,
	})
	require.NoError(t, err)

	assert.Equal(t, enum.SaleStatusEstornadoCredito, refunded.Status)
	// Store credit posts nothing and keeps the goods out
	assert.Len(t, s.ledger, 1)
	assert.Equal(t, 9, s.products[product.ID].Quantity)
}

func TestRefundIsExactlyOnce(t *testing.T) {
	svc, s := newSaleFixture()

	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CustomerName: "Ana",
		Method:       enum.PaymentMethodDinheiro,
		AmountPaid:   30,
		Items: []SaleItemInput{
			{Name: "Limpeza", Quantity: 1, UnitPrice: 30},
		},
	})
	require.NoError(t, err)

	_, err = svc.Refund(context.Background(), &RefundInput{
		SaleID: sale.ID,
		Kind:   enum.RefundKindDinheiro,
	})
	require.NoError(t, err)

	_, err = svc.Refund(context.Background(), &RefundInput{
		SaleID: sale.ID,
		Kind:   enum.RefundKindDinheiro,
	})
	assert.ErrorIs(t, err, apperror.ErrAlreadyRefunded)
	assert.Len(t, s.ledger, 2)
}

func TestReceivePaymentFlipsStatusOnly(t *testing.T) {
	svc, s := newSaleFixture()

	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CustomerName: "Ana",
		Method:       enum.PaymentMethodCrediario,
		Items: []SaleItemInput{
			{Name: "Reparo placa", Quantity: 1, UnitPrice: 200},
		},
	})
	require.NoError(t, err)
	require.Equal(t, enum.SaleStatusAReceber, sale.Status)
	require.Len(t, s.ledger, 1)

	paid, err := svc.ReceivePayment(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.SaleStatusPago, paid.Status)

	// No second cash entry; the gross was booked at checkout
	assert.Len(t, s.ledger, 1)
}

func TestReceivePaymentOnRefundedSale(t *testing.T) {
	svc, _ := newSaleFixture()

	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CustomerName: "Ana",
		Method:       enum.PaymentMethodDinheiro,
		Items: []SaleItemInput{
			{Name: "Reparo", Quantity: 1, UnitPrice: 50},
		},
	})
	require.NoError(t, err)

	_, err = svc.Refund(context.Background(), &RefundInput{
		SaleID: sale.ID,
		Kind:   enum.RefundKindCredito,
	})
	require.NoError(t, err)

	_, err = svc.ReceivePayment(context.Background(), sale.ID)
	assert.ErrorIs(t, err, apperror.ErrAlreadyRefunded)
}

func TestCreateSaleLineDiscountClampsAtZero(t *testing.T) {
	svc, _ := newSaleFixture()

	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CustomerName: "Ana",
		Method:       enum.PaymentMethodPix,
		AmountPaid:   100,
		Items: []SaleItemInput{
			{Name: "Brinde", Quantity: 1, UnitPrice: 10, Discount: 15},
			{Name: "Serviço", Quantity: 1, UnitPrice: 100},
		},
	})
	require.NoError(t, err)

	// The over-discounted line contributes zero, never a negative amount
	assert.Equal(t, int64(10000), sale.SubTotal)
}

func TestCreateSaleRequiresItems(t *testing.T) {
	svc, _ := newSaleFixture()

	_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CustomerName: "Ana",
		Method:       enum.PaymentMethodPix,
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 400, appErr.Code)
}
