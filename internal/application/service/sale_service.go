package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/assistec/assistec-api/internal/domain/entity"
	"github.com/assistec/assistec-api/internal/domain/enum"
	"github.com/assistec/assistec-api/internal/domain/repository"
	"github.com/assistec/assistec-api/pkg/apperror"
	"github.com/assistec/assistec-api/pkg/pagination"
	"github.com/assistec/assistec-api/pkg/utils"
	"github.com/google/uuid"
)

// SaleService handles point-of-sale checkouts and refunds
type SaleService struct {
	saleRepo     repository.SaleRepository
	saleItemRepo repository.SaleItemRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	ledgerRepo   repository.LedgerRepository
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	saleItemRepo repository.SaleItemRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	ledgerRepo repository.LedgerRepository,
) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		saleItemRepo: saleItemRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		ledgerRepo:   ledgerRepo,
	}
}

// SaleItemInput represents an item in a checkout
type SaleItemInput struct {
	ProductID *uuid.UUID
	Name      string
	Quantity  int
	UnitPrice float64
	Discount  float64
}

// CreateSaleInput represents the checkout input
type CreateSaleInput struct {
	OperatorID   uuid.UUID
	Operator     string
	CustomerID   *uuid.UUID
	CustomerName string
	Method       enum.PaymentMethod
	DeliveryType enum.DeliveryType
	ShippingCost float64
	AmountPaid   float64
	PreOrder     bool
	Items        []SaleItemInput
}

// CreateSale runs a checkout: computes totals, decrements stock, persists
// the sale and posts one gross ENTRADA to the ledger. Product sales carry no
// fee; fees apply only to service order settlement.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Sale must have at least one item")
	}
	if !input.Method.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown payment method")
	}
	if input.ShippingCost < 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "shipping_cost", Message: "Shipping cost cannot be negative"},
		})
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		if input.CustomerName == "" {
			input.CustomerName = customer.Name
		}
	}

	// Batch fetch referenced products in one query (prevents N+1)
	productIDs := make([]uuid.UUID, 0, len(input.Items))
	for _, item := range input.Items {
		if item.ProductID != nil {
			productIDs = append(productIDs, *item.ProductID)
		}
	}

	productMap := make(map[uuid.UUID]*entity.Product, len(productIDs))
	if len(productIDs) > 0 {
		products, err := s.productRepo.GetByIDs(ctx, productIDs)
		if err != nil {
			return nil, err
		}
		for i := range products {
			productMap[products[i].ID] = &products[i]
		}
	}

	var subTotal int64
	saleItems := make([]entity.SaleItem, 0, len(input.Items))
	stockDecrements := make(map[uuid.UUID]int)

	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "items", Message: "Item quantity must be greater than zero"},
			})
		}
		if item.Discount < 0 {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "items", Message: "Item discount cannot be negative"},
			})
		}

		name := item.Name
		unitPrice := int64(math.Round(item.UnitPrice * 100))

		if item.ProductID != nil {
			product, exists := productMap[*item.ProductID]
			if !exists {
				return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
			}
			if name == "" {
				name = product.Name
			}
			if item.UnitPrice == 0 {
				unitPrice = product.Price
			}
			// Services have no stock to move
			if product.Kind == enum.ItemKindProduto {
				stockDecrements[product.ID] += item.Quantity
			}
		}
		if name == "" {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "items", Message: "Item name is required"},
			})
		}

		discount := int64(math.Round(item.Discount * 100))
		lineTotal := unitPrice*int64(item.Quantity) - discount
		if lineTotal < 0 {
			lineTotal = 0
		}
		subTotal += lineTotal

		saleItems = append(saleItems, entity.SaleItem{
			ProductID:   item.ProductID,
			ProductName: name,
			Quantity:    item.Quantity,
			UnitPrice:   unitPrice,
			Discount:    discount,
			Total:       lineTotal,
		})
	}

	var shipping int64
	if input.DeliveryType == enum.DeliveryTypeEntrega {
		shipping = int64(math.Round(input.ShippingCost * 100))
	}
	total := subTotal + shipping
	paidCents := int64(math.Round(input.AmountPaid * 100))

	status := enum.SaleStatusAReceber
	switch {
	case input.PreOrder:
		status = enum.SaleStatusEncomenda
	case paidCents >= total:
		status = enum.SaleStatusPago
	}

	// Atomically decrement stock before persisting anything else
	if len(stockDecrements) > 0 {
		failedIDs, err := s.productRepo.AtomicDecrementBatch(ctx, stockDecrements)
		if err != nil {
			return nil, err
		}
		if len(failedIDs) > 0 {
			var failedNames []string
			for _, id := range failedIDs {
				if product, exists := productMap[id]; exists {
					failedNames = append(failedNames, product.Name)
				}
			}
			return nil, apperror.NewAppError(400, fmt.Sprintf("Insufficient stock for: %v", failedNames))
		}
	}

	sale := &entity.Sale{
		SaleNo:        utils.GenerateSaleNo(),
		CustomerID:    input.CustomerID,
		CustomerName:  input.CustomerName,
		Status:        status,
		PaymentMethod: input.Method,
		DeliveryType:  input.DeliveryType,
		SubTotal:      subTotal,
		ShippingCost:  shipping,
		Total:         total,
		OperatorID:    input.OperatorID,
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		_ = s.productRepo.AtomicIncrementBatch(ctx, stockDecrements)
		return nil, err
	}

	for i := range saleItems {
		saleItems[i].SaleID = sale.ID
	}
	if err := s.saleItemRepo.CreateBatch(ctx, saleItems); err != nil {
		_ = s.productRepo.AtomicIncrementBatch(ctx, stockDecrements)
		_ = s.saleRepo.Delete(ctx, sale.ID)
		return nil, err
	}

	// The ledger always holds the gross total; receivables are tracked on
	// the sale status, not the cash log.
	if total > 0 {
		entry := &entity.LedgerEntry{
			Kind:        enum.EntryKindEntrada,
			Category:    entity.CategoryVenda,
			Amount:      total,
			Description: fmt.Sprintf("Venda %s - %s (%s)", sale.SaleNo, sale.CustomerName, input.Method),
			Operator:    input.Operator,
		}
		if err := s.ledgerRepo.Create(ctx, entry); err != nil {
			_ = s.productRepo.AtomicIncrementBatch(ctx, stockDecrements)
			_ = s.saleRepo.Delete(ctx, sale.ID)
			return nil, err
		}
	}

	return s.saleRepo.GetWithItems(ctx, sale.ID)
}

// GetSale retrieves a sale by ID
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists sales with filtering
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// ReceivePayment marks an open sale (A Receber or Encomenda) as paid. The
// cash entry was already posted at checkout, so this is a status flip only.
func (s *SaleService) ReceivePayment(ctx context.Context, saleID uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if sale.IsRefunded() {
		return nil, apperror.ErrAlreadyRefunded
	}
	if sale.Status == enum.SaleStatusPago {
		return sale, nil
	}

	sale.Status = enum.SaleStatusPago
	if err := s.saleRepo.Update(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// RefundInput represents the refund input
type RefundInput struct {
	SaleID   uuid.UUID
	Kind     enum.RefundKind
	Operator string
}

// Refund reverses a sale exactly once. Store credit only flips the status;
// a money refund also posts a compensating SAIDA and returns product stock.
// Refunded sales are terminal, so a second refund is rejected without
// posting anything.
func (s *SaleService) Refund(ctx context.Context, input *RefundInput) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, input.SaleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if sale.IsRefunded() {
		return nil, apperror.ErrAlreadyRefunded
	}

	prevStatus := sale.Status
	now := time.Now()
	sale.RefundedAt = &now

	switch input.Kind {
	case enum.RefundKindCredito:
		// Store credit keeps the cash; no ledger movement
		sale.Status = enum.SaleStatusEstornadoCredito
		if err := s.saleRepo.Update(ctx, sale); err != nil {
			return nil, err
		}

	case enum.RefundKindDinheiro:
		sale.Status = enum.SaleStatusEstornadoDinheiro
		if err := s.saleRepo.Update(ctx, sale); err != nil {
			return nil, err
		}

		if sale.Total > 0 {
			entry := &entity.LedgerEntry{
				Kind:        enum.EntryKindSaida,
				Category:    entity.CategoryEstorno,
				Amount:      sale.Total,
				Description: fmt.Sprintf("Estorno Venda %s - %s", sale.SaleNo, sale.CustomerName),
				Operator:    input.Operator,
			}
			if err := s.ledgerRepo.Create(ctx, entry); err != nil {
				sale.Status = prevStatus
				sale.RefundedAt = nil
				if revertErr := s.saleRepo.Update(ctx, sale); revertErr != nil {
					log.Printf("Warning: failed to revert sale %s after ledger error: %v", sale.SaleNo, revertErr)
				}
				return nil, err
			}
		}

		// Goods came back with the money. Services have no stock to
		// return, so only product-kind catalog rows are restored.
		stockIncrements := s.restockableQuantities(ctx, sale)
		if len(stockIncrements) > 0 {
			if err := s.productRepo.AtomicIncrementBatch(ctx, stockIncrements); err != nil {
				log.Printf("Warning: failed to restore stock for sale %s: %v", sale.SaleNo, err)
			}
		}

	default:
		return nil, apperror.NewBadRequestError("Unknown refund kind")
	}

	return sale, nil
}

// restockableQuantities maps the sale's product-kind items to the quantities
// that go back on the shelf after a money refund. Mirrors the checkout
// decrement, which also skips service-kind rows.
func (s *SaleService) restockableQuantities(ctx context.Context, sale *entity.Sale) map[uuid.UUID]int {
	productIDs := make([]uuid.UUID, 0, len(sale.Items))
	for _, item := range sale.Items {
		if item.ProductID != nil {
			productIDs = append(productIDs, *item.ProductID)
		}
	}
	if len(productIDs) == 0 {
		return nil
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		log.Printf("Warning: failed to load products for refund of sale %s: %v", sale.SaleNo, err)
		return nil
	}
	stocked := make(map[uuid.UUID]bool, len(products))
	for i := range products {
		if products[i].Kind == enum.ItemKindProduto {
			stocked[products[i].ID] = true
		}
	}

	increments := make(map[uuid.UUID]int)
	for _, item := range sale.Items {
		if item.ProductID != nil && stocked[*item.ProductID] {
			increments[*item.ProductID] += item.Quantity
		}
	}
	return increments
}
