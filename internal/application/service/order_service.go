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
	"github.com/google/uuid"
)

// PickupNotifier notifies a customer that their device is ready for pickup.
// Implemented by pkg/email; a no-op implementation is fine.
type PickupNotifier interface {
	SendPickupNotification(email, customerName string, orderNumber int64) error
}

// OrderService drives the service order lifecycle. Every transition is a
// plain status write except Finalizado, which only happens through Settle.
type OrderService struct {
	orderRepo    repository.OrderRepository
	itemRepo     repository.OrderItemRepository
	customerRepo repository.CustomerRepository
	rateRepo     repository.RateTableRepository
	ledgerRepo   repository.LedgerRepository
	notifier     PickupNotifier
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	itemRepo repository.OrderItemRepository,
	customerRepo repository.CustomerRepository,
	rateRepo repository.RateTableRepository,
	ledgerRepo repository.LedgerRepository,
	notifier PickupNotifier,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		itemRepo:     itemRepo,
		customerRepo: customerRepo,
		rateRepo:     rateRepo,
		ledgerRepo:   ledgerRepo,
		notifier:     notifier,
	}
}

// OrderItemInput represents a budgeted line on a new order
type OrderItemInput struct {
	Name      string
	Kind      enum.ItemKind
	UnitPrice float64
}

// CreateOrderInput represents the create order input
type CreateOrderInput struct {
	OperatorID    uuid.UUID
	CustomerID    *uuid.UUID
	CustomerName  string
	CustomerPhone string
	DeviceBrand   string
	DeviceModel   string
	DeviceSerial  string
	Defect        string
	Items         []OrderItemInput
}

// CreateOrder creates a new service order in Em Análise
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.ServiceOrder, error) {
	// Snapshot customer data from the directory when a reference is given
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
		if input.CustomerPhone == "" && customer.Phone != nil {
			input.CustomerPhone = *customer.Phone
		}
	}

	if input.CustomerName == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "customer_name", Message: "Customer name is required"},
		})
	}

	var total int64
	items := make([]entity.ServiceOrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		priceCents := int64(math.Round(item.UnitPrice * 100))
		if priceCents < 0 {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "items", Message: "Item price cannot be negative"},
			})
		}
		total += priceCents
		items = append(items, entity.ServiceOrderItem{
			Name:      item.Name,
			Kind:      item.Kind,
			UnitPrice: priceCents,
		})
	}

	order := &entity.ServiceOrder{
		CustomerID:    input.CustomerID,
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		DeviceBrand:   input.DeviceBrand,
		DeviceModel:   input.DeviceModel,
		DeviceSerial:  input.DeviceSerial,
		Defect:        input.Defect,
		Status:        enum.OrderStatusEmAnalise,
		Total:         total,
		Installments:  1,
		OperatorID:    input.OperatorID,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	for i := range items {
		items[i].OrderID = order.ID
	}
	if len(items) > 0 {
		if err := s.itemRepo.CreateBatch(ctx, items); err != nil {
			return nil, err
		}
	}

	return s.orderRepo.GetWithItems(ctx, order.ID)
}

// GetOrder retrieves an order by ID
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.ServiceOrder, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists orders with filtering
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.ServiceOrder], error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// UpdateStatus moves an order to a new status. The repair workflow allows
// skipping and revisiting steps, so transitions are free-form with two
// exceptions: terminal orders accept nothing, and Finalizado is only
// reachable through Settle.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status enum.OrderStatus) (*entity.ServiceOrder, error) {
	if !status.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown order status")
	}
	if status == enum.OrderStatusFinalizado {
		return nil, apperror.NewBadRequestError("Finalizado requires settlement with a payment method")
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.Status.IsTerminal() {
		return nil, apperror.NewConflictError(fmt.Sprintf("Order is %s and cannot change status", order.Status))
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	order.Status = status

	if status == enum.OrderStatusAguardandoRetirada {
		s.notifyPickup(ctx, order)
	}

	return order, nil
}

// notifyPickup emails the customer that the device is ready. Best effort:
// a notification failure never fails the transition.
func (s *OrderService) notifyPickup(ctx context.Context, order *entity.ServiceOrder) {
	if s.notifier == nil || order.CustomerID == nil {
		return
	}
	customer, err := s.customerRepo.GetByID(ctx, *order.CustomerID)
	if err != nil || customer == nil || customer.Email == nil {
		return
	}
	if err := s.notifier.SendPickupNotification(*customer.Email, order.CustomerName, order.Number); err != nil {
		log.Printf("Warning: failed to send pickup notification for OS #%d: %v", order.Number, err)
	}
}

// SettleOrderInput represents the settle order input
type SettleOrderInput struct {
	OrderID      uuid.UUID
	Method       enum.PaymentMethod
	Installments int
	// OverrideAmount bills an order that has no budgeted items. Decimal.
	OverrideAmount *float64
	Operator       string
}

// Settle finalizes an order with a payment method: it resolves the fee rate
// from the configured channels, records fee and net on the order and posts
// the gross amount to the cash ledger.
//
// The order write is sequenced before the ledger append; if the append
// fails the order is reverted so the action applies fully or not at all.
// The ledger description carries the OS number so a reconciliation pass can
// detect missing posts.
func (s *OrderService) Settle(ctx context.Context, input *SettleOrderInput) (*entity.ServiceOrder, error) {
	if !input.Method.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown payment method")
	}
	if input.Installments < 1 {
		input.Installments = 1
	}

	order, err := s.orderRepo.GetWithItems(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.IsSettled() {
		return nil, apperror.ErrAlreadySettled
	}
	if order.Status.IsTerminal() {
		return nil, apperror.NewConflictError(fmt.Sprintf("Order is %s and cannot be settled", order.Status))
	}

	total := order.Total
	if total <= 0 {
		if input.OverrideAmount == nil || *input.OverrideAmount <= 0 {
			return nil, apperror.NewInvalidSettlementError("Order has no billable amount; add items or provide an override amount")
		}
		total = int64(math.Round(*input.OverrideAmount * 100))
	}

	rate := s.resolveRate(ctx, input.Method, input.Installments)
	fee := int64(math.Round(float64(total) * rate / 100))
	net := total - fee

	prev := *order
	now := time.Now()
	order.Status = enum.OrderStatusFinalizado
	order.PaymentMethod = &input.Method
	order.Installments = input.Installments
	order.Total = total
	order.Fee = &fee
	order.NetTotal = &net
	order.SettledAt = &now

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	entry := &entity.LedgerEntry{
		Kind:        enum.EntryKindEntrada,
		Category:    entity.CategoryServico,
		Amount:      total,
		Description: fmt.Sprintf("Faturamento OS #%d - %s (%s)", order.Number, order.CustomerName, input.Method),
		Operator:    input.Operator,
	}
	if err := s.ledgerRepo.Create(ctx, entry); err != nil {
		// Roll the order back so a retry can settle again
		if revertErr := s.orderRepo.Update(ctx, &prev); revertErr != nil {
			log.Printf("Warning: failed to revert OS #%d after ledger error: %v", order.Number, revertErr)
		}
		return nil, err
	}

	return order, nil
}

// resolveRate looks up the fee percentage. A missing or unreadable rate
// table resolves to 0% so configuration problems never block money from
// being recorded.
func (s *OrderService) resolveRate(ctx context.Context, method enum.PaymentMethod, installments int) float64 {
	table, err := s.rateRepo.GetRateTable(ctx)
	if err != nil {
		log.Printf("Warning: rate table unavailable, settling at 0%%: %v", err)
		return 0
	}
	return table.FeeFor(method, installments)
}
