package service

import (
	"context"
	"time"

	"github.com/assistec/assistec-api/internal/domain/entity"
	"github.com/assistec/assistec-api/internal/domain/enum"
	domainRepo "github.com/assistec/assistec-api/internal/domain/repository"
	"github.com/assistec/assistec-api/pkg/pagination"
	"github.com/google/uuid"
)

// memStore backs the in-memory repository fakes. Reads and writes copy
// entities so a service mutating a returned pointer cannot bypass Update.
type memStore struct {
	orders     map[uuid.UUID]*entity.ServiceOrder
	orderItems map[uuid.UUID][]entity.ServiceOrderItem
	sales      map[uuid.UUID]*entity.Sale
	saleItems  map[uuid.UUID][]entity.SaleItem
	products   map[uuid.UUID]*entity.Product
	customers  map[uuid.UUID]*entity.Customer
	users      map[uuid.UUID]*entity.User
	ledger     []*entity.LedgerEntry
	rateTable  *entity.RateTable
	company    *entity.CompanyProfile
	goals      map[[2]int]*entity.RevenueGoal

	// error injection
	rateErr   error
	ledgerErr error

	nextOrderNo int64
}

func newMemStore() *memStore {
	return &memStore{
		orders:     make(map[uuid.UUID]*entity.ServiceOrder),
		orderItems: make(map[uuid.UUID][]entity.ServiceOrderItem),
		sales:      make(map[uuid.UUID]*entity.Sale),
		saleItems:  make(map[uuid.UUID][]entity.SaleItem),
		products:   make(map[uuid.UUID]*entity.Product),
		customers:  make(map[uuid.UUID]*entity.Customer),
		users:      make(map[uuid.UUID]*entity.User),
		rateTable:  &entity.RateTable{},
		goals:      make(map[[2]int]*entity.RevenueGoal),
	}
}

// --- orders ---

type fakeOrderRepo struct{ s *memStore }

func (r *fakeOrderRepo) Create(ctx context.Context, order *entity.ServiceOrder) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	r.s.nextOrderNo++
	order.Number = r.s.nextOrderNo
	order.CreatedAt = time.Now()
	cp := *order
	r.s.orders[order.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceOrder, error) {
	order, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *order
	return &cp, nil
}

func (r *fakeOrderRepo) GetByNumber(ctx context.Context, number int64) (*entity.ServiceOrder, error) {
	for _, order := range r.s.orders {
		if order.Number == number {
			cp := *order
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.ServiceOrder, error) {
	order, err := r.GetByID(ctx, id)
	if err != nil || order == nil {
		return order, err
	}
	order.Items = append([]entity.ServiceOrderItem(nil), r.s.orderItems[id]...)
	return order, nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, order *entity.ServiceOrder) error {
	cp := *order
	cp.Items = nil
	r.s.orders[order.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error {
	if order, ok := r.s.orders[id]; ok {
		order.Status = status
	}
	return nil
}

func (r *fakeOrderRepo) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.ServiceOrder, int64, error) {
	result := make([]entity.ServiceOrder, 0, len(r.s.orders))
	for _, order := range r.s.orders {
		result = append(result, *order)
	}
	return result, int64(len(result)), nil
}

func (r *fakeOrderRepo) CountByStatus(ctx context.Context) (map[enum.OrderStatus]int64, error) {
	counts := make(map[enum.OrderStatus]int64)
	for _, order := range r.s.orders {
		counts[order.Status]++
	}
	return counts, nil
}

type fakeOrderItemRepo struct{ s *memStore }

func (r *fakeOrderItemRepo) CreateBatch(ctx context.Context, items []entity.ServiceOrderItem) error {
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		r.s.orderItems[items[i].OrderID] = append(r.s.orderItems[items[i].OrderID], items[i])
	}
	return nil
}

func (r *fakeOrderItemRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.ServiceOrderItem, error) {
	return append([]entity.ServiceOrderItem(nil), r.s.orderItems[orderID]...), nil
}

func (r *fakeOrderItemRepo) DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error {
	delete(r.s.orderItems, orderID)
	return nil
}

// --- sales ---

type fakeSaleRepo struct{ s *memStore }

func (r *fakeSaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	sale.CreatedAt = time.Now()
	cp := *sale
	r.s.sales[sale.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *sale
	return &cp, nil
}

func (r *fakeSaleRepo) GetBySaleNo(ctx context.Context, saleNo string) (*entity.Sale, error) {
	for _, sale := range r.s.sales {
		if sale.SaleNo == saleNo {
			cp := *sale
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSaleRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := r.GetByID(ctx, id)
	if err != nil || sale == nil {
		return sale, err
	}
	sale.Items = append([]entity.SaleItem(nil), r.s.saleItems[id]...)
	return sale, nil
}

func (r *fakeSaleRepo) Update(ctx context.Context, sale *entity.Sale) error {
	cp := *sale
	cp.Items = nil
	r.s.sales[sale.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.s.sales, id)
	delete(r.s.saleItems, id)
	return nil
}

func (r *fakeSaleRepo) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	result := make([]entity.Sale, 0, len(r.s.sales))
	for _, sale := range r.s.sales {
		result = append(result, *sale)
	}
	return result, int64(len(result)), nil
}

type fakeSaleItemRepo struct{ s *memStore }

func (r *fakeSaleItemRepo) CreateBatch(ctx context.Context, items []entity.SaleItem) error {
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		r.s.saleItems[items[i].SaleID] = append(r.s.saleItems[items[i].SaleID], items[i])
	}
	return nil
}

func (r *fakeSaleItemRepo) GetBySaleID(ctx context.Context, saleID uuid.UUID) ([]entity.SaleItem, error) {
	return append([]entity.SaleItem(nil), r.s.saleItems[saleID]...), nil
}

// --- products ---

type fakeProductRepo struct{ s *memStore }

func (r *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	cp := *product
	r.s.products[product.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *product
	return &cp, nil
}

func (r *fakeProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	for _, product := range r.s.products {
		if product.Code == code {
			cp := *product
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	result := make([]entity.Product, 0, len(ids))
	for _, id := range ids {
		if product, ok := r.s.products[id]; ok {
			result = append(result, *product)
		}
	}
	return result, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	cp := *product
	r.s.products[product.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.s.products, id)
	return nil
}

func (r *fakeProductRepo) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	result := make([]entity.Product, 0, len(r.s.products))
	for _, product := range r.s.products {
		result = append(result, *product)
	}
	return result, int64(len(result)), nil
}

func (r *fakeProductRepo) AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	var failed []uuid.UUID
	for id, qty := range decrements {
		product, ok := r.s.products[id]
		if !ok || product.Quantity < qty {
			failed = append(failed, id)
		}
	}
	if len(failed) > 0 {
		return failed, nil
	}
	for id, qty := range decrements {
		r.s.products[id].Quantity -= qty
	}
	return nil, nil
}

func (r *fakeProductRepo) AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error {
	for id, qty := range increments {
		if product, ok := r.s.products[id]; ok {
			product.Quantity += qty
		}
	}
	return nil
}

// --- customers ---

type fakeCustomerRepo struct{ s *memStore }

func (r *fakeCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	cp := *customer
	r.s.customers[customer.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *customer
	return &cp, nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	cp := *customer
	r.s.customers[customer.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.s.customers, id)
	return nil
}

func (r *fakeCustomerRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	result := make([]entity.Customer, 0, len(r.s.customers))
	for _, customer := range r.s.customers {
		result = append(result, *customer)
	}
	return result, int64(len(result)), nil
}

// --- ledger ---

type fakeLedgerRepo struct{ s *memStore }

func (r *fakeLedgerRepo) Create(ctx context.Context, entry *entity.LedgerEntry) error {
	if r.s.ledgerErr != nil {
		return r.s.ledgerErr
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now()
	cp := *entry
	r.s.ledger = append(r.s.ledger, &cp)
	return nil
}

func (r *fakeLedgerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.LedgerEntry, error) {
	for _, entry := range r.s.ledger {
		if entry.ID == id {
			cp := *entry
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeLedgerRepo) List(ctx context.Context, params *domainRepo.LedgerFilterParams) ([]entity.LedgerEntry, int64, error) {
	result := make([]entity.LedgerEntry, 0, len(r.s.ledger))
	for _, entry := range r.s.ledger {
		result = append(result, *entry)
	}
	return result, int64(len(result)), nil
}

func (r *fakeLedgerRepo) ListWithCursor(ctx context.Context, params *domainRepo.LedgerCursorParams) ([]entity.LedgerEntry, error) {
	result := make([]entity.LedgerEntry, 0, len(r.s.ledger))
	for i := len(r.s.ledger) - 1; i >= 0; i-- {
		result = append(result, *r.s.ledger[i])
	}
	return result, nil
}

func (r *fakeLedgerRepo) SumByKind(ctx context.Context, kind enum.EntryKind, start, end *time.Time) (int64, error) {
	var total int64
	for _, entry := range r.s.ledger {
		if entry.Kind != kind {
			continue
		}
		if start != nil && entry.CreatedAt.Before(*start) {
			continue
		}
		if end != nil && !entry.CreatedAt.Before(*end) {
			continue
		}
		total += entry.Amount
	}
	return total, nil
}

func (r *fakeLedgerRepo) SumByCategory(ctx context.Context, start, end *time.Time) ([]domainRepo.CategorySum, error) {
	type key struct {
		category string
		kind     enum.EntryKind
	}
	totals := make(map[key]int64)
	for _, entry := range r.s.ledger {
		totals[key{entry.Category, entry.Kind}] += entry.Amount
	}
	result := make([]domainRepo.CategorySum, 0, len(totals))
	for k, total := range totals {
		result = append(result, domainRepo.CategorySum{Category: k.category, Kind: k.kind, Total: total})
	}
	return result, nil
}

func (r *fakeLedgerRepo) Balance(ctx context.Context) (int64, error) {
	var balance int64
	for _, entry := range r.s.ledger {
		balance += entry.Signed()
	}
	return balance, nil
}

// --- settings ---

type fakeRateRepo struct{ s *memStore }

func (r *fakeRateRepo) GetRateTable(ctx context.Context) (*entity.RateTable, error) {
	if r.s.rateErr != nil {
		return nil, r.s.rateErr
	}
	return r.s.rateTable, nil
}

func (r *fakeRateRepo) ReplaceCardChannels(ctx context.Context, channels []entity.CardChannel) error {
	r.s.rateTable.CardChannels = channels
	return nil
}

func (r *fakeRateRepo) ReplacePixChannels(ctx context.Context, channels []entity.PixChannel) error {
	r.s.rateTable.PixChannels = channels
	return nil
}

type fakeCompanyRepo struct{ s *memStore }

func (r *fakeCompanyRepo) Get(ctx context.Context) (*entity.CompanyProfile, error) {
	if r.s.company == nil {
		return nil, nil
	}
	cp := *r.s.company
	return &cp, nil
}

func (r *fakeCompanyRepo) Upsert(ctx context.Context, profile *entity.CompanyProfile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	cp := *profile
	r.s.company = &cp
	return nil
}

type fakeGoalRepo struct{ s *memStore }

func (r *fakeGoalRepo) GetByMonth(ctx context.Context, year, month int) (*entity.RevenueGoal, error) {
	goal, ok := r.s.goals[[2]int{year, month}]
	if !ok {
		return nil, nil
	}
	cp := *goal
	return &cp, nil
}

func (r *fakeGoalRepo) Upsert(ctx context.Context, goal *entity.RevenueGoal) error {
	if goal.ID == uuid.Nil {
		goal.ID = uuid.New()
	}
	cp := *goal
	r.s.goals[[2]int{goal.Year, goal.Month}] = &cp
	return nil
}

// --- users ---

type fakeUserRepo struct{ s *memStore }

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *user
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range r.s.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.s.users, id)
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.User, int64, error) {
	result := make([]entity.User, 0, len(r.s.users))
	for _, user := range r.s.users {
		result = append(result, *user)
	}
	return result, int64(len(result)), nil
}

// --- notifications ---

type fakeNotifier struct {
	sent []int64
}

func (n *fakeNotifier) SendPickupNotification(email, customerName string, orderNumber int64) error {
	n.sent = append(n.sent, orderNumber)
	return nil
}
