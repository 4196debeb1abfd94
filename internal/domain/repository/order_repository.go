package repository

import (
	"context"
	"time"

	"github.com/assistec/assistec-api/internal/domain/entity"
	"github.com/assistec/assistec-api/internal/domain/enum"
	"github.com/assistec/assistec-api/pkg/pagination"
	"github.com/google/uuid"
)

// OrderRepository defines the interface for service order data operations
type OrderRepository interface {
	Create(ctx context.Context, order *entity.ServiceOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceOrder, error)
	GetByNumber(ctx context.Context, number int64) (*entity.ServiceOrder, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.ServiceOrder, error)
	Update(ctx context.Context, order *entity.ServiceOrder) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.ServiceOrder, int64, error)
	// CountByStatus returns how many orders sit in each status (dashboard)
	CountByStatus(ctx context.Context) (map[enum.OrderStatus]int64, error)
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.OrderStatus
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// OrderItemRepository defines the interface for order line item operations
type OrderItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.ServiceOrderItem) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.ServiceOrderItem, error)
	DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error
}
