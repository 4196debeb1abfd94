package repository

import (
	"context"
	"time"

	"github.com/assistec/assistec-api/internal/domain/entity"
	"github.com/assistec/assistec-api/internal/domain/enum"
	"github.com/assistec/assistec-api/pkg/pagination"
	"github.com/google/uuid"
)

// LedgerFilterParams contains filtering parameters for ledger queries
type LedgerFilterParams struct {
	Pagination *pagination.PaginationParams
	Kind       *enum.EntryKind
	Category   string
	StartDate  *time.Time
	EndDate    *time.Time
}

// LedgerCursorParams contains cursor-based filtering for ledger queries
type LedgerCursorParams struct {
	Cursor    *pagination.CursorParams
	Kind      *enum.EntryKind
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
}

// CategorySum is an aggregate of ledger amounts grouped by category
type CategorySum struct {
	Category string
	Kind     enum.EntryKind
	Total    int64 // cents
}

// LedgerRepository is the append-only store of cash movements. It
// intentionally has no Update or Delete: the running balance must always be
// reproducible by replaying the append log, so corrections are posted as new
// offsetting entries.
type LedgerRepository interface {
	Create(ctx context.Context, entry *entity.LedgerEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.LedgerEntry, error)
	List(ctx context.Context, params *LedgerFilterParams) ([]entity.LedgerEntry, int64, error)
	ListWithCursor(ctx context.Context, params *LedgerCursorParams) ([]entity.LedgerEntry, error)
	// SumByKind returns the gross sum of entries of one kind over a period
	SumByKind(ctx context.Context, kind enum.EntryKind, start, end *time.Time) (int64, error)
	// SumByCategory returns per-category gross sums over a period
	SumByCategory(ctx context.Context, start, end *time.Time) ([]CategorySum, error)
	// Balance returns the signed sum over the whole log
	Balance(ctx context.Context) (int64, error)
}
