package service

import (
	"context"
	"math"
	"time"

	"github.com/assistec/assistec-api/internal/domain/entity"
	"github.com/assistec/assistec-api/internal/domain/enum"
	"github.com/assistec/assistec-api/internal/domain/repository"
	"github.com/assistec/assistec-api/pkg/apperror"
	"github.com/assistec/assistec-api/pkg/pagination"
	"github.com/google/uuid"
)

// CashierService exposes the cash ledger: manual movements (suprimento,
// sangria) and read access. Settlement flows post through the same
// repository, so the balance covers everything.
type CashierService struct {
	ledgerRepo repository.LedgerRepository
}

// NewCashierService creates a new cashier service
func NewCashierService(ledgerRepo repository.LedgerRepository) *CashierService {
	return &CashierService{ledgerRepo: ledgerRepo}
}

// ManualMovementInput represents a manual cash movement
type ManualMovementInput struct {
	Kind        enum.EntryKind
	Category    string
	Amount      float64
	Description string
	Operator    string
}

// ManualMovement appends a manual entry or exit to the ledger
func (s *CashierService) ManualMovement(ctx context.Context, input *ManualMovementInput) (*entity.LedgerEntry, error) {
	amount := int64(math.Round(input.Amount * 100))
	if amount <= 0 {
		return nil, apperror.ErrInvalidAmount
	}
	if input.Category == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "category", Message: "Category is required"},
		})
	}

	entry := &entity.LedgerEntry{
		Kind:        input.Kind,
		Category:    input.Category,
		Amount:      amount,
		Description: input.Description,
		Operator:    input.Operator,
	}
	if err := s.ledgerRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// GetEntry retrieves a single ledger entry
func (s *CashierService) GetEntry(ctx context.Context, id uuid.UUID) (*entity.LedgerEntry, error) {
	entry, err := s.ledgerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperror.NewNotFoundError("Ledger entry")
	}
	return entry, nil
}

// ListEntries lists ledger entries with filtering
func (s *CashierService) ListEntries(ctx context.Context, params *repository.LedgerFilterParams) (*pagination.PaginatedResult[entity.LedgerEntry], error) {
	entries, total, err := s.ledgerRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(entries, pag), nil
}

// ListEntriesWithCursor lists ledger entries with cursor-based pagination
func (s *CashierService) ListEntriesWithCursor(ctx context.Context, params *repository.LedgerCursorParams) (*pagination.CursorPaginatedResult[entity.LedgerEntry], error) {
	entries, err := s.ledgerRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor.Cursor != ""

	cursorPag, items := pagination.NewCursorPagination(entries, params.Cursor.Limit,
		func(e entity.LedgerEntry) string { return e.ID.String() },
		func(e entity.LedgerEntry) time.Time { return e.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// Balance returns the current cash on hand in decimal
func (s *CashierService) Balance(ctx context.Context) (float64, error) {
	cents, err := s.ledgerRepo.Balance(ctx)
	if err != nil {
		return 0, err
	}
	return float64(cents) / 100, nil
}
