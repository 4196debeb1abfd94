package repository

import (
	"context"
	"errors"
	"time"

	"github.com/assistec/assistec-api/internal/domain/entity"
	"github.com/assistec/assistec-api/internal/domain/enum"
	domainRepo "github.com/assistec/assistec-api/internal/domain/repository"
	"github.com/assistec/assistec-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ledgerRepository persists the append-only cash log. The type deliberately
// implements no update or delete; the balance must stay reproducible from
// the raw entries.
type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *gorm.DB) domainRepo.LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Create(ctx context.Context, entry *entity.LedgerEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *ledgerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.LedgerEntry, error) {
	var entry entity.LedgerEntry
	err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &entry, err
}

func (r *ledgerRepository) applyFilters(query *gorm.DB, kind *enum.EntryKind, category string, start, end *time.Time) *gorm.DB {
	if kind != nil {
		query = query.Where("kind = ?", *kind)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if start != nil {
		query = query.Where("created_at >= ?", *start)
	}
	if end != nil {
		query = query.Where("created_at < ?", *end)
	}
	return query
}

func (r *ledgerRepository) List(ctx context.Context, params *domainRepo.LedgerFilterParams) ([]entity.LedgerEntry, int64, error) {
	var entries []entity.LedgerEntry
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.LedgerEntry{})
	query = r.applyFilters(query, params.Kind, params.Category, params.StartDate, params.EndDate)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Find(&entries).Error

	return entries, total, err
}

// ListWithCursor pages through the entry log keyset-style. Fetches limit+1
// rows so the caller can detect whether more entries follow.
func (r *ledgerRepository) ListWithCursor(ctx context.Context, params *domainRepo.LedgerCursorParams) ([]entity.LedgerEntry, error) {
	var entries []entity.LedgerEntry

	params.Cursor.Validate()
	query := r.db.WithContext(ctx).Model(&entity.LedgerEntry{})
	query = r.applyFilters(query, params.Kind, params.Category, params.StartDate, params.EndDate)

	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}

	if cursor != nil {
		if params.Cursor.Direction == pagination.CursorDirectionNext {
			query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		} else {
			query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
		}
	}

	err = query.Limit(params.Cursor.Limit + 1).
		Order("created_at DESC, id DESC").
		Find(&entries).Error

	return entries, err
}

func (r *ledgerRepository) SumByKind(ctx context.Context, kind enum.EntryKind, start, end *time.Time) (int64, error) {
	var total *int64

	query := r.db.WithContext(ctx).Model(&entity.LedgerEntry{}).
		Where("kind = ?", kind)
	if start != nil {
		query = query.Where("created_at >= ?", *start)
	}
	if end != nil {
		query = query.Where("created_at < ?", *end)
	}

	if err := query.Select("SUM(amount)").Scan(&total).Error; err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

func (r *ledgerRepository) SumByCategory(ctx context.Context, start, end *time.Time) ([]domainRepo.CategorySum, error) {
	var sums []domainRepo.CategorySum

	query := r.db.WithContext(ctx).Model(&entity.LedgerEntry{})
	if start != nil {
		query = query.Where("created_at >= ?", *start)
	}
	if end != nil {
		query = query.Where("created_at < ?", *end)
	}

	err := query.
		Select("category, kind, SUM(amount) as total").
		Group("category, kind").
		Order("total DESC").
		Scan(&sums).Error

	return sums, err
}

func (r *ledgerRepository) Balance(ctx context.Context) (int64, error) {
	var balance *int64

	err := r.db.WithContext(ctx).Model(&entity.LedgerEntry{}).
		Select("SUM(CASE WHEN kind = ? THEN amount ELSE -amount END)", enum.EntryKindEntrada).
		Scan(&balance).Error
	if err != nil {
		return 0, err
	}
	if balance == nil {
		return 0, nil
	}
	return *balance, nil
}
