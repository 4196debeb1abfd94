package service

import (
	"context"
	"time"

	"github.com/assistec/assistec-api/internal/domain/enum"
	"github.com/assistec/assistec-api/internal/domain/repository"
)

// ReportService computes financial summaries from the ledger and order
// queue. Everything here is recomputed per call; nothing is cached or
// persisted, so reports always reflect the entries as written.
type ReportService struct {
	ledgerRepo repository.LedgerRepository
	orderRepo  repository.OrderRepository
	goalRepo   repository.GoalRepository
}

// NewReportService creates a new report service
func NewReportService(ledgerRepo repository.LedgerRepository, orderRepo repository.OrderRepository, goalRepo repository.GoalRepository) *ReportService {
	return &ReportService{
		ledgerRepo: ledgerRepo,
		orderRepo:  orderRepo,
		goalRepo:   goalRepo,
	}
}

// PeriodSummary holds entry/exit totals for a date range, in decimal
type PeriodSummary struct {
	TotalEntries float64 `json:"total_entries"`
	TotalExits   float64 `json:"total_exits"`
	Balance      float64 `json:"balance"`
}

// CategorySummary holds revenue for a single ledger category
type CategorySummary struct {
	Category string  `json:"category"`
	Kind     string  `json:"kind"`
	Total    float64 `json:"total"`
}

// DailyRevenue holds the gross revenue booked on a single day
type DailyRevenue struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

// DashboardSummary is the landing page payload
type DashboardSummary struct {
	OrdersByStatus map[string]int64 `json:"orders_by_status"`
	OpenOrders     int64            `json:"open_orders"`
	MonthRevenue   float64          `json:"month_revenue"`
	MonthGoal      float64          `json:"month_goal"`
	GoalProgress   float64          `json:"goal_progress"`
	CashBalance    float64          `json:"cash_balance"`
	LastSevenDays  []DailyRevenue   `json:"last_seven_days"`
}

// Summary returns entry and exit totals for an optional date range
func (s *ReportService) Summary(ctx context.Context, start, end *time.Time) (*PeriodSummary, error) {
	entries, err := s.ledgerRepo.SumByKind(ctx, enum.EntryKindEntrada, start, end)
	if err != nil {
		return nil, err
	}
	exits, err := s.ledgerRepo.SumByKind(ctx, enum.EntryKindSaida, start, end)
	if err != nil {
		return nil, err
	}

	return &PeriodSummary{
		TotalEntries: float64(entries) / 100,
		TotalExits:   float64(exits) / 100,
		Balance:      float64(entries-exits) / 100,
	}, nil
}

// RevenueByCategory breaks the ledger down per category for a date range
func (s *ReportService) RevenueByCategory(ctx context.Context, start, end *time.Time) ([]CategorySummary, error) {
	sums, err := s.ledgerRepo.SumByCategory(ctx, start, end)
	if err != nil {
		return nil, err
	}

	result := make([]CategorySummary, 0, len(sums))
	for _, s := range sums {
		result = append(result, CategorySummary{
			Category: s.Category,
			Kind:     s.Kind.String(),
			Total:    float64(s.Total) / 100,
		})
	}
	return result, nil
}

// Dashboard assembles the operational overview: order queue counts,
// month revenue against goal and the last seven days of gross entries
func (s *ReportService) Dashboard(ctx context.Context) (*DashboardSummary, error) {
	counts, err := s.orderRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	byStatus := make(map[string]int64, len(counts))
	var open int64
	for status, n := range counts {
		byStatus[status.String()] = n
		if !status.IsTerminal() && status != enum.OrderStatusFinalizado {
			open += n
		}
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	monthRevenue, err := s.ledgerRepo.SumByKind(ctx, enum.EntryKindEntrada, &monthStart, &monthEnd)
	if err != nil {
		return nil, err
	}

	var goalCents int64
	goal, err := s.goalRepo.GetByMonth(ctx, now.Year(), int(now.Month()))
	if err != nil {
		return nil, err
	}
	if goal != nil {
		goalCents = goal.Amount
	}

	progress := 0.0
	if goalCents > 0 {
		progress = float64(monthRevenue) / float64(goalCents) * 100
	}

	balance, err := s.ledgerRepo.Balance(ctx)
	if err != nil {
		return nil, err
	}

	days := make([]DailyRevenue, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		dayEnd := dayStart.AddDate(0, 0, 1)

		revenue, err := s.ledgerRepo.SumByKind(ctx, enum.EntryKindEntrada, &dayStart, &dayEnd)
		if err != nil {
			return nil, err
		}
		days = append(days, DailyRevenue{
			Date:    dayStart.Format("2006-01-02"),
			Revenue: float64(revenue) / 100,
		})
	}

	return &DashboardSummary{
		OrdersByStatus: byStatus,
		OpenOrders:     open,
		MonthRevenue:   float64(monthRevenue) / 100,
		MonthGoal:      float64(goalCents) / 100,
		GoalProgress:   progress,
		CashBalance:    float64(balance) / 100,
		LastSevenDays:  days,
	}, nil
}
