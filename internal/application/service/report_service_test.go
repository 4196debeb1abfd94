package service

import (
	"context"
	"testing"
	"time"

	"github.com/assistec/assistec-api/internal/domain/entity"
	"github.com/assistec/assistec-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportFixture() (*ReportService, *memStore) {
	s := newMemStore()
	svc := NewReportService(&fakeLedgerRepo{s}, &fakeOrderRepo{s}, &fakeGoalRepo{s})
	return svc, s
}

func seedEntry(s *memStore, kind enum.EntryKind, category string, cents int64) {
	ledger := &fakeLedgerRepo{s}
	_ = ledger.Create(context.Background(), &entity.LedgerEntry{
		Kind:     kind,
		Category: category,
		Amount:   cents,
	})
}

func TestSummaryTotalsByKind(t *testing.T) {
	svc, s := newReportFixture()
	seedEntry(s, enum.EntryKindEntrada, entity.CategoryVenda, 10000)
	seedEntry(s, enum.EntryKindEntrada, entity.CategoryServico, 25000)
	seedEntry(s, enum.EntryKindSaida, "Sangria", 5000)

	summary, err := svc.Summary(context.Background(), nil, nil)
	require.NoError(t, err)

	assert.InDelta(t, 350.00, summary.TotalEntries, 0.001)
	assert.InDelta(t, 50.00, summary.TotalExits, 0.001)
	assert.InDelta(t, 300.00, summary.Balance, 0.001)
}

func TestRevenueByCategory(t *testing.T) {
	svc, s := newReportFixture()
	seedEntry(s, enum.EntryKindEntrada, entity.CategoryVenda, 10000)
	seedEntry(s, enum.EntryKindEntrada, entity.CategoryVenda, 5000)
	seedEntry(s, enum.EntryKindSaida, entity.CategoryEstorno, 5000)

	sums, err := svc.RevenueByCategory(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Len(t, sums, 2)

	byCategory := make(map[string]CategorySummary, len(sums))
	for _, s := range sums {
		byCategory[s.Category] = s
	}
	assert.InDelta(t, 150.00, byCategory[entity.CategoryVenda].Total, 0.001)
	assert.Equal(t, "Entrada", byCategory[entity.CategoryVenda].Kind)
	assert.InDelta(t, 50.00, byCategory[entity.CategoryEstorno].Total, 0.001)
	assert.Equal(t, "Saída", byCategory[entity.CategoryEstorno].Kind)
}

func TestDashboardAggregates(t *testing.T) {
	svc, s := newReportFixture()
	ctx := context.Background()

	orders := &fakeOrderRepo{s}
	for _, status := range []enum.OrderStatus{
		enum.OrderStatusEmAnalise,
		enum.OrderStatusEmAndamento,
		enum.OrderStatusFinalizado,
		enum.OrderStatusEntregue,
	} {
		require.NoError(t, orders.Create(ctx, &entity.ServiceOrder{
			CustomerName: "Cliente",
			Status:       status,
		}))
	}

	seedEntry(s, enum.EntryKindEntrada, entity.CategoryServico, 60000)
	seedEntry(s, enum.EntryKindSaida, "Sangria", 10000)

	now := time.Now()
	goals := &fakeGoalRepo{s}
	require.NoError(t, goals.Upsert(ctx, &entity.RevenueGoal{
		Year:   now.Year(),
		Month:  int(now.Month()),
		Amount: 120000,
	}))

	dash, err := svc.Dashboard(ctx)
	require.NoError(t, err)

	// Finalizado and Entregue are not part of the open queue
	assert.Equal(t, int64(2), dash.OpenOrders)
	assert.Equal(t, int64(1), dash.OrdersByStatus["Em Análise"])
	assert.Equal(t, int64(1), dash.OrdersByStatus["Finalizado"])

	assert.InDelta(t, 600.00, dash.MonthRevenue, 0.001)
	assert.InDelta(t, 1200.00, dash.MonthGoal, 0.001)
	assert.InDelta(t, 50.0, dash.GoalProgress, 0.001)
	assert.InDelta(t, 500.00, dash.CashBalance, 0.001)

	require.Len(t, dash.LastSevenDays, 7)
	today := dash.LastSevenDays[6]
	assert.Equal(t, now.Format("2006-01-02"), today.Date)
	assert.InDelta(t, 600.00, today.Revenue, 0.001)
}

func TestDashboardWithoutGoal(t *testing.T) {
	svc, _ := newReportFixture()

	dash, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Zero(t, dash.MonthGoal)
	assert.Zero(t, dash.GoalProgress)
}

func TestReportsDoNotMutateTheLedger(t *testing.T) {
	svc, s := newReportFixture()
	seedEntry(s, enum.EntryKindEntrada, entity.CategoryVenda, 10000)

	_, err := svc.Summary(context.Background(), nil, nil)
	require.NoError(t, err)
	_, err = svc.Dashboard(context.Background())
	require.NoError(t, err)

	require.Len(t, s.ledger, 1)
	assert.Equal(t, int64(10000), s.ledger[0].Amount)
}
