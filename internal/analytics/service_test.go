package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vegmart/vegmart/internal/analytics"
	"github.com/vegmart/vegmart/internal/domain"
	"github.com/vegmart/vegmart/internal/ledger"
	"github.com/vegmart/vegmart/internal/testdb"
	"github.com/vegmart/vegmart/pkg/common"
)

type fixture struct {
	db        *gorm.DB
	ledger    *ledger.Service
	analytics *analytics.Service
}

func newFixture(t *testing.T) *fixture {
	db := testdb.New(t)
	led := ledger.NewService(db)
	return &fixture{db: db, ledger: led, analytics: analytics.NewService(db, led)}
}

type seedOrder struct {
	status      string
	salesperson *int64
	total       int64
	createdAt   time.Time
	items       []domain.OrderItem
}

func (f *fixture) order(t *testing.T, s seedOrder) *domain.Order {
	t.Helper()
	if s.createdAt.IsZero() {
		s.createdAt = time.Now()
	}
	o := &domain.Order{
		ID:            common.UUIDint64(),
		CustomerId:    1,
		SalespersonId: s.salesperson,
		Status:        s.status,
		TotalAmount:   decimal.NewFromInt(s.total),
		CreatedAt:     s.createdAt,
		UpdatedAt:     s.createdAt,
	}
	require.NoError(t, f.db.Create(o).Error)
	for i := range s.items {
		s.items[i].ID = common.UUIDint64()
		s.items[i].OrderId = o.ID
		require.NoError(t, f.db.Create(&s.items[i]).Error)
	}
	return o
}

func (f *fixture) salesperson(t *testing.T, name string) *int64 {
	t.Helper()
	u := &domain.User{
		ID:       common.UUIDint64(),
		Username: name,
		FullName: name,
		Role:     domain.RoleSalesperson,
		Status:   common.ENABLED,
	}
	require.NoError(t, f.db.Create(u).Error)
	return &u.ID
}

func item(productID int64, qty float64, price int64) domain.OrderItem {
	p := decimal.NewFromInt(price)
	return domain.OrderItem{
		ProductId:    productID,
		Quantity:     qty,
		PriceAtOrder: p,
		Subtotal:     p.Mul(decimal.NewFromFloat(qty)),
	}
}

func TestProfitAnalysisEmptyDatabase(t *testing.T) {
	f := newFixture(t)

	report, err := f.analytics.ProfitAnalysis(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Revenue.IsZero())
	assert.True(t, report.Cogs.IsZero())
	assert.True(t, report.Salary.IsZero())
	assert.True(t, report.Profit.IsZero())
}

func TestProfitAnalysisExcludesCancelled(t *testing.T) {
	f := newFixture(t)
	f.order(t, seedOrder{status: domain.OrderStatusCompleted, total: 100})
	f.order(t, seedOrder{status: domain.OrderStatusCancelled, total: 900})

	report, err := f.analytics.ProfitAnalysis(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Revenue.Equal(decimal.NewFromInt(100)),
		"want 100, got %s", report.Revenue)
}

func TestProfitAnalysisCommissionOnlyCompletedWithSalesperson(t *testing.T) {
	f := newFixture(t)
	sp := f.salesperson(t, "alice")

	f.order(t, seedOrder{status: domain.OrderStatusCompleted, salesperson: sp, total: 200})
	// Completed but unassigned: no commission.
	f.order(t, seedOrder{status: domain.OrderStatusCompleted, total: 300})
	// Assigned but still processing: no commission.
	f.order(t, seedOrder{status: domain.OrderStatusProcessing, salesperson: sp, total: 400})

	report, err := f.analytics.ProfitAnalysis(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Salary.Equal(decimal.NewFromInt(20)),
		"want 20, got %s", report.Salary)
}

func TestProfitAnalysisCogsFromLatestPurchase(t *testing.T) {
	f := newFixture(t)

	product := &domain.Product{
		ID:          common.UUIDint64(),
		Name:        "Tomato",
		RetailPrice: decimal.NewFromInt(40),
		Stock:       0,
	}
	require.NoError(t, f.db.Create(product).Error)

	// Two purchases; the most recent one sets the unit cost.
	require.NoError(t, f.ledger.RecordPurchase(context.Background(), &domain.Purchase{
		ProductId:   product.ID,
		Quantity:    10,
		CostPerUnit: decimal.NewFromInt(30),
		PurchasedAt: time.Now().Add(-48 * time.Hour),
	}))
	require.NoError(t, f.ledger.RecordPurchase(context.Background(), &domain.Purchase{
		ProductId:   product.ID,
		Quantity:    10,
		CostPerUnit: decimal.NewFromInt(25),
		PurchasedAt: time.Now().Add(-time.Hour),
	}))

	f.order(t, seedOrder{
		status: domain.OrderStatusCompleted,
		total:  200,
		items:  []domain.OrderItem{item(product.ID, 5, 40)},
	})

	report, err := f.analytics.ProfitAnalysis(context.Background())
	require.NoError(t, err)
	// COGS = 5 units at the latest cost of 25.
	assert.True(t, report.Cogs.Equal(decimal.NewFromInt(125)),
		"want 125, got %s", report.Cogs)
	assert.True(t, report.Profit.Equal(decimal.NewFromInt(75)),
		"want 75, got %s", report.Profit)
}

func TestLineItemProfitZeroCostFallback(t *testing.T) {
	f := newFixture(t)

	// No purchase history: the full sale price counts as profit.
	it := item(424242, 3, 40)
	profit, err := f.analytics.LineItemProfit(context.Background(), &it)
	require.NoError(t, err)
	assert.True(t, profit.Equal(decimal.NewFromInt(120)),
		"want 120, got %s", profit)
}

func TestSalesTrendWindowShape(t *testing.T) {
	f := newFixture(t)
	f.order(t, seedOrder{status: domain.OrderStatusPending, total: 150})
	f.order(t, seedOrder{
		status:    domain.OrderStatusCompleted,
		total:     250,
		createdAt: time.Now().AddDate(0, 0, -2),
	})
	// Cancelled and out-of-window orders do not contribute.
	f.order(t, seedOrder{status: domain.OrderStatusCancelled, total: 999})
	f.order(t, seedOrder{
		status:    domain.OrderStatusCompleted,
		total:     500,
		createdAt: time.Now().AddDate(0, 0, -10),
	})

	buckets, summary, err := f.analytics.SalesTrend(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, buckets, 7)

	today := time.Now().Format("2006-01-02")
	require.Contains(t, buckets, today)
	assert.True(t, buckets[today].Equal(decimal.NewFromInt(150)))

	twoDaysAgo := time.Now().AddDate(0, 0, -2).Format("2006-01-02")
	assert.True(t, buckets[twoDaysAgo].Equal(decimal.NewFromInt(250)))

	zeroDays := 0
	for _, v := range buckets {
		if v.IsZero() {
			zeroDays++
		}
	}
	assert.Equal(t, 5, zeroDays)

	require.NotNil(t, summary)
	assert.InDelta(t, 400.0/7, summary.MeanDaily, 0.001)
	assert.Equal(t, 250.0, summary.MaxDaily)
}

func TestSalesTrendDefaultsWindow(t *testing.T) {
	f := newFixture(t)

	buckets, _, err := f.analytics.SalesTrend(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, buckets, 7)
}

func TestSalespersonPerformance(t *testing.T) {
	f := newFixture(t)
	alice := f.salesperson(t, "alice")
	bob := f.salesperson(t, "bob")

	f.order(t, seedOrder{status: domain.OrderStatusCompleted, salesperson: alice, total: 100})
	f.order(t, seedOrder{status: domain.OrderStatusProcessing, salesperson: alice, total: 100})
	f.order(t, seedOrder{status: domain.OrderStatusCompleted, salesperson: bob, total: 100})
	f.order(t, seedOrder{status: domain.OrderStatusCancelled, salesperson: bob, total: 100})
	f.order(t, seedOrder{status: domain.OrderStatusPending, total: 100})

	perf, err := f.analytics.SalespersonPerformance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), perf["alice"])
	assert.Equal(t, int64(1), perf["bob"])
	assert.Len(t, perf, 2)
}
