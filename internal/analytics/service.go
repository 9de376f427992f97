// Package analytics derives profit, cost-of-goods and sales trends from
// the order ledger and the purchase ledger. Everything here is computed at
// query time from persisted rows; there is no accumulated state that can
// drift from the ledgers. Read paths tolerate empty data and return zeroed
// structures instead of errors.
package analytics

import (
	"context"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vegmart/vegmart/internal/domain"
	"github.com/vegmart/vegmart/internal/ledger"
	"github.com/vegmart/vegmart/pkg/errs"
)

// CommissionRate is the share of a COMPLETED order's total attributed to
// the assigned salesperson.
var CommissionRate = decimal.NewFromFloat(0.10)

type Service struct {
	db     *gorm.DB
	ledger *ledger.Service
}

func NewService(db *gorm.DB, led *ledger.Service) *Service {
	return &Service{db: db, ledger: led}
}

// ProfitReport aggregates revenue, cost-of-goods, commission expense and
// net profit over all non-cancelled orders.
type ProfitReport struct {
	Revenue decimal.Decimal `json:"revenue"`
	Cogs    decimal.Decimal `json:"cogs"`
	Salary  decimal.Decimal `json:"salary"`
	Profit  decimal.Decimal `json:"profit"`
}

// LineItemProfit computes (price at order − latest unit cost) × quantity.
// Products with no purchase history cost zero.
func (s *Service) LineItemProfit(ctx context.Context, item *domain.OrderItem) (decimal.Decimal, error) {
	cost, err := s.ledger.LatestCost(ctx, item.ProductId)
	if err != nil {
		return decimal.Zero, err
	}
	return item.PriceAtOrder.Sub(cost).Mul(decimal.NewFromFloat(item.Quantity)), nil
}

// ProfitAnalysis walks all non-cancelled orders. Revenue sums order
// totals; COGS is subtotal minus line profit per item; salary expense is
// the commission on COMPLETED orders with an assigned salesperson.
func (s *Service) ProfitAnalysis(ctx context.Context) (*ProfitReport, error) {
	var orders []domain.Order
	err := s.db.WithContext(ctx).Preload("Items").
		Where("status <> ?", domain.OrderStatusCancelled).
		Find(&orders).Error
	if err != nil {
		return nil, errs.Internal(err, "query orders for profit analysis")
	}

	report := &ProfitReport{
		Revenue: decimal.Zero,
		Cogs:    decimal.Zero,
		Salary:  decimal.Zero,
		Profit:  decimal.Zero,
	}

	// Latest cost per product, fetched once per distinct product.
	costs := map[int64]decimal.Decimal{}
	latestCost := func(productID int64) (decimal.Decimal, error) {
		if c, ok := costs[productID]; ok {
			return c, nil
		}
		c, err := s.ledger.LatestCost(ctx, productID)
		if err != nil {
			return decimal.Zero, err
		}
		costs[productID] = c
		return c, nil
	}

	for i := range orders {
		o := &orders[i]
		report.Revenue = report.Revenue.Add(o.TotalAmount)

		for j := range o.Items {
			item := &o.Items[j]
			cost, err := latestCost(item.ProductId)
			if err != nil {
				return nil, err
			}
			profit := item.PriceAtOrder.Sub(cost).Mul(decimal.NewFromFloat(item.Quantity))
			report.Cogs = report.Cogs.Add(item.Subtotal.Sub(profit))
		}

		if o.Status == domain.OrderStatusCompleted && o.SalespersonId != nil {
			report.Salary = report.Salary.Add(o.TotalAmount.Mul(CommissionRate))
		}
	}

	report.Profit = report.Revenue.Sub(report.Cogs).Sub(report.Salary)
	return report, nil
}

// TrendSummary describes the daily totals of a sales trend window.
type TrendSummary struct {
	MeanDaily float64 `json:"mean_daily"`
	MaxDaily  float64 `json:"max_daily"`
}

// SalesTrend buckets non-cancelled order totals by creation date over
// exactly `days` consecutive calendar days ending today. Every date in the
// window is present, pre-seeded at zero.
func (s *Service) SalesTrend(ctx context.Context, days int) (map[string]decimal.Decimal, *TrendSummary, error) {
	if days <= 0 {
		days = 7
	}

	today := time.Now()
	buckets := make(map[string]decimal.Decimal, days)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i).Format("2006-01-02")
		buckets[day] = decimal.Zero
	}

	windowStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location()).
		AddDate(0, 0, -(days - 1))

	var orders []domain.Order
	err := s.db.WithContext(ctx).
		Where("created_at >= ? AND status <> ?", windowStart, domain.OrderStatusCancelled).
		Find(&orders).Error
	if err != nil {
		return nil, nil, errs.Internal(err, "query orders for sales trend")
	}

	for i := range orders {
		day := orders[i].CreatedAt.Format("2006-01-02")
		if current, ok := buckets[day]; ok {
			buckets[day] = current.Add(orders[i].TotalAmount)
		}
	}

	daily := make([]float64, 0, len(buckets))
	for _, amount := range buckets {
		v, _ := amount.Float64()
		daily = append(daily, v)
	}
	mean, _ := stats.Mean(daily)
	max, _ := stats.Max(daily)
	summary := &TrendSummary{MeanDaily: mean, MaxDaily: max}

	return buckets, summary, nil
}

// SalespersonPerformance counts non-cancelled orders per assigned
// salesperson, keyed by full name. Computed with a grouped join, not an
// in-memory scan of the order collection.
func (s *Service) SalespersonPerformance(ctx context.Context) (map[string]int64, error) {
	type row struct {
		FullName string
		Count    int64
	}
	var rows []row
	err := s.db.WithContext(ctx).Model(&domain.Order{}).
		Select("users.full_name AS full_name, COUNT(orders.id) AS count").
		Joins("JOIN users ON users.id = orders.salesperson_id").
		Where("orders.status <> ?", domain.OrderStatusCancelled).
		Group("users.full_name").
		Scan(&rows).Error
	if err != nil {
		return nil, errs.Internal(err, "query salesperson performance")
	}

	performance := make(map[string]int64, len(rows))
	for _, r := range rows {
		performance[r.FullName] = r.Count
	}
	return performance, nil
}
