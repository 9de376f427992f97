package analytics

import (
	"context"
	"io"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/vegmart/vegmart/internal/domain"
	"github.com/vegmart/vegmart/pkg/errs"
)

// orderCSVRow flattens an order for report export.
type orderCSVRow struct {
	OrderID       int64  `csv:"order_id"`
	Status        string `csv:"status"`
	CustomerName  string `csv:"customer_name"`
	SalespersonID int64  `csv:"salesperson_id"`
	TotalAmount   string `csv:"total_amount"`
	ItemCount     int    `csv:"item_count"`
	CreatedAt     string `csv:"created_at"`
}

// ExportOrdersCSV writes all orders (any status) as CSV, newest first.
func (s *Service) ExportOrdersCSV(ctx context.Context, w io.Writer) error {
	var orders []domain.Order
	err := s.db.WithContext(ctx).Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return errs.Internal(err, "query orders for export")
	}

	rows := make([]*orderCSVRow, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		var spID int64
		if o.SalespersonId != nil {
			spID = *o.SalespersonId
		}
		rows = append(rows, &orderCSVRow{
			OrderID:       o.ID,
			Status:        o.Status,
			CustomerName:  o.CustomerName,
			SalespersonID: spID,
			TotalAmount:   o.TotalAmount.StringFixed(2),
			ItemCount:     len(o.Items),
			CreatedAt:     o.CreatedAt.Format(time.RFC3339),
		})
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return errs.Internal(err, "write orders csv")
	}
	return nil
}
