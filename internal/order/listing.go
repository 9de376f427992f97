package order

import (
	"context"

	"github.com/vegmart/vegmart/internal/domain"
	"github.com/vegmart/vegmart/pkg/errs"
)

// GetPendingOrders lists unclaimed orders, newest first.
func (s *Service) GetPendingOrders(ctx context.Context) ([]domain.Order, error) {
	var rows []domain.Order
	err := s.db.WithContext(ctx).Preload("Items").
		Where("status = ?", domain.OrderStatusPending).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, errs.Internal(err, "query pending orders")
	}
	return rows, nil
}

// GetOrdersForCustomer lists a customer's orders, newest first.
func (s *Service) GetOrdersForCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	var rows []domain.Order
	err := s.db.WithContext(ctx).Preload("Items").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, errs.Internal(err, "query orders for customer %d", customerID)
	}
	return rows, nil
}

// GetOrdersForSalesperson lists orders assigned to a salesperson, newest
// first.
func (s *Service) GetOrdersForSalesperson(ctx context.Context, salespersonID int64) ([]domain.Order, error) {
	var rows []domain.Order
	err := s.db.WithContext(ctx).Preload("Items").
		Where("salesperson_id = ?", salespersonID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, errs.Internal(err, "query orders for salesperson %d", salespersonID)
	}
	return rows, nil
}

// ListOrders is the admin listing with optional status filter.
func (s *Service) ListOrders(ctx context.Context, status string, page, pageSize int) ([]domain.Order, int64, error) {
	db := s.db.WithContext(ctx).Model(&domain.Order{})
	if status != "" {
		if !domain.ValidOrderStatus(status) {
			return nil, 0, errs.Validation("unknown order status %q", status)
		}
		db = db.Where("status = ?", status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, errs.Internal(err, "count orders")
	}

	var rows []domain.Order
	if err := db.Preload("Items").Order("created_at DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return nil, 0, errs.Internal(err, "query orders")
	}
	return rows, total, nil
}
