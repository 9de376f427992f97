package order

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vegmart/vegmart/internal/domain"
	"github.com/vegmart/vegmart/pkg/errs"
)

// ClaimOrder assigns a PENDING order to a salesperson and moves it to
// PROCESSING. The transition is one conditional UPDATE guarded by the
// current status, so exactly one of any number of concurrent claimants
// wins; the rest observe a non-PENDING order and fail cleanly without
// re-assigning.
func (s *Service) ClaimOrder(ctx context.Context, orderID int64, salesperson *domain.User) (*domain.Order, error) {
	if salesperson.Role != domain.RoleSalesperson && salesperson.Role != domain.RoleAdmin {
		return nil, errs.Unauthorized("only salespeople may claim orders")
	}

	res := s.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ? AND status = ?", orderID, domain.OrderStatusPending).
		Updates(map[string]interface{}{
			"salesperson_id": salesperson.ID,
			"status":         domain.OrderStatusProcessing,
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		return nil, errs.Internal(res.Error, "claim order %d", orderID)
	}
	if res.RowsAffected == 0 {
		current, err := s.GetOrder(ctx, orderID)
		if err != nil {
			return nil, err
		}
		return nil, errs.InvalidStateTransition("order %d is not available for claiming (status %s)", orderID, current.Status)
	}

	o, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	zap.L().Info("order claimed",
		zap.Int64("order_id", orderID),
		zap.Int64("salesperson_id", salesperson.ID))
	s.publish(TopicOrderClaimed, o)
	return o, nil
}

// UpdateOrderStatus moves a PROCESSING order to COMPLETED or CANCELLED.
// Only the assigned salesperson or an administrator may do so; the
// authorization predicate lives here, not in the routing layer. Terminal
// orders admit no transition.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID int64, newStatus string, actor *domain.User) (*domain.Order, error) {
	if newStatus != domain.OrderStatusCompleted && newStatus != domain.OrderStatusCancelled {
		return nil, errs.InvalidStateTransition("cannot transition to %s", newStatus)
	}

	current, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if current.Status != domain.OrderStatusProcessing {
		return nil, errs.InvalidStateTransition("order %d is %s, expected PROCESSING", orderID, current.Status)
	}
	if !canUpdateStatus(current, actor) {
		return nil, errs.Unauthorized("actor %d may not update order %d", actor.ID, orderID)
	}

	res := s.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ? AND status = ?", orderID, domain.OrderStatusProcessing).
		Updates(map[string]interface{}{
			"status":     newStatus,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return nil, errs.Internal(res.Error, "update order %d status", orderID)
	}
	if res.RowsAffected == 0 {
		return nil, errs.InvalidStateTransition("order %d changed state concurrently", orderID)
	}

	o, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	zap.L().Info("order status updated",
		zap.Int64("order_id", orderID),
		zap.String("status", newStatus),
		zap.Int64("actor_id", actor.ID))
	switch newStatus {
	case domain.OrderStatusCompleted:
		s.publish(TopicOrderCompleted, o)
	case domain.OrderStatusCancelled:
		s.publish(TopicOrderCancelled, o)
	}
	return o, nil
}

// canUpdateStatus is the capability predicate for status changes: the
// assigned salesperson, or any administrator.
func canUpdateStatus(o *domain.Order, actor *domain.User) bool {
	if actor.Role == domain.RoleAdmin {
		return true
	}
	if actor.Role == domain.RoleSalesperson && o.SalespersonId != nil && *o.SalespersonId == actor.ID {
		return true
	}
	return false
}

// GetOrder loads an order with its line items.
func (s *Service) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	err := s.db.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("order %d not found", id)
	} else if err != nil {
		return nil, errs.Internal(err, "query order %d", id)
	}
	return &o, nil
}
