// Package order implements the fulfillment engine and the claim/status
// state machine. Order creation converts a cart into a durable order and
// decrements stock in one transaction; claiming and status changes are
// atomic conditional updates guarded by the current status.
package order

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vegmart/vegmart/internal/catalog"
	"github.com/vegmart/vegmart/internal/cart"
	"github.com/vegmart/vegmart/internal/domain"
	"github.com/vegmart/vegmart/pkg/common"
	"github.com/vegmart/vegmart/pkg/errs"
)

// Event bus topics published on order lifecycle changes. Subscribers run
// out-of-band and must not assume transactional context.
const (
	TopicOrderCreated   = "order.created"
	TopicOrderClaimed   = "order.claimed"
	TopicOrderCompleted = "order.completed"
	TopicOrderCancelled = "order.cancelled"
)

// Orders below the threshold pay a flat delivery surcharge.
var (
	SurchargeThreshold = decimal.NewFromInt(500)
	DeliverySurcharge  = decimal.NewFromInt(50)
)

// DeliveryDetails carries the checkout form fields frozen onto the order.
type DeliveryDetails struct {
	CustomerName  string `json:"customer_name" validate:"required"`
	CustomerPhone string `json:"customer_phone" validate:"required"`
	Address       string `json:"address" validate:"required"`
	City          string `json:"city"`
	Postcode      string `json:"postcode"`
	Notes         string `json:"notes"`
	PaymentMethod string `json:"payment_method"`
}

type Service struct {
	db  *gorm.DB
	bus EventBus.Bus
}

func NewService(db *gorm.DB, bus EventBus.Bus) *Service {
	return &Service{db: db, bus: bus}
}

// lockForUpdate applies a row lock where the dialect supports it. On
// sqlite the single-writer model serializes writers anyway, and the
// guarded stock decrement keeps the invariant regardless.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if strings.EqualFold(tx.Dialector.Name(), "postgres") {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// CreateOrder turns the customer's current cart into a persisted PENDING
// order. Prices are re-resolved server-side from the catalog; client-held
// cart prices are display state only. Stock verification, decrements,
// order persistence and cart clearing form one atomic unit: any shortfall
// aborts the whole order with no partial effects.
func (s *Service) CreateOrder(ctx context.Context, customer *domain.User, delivery DeliveryDetails) (*domain.Order, error) {
	var created *domain.Order

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c domain.Cart
		err := tx.Preload("Items").Where("customer_id = ?", customer.ID).First(&c).Error
		if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && len(c.Items) == 0) {
			return errs.Validation("cart is empty")
		} else if err != nil {
			return errs.Internal(err, "load cart for customer %d", customer.ID)
		}

		now := time.Now()
		o := domain.Order{
			ID:            common.UUIDint64(),
			CustomerId:    customer.ID,
			Status:        domain.OrderStatusPending,
			CustomerName:  delivery.CustomerName,
			CustomerPhone: delivery.CustomerPhone,
			Address:       delivery.Address,
			City:          delivery.City,
			Postcode:      delivery.Postcode,
			Notes:         delivery.Notes,
			PaymentMethod: delivery.PaymentMethod,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		total := decimal.Zero
		items := make([]domain.OrderItem, 0, len(c.Items))
		for _, line := range c.Items {
			if line.Quantity <= 0 {
				return errs.Validation("invalid quantity for product %d", line.ProductId)
			}

			var p domain.Product
			err := lockForUpdate(tx).Where("id = ?", line.ProductId).First(&p).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("product %d not found", line.ProductId)
			} else if err != nil {
				return errs.Internal(err, "load product %d", line.ProductId)
			}

			if err := catalog.DecreaseStockTx(tx, p.ID, line.Quantity); err != nil {
				return err
			}

			price := catalog.ResolvePrice(&p, customer.Wholesale, line.Quantity)
			subtotal := price.Mul(decimal.NewFromFloat(line.Quantity))
			items = append(items, domain.OrderItem{
				ID:           common.UUIDint64(),
				OrderId:      o.ID,
				ProductId:    p.ID,
				ProductName:  p.Name,
				Quantity:     line.Quantity,
				PriceAtOrder: price,
				Subtotal:     subtotal,
				CreatedAt:    now,
			})
			total = total.Add(subtotal)
		}

		if total.LessThan(SurchargeThreshold) {
			total = total.Add(DeliverySurcharge)
		}
		o.TotalAmount = total

		if err := tx.Create(&o).Error; err != nil {
			return errs.Internal(err, "persist order")
		}
		if err := tx.Create(&items).Error; err != nil {
			return errs.Internal(err, "persist order items")
		}
		if err := cart.ClearTx(tx, c.ID); err != nil {
			return err
		}

		o.Items = items
		created = &o
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("order created",
		zap.Int64("order_id", created.ID),
		zap.Int64("customer_id", customer.ID),
		zap.String("total", created.TotalAmount.String()),
		zap.Int("items", len(created.Items)))
	s.publish(TopicOrderCreated, created)
	return created, nil
}

func (s *Service) publish(topic string, o *domain.Order) {
	if s.bus != nil {
		s.bus.Publish(topic, o)
	}
}
