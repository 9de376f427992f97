// Package ledger keeps the append-only record of supplier purchases. A
// purchase receipt increments product stock in the same transaction, and
// the most recent record per product serves as the authoritative unit
// cost for the analytics engine.
package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vegmart/vegmart/internal/catalog"
	"github.com/vegmart/vegmart/internal/domain"
	"github.com/vegmart/vegmart/pkg/common"
	"github.com/vegmart/vegmart/pkg/errs"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// RecordPurchase appends a purchase row and increments the product's stock
// atomically. TotalCost is derived at creation and never recomputed.
func (s *Service) RecordPurchase(ctx context.Context, p *domain.Purchase) error {
	if p.Quantity <= 0 {
		return errs.Validation("purchase quantity must be positive")
	}
	if p.CostPerUnit.Sign() <= 0 {
		return errs.Validation("cost per unit must be positive")
	}

	if p.ID == 0 {
		p.ID = common.UUIDint64()
	}
	if p.PurchasedAt.IsZero() {
		p.PurchasedAt = time.Now()
	}
	p.TotalCost = p.CostPerUnit.Mul(decimal.NewFromFloat(p.Quantity))
	p.CreatedAt = time.Now()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := catalog.IncreaseStockTx(tx, p.ProductId, p.Quantity); err != nil {
			return err
		}
		if err := tx.Create(p).Error; err != nil {
			return errs.Internal(err, "create purchase")
		}
		return nil
	})
	if err != nil {
		return err
	}

	zap.L().Info("purchase recorded",
		zap.Int64("id", p.ID),
		zap.Int64("product_id", p.ProductId),
		zap.Float64("quantity", p.Quantity))
	return nil
}

func (s *Service) GetPurchase(ctx context.Context, id int64) (*domain.Purchase, error) {
	var p domain.Purchase
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("purchase %d not found", id)
	} else if err != nil {
		return nil, errs.Internal(err, "query purchase %d", id)
	}
	return &p, nil
}

func (s *Service) ListPurchases(ctx context.Context, productID int64, page, pageSize int) ([]domain.Purchase, int64, error) {
	db := s.db.WithContext(ctx).Model(&domain.Purchase{})
	if productID != 0 {
		db = db.Where("product_id = ?", productID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, errs.Internal(err, "count purchases")
	}

	var rows []domain.Purchase
	if err := db.Order("purchased_at DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return nil, 0, errs.Internal(err, "query purchases")
	}
	return rows, total, nil
}

// LatestCost returns the cost per unit from the most recent purchase of
// the product, or zero when the product has never been purchased. Callers
// on the analytics read path rely on the zero fallback to stay error-free
// on missing data.
func (s *Service) LatestCost(ctx context.Context, productID int64) (decimal.Decimal, error) {
	var p domain.Purchase
	err := s.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("purchased_at DESC").
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil
	} else if err != nil {
		return decimal.Zero, errs.Internal(err, "query latest purchase for product %d", productID)
	}
	return p.CostPerUnit, nil
}
