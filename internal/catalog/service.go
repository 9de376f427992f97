// Package catalog owns product and supplier records: CRUD, search, tiered
// price resolution and the stock mutations shared with the order engine
// and the purchase ledger.
package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

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

func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("product %d not found", id)
	} else if err != nil {
		return nil, errs.Internal(err, "query product %d", id)
	}
	return &p, nil
}

// ListProducts returns products matching the optional keyword, newest first.
func (s *Service) ListProducts(ctx context.Context, keyword string, page, pageSize int) ([]domain.Product, int64, error) {
	db := s.db.WithContext(ctx).Model(&domain.Product{})
	if q := strings.TrimSpace(keyword); q != "" {
		if strings.EqualFold(s.db.Name(), "postgres") {
			db = db.Where("name ILIKE ? OR category ILIKE ?", "%"+q+"%", "%"+q+"%")
		} else {
			db = db.Where("LOWER(name) LIKE ? OR LOWER(category) LIKE ?", "%"+strings.ToLower(q)+"%", "%"+strings.ToLower(q)+"%")
		}
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, errs.Internal(err, "count products")
	}

	var rows []domain.Product
	if err := db.Order("id DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return nil, 0, errs.Internal(err, "query products")
	}
	return rows, total, nil
}

// ListAvailableProducts returns products with stock on hand, for the
// storefront listing.
func (s *Service) ListAvailableProducts(ctx context.Context) ([]domain.Product, error) {
	var rows []domain.Product
	if err := s.db.WithContext(ctx).Where("stock > 0").Order("category, name").Find(&rows).Error; err != nil {
		return nil, errs.Internal(err, "query available products")
	}
	return rows, nil
}

func (s *Service) CreateProduct(ctx context.Context, p *domain.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return errs.Validation("product name is required")
	}
	if p.Stock < 0 {
		return errs.Validation("stock must not be negative")
	}
	if p.MinWholesaleQty <= 0 {
		return errs.Validation("min wholesale quantity must be positive")
	}
	if p.ID == 0 {
		p.ID = common.UUIDint64()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return errs.Internal(err, "create product")
	}
	zap.L().Info("product created", zap.Int64("id", p.ID), zap.String("name", p.Name))
	return nil
}

func (s *Service) UpdateProduct(ctx context.Context, p *domain.Product) error {
	existing, err := s.GetProduct(ctx, p.ID)
	if err != nil {
		return err
	}
	if strings.TrimSpace(p.Name) == "" {
		return errs.Validation("product name is required")
	}
	updates := map[string]interface{}{
		"name":              strings.TrimSpace(p.Name),
		"description":       p.Description,
		"category":          p.Category,
		"image_url":         p.ImageUrl,
		"retail_price":      p.RetailPrice,
		"wholesale_price":   p.WholesalePrice,
		"min_wholesale_qty": p.MinWholesaleQty,
		"stock":             p.Stock,
		"supplier_id":       p.SupplierId,
		"updated_at":        time.Now(),
	}
	if err := s.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
		return errs.Internal(err, "update product %d", p.ID)
	}
	return nil
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{}).Error; err != nil {
		return errs.Internal(err, "delete product %d", id)
	}
	zap.L().Info("product deleted", zap.Int64("id", id))
	return nil
}

// DecreaseStock atomically removes quantity from a product's stock. The
// decrement is guarded in SQL so concurrent callers can never drive stock
// negative: the UPDATE only applies when stock >= quantity.
func (s *Service) DecreaseStock(ctx context.Context, productID int64, quantity float64) error {
	if quantity <= 0 {
		return errs.Validation("quantity must be positive")
	}
	return DecreaseStockTx(s.db.WithContext(ctx), productID, quantity)
}

// IncreaseStock adds quantity to a product's stock (inventory receipt).
func (s *Service) IncreaseStock(ctx context.Context, productID int64, quantity float64) error {
	if quantity <= 0 {
		return errs.Validation("quantity must be positive")
	}
	return IncreaseStockTx(s.db.WithContext(ctx), productID, quantity)
}

// DecreaseStockTx runs the guarded decrement on an existing transaction
// handle so the order engine can include it in its atomic unit.
func DecreaseStockTx(tx *gorm.DB, productID int64, quantity float64) error {
	res := tx.Model(&domain.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock - ?", quantity),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return errs.Internal(res.Error, "decrease stock for product %d", productID)
	}
	if res.RowsAffected == 0 {
		var p domain.Product
		if err := tx.Select("id", "name", "stock").Where("id = ?", productID).First(&p).Error; err != nil {
			return errs.NotFound("product %d not found", productID)
		}
		return errs.InsufficientStock("insufficient stock for %s: have %.2f, want %.2f", p.Name, p.Stock, quantity)
	}
	return nil
}

// IncreaseStockTx runs the increment on an existing transaction handle.
func IncreaseStockTx(tx *gorm.DB, productID int64, quantity float64) error {
	res := tx.Model(&domain.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock + ?", quantity),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return errs.Internal(res.Error, "increase stock for product %d", productID)
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("product %d not found", productID)
	}
	return nil
}
