// Package cart implements the per-customer staging area. Every mutation
// re-resolves the tiered price for the item's new quantity; cart state
// never affects stock, which is only touched at order creation.
package cart

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/vegmart/vegmart/internal/catalog"
	"github.com/vegmart/vegmart/internal/domain"
	"github.com/vegmart/vegmart/pkg/common"
	"github.com/vegmart/vegmart/pkg/errs"
)

type Service struct {
	db      *gorm.DB
	catalog *catalog.Service
}

func NewService(db *gorm.DB, cat *catalog.Service) *Service {
	return &Service{db: db, catalog: cat}
}

// GetOrCreate returns the customer's cart, creating an empty one on first
// use. One cart per customer.
func (s *Service) GetOrCreate(ctx context.Context, customerID int64) (*domain.Cart, error) {
	var c domain.Cart
	err := s.db.WithContext(ctx).Preload("Items").Where("customer_id = ?", customerID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c = domain.Cart{
			ID:         common.UUIDint64(),
			CustomerId: customerID,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}
		if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
			return nil, errs.Internal(err, "create cart for customer %d", customerID)
		}
		return &c, nil
	} else if err != nil {
		return nil, errs.Internal(err, "query cart for customer %d", customerID)
	}
	return &c, nil
}

// AddItem adds quantity of a product to the cart. If the product is
// already present the quantities merge and the price tier is re-resolved
// for the merged total.
func (s *Service) AddItem(ctx context.Context, actor *domain.User, productID int64, quantity float64) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, errs.Validation("quantity must be positive")
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	c, err := s.GetOrCreate(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	var existing *domain.CartItem
	for i := range c.Items {
		if c.Items[i].ProductId == productID {
			existing = &c.Items[i]
			break
		}
	}

	now := time.Now()
	if existing != nil {
		newQty := existing.Quantity + quantity
		price := catalog.ResolvePrice(product, actor.Wholesale, newQty)
		updates := map[string]interface{}{
			"quantity":      newQty,
			"price_at_time": price,
			"updated_at":    now,
		}
		if err := s.db.WithContext(ctx).Model(&domain.CartItem{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
			return nil, errs.Internal(err, "update cart item")
		}
	} else {
		item := domain.CartItem{
			ID:          common.UUIDint64(),
			CartId:      c.ID,
			ProductId:   productID,
			Quantity:    quantity,
			PriceAtTime: catalog.ResolvePrice(product, actor.Wholesale, quantity),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
			return nil, errs.Internal(err, "add cart item")
		}
	}

	s.touch(ctx, c.ID)
	return s.GetOrCreate(ctx, actor.ID)
}

// UpdateQuantity sets the quantity of a cart line. A quantity of zero or
// less removes the line; otherwise the price tier is re-resolved.
func (s *Service) UpdateQuantity(ctx context.Context, actor *domain.User, productID int64, quantity float64) (*domain.Cart, error) {
	c, err := s.GetOrCreate(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	var existing *domain.CartItem
	for i := range c.Items {
		if c.Items[i].ProductId == productID {
			existing = &c.Items[i]
			break
		}
	}
	if existing == nil {
		return nil, errs.NotFound("product %d is not in the cart", productID)
	}

	if quantity <= 0 {
		if err := s.db.WithContext(ctx).Where("id = ?", existing.ID).Delete(&domain.CartItem{}).Error; err != nil {
			return nil, errs.Internal(err, "remove cart item")
		}
	} else {
		product, err := s.catalog.GetProduct(ctx, productID)
		if err != nil {
			return nil, err
		}
		updates := map[string]interface{}{
			"quantity":      quantity,
			"price_at_time": catalog.ResolvePrice(product, actor.Wholesale, quantity),
			"updated_at":    time.Now(),
		}
		if err := s.db.WithContext(ctx).Model(&domain.CartItem{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
			return nil, errs.Internal(err, "update cart item")
		}
	}

	s.touch(ctx, c.ID)
	return s.GetOrCreate(ctx, actor.ID)
}

// RemoveItem drops a product from the cart. Removing an absent product is
// not an error.
func (s *Service) RemoveItem(ctx context.Context, customerID, productID int64) error {
	c, err := s.GetOrCreate(ctx, customerID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Where("cart_id = ? AND product_id = ?", c.ID, productID).Delete(&domain.CartItem{}).Error; err != nil {
		return errs.Internal(err, "remove cart item")
	}
	s.touch(ctx, c.ID)
	return nil
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context, customerID int64) error {
	c, err := s.GetOrCreate(ctx, customerID)
	if err != nil {
		return err
	}
	return ClearTx(s.db.WithContext(ctx), c.ID)
}

// ClearTx deletes all lines of a cart on an existing transaction handle,
// so order creation can clear the cart inside its atomic unit.
func ClearTx(tx *gorm.DB, cartID int64) error {
	if err := tx.Where("cart_id = ?", cartID).Delete(&domain.CartItem{}).Error; err != nil {
		return errs.Internal(err, "clear cart %d", cartID)
	}
	return nil
}

func (s *Service) touch(ctx context.Context, cartID int64) {
	s.db.WithContext(ctx).Model(&domain.Cart{}).Where("id = ?", cartID).Update("updated_at", time.Now())
}
