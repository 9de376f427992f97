package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is the per-customer staging area. One row per customer; items are
// replaced wholesale by the cart service. Cart state never touches stock.
type Cart struct {
	ID         int64      `json:"id,string"`
	CustomerId int64      `gorm:"uniqueIndex" json:"customer_id,string"`
	Items      []CartItem `gorm:"foreignKey:CartId" json:"items"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (Cart) TableName() string {
	return "carts"
}

// CartItem holds the quantity and the price resolved at the last mutation.
// PriceAtTime is display state only; checkout re-resolves every price.
type CartItem struct {
	ID          int64           `json:"id,string"`
	CartId      int64           `gorm:"index" json:"cart_id,string"`
	ProductId   int64           `gorm:"index" json:"product_id,string"`
	Quantity    float64         `json:"quantity"`
	PriceAtTime decimal.Decimal `gorm:"type:numeric(12,2)" json:"price_at_time"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
