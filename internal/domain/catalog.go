package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item sold by weight. Retail and wholesale price
// tiers are both kept on the row; the effective price for a customer is
// resolved by catalog.ResolvePrice.
type Product struct {
	ID                int64           `json:"id,string" form:"id"`
	Name              string          `gorm:"index" json:"name" form:"name"`
	Description       string          `gorm:"size:2048" json:"description" form:"description"`
	Category          string          `gorm:"size:50;index" json:"category" form:"category"`
	ImageUrl          string          `gorm:"size:500" json:"image_url" form:"image_url"`
	RetailPrice       decimal.Decimal `gorm:"type:numeric(12,2)" json:"retail_price"`
	WholesalePrice    decimal.Decimal `gorm:"type:numeric(12,2)" json:"wholesale_price"`
	MinWholesaleQty   float64         `json:"min_wholesale_qty" form:"min_wholesale_qty"`
	Stock             float64         `json:"stock" form:"stock"`
	SupplierId        int64           `gorm:"index" json:"supplier_id,string" form:"supplier_id"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

type Supplier struct {
	ID          int64     `json:"id,string" form:"id"`
	Name        string    `gorm:"index" json:"name" form:"name"`
	ContactName string    `json:"contact_name" form:"contact_name"`
	Phone       string    `json:"phone" form:"phone"`
	Email       string    `json:"email" form:"email"`
	Address     string    `json:"address" form:"address"`
	Remark      string    `json:"remark" form:"remark"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Supplier) TableName() string {
	return "suppliers"
}

// Purchase is an append-only supplier purchase record. The most recent row
// for a product is the authoritative unit cost when computing profit.
type Purchase struct {
	ID          int64           `json:"id,string" form:"id"`
	ProductId   int64           `gorm:"index" json:"product_id,string" form:"product_id"`
	SupplierId  int64           `gorm:"index" json:"supplier_id,string" form:"supplier_id"`
	Quantity    float64         `json:"quantity" form:"quantity"`
	CostPerUnit decimal.Decimal `gorm:"type:numeric(12,2)" json:"cost_per_unit"`
	TotalCost   decimal.Decimal `gorm:"type:numeric(12,2)" json:"total_cost"`
	PurchasedAt time.Time       `gorm:"index" json:"purchased_at"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (Purchase) TableName() string {
	return "purchases"
}
