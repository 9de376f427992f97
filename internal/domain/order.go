package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order status lifecycle: PENDING -> PROCESSING -> {COMPLETED, CANCELLED}.
// COMPLETED and CANCELLED are terminal.
const (
	OrderStatusPending    = "PENDING"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusCompleted  = "COMPLETED"
	OrderStatusCancelled  = "CANCELLED"
)

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// TerminalOrderStatus reports whether s permits no further transitions.
func TerminalOrderStatus(s string) bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// Order is created once, atomically, from a cart snapshot. TotalAmount and
// the line items are immutable after creation; only Status and
// SalespersonId are mutated, by the claim/status state machine.
type Order struct {
	ID            int64           `json:"id,string"`
	CustomerId    int64           `gorm:"index" json:"customer_id,string"`
	SalespersonId *int64          `gorm:"index" json:"salesperson_id,string,omitempty"`
	Status        string          `gorm:"size:16;index" json:"status"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	Address       string          `json:"address"`
	City          string          `json:"city"`
	Postcode      string          `json:"postcode"`
	Notes         string          `gorm:"size:1024" json:"notes"`
	PaymentMethod string          `gorm:"size:32" json:"payment_method"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(12,2)" json:"total_amount"`
	Items         []OrderItem     `gorm:"foreignKey:OrderId" json:"items"`
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem freezes the unit price at order time; it is never recalculated.
type OrderItem struct {
	ID           int64           `json:"id,string"`
	OrderId      int64           `gorm:"index" json:"order_id,string"`
	ProductId    int64           `gorm:"index" json:"product_id,string"`
	ProductName  string          `json:"product_name"`
	Quantity     float64         `json:"quantity"`
	PriceAtOrder decimal.Decimal `gorm:"type:numeric(12,2)" json:"price_at_order"`
	Subtotal     decimal.Decimal `gorm:"type:numeric(12,2)" json:"subtotal"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
