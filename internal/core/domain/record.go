package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Operational record types held in the local cache. The cache only ever contains the
// records of the current workspace; the shop cloud remains the source of truth.

// Product is a sellable catalog item.
type Product struct {
	ProductID string          `db:"product_id" json:"productID"`
	SKU       string          `db:"sku" json:"sku"`
	Name      string          `db:"name" json:"name"`
	Price     decimal.Decimal `db:"price" json:"price"`
	Stock     int64           `db:"stock" json:"stock"`
	UpdatedAt time.Time       `db:"updated_at" json:"updatedAt"`
}

// Order is a completed or in-flight sale.
type Order struct {
	OrderID    string          `db:"order_id" json:"orderID"`
	Number     string          `db:"number" json:"number"`
	CustomerID *string         `db:"customer_id" json:"customerID"`
	Total      decimal.Decimal `db:"total" json:"total"`
	Status     string          `db:"status" json:"status"`
	PlacedAt   time.Time       `db:"placed_at" json:"placedAt"`
	UpdatedAt  time.Time       `db:"updated_at" json:"updatedAt"`
}

// Customer is a shop customer record.
type Customer struct {
	CustomerID string    `db:"customer_id" json:"customerID"`
	Name       string    `db:"name" json:"name"`
	Email      string    `db:"email" json:"email"`
	Phone      string    `db:"phone" json:"phone"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

// Staff is a shop employee. PINHash is a bcrypt hash of the till PIN; the clear PIN is
// never cached.
type Staff struct {
	StaffID   string    `db:"staff_id" json:"staffID"`
	Name      string    `db:"name" json:"name"`
	Role      string    `db:"role" json:"role"`
	PINHash   string    `db:"pin_hash" json:"-"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
