package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Well-known status names with special transition semantics. Statuses are
// data, not an enum: tenants may define more, but these five drive the
// guard rules in the order engine.
const (
	StatusCreated   = "Created"
	StatusPaid      = "Paid"
	StatusCanceled  = "Canceled"
	StatusReturned  = "Returned"
	StatusDelivered = "Delivered"
	StatusCompleted = "Completed"
)

// OrderStatus is a platform-wide vocabulary entry. StatusName is globally
// unique and deliberately not tenant-scoped.
type OrderStatus struct {
	ID         uint   `json:"id" gorm:"primaryKey;column:status_id"`
	StatusName string `json:"status_name" gorm:"type:varchar(100);not null;uniqueIndex"`
}

func (OrderStatus) TableName() string {
	return "order_status"
}

// Order is a tenant-scoped purchase. TotalAmount is derived: it always equals
// the sum of the items' TotalPrice and is recomputed, never incremented.
type Order struct {
	ID          uint            `json:"id" gorm:"primaryKey;column:order_id"`
	TenantID    uint            `json:"tenant_id" gorm:"not null;index"`
	CustomerID  uint            `json:"customer_id" gorm:"not null"`
	AddressID   uint            `json:"address_id" gorm:"not null"`
	StatusID    uint            `json:"status_id" gorm:"not null"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	Comment     string          `json:"comment,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Customer *User        `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Address  *Address     `json:"address,omitempty" gorm:"foreignKey:AddressID"`
	Status   *OrderStatus `json:"status,omitempty" gorm:"foreignKey:StatusID"`
	Items    []OrderItem  `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string {
	return "store_order"
}

// OrderItem is one product line. UnitPrice is a snapshot taken when the line
// is created and does not follow later product price changes.
type OrderItem struct {
	ID         uint            `json:"id" gorm:"primaryKey;column:order_item_id"`
	TenantID   uint            `json:"tenant_id" gorm:"not null;index"`
	OrderID    uint            `json:"order_id" gorm:"not null;index"`
	ProductID  uint            `json:"product_id" gorm:"not null"`
	Quantity   int             `json:"quantity" gorm:"not null"`
	UnitPrice  decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	TotalPrice decimal.Decimal `json:"total_price" gorm:"type:decimal(10,2);not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (OrderItem) TableName() string {
	return "order_item"
}
