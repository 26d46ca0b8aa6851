package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a tenant-scoped inventory record. StockQuantity is the only
// frequently contended field; it is mutated through conditional updates in
// the store, never by blind writes.
type Product struct {
	ID            uint            `json:"id" gorm:"primaryKey;column:product_id"`
	TenantID      uint            `json:"tenant_id" gorm:"not null;index"`
	Name          string          `json:"name" gorm:"type:varchar(255);not null"`
	Description   string          `json:"description,omitempty" gorm:"type:text"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	StockQuantity int             `json:"stock_quantity" gorm:"not null;default:0"`
	Category      string          `json:"category,omitempty" gorm:"type:varchar(100)"`
	Active        bool            `json:"active" gorm:"column:is_active;not null;default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Photos []ProductPhoto `json:"photos,omitempty" gorm:"foreignKey:ProductID"`
}

func (Product) TableName() string {
	return "product"
}

// ProductPhoto is an ordered gallery entry. At most one photo per product
// carries Main=true; if a product has any photos, exactly one is main.
type ProductPhoto struct {
	ID           uint   `json:"id" gorm:"primaryKey;column:photo_id"`
	TenantID     uint   `json:"tenant_id" gorm:"not null;index"`
	ProductID    uint   `json:"product_id" gorm:"not null;index"`
	FilePath     string `json:"file_path" gorm:"type:varchar(500);not null"`
	DisplayOrder int    `json:"display_order" gorm:"not null;default:0"`
	Main         bool   `json:"main" gorm:"column:is_main;not null;default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProductPhoto) TableName() string {
	return "product_photo"
}

// ProductSearchCriteria narrows product listing. Zero values mean "no filter".
type ProductSearchCriteria struct {
	NameLike string
	Category string
	Active   *bool
}
