package model

import (
	"time"
)

// Address is a free-form postal destination. Orders keep a live reference to
// it, not a frozen copy, so later edits show up on already placed orders.
type Address struct {
	ID        uint   `json:"id" gorm:"primaryKey;column:address_id"`
	TenantID  uint   `json:"tenant_id" gorm:"not null;index"`
	Country   string `json:"country" gorm:"type:varchar(100)"`
	City      string `json:"city" gorm:"type:varchar(100);not null"`
	Street    string `json:"street" gorm:"type:varchar(255);not null"`
	House     string `json:"house" gorm:"type:varchar(20);not null"`
	Apartment string `json:"apartment,omitempty" gorm:"type:varchar(20)"`
	Comment   string `json:"comment,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Address) TableName() string {
	return "addresses"
}
