package model

import (
	"time"
)

// Tenant represents one independent shop served by this deployment.
// It is the unit of data isolation: every scoped entity carries its id.
type Tenant struct {
	ID        uint   `json:"id" gorm:"primaryKey;column:tenant_id"`
	Name      string `json:"name" gorm:"type:varchar(255);not null;uniqueIndex"`
	Subdomain string `json:"subdomain" gorm:"type:varchar(63);uniqueIndex"`
	Active    bool   `json:"active" gorm:"column:is_active;not null;default:true"`

	ContactPhone string `json:"contact_phone,omitempty" gorm:"type:varchar(50)"`
	ContactEmail string `json:"contact_email,omitempty" gorm:"type:varchar(255)"`

	// Marketplace credentials, stored encrypted (pkg/crypto).
	OzonAPIKey          string `json:"-" gorm:"column:ozon_api_key;type:varchar(500)"`
	OzonClientID        string `json:"-" gorm:"column:ozon_client_id;type:varchar(500)"`
	OzonSyncEnabled     bool   `json:"ozon_sync_enabled" gorm:"default:false"`
	WildberriesAPIKey   string `json:"-" gorm:"column:wildberries_api_key;type:varchar(500)"`
	WildberriesSyncOn   bool   `json:"wildberries_sync_enabled" gorm:"column:wildberries_sync_enabled;default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Tenant) TableName() string {
	return "tenants"
}
