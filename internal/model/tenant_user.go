package model

import (
	"time"
)

// TenantUser is a staff account of one shop. Usernames are unique within a
// tenant only; the compound "subdomain:username" form is globally unique.
type TenantUser struct {
	ID           uint   `json:"id" gorm:"primaryKey;column:tenant_user_id"`
	TenantID     uint   `json:"tenant_id" gorm:"not null;uniqueIndex:idx_tenant_username,priority:1"`
	Username     string `json:"username" gorm:"column:username_in_tenant;type:varchar(100);not null;uniqueIndex:idx_tenant_username,priority:2"`
	PasswordHash string `json:"-" gorm:"type:varchar(255);not null"`
	Email        string `json:"email" gorm:"type:varchar(255);not null"`
	FirstName    string `json:"first_name,omitempty" gorm:"type:varchar(100)"`
	LastName     string `json:"last_name,omitempty" gorm:"type:varchar(100)"`
	Role         string `json:"role" gorm:"type:varchar(50);not null;default:'ROLE_ADMIN'"`
	Active       bool   `json:"active" gorm:"column:is_active;not null;default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tenant *Tenant `json:"-" gorm:"foreignKey:TenantID"`
}

func (TenantUser) TableName() string {
	return "tenant_users"
}
