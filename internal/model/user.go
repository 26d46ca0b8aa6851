package model

import (
	"time"
)

// User is a shop customer. Email is unique within the owning tenant.
// Customers referenced by orders are deactivated instead of deleted.
type User struct {
	ID         uint   `json:"id" gorm:"primaryKey;column:user_id"`
	TenantID   uint   `json:"tenant_id" gorm:"not null;uniqueIndex:idx_tenant_email,priority:1"`
	FirstName  string `json:"first_name" gorm:"type:varchar(100)"`
	LastName   string `json:"last_name" gorm:"type:varchar(100)"`
	Patronymic string `json:"patronymic,omitempty" gorm:"type:varchar(100)"`
	Email      string `json:"email" gorm:"type:varchar(255);not null;uniqueIndex:idx_tenant_email,priority:2"`
	Phone      string `json:"phone,omitempty" gorm:"type:varchar(50)"`
	Active     bool   `json:"active" gorm:"column:is_active;not null;default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
