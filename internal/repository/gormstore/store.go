// Package gormstore is the PostgreSQL implementation of repository.Store.
package gormstore

import (
	"context"

	"gorm.io/gorm"

	"shopbase/internal/repository"
)

// Store implements repository.Store on top of gorm.
type Store struct {
	db *gorm.DB
}

// New wraps a gorm handle. Pass a transaction handle to get a transactional
// view; InTx does exactly that.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Tenants() repository.TenantRepository           { return &tenantRepo{db: s.db} }
func (s *Store) TenantUsers() repository.TenantUserRepository   { return &tenantUserRepo{db: s.db} }
func (s *Store) Users() repository.UserRepository               { return &userRepo{db: s.db} }
func (s *Store) Addresses() repository.AddressRepository        { return &addressRepo{db: s.db} }
func (s *Store) Products() repository.ProductRepository         { return &productRepo{db: s.db} }
func (s *Store) Orders() repository.OrderRepository             { return &orderRepo{db: s.db} }
func (s *Store) OrderItems() repository.OrderItemRepository     { return &orderItemRepo{db: s.db} }
func (s *Store) OrderStatuses() repository.OrderStatusRepository { return &orderStatusRepo{db: s.db} }

// InTx runs fn inside one database transaction. fn returning an error rolls
// everything back.
func (s *Store) InTx(ctx context.Context, fn func(repository.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}
