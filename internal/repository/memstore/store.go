// Package memstore is an in-memory implementation of repository.Store.
//
// It backs the "memory" storage driver for local development and the unit
// tests of the service layer. Transactions are snapshot based: InTx clones
// the whole dataset, runs the function against the clone and swaps it in on
// success, so a failing operation leaves no partial state behind. That is the
// same all-or-nothing contract the gorm store gets from database transactions.
package memstore

import (
	"context"
	"sync"

	"shopbase/internal/model"
	"shopbase/internal/repository"
)

type data struct {
	tenants       map[uint]model.Tenant
	tenantUsers   map[uint]model.TenantUser
	users         map[uint]model.User
	addresses     map[uint]model.Address
	products      map[uint]model.Product
	photos        map[uint]model.ProductPhoto
	orders        map[uint]model.Order
	orderItems    map[uint]model.OrderItem
	orderStatuses map[uint]model.OrderStatus
	seq           map[string]uint
}

func newData() *data {
	return &data{
		tenants:       make(map[uint]model.Tenant),
		tenantUsers:   make(map[uint]model.TenantUser),
		users:         make(map[uint]model.User),
		addresses:     make(map[uint]model.Address),
		products:      make(map[uint]model.Product),
		photos:        make(map[uint]model.ProductPhoto),
		orders:        make(map[uint]model.Order),
		orderItems:    make(map[uint]model.OrderItem),
		orderStatuses: make(map[uint]model.OrderStatus),
		seq:           make(map[string]uint),
	}
}

// Stored structs never hold association pointers or slices, so entry-by-entry
// map copies give an independent snapshot.
func (d *data) clone() *data {
	c := newData()
	for k, v := range d.tenants {
		c.tenants[k] = v
	}
	for k, v := range d.tenantUsers {
		v.Tenant = nil
		c.tenantUsers[k] = v
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.addresses {
		c.addresses[k] = v
	}
	for k, v := range d.products {
		v.Photos = nil
		c.products[k] = v
	}
	for k, v := range d.photos {
		c.photos[k] = v
	}
	for k, v := range d.orders {
		v.Customer, v.Address, v.Status, v.Items = nil, nil, nil, nil
		c.orders[k] = v
	}
	for k, v := range d.orderItems {
		v.Product = nil
		c.orderItems[k] = v
	}
	for k, v := range d.orderStatuses {
		c.orderStatuses[k] = v
	}
	for k, v := range d.seq {
		c.seq[k] = v
	}
	return c
}

func (d *data) nextID(entity string) uint {
	d.seq[entity]++
	return d.seq[entity]
}

// Store implements repository.Store in memory.
type Store struct {
	mu   *sync.Mutex
	data *data
	// inTx marks a transactional view; such views run under the parent's
	// lock and must not lock again.
	inTx bool
}

// New returns an empty store.
func New() *Store {
	return &Store{mu: &sync.Mutex{}, data: newData()}
}

func (s *Store) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) Tenants() repository.TenantRepository            { return &tenantRepo{s} }
func (s *Store) TenantUsers() repository.TenantUserRepository    { return &tenantUserRepo{s} }
func (s *Store) Users() repository.UserRepository                { return &userRepo{s} }
func (s *Store) Addresses() repository.AddressRepository         { return &addressRepo{s} }
func (s *Store) Products() repository.ProductRepository          { return &productRepo{s} }
func (s *Store) Orders() repository.OrderRepository              { return &orderRepo{s} }
func (s *Store) OrderItems() repository.OrderItemRepository      { return &orderItemRepo{s} }
func (s *Store) OrderStatuses() repository.OrderStatusRepository { return &orderStatusRepo{s} }

// InTx serializes transactions behind the store mutex and applies fn to a
// snapshot, swapping it in only when fn succeeds.
func (s *Store) InTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.inTx {
		// Already transactional, join the ambient snapshot.
		return fn(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	tx := &Store{mu: s.mu, data: snapshot, inTx: true}
	if err := fn(tx); err != nil {
		return err
	}
	s.data = snapshot
	return nil
}
