// Package repository defines the storage contracts of the back office.
//
// Every method touching a tenant-scoped entity takes the tenant id as an
// explicit query parameter: scoping is part of query construction, not an
// ambient side effect, so a call can never execute fail-open before some
// filter is toggled. Tenant-agnostic methods (tenant provisioning, the global
// order status vocabulary) are the only ones without the parameter.
package repository

import (
	"context"

	"shopbase/internal/model"
)

// TenantRepository manages tenant records. Not tenant-scoped by definition.
type TenantRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Tenant, error)
	FindBySubdomain(ctx context.Context, subdomain string) (*model.Tenant, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	ExistsBySubdomain(ctx context.Context, subdomain string) (bool, error)
	Create(ctx context.Context, tenant *model.Tenant) error
	Update(ctx context.Context, tenant *model.Tenant) error
}

// TenantUserRepository manages shop staff accounts.
type TenantUserRepository interface {
	FindByTenantAndUsername(ctx context.Context, tenantID uint, username string) (*model.TenantUser, error)
	// FindByUsername is the plain-username fallback used when a login arrives
	// without the subdomain prefix.
	FindByUsername(ctx context.Context, username string) (*model.TenantUser, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *model.TenantUser) error
	Update(ctx context.Context, user *model.TenantUser) error
}

// UserRepository manages shop customers.
type UserRepository interface {
	FindByID(ctx context.Context, tenantID, id uint) (*model.User, error)
	List(ctx context.Context, tenantID uint, limit, offset int) ([]model.User, error)
	ExistsByEmail(ctx context.Context, tenantID uint, email string) (bool, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, tenantID, id uint) error
}

// AddressRepository manages delivery addresses.
type AddressRepository interface {
	FindByID(ctx context.Context, tenantID, id uint) (*model.Address, error)
	List(ctx context.Context, tenantID uint, limit, offset int) ([]model.Address, error)
	Create(ctx context.Context, address *model.Address) error
	Update(ctx context.Context, address *model.Address) error
	Delete(ctx context.Context, tenantID, id uint) error
}

// ProductRepository manages catalog records, their photos and stock.
type ProductRepository interface {
	FindByID(ctx context.Context, tenantID, id uint) (*model.Product, error)
	Search(ctx context.Context, tenantID uint, criteria model.ProductSearchCriteria, limit, offset int) ([]model.Product, error)
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, tenantID, id uint) error

	// DecrementStock performs the check-and-decrement as one conditional
	// update: it succeeds only when the product still has at least quantity
	// units, otherwise it returns an InsufficientStockError carrying the
	// current availability. Concurrent orders for the same product can never
	// drive the stock negative through it.
	DecrementStock(ctx context.Context, tenantID, productID uint, quantity int) error
	// RestoreStock adds quantity back, e.g. on cancellation or return.
	RestoreStock(ctx context.Context, tenantID, productID uint, quantity int) error

	FindPhoto(ctx context.Context, tenantID, photoID uint) (*model.ProductPhoto, error)
	ListPhotos(ctx context.Context, tenantID, productID uint) ([]model.ProductPhoto, error)
	CreatePhoto(ctx context.Context, photo *model.ProductPhoto) error
	UpdatePhoto(ctx context.Context, photo *model.ProductPhoto) error
	DeletePhoto(ctx context.Context, tenantID, photoID uint) error
	// ClearMainPhoto drops the main flag from every photo of the product,
	// preparing the single-main invariant before a new main is set.
	ClearMainPhoto(ctx context.Context, tenantID, productID uint) error
}

// OrderRepository manages orders. Create persists the order together with its
// lines; Delete cascades to them.
type OrderRepository interface {
	FindByID(ctx context.Context, tenantID, id uint) (*model.Order, error)
	List(ctx context.Context, tenantID uint, limit, offset int) ([]model.Order, error)
	Create(ctx context.Context, order *model.Order) error
	Update(ctx context.Context, order *model.Order) error
	Delete(ctx context.Context, tenantID, id uint) error
	ExistsByID(ctx context.Context, tenantID, id uint) (bool, error)
	ExistsByCustomerID(ctx context.Context, tenantID, customerID uint) (bool, error)
	// ExistsByStatusID is tenant-agnostic: the status vocabulary is global,
	// so the in-use check spans all tenants.
	ExistsByStatusID(ctx context.Context, statusID uint) (bool, error)
}

// OrderItemRepository manages individual order lines after order creation.
type OrderItemRepository interface {
	FindByID(ctx context.Context, tenantID, id uint) (*model.OrderItem, error)
	ListByOrder(ctx context.Context, tenantID, orderID uint) ([]model.OrderItem, error)
	FindByOrderAndProduct(ctx context.Context, tenantID, orderID, productID uint) (*model.OrderItem, error)
	Create(ctx context.Context, item *model.OrderItem) error
	Update(ctx context.Context, item *model.OrderItem) error
	Delete(ctx context.Context, tenantID, id uint) error
	ExistsByProductID(ctx context.Context, tenantID, productID uint) (bool, error)
}

// OrderStatusRepository manages the global status vocabulary. Deliberately
// not tenant-scoped.
type OrderStatusRepository interface {
	FindByID(ctx context.Context, id uint) (*model.OrderStatus, error)
	FindByName(ctx context.Context, name string) (*model.OrderStatus, error)
	List(ctx context.Context) ([]model.OrderStatus, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	ExistsByNameExcluding(ctx context.Context, name string, excludeID uint) (bool, error)
	Create(ctx context.Context, status *model.OrderStatus) error
	Update(ctx context.Context, status *model.OrderStatus) error
	Delete(ctx context.Context, id uint) error
}

// Store aggregates the repositories and provides transactions. InTx runs fn
// against a transactional view of the store; any error rolls the whole unit
// back, leaving stock and order state exactly as before the attempt.
type Store interface {
	Tenants() TenantRepository
	TenantUsers() TenantUserRepository
	Users() UserRepository
	Addresses() AddressRepository
	Products() ProductRepository
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	OrderStatuses() OrderStatusRepository

	InTx(ctx context.Context, fn func(Store) error) error
}
