package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"shopbase/internal/apperr"
	"shopbase/internal/model"
	"shopbase/internal/multitenancy"
	"shopbase/internal/repository"
	"shopbase/pkg/logger"
)

// UserService manages shop customers. Email is unique within the tenant;
// customers referenced by orders are deactivated instead of deleted so order
// history stays intact.
type UserService struct {
	store repository.Store
}

// NewUserService creates a new UserService
func NewUserService(store repository.Store) *UserService {
	return &UserService{store: store}
}

// GetCustomer returns one customer.
func (s *UserService) GetCustomer(ctx context.Context, tenantID, userID uint) (*model.User, error) {
	if err := multitenancy.Require(ctx, tenantID); err != nil {
		return nil, err
	}
	return s.store.Users().FindByID(ctx, tenantID, userID)
}

// ListCustomers returns a page of the tenant's customers.
func (s *UserService) ListCustomers(ctx context.Context, tenantID uint, limit, offset int) ([]model.User, error) {
	if err := multitenancy.Require(ctx, tenantID); err != nil {
		return nil, err
	}
	return s.store.Users().List(ctx, tenantID, limit, offset)
}

// CreateCustomer persists a new customer after checking the tenant-scoped
// email uniqueness.
func (s *UserService) CreateCustomer(ctx context.Context, user *model.User) (*model.User, error) {
	log := logger.FromContext(ctx)

	if err := multitenancy.Require(ctx, user.TenantID); err != nil {
		return nil, err
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.Email == "" {
		return nil, apperr.NewInvalidRequest("customer email is required")
	}

	taken, err := s.store.Users().ExistsByEmail(ctx, user.TenantID, user.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.NewConflict("customer with email %q already exists", user.Email)
	}

	if err := s.store.Users().Create(ctx, user); err != nil {
		return nil, err
	}

	log.Info("Customer created",
		zap.Uint("tenant_id", user.TenantID),
		zap.Uint("user_id", user.ID),
		zap.String("email", user.Email))
	return user, nil
}

// UpdateCustomer overwrites an existing customer record. A changed email is
// re-checked for tenant-scoped uniqueness.
func (s *UserService) UpdateCustomer(ctx context.Context, user *model.User) (*model.User, error) {
	log := logger.FromContext(ctx)

	if err := multitenancy.Require(ctx, user.TenantID); err != nil {
		return nil, err
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.Email == "" {
		return nil, apperr.NewInvalidRequest("customer email is required")
	}

	existing, err := s.store.Users().FindByID(ctx, user.TenantID, user.ID)
	if err != nil {
		return nil, err
	}
	if existing.Email != user.Email {
		taken, err := s.store.Users().ExistsByEmail(ctx, user.TenantID, user.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.NewConflict("customer with email %q already exists", user.Email)
		}
	}

	if err := s.store.Users().Update(ctx, user); err != nil {
		return nil, err
	}

	log.Info("Customer updated",
		zap.Uint("tenant_id", user.TenantID),
		zap.Uint("user_id", user.ID))
	return user, nil
}

// DeleteCustomer removes a customer, or deactivates them when any order still
// references them. The caller cannot distinguish the two outcomes by error;
// both leave the customer unusable for new orders.
func (s *UserService) DeleteCustomer(ctx context.Context, tenantID, userID uint) error {
	log := logger.FromContext(ctx)

	if err := multitenancy.Require(ctx, tenantID); err != nil {
		return err
	}

	return s.store.InTx(ctx, func(tx repository.Store) error {
		user, err := tx.Users().FindByID(ctx, tenantID, userID)
		if err != nil {
			return err
		}
		referenced, err := tx.Orders().ExistsByCustomerID(ctx, tenantID, userID)
		if err != nil {
			return err
		}
		if referenced {
			user.Active = false
			if err := tx.Users().Update(ctx, user); err != nil {
				return err
			}
			log.Info("Customer referenced by orders, deactivated instead of deleted",
				zap.Uint("tenant_id", tenantID),
				zap.Uint("user_id", userID))
			return nil
		}
		if err := tx.Users().Delete(ctx, tenantID, userID); err != nil {
			return err
		}
		log.Info("Customer deleted", zap.Uint("tenant_id", tenantID), zap.Uint("user_id", userID))
		return nil
	})
}
