package service

import (
	"context"

	"go.uber.org/zap"

	"shopbase/internal/apperr"
	"shopbase/internal/model"
	"shopbase/internal/multitenancy"
	"shopbase/internal/repository"
	"shopbase/pkg/logger"
)

// AddressService manages delivery addresses. Orders keep a live reference to
// the address, so an edit here is visible on already placed orders.
type AddressService struct {
	store repository.Store
}

// NewAddressService creates a new AddressService
func NewAddressService(store repository.Store) *AddressService {
	return &AddressService{store: store}
}

// GetAddress returns one address.
func (s *AddressService) GetAddress(ctx context.Context, tenantID, addressID uint) (*model.Address, error) {
	if err := multitenancy.Require(ctx, tenantID); err != nil {
		return nil, err
	}
	return s.store.Addresses().FindByID(ctx, tenantID, addressID)
}

// ListAddresses returns a page of the tenant's addresses.
func (s *AddressService) ListAddresses(ctx context.Context, tenantID uint, limit, offset int) ([]model.Address, error) {
	if err := multitenancy.Require(ctx, tenantID); err != nil {
		return nil, err
	}
	return s.store.Addresses().List(ctx, tenantID, limit, offset)
}

// CreateAddress persists a new address.
func (s *AddressService) CreateAddress(ctx context.Context, address *model.Address) (*model.Address, error) {
	log := logger.FromContext(ctx)

	if err := multitenancy.Require(ctx, address.TenantID); err != nil {
		return nil, err
	}
	if err := validateAddress(address); err != nil {
		return nil, err
	}

	if err := s.store.Addresses().Create(ctx, address); err != nil {
		return nil, err
	}

	log.Info("Address created",
		zap.Uint("tenant_id", address.TenantID),
		zap.Uint("address_id", address.ID))
	return address, nil
}

// UpdateAddress overwrites an existing address.
func (s *AddressService) UpdateAddress(ctx context.Context, address *model.Address) (*model.Address, error) {
	log := logger.FromContext(ctx)

	if err := multitenancy.Require(ctx, address.TenantID); err != nil {
		return nil, err
	}
	if err := validateAddress(address); err != nil {
		return nil, err
	}
	if _, err := s.store.Addresses().FindByID(ctx, address.TenantID, address.ID); err != nil {
		return nil, err
	}

	if err := s.store.Addresses().Update(ctx, address); err != nil {
		return nil, err
	}

	log.Info("Address updated",
		zap.Uint("tenant_id", address.TenantID),
		zap.Uint("address_id", address.ID))
	return address, nil
}

// DeleteAddress removes an address.
func (s *AddressService) DeleteAddress(ctx context.Context, tenantID, addressID uint) error {
	log := logger.FromContext(ctx)

	if err := multitenancy.Require(ctx, tenantID); err != nil {
		return err
	}
	if _, err := s.store.Addresses().FindByID(ctx, tenantID, addressID); err != nil {
		return err
	}
	if err := s.store.Addresses().Delete(ctx, tenantID, addressID); err != nil {
		return err
	}

	log.Info("Address deleted", zap.Uint("tenant_id", tenantID), zap.Uint("address_id", addressID))
	return nil
}

func validateAddress(address *model.Address) error {
	if address.City == "" {
		return apperr.NewInvalidRequest("address city is required")
	}
	if address.Street == "" {
		return apperr.NewInvalidRequest("address street is required")
	}
	if address.House == "" {
		return apperr.NewInvalidRequest("address house is required")
	}
	return nil
}
