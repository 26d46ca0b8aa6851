package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"shopbase/internal/apperr"
	"shopbase/internal/model"
	"shopbase/internal/repository"
	"shopbase/pkg/logger"
)

// OrderStatusService manages the platform-wide status vocabulary. It is the
// only service without tenant scoping: status names are shared across all
// shops.
type OrderStatusService struct {
	store repository.Store
}

// NewOrderStatusService creates a new OrderStatusService
func NewOrderStatusService(store repository.Store) *OrderStatusService {
	return &OrderStatusService{store: store}
}

// GetStatus returns one vocabulary entry.
func (s *OrderStatusService) GetStatus(ctx context.Context, statusID uint) (*model.OrderStatus, error) {
	return s.store.OrderStatuses().FindByID(ctx, statusID)
}

// ListStatuses returns the whole vocabulary.
func (s *OrderStatusService) ListStatuses(ctx context.Context) ([]model.OrderStatus, error) {
	return s.store.OrderStatuses().List(ctx)
}

// CreateStatus adds a new globally unique status name.
func (s *OrderStatusService) CreateStatus(ctx context.Context, name string) (*model.OrderStatus, error) {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.NewInvalidRequest("status name is required")
	}

	exists, err := s.store.OrderStatuses().ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.NewConflict("order status %q already exists", name)
	}

	status := &model.OrderStatus{StatusName: name}
	if err := s.store.OrderStatuses().Create(ctx, status); err != nil {
		return nil, err
	}

	log.Info("Order status created", zap.Uint("status_id", status.ID), zap.String("name", name))
	return status, nil
}

// UpdateStatus renames a vocabulary entry, keeping names globally unique.
func (s *OrderStatusService) UpdateStatus(ctx context.Context, statusID uint, name string) (*model.OrderStatus, error) {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.NewInvalidRequest("status name is required")
	}

	status, err := s.store.OrderStatuses().FindByID(ctx, statusID)
	if err != nil {
		return nil, err
	}
	taken, err := s.store.OrderStatuses().ExistsByNameExcluding(ctx, name, statusID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.NewConflict("order status %q already exists", name)
	}

	status.StatusName = name
	if err := s.store.OrderStatuses().Update(ctx, status); err != nil {
		return nil, err
	}

	log.Info("Order status renamed", zap.Uint("status_id", statusID), zap.String("name", name))
	return status, nil
}

// DeleteStatus removes a vocabulary entry. Refused while any order in any
// tenant still carries it.
func (s *OrderStatusService) DeleteStatus(ctx context.Context, statusID uint) error {
	log := logger.FromContext(ctx)

	if _, err := s.store.OrderStatuses().FindByID(ctx, statusID); err != nil {
		return err
	}
	inUse, err := s.store.Orders().ExistsByStatusID(ctx, statusID)
	if err != nil {
		return err
	}
	if inUse {
		return apperr.NewIntegrity("order status %d is referenced by orders and cannot be deleted", statusID)
	}

	if err := s.store.OrderStatuses().Delete(ctx, statusID); err != nil {
		return err
	}

	log.Info("Order status deleted", zap.Uint("status_id", statusID))
	return nil
}
