package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"shopbase/internal/apperr"
	"shopbase/internal/multitenancy"
	"shopbase/internal/repository"
	"shopbase/pkg/crypto"
	"shopbase/pkg/logger"
)

// TenantSettings is the decrypted view of a shop's profile and marketplace
// credentials.
type TenantSettings struct {
	Name                   string `json:"name"`
	Subdomain              string `json:"subdomain"`
	Active                 bool   `json:"active"`
	ContactPhone           string `json:"contact_phone"`
	ContactEmail           string `json:"contact_email"`
	OzonAPIKey             string `json:"ozon_api_key,omitempty"`
	OzonClientID           string `json:"ozon_client_id,omitempty"`
	OzonSyncEnabled        bool   `json:"ozon_sync_enabled"`
	WildberriesAPIKey      string `json:"wildberries_api_key,omitempty"`
	WildberriesSyncEnabled bool   `json:"wildberries_sync_enabled"`
}

// TenantSettingsUpdate carries the editable fields. Credential pointers
// distinguish "leave unchanged" (nil) from "overwrite" (non-nil, possibly
// empty to clear).
type TenantSettingsUpdate struct {
	ContactPhone           *string `json:"contact_phone"`
	ContactEmail           *string `json:"contact_email"`
	OzonAPIKey             *string `json:"ozon_api_key"`
	OzonClientID           *string `json:"ozon_client_id"`
	OzonSyncEnabled        *bool   `json:"ozon_sync_enabled"`
	WildberriesAPIKey      *string `json:"wildberries_api_key"`
	WildberriesSyncEnabled *bool   `json:"wildberries_sync_enabled"`
}

// TenantService manages the shop profile. Marketplace credentials are
// encrypted before they reach storage and decrypted only for the settings
// view.
type TenantService struct {
	store     repository.Store
	encryptor *crypto.Encryptor
}

// NewTenantService creates a new TenantService
func NewTenantService(store repository.Store, encryptor *crypto.Encryptor) *TenantService {
	return &TenantService{store: store, encryptor: encryptor}
}

// GetSettings returns the tenant's profile with decrypted credentials.
func (s *TenantService) GetSettings(ctx context.Context, tenantID uint) (*TenantSettings, error) {
	if err := multitenancy.Require(ctx, tenantID); err != nil {
		return nil, err
	}

	tenant, err := s.store.Tenants().FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	ozonKey, err := s.encryptor.Decrypt(tenant.OzonAPIKey)
	if err != nil {
		return nil, fmt.Errorf("decrypting ozon api key: %w", err)
	}
	ozonClient, err := s.encryptor.Decrypt(tenant.OzonClientID)
	if err != nil {
		return nil, fmt.Errorf("decrypting ozon client id: %w", err)
	}
	wbKey, err := s.encryptor.Decrypt(tenant.WildberriesAPIKey)
	if err != nil {
		return nil, fmt.Errorf("decrypting wildberries api key: %w", err)
	}

	return &TenantSettings{
		Name:                   tenant.Name,
		Subdomain:              tenant.Subdomain,
		Active:                 tenant.Active,
		ContactPhone:           tenant.ContactPhone,
		ContactEmail:           tenant.ContactEmail,
		OzonAPIKey:             ozonKey,
		OzonClientID:           ozonClient,
		OzonSyncEnabled:        tenant.OzonSyncEnabled,
		WildberriesAPIKey:      wbKey,
		WildberriesSyncEnabled: tenant.WildberriesSyncOn,
	}, nil
}

// UpdateSettings applies the given changes. Credentials are encrypted at
// rest; a nil field leaves the stored value untouched.
func (s *TenantService) UpdateSettings(ctx context.Context, tenantID uint, update TenantSettingsUpdate) (*TenantSettings, error) {
	log := logger.FromContext(ctx)

	if err := multitenancy.Require(ctx, tenantID); err != nil {
		return nil, err
	}

	tenant, err := s.store.Tenants().FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !tenant.Active {
		return nil, apperr.ErrTenantInactive
	}

	if update.ContactPhone != nil {
		tenant.ContactPhone = *update.ContactPhone
	}
	if update.ContactEmail != nil {
		tenant.ContactEmail = *update.ContactEmail
	}
	if update.OzonAPIKey != nil {
		enc, err := s.encryptor.Encrypt(*update.OzonAPIKey)
		if err != nil {
			return nil, fmt.Errorf("encrypting ozon api key: %w", err)
		}
		tenant.OzonAPIKey = enc
	}
	if update.OzonClientID != nil {
		enc, err := s.encryptor.Encrypt(*update.OzonClientID)
		if err != nil {
			return nil, fmt.Errorf("encrypting ozon client id: %w", err)
		}
		tenant.OzonClientID = enc
	}
	if update.OzonSyncEnabled != nil {
		tenant.OzonSyncEnabled = *update.OzonSyncEnabled
	}
	if update.WildberriesAPIKey != nil {
		enc, err := s.encryptor.Encrypt(*update.WildberriesAPIKey)
		if err != nil {
			return nil, fmt.Errorf("encrypting wildberries api key: %w", err)
		}
		tenant.WildberriesAPIKey = enc
	}
	if update.WildberriesSyncEnabled != nil {
		tenant.WildberriesSyncOn = *update.WildberriesSyncEnabled
	}

	if err := s.store.Tenants().Update(ctx, tenant); err != nil {
		return nil, err
	}

	log.Info("Tenant settings updated", zap.Uint("tenant_id", tenantID))
	return s.GetSettings(ctx, tenantID)
}

// Deactivate blocks all further request resolution for the tenant without
// deleting any data.
func (s *TenantService) Deactivate(ctx context.Context, tenantID uint) error {
	log := logger.FromContext(ctx)

	if err := multitenancy.Require(ctx, tenantID); err != nil {
		return err
	}
	tenant, err := s.store.Tenants().FindByID(ctx, tenantID)
	if err != nil {
		return err
	}
	tenant.Active = false
	if err := s.store.Tenants().Update(ctx, tenant); err != nil {
		return err
	}

	log.Info("Tenant deactivated", zap.Uint("tenant_id", tenantID))
	return nil
}
