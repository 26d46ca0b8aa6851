package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"shopbase/internal/service"
	"shopbase/pkg/logger"
)

// TenantHandler serves the shop settings endpoints.
type TenantHandler struct {
	tenants *service.TenantService
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(tenants *service.TenantService) *TenantHandler {
	return &TenantHandler{tenants: tenants}
}

// GetSettings returns the shop profile with decrypted marketplace credentials
func (h *TenantHandler) GetSettings(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}

	settings, err := h.tenants.GetSettings(c.Request().Context(), tenantID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateSettings applies profile and credential changes
func (h *TenantHandler) UpdateSettings(c echo.Context) error {
	log := logger.FromEcho(c)

	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}

	var req service.TenantSettingsUpdate
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	settings, err := h.tenants.UpdateSettings(c.Request().Context(), tenantID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}

// Deactivate takes the shop offline without deleting data
func (h *TenantHandler) Deactivate(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}

	if err := h.tenants.Deactivate(c.Request().Context(), tenantID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
