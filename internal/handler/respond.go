// Package handler is the thin HTTP surface over the service layer: request
// binding, tenant extraction and error mapping, no business rules.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"shopbase/internal/apperr"
	"shopbase/internal/multitenancy"
	"shopbase/pkg/logger"
)

// writeError maps the service error taxonomy onto HTTP statuses. Unexpected
// errors are logged with full detail but surfaced with a generic message.
func writeError(c echo.Context, err error) error {
	var stockErr *apperr.InsufficientStockError
	if errors.As(err, &stockErr) {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":      "Insufficient stock",
			"product_id": stockErr.ProductID,
			"requested":  stockErr.Requested,
			"available":  stockErr.Available,
		})
	}

	switch {
	case apperr.IsNotFound(err):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case apperr.IsConflict(err):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case apperr.IsInvalidRequest(err):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, apperr.ErrUnauthorized), errors.Is(err, apperr.ErrUserDisabled):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
	case errors.Is(err, apperr.ErrTenantInactive):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "This store is temporarily unavailable."})
	case errors.Is(err, apperr.ErrNoTenant):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No store is bound to this request"})
	case errors.Is(err, apperr.ErrTenantMismatch):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Access denied"})
	}

	var integrity *apperr.IntegrityError
	if errors.As(err, &integrity) {
		return c.JSON(http.StatusConflict, echo.Map{"error": integrity.Message})
	}

	logger.FromEcho(c).Error("Unhandled service error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
}

// requireTenant returns the tenant bound by the resolver, or a 400 when the
// endpoint was reached without one.
func requireTenant(c echo.Context) (uint, error) {
	tenantID, ok := multitenancy.FromContext(c.Request().Context())
	if !ok {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "No store is bound to this request")
	}
	return tenantID, nil
}

// paramID parses a numeric path parameter.
func paramID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}

// pagination reads limit/offset query parameters with sane defaults.
func pagination(c echo.Context) (limit, offset int) {
	limit = 50
	offset = 0
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 && v <= 200 {
		limit = v
	}
	if v, err := strconv.Atoi(c.QueryParam("offset")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}
