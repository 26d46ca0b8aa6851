package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopbase/internal/service"
)

// OrderStatusHandler serves the platform-wide status vocabulary. These
// endpoints are tenant-agnostic.
type OrderStatusHandler struct {
	statuses *service.OrderStatusService
}

// NewOrderStatusHandler creates a new OrderStatusHandler
func NewOrderStatusHandler(statuses *service.OrderStatusService) *OrderStatusHandler {
	return &OrderStatusHandler{statuses: statuses}
}

// List returns the whole vocabulary
func (h *OrderStatusHandler) List(c echo.Context) error {
	statuses, err := h.statuses.ListStatuses(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, statuses)
}

// Get returns one status
func (h *OrderStatusHandler) Get(c echo.Context) error {
	statusID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	status, err := h.statuses.GetStatus(c.Request().Context(), statusID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, status)
}

// Create adds a new status name
func (h *OrderStatusHandler) Create(c echo.Context) error {
	var req struct {
		StatusName string `json:"status_name"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	status, err := h.statuses.CreateStatus(c.Request().Context(), req.StatusName)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, status)
}

// Update renames a status
func (h *OrderStatusHandler) Update(c echo.Context) error {
	statusID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		StatusName string `json:"status_name"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	status, err := h.statuses.UpdateStatus(c.Request().Context(), statusID, req.StatusName)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, status)
}

// Delete removes a status not referenced by any order
func (h *OrderStatusHandler) Delete(c echo.Context) error {
	statusID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.statuses.DeleteStatus(c.Request().Context(), statusID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
