package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"shopbase/internal/service"
	"shopbase/pkg/logger"
)

// OrderHandler serves the order lifecycle endpoints.
type OrderHandler struct {
	orders *service.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// CreateOrderRequest is the order creation payload.
type CreateOrderRequest struct {
	CustomerID uint                     `json:"customer_id"`
	AddressID  uint                     `json:"address_id"`
	Items      []service.OrderLineInput `json:"items"`
}

// UpdateStatusRequest carries a status transition.
type UpdateStatusRequest struct {
	StatusID uint   `json:"status_id"`
	Comment  string `json:"comment"`
}

// List returns a page of the shop's orders
func (h *OrderHandler) List(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}
	limit, offset := pagination(c)

	orders, err := h.orders.ListOrders(c.Request().Context(), tenantID, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// Get returns one order with its items
func (h *OrderHandler) Get(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}
	orderID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.orders.GetOrder(c.Request().Context(), tenantID, orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// Create places a new order
func (h *OrderHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)

	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	order, err := h.orders.CreateOrder(c.Request().Context(), tenantID, req.CustomerID, req.AddressID, req.Items)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}

// UpdateStatus moves an order to another status
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	log := logger.FromEcho(c)

	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}
	orderID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	order, err := h.orders.UpdateOrderStatus(c.Request().Context(), tenantID, orderID, req.StatusID, req.Comment)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// Cancel cancels an order, restoring its stock
func (h *OrderHandler) Cancel(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}
	orderID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	order, err := h.orders.CancelOrder(c.Request().Context(), tenantID, orderID, req.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// Pay processes payment for an order in "Created"
func (h *OrderHandler) Pay(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}
	orderID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		PaymentRef string `json:"payment_ref"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	order, err := h.orders.ProcessOrderPayment(c.Request().Context(), tenantID, orderID, req.PaymentRef)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// Delete removes a canceled or returned order
func (h *OrderHandler) Delete(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}
	orderID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.orders.DeleteOrder(c.Request().Context(), tenantID, orderID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
