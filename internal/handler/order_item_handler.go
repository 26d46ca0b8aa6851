package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopbase/internal/service"
)

// OrderItemHandler serves line edits on existing orders.
type OrderItemHandler struct {
	items *service.OrderItemService
}

// NewOrderItemHandler creates a new OrderItemHandler
func NewOrderItemHandler(items *service.OrderItemService) *OrderItemHandler {
	return &OrderItemHandler{items: items}
}

// ListByOrder returns the lines of one order
func (h *OrderItemHandler) ListByOrder(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}
	orderID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	items, err := h.items.ListItems(c.Request().Context(), tenantID, orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// Add appends a line to an order
func (h *OrderItemHandler) Add(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}
	orderID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		ProductID uint `json:"product_id"`
		Quantity  int  `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	item, err := h.items.AddItem(c.Request().Context(), tenantID, orderID, req.ProductID, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

// Update changes the quantity of a line
func (h *OrderItemHandler) Update(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}
	itemID, err := paramID(c, "itemId")
	if err != nil {
		return err
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	item, err := h.items.UpdateItem(c.Request().Context(), tenantID, itemID, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// Delete removes a line, returning its quantity to stock
func (h *OrderItemHandler) Delete(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}
	itemID, err := paramID(c, "itemId")
	if err != nil {
		return err
	}

	if err := h.items.DeleteItem(c.Request().Context(), tenantID, itemID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
