package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"shopbase/internal/model"
	"shopbase/internal/service"
	"shopbase/pkg/logger"
)

// UserHandler serves the customer endpoints.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// CustomerRequest is the customer creation/update payload.
type CustomerRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Patronymic string `json:"patronymic"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Active     *bool  `json:"active"`
}

// List returns a page of the shop's customers
func (h *UserHandler) List(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}
	limit, offset := pagination(c)

	customers, err := h.users.ListCustomers(c.Request().Context(), tenantID, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, customers)
}

// Get returns one customer
func (h *UserHandler) Get(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}
	userID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	customer, err := h.users.GetCustomer(c.Request().Context(), tenantID, userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}

// Create adds a new customer
func (h *UserHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)

	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}

	var req CustomerRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	customer := &model.User{
		TenantID:   tenantID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Patronymic: req.Patronymic,
		Email:      req.Email,
		Phone:      req.Phone,
		Active:     true,
	}
	if req.Active != nil {
		customer.Active = *req.Active
	}

	created, err := h.users.CreateCustomer(c.Request().Context(), customer)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Update overwrites a customer
func (h *UserHandler) Update(c echo.Context) error {
	log := logger.FromEcho(c)

	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}
	userID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req CustomerRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	customer := &model.User{
		ID:         userID,
		TenantID:   tenantID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Patronymic: req.Patronymic,
		Email:      req.Email,
		Phone:      req.Phone,
		Active:     true,
	}
	if req.Active != nil {
		customer.Active = *req.Active
	}

	updated, err := h.users.UpdateCustomer(c.Request().Context(), customer)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete removes a customer, or deactivates them when orders reference them
func (h *UserHandler) Delete(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}
	userID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.users.DeleteCustomer(c.Request().Context(), tenantID, userID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
