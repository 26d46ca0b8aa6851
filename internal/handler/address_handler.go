package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopbase/internal/model"
	"shopbase/internal/service"
)

// AddressHandler serves the delivery address endpoints.
type AddressHandler struct {
	addresses *service.AddressService
}

// NewAddressHandler creates a new AddressHandler
func NewAddressHandler(addresses *service.AddressService) *AddressHandler {
	return &AddressHandler{addresses: addresses}
}

// AddressRequest is the address creation/update payload.
type AddressRequest struct {
	Country   string `json:"country"`
	City      string `json:"city"`
	Street    string `json:"street"`
	House     string `json:"house"`
	Apartment string `json:"apartment"`
	Comment   string `json:"comment"`
}

// List returns a page of the shop's addresses
func (h *AddressHandler) List(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}
	limit, offset := pagination(c)

	addresses, err := h.addresses.ListAddresses(c.Request().Context(), tenantID, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, addresses)
}

// Get returns one address
func (h *AddressHandler) Get(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}
	addressID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	address, err := h.addresses.GetAddress(c.Request().Context(), tenantID, addressID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, address)
}

// Create adds a new address
func (h *AddressHandler) Create(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}

	var req AddressRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	created, err := h.addresses.CreateAddress(c.Request().Context(), &model.Address{
		TenantID:  tenantID,
		Country:   req.Country,
		City:      req.City,
		Street:    req.Street,
		House:     req.House,
		Apartment: req.Apartment,
		Comment:   req.Comment,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Update overwrites an address. Orders referencing it see the change.
func (h *AddressHandler) Update(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}
	addressID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req AddressRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	updated, err := h.addresses.UpdateAddress(c.Request().Context(), &model.Address{
		ID:        addressID,
		TenantID:  tenantID,
		Country:   req.Country,
		City:      req.City,
		Street:    req.Street,
		House:     req.House,
		Apartment: req.Apartment,
		Comment:   req.Comment,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete removes an address
func (h *AddressHandler) Delete(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}
	addressID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.addresses.DeleteAddress(c.Request().Context(), tenantID, addressID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
