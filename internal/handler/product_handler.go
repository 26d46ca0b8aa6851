package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"shopbase/internal/model"
	"shopbase/internal/service"
	"shopbase/pkg/logger"
)

// ProductHandler serves the catalog endpoints.
type ProductHandler struct {
	products *service.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products *service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// ProductRequest is the product creation/update payload.
type ProductRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	Category      string          `json:"category"`
	Active        *bool           `json:"active"`
}

// Search returns products matching the query parameters
func (h *ProductHandler) Search(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}
	limit, offset := pagination(c)

	criteria := model.ProductSearchCriteria{
		NameLike: c.QueryParam("name"),
		Category: c.QueryParam("category"),
	}
	if raw := c.QueryParam("active"); raw != "" {
		if active, err := strconv.ParseBool(raw); err == nil {
			criteria.Active = &active
		}
	}

	products, err := h.products.SearchProducts(c.Request().Context(), tenantID, criteria, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

// Get returns one product with its photos
func (h *ProductHandler) Get(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}
	productID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	product, err := h.products.GetProduct(c.Request().Context(), tenantID, productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// Create adds a new product
func (h *ProductHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)

	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	product := &model.Product{
		TenantID:      tenantID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		Category:      req.Category,
		Active:        true,
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	created, err := h.products.CreateProduct(c.Request().Context(), product)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Update overwrites a product
func (h *ProductHandler) Update(c echo.Context) error {
	log := logger.FromEcho(c)

	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}
	productID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	product := &model.Product{
		ID:            productID,
		TenantID:      tenantID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		Category:      req.Category,
		Active:        true,
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	updated, err := h.products.UpdateProduct(c.Request().Context(), product)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete removes a product not referenced by any order
func (h *ProductHandler) Delete(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}
	productID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.products.DeleteProduct(c.Request().Context(), tenantID, productID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListPhotos returns the ordered gallery of a product
func (h *ProductHandler) ListPhotos(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}
	productID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	photos, err := h.products.ListPhotos(c.Request().Context(), tenantID, productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, photos)
}

// AddPhoto appends a gallery entry
func (h *ProductHandler) AddPhoto(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}
	productID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		FilePath     string `json:"file_path"`
		DisplayOrder int    `json:"display_order"`
		Main         bool   `json:"main"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	photo, err := h.products.AddPhoto(c.Request().Context(), &model.ProductPhoto{
		TenantID:     tenantID,
		ProductID:    productID,
		FilePath:     req.FilePath,
		DisplayOrder: req.DisplayOrder,
		Main:         req.Main,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, photo)
}

// UpdatePhoto changes the file path and display order of a gallery entry
func (h *ProductHandler) UpdatePhoto(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}
	photoID, err := paramID(c, "photoId")
	if err != nil {
		return err
	}

	var req struct {
		FilePath     string `json:"file_path"`
		DisplayOrder int    `json:"display_order"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	photo, err := h.products.UpdatePhoto(c.Request().Context(), tenantID, photoID, req.FilePath, req.DisplayOrder)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, photo)
}

// SetMainPhoto makes one photo the main image of its product
func (h *ProductHandler) SetMainPhoto(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}
	photoID, err := paramID(c, "photoId")
	if err != nil {
		return err
	}

	photo, err := h.products.SetMainPhoto(c.Request().Context(), tenantID, photoID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, photo)
}

// DeletePhoto removes a gallery entry
func (h *ProductHandler) DeletePhoto(c echo.Context) error {
	tenantID, err := requireTenant(c)
	if err != nil {
		return err
	}
	photoID, err := paramID(c, "photoId")
	if err != nil {
		return err
	}

	if err := h.products.DeletePhoto(c.Request().Context(), tenantID, photoID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
