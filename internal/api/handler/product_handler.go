package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vendora/catalog-api/internal/api/metrics"
	"github.com/vendora/catalog-api/internal/core/ports"
)

// ProductHandler handles the catalog routes. Every route runs behind Auth.
type ProductHandler struct {
	service ports.CatalogService
	log     zerolog.Logger
}

func NewProductHandler(service ports.CatalogService, log zerolog.Logger) *ProductHandler {
	return &ProductHandler{service: service, log: log}
}

func (h *ProductHandler) record(operation string, err error) {
	metrics.ProductOperationsTotal.WithLabelValues(operation, resultOf(err)).Inc()
}

// List handles GET /v1/products.
//
// @Summary      List the caller's products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=[]domain.Product}
// @Failure      401  {object}  envelope
// @Failure      500  {object}  envelope
// @Router       /v1/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	owner, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	products, err := h.service.List(c.Request().Context(), owner)
	h.record("list", err)
	if err != nil {
		return fail(c, h.log, err, "Failed to retrieve products")
	}

	return success(c, http.StatusOK, "", products)
}

// Create handles POST /v1/products.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product"
// @Success      201   {object}  envelope{data=domain.Product}
// @Failure      401   {object}  envelope
// @Failure      422   {object}  envelope
// @Failure      500   {object}  envelope
// @Router       /v1/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	owner, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := bind(c, &req); err != nil {
		err = withInputErrors(err, req.toInput())
		h.record("create", err)
		return fail(c, h.log, err, "Failed to create the product")
	}

	product, err := h.service.Create(c.Request().Context(), owner, req.toInput())
	h.record("create", err)
	if err != nil {
		return fail(c, h.log, err, "Failed to create the product")
	}

	return success(c, http.StatusCreated, "Product created successfully", product)
}

// Get handles GET /v1/products/:id.
//
// @Summary      Get one of the caller's products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  envelope{data=domain.Product}
// @Failure      401  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /v1/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	owner, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	product, err := h.service.Get(c.Request().Context(), owner, c.Param("id"))
	h.record("get", err)
	if err != nil {
		return fail(c, h.log, err, "Failed to retrieve the product")
	}

	return success(c, http.StatusOK, "", product)
}

// Update handles PUT /v1/products/:id.
//
// @Summary      Update one of the caller's products
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Product ID"
// @Param        body  body      productRequest  true  "Product"
// @Success      200   {object}  envelope{data=domain.Product}
// @Failure      401   {object}  envelope
// @Failure      404   {object}  envelope
// @Failure      422   {object}  envelope
// @Router       /v1/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	owner, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := bind(c, &req); err != nil {
		err = withInputErrors(err, req.toInput())
		h.record("update", err)
		return fail(c, h.log, err, "Failed to update the product")
	}

	product, err := h.service.Update(c.Request().Context(), owner, c.Param("id"), req.toInput())
	h.record("update", err)
	if err != nil {
		return fail(c, h.log, err, "Failed to update the product")
	}

	return success(c, http.StatusOK, "Product updated successfully", product)
}

// Delete handles DELETE /v1/products/:id.
//
// @Summary      Delete one of the caller's products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  envelope
// @Failure      401  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /v1/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	owner, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	err = h.service.Delete(c.Request().Context(), owner, c.Param("id"))
	h.record("delete", err)
	if err != nil {
		return fail(c, h.log, err, "Failed to delete the product")
	}

	return success(c, http.StatusOK, "Product deleted successfully", nil)
}
