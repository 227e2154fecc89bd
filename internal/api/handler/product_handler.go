package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/amoghdiagnostic/site-api/internal/api/metrics"
	"github.com/amoghdiagnostic/site-api/internal/core/ports"
)

// ProductHandler exposes CRUD for the product catalog. Writes are
// admin-gated by the router. Products arrive as multipart forms: scalar
// fields plus JSON-encoded "features"/"specifications" and image files.
type ProductHandler struct {
	productService ports.ProductService
}

func NewProductHandler(productService ports.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create handles POST /products.
//
// @Summary      Create a product
// @Tags         products
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        name  formData  string  true  "Name"
// @Param        sku   formData  string  true  "SKU"
// @Success      201  {object}  envelope
// @Failure      400  {object}  envelope
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	in, err := productInput(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	product, err := h.productService.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}

	metrics.UploadsTotal.WithLabelValues("product").Add(float64(len(in.Images)))
	return c.JSON(http.StatusCreated, ok("Product created successfully").withData(product))
}

// List handles GET /products.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Success      200  {object}  envelope
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.productService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("OK").withCount(len(products)).withData(products))
}

// Get handles GET /products/:id.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.productService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("OK").withData(product))
}

// Update handles PUT /products/:id.
//
// @Summary      Update a product
// @Tags         products
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	in, err := productInput(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	product, err := h.productService.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}

	metrics.UploadsTotal.WithLabelValues("product").Add(float64(len(in.Images)))
	return c.JSON(http.StatusOK, ok("Product updated successfully").withData(product))
}

// Delete handles DELETE /products/:id.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.productService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Product deleted successfully"))
}

func productInput(c echo.Context) (ports.ProductInput, error) {
	in := ports.ProductInput{
		Name:     c.FormValue("name"),
		Brand:    c.FormValue("brand"),
		Category: c.FormValue("category"),
		Model:    c.FormValue("model"),
		SKU:      c.FormValue("sku"),
		Warranty: c.FormValue("warranty"),
		Usage:    c.FormValue("usage"),
		Status:   c.FormValue("status"),
	}

	if v := c.FormValue("discount"); v != "" {
		d, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return in, echo.NewHTTPError(http.StatusBadRequest, "discount must be a number")
		}
		in.Discount = d
	}
	if v := c.FormValue("stock"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return in, echo.NewHTTPError(http.StatusBadRequest, "stock must be an integer")
		}
		in.Stock = n
	}
	if v := c.FormValue("features"); v != "" {
		if err := json.Unmarshal([]byte(v), &in.Features); err != nil {
			return in, echo.NewHTTPError(http.StatusBadRequest, "features must be a JSON array of strings")
		}
	}
	if v := c.FormValue("specifications"); v != "" {
		if err := json.Unmarshal([]byte(v), &in.Specifications); err != nil {
			return in, echo.NewHTTPError(http.StatusBadRequest, "specifications must be a JSON object")
		}
	}

	in.Images = formFiles(c, "images")
	return in, nil
}
