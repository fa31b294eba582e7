package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/coffee_shop/internal/devserver/service"
	"github.com/Skotchmaster/coffee_shop/internal/devserver/transport"
	"github.com/Skotchmaster/coffee_shop/pkg/logging"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) ListCategories(c echo.Context) error {
	cats, err := h.Svc.Categories(c.Request().Context())
	if err != nil {
		return httpError(err, "")
	}
	return c.JSON(http.StatusOK, transport.FromCategories(cats))
}

func (h *CatalogHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "create_category")

	var req transport.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid body")
	}
	cat, err := h.Svc.CreateCategory(ctx, req.Name)
	if err != nil {
		msg := "Category name is required"
		if isConflict(err) {
			msg = "Category already exists"
		}
		l.Warn("create_category_failed", "error", err)
		return httpError(err, msg)
	}
	l.Info("category_created", "category_id", cat.ID)
	return c.JSON(http.StatusCreated, transport.FromCategory(cat))
}

func (h *CatalogHTTP) DeleteCategory(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteCategory(c.Request().Context(), id); err != nil {
		return httpError(err, "Category not found")
	}
	return c.JSON(http.StatusOK, transport.Message{Message: "Category removed"})
}

func (h *CatalogHTTP) ListProducts(c echo.Context) error {
	prods, err := h.Svc.Products(c.Request().Context())
	if err != nil {
		return httpError(err, "")
	}
	return c.JSON(http.StatusOK, transport.FromProducts(prods))
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "create_product")

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid body")
	}
	p, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		l.Warn("create_product_failed", "error", err)
		return httpError(err, productMessage(err))
	}
	l.Info("product_created", "product_id", p.ID)
	return c.JSON(http.StatusCreated, transport.FromProduct(p))
}

func productMessage(err error) string {
	if errors.Is(err, service.ErrNotFound) {
		return "Category not found"
	}
	return "Product name and a positive price are required"
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteProduct(c.Request().Context(), id); err != nil {
		return httpError(err, "Product not found")
	}
	return c.JSON(http.StatusOK, transport.Message{Message: "Product removed"})
}
