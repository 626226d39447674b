package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/store_api/internal/logging"
	"github.com/Skotchmaster/store_api/internal/models"
	"github.com/Skotchmaster/store_api/internal/transport"
	"github.com/Skotchmaster/store_api/internal/util"
)

// ProductHandler serves the public, unauthenticated catalog reads.
type ProductHandler struct {
	DB *gorm.DB
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	limit, skip := util.LimitSkip(c.QueryParam("limit"), c.QueryParam("skip"))
	search := c.QueryParam("search")

	var items []models.Product
	if err := h.DB.WithContext(ctx).
		Model(&models.Product{}).
		Group("id").
		Where("name LIKE ?", "%"+search+"%").
		Limit(limit).
		Offset(skip).
		Find(&items).Error; err != nil {
		l.Error("list_products_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	return c.JSON(http.StatusOK, transport.NewProductsOut(items))
}

func (h *ProductHandler) GetAllCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.categories")

	var categories []string
	if err := h.DB.WithContext(ctx).
		Model(&models.Product{}).
		Distinct().
		Pluck("category", &categories).Error; err != nil {
		l.Error("list_categories_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list categories")
	}

	if len(categories) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "No products and Category")
	}

	return c.JSON(http.StatusOK, echo.Map{"category": categories})
}

func (h *ProductHandler) GetProductsByCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.by_category")

	name := c.Param("name")

	var items []models.Product
	if err := h.DB.WithContext(ctx).
		Model(&models.Product{}).
		Group("id").
		Where("category = ?", name).
		Find(&items).Error; err != nil {
		l.Error("list_by_category_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	if len(items) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Products with category: %s was not found", name))
	}

	return c.JSON(http.StatusOK, transport.NewProductsOut(items))
}

func (h *ProductHandler) GetProductsBySubCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.by_sub_category")

	name := c.Param("name")

	var items []models.Product
	if err := h.DB.WithContext(ctx).
		Model(&models.Product{}).
		Group("id").
		Where("sub_category = ?", name).
		Find(&items).Error; err != nil {
		l.Error("list_by_sub_category_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	if len(items) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Products with sub_category: %s was not found", name))
	}

	return c.JSON(http.StatusOK, transport.NewProductsOut(items))
}

// GetSubCategories lists the distinct sub-categories of one category.
func (h *ProductHandler) GetSubCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.sub_categories")

	category := c.QueryParam("category")

	var subCategories []string
	if err := h.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("category = ?", category).
		Distinct().
		Pluck("sub_category", &subCategories).Error; err != nil {
		l.Error("list_sub_categories_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list sub categories")
	}

	if len(subCategories) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("No sub_category for the given category: %s", category))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"category":     category,
		"sub_category": subCategories,
	})
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var product models.Product
	if err := h.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("product with id: %d was not found", id))
		}
		l.Error("get_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load product")
	}

	out := transport.NewProductOut(&product)
	return c.JSON(http.StatusOK, out)
}
