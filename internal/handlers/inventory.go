package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/store_api/internal/logging"
	"github.com/Skotchmaster/store_api/internal/models"
	"github.com/Skotchmaster/store_api/internal/mykafka"
	"github.com/Skotchmaster/store_api/internal/service/search"
	"github.com/Skotchmaster/store_api/internal/util"
)

// InventoryHandler is the admin-only product CRUD surface: unlike the public
// catalog it returns products with their inventory_count.
type InventoryHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
	Index    string
}

type productRequest struct {
	Name            string `json:"name"`
	Manufacturer    string `json:"manufacturer"`
	Supplier        string `json:"supplier"`
	Category        string `json:"category"`
	SubCategory     string `json:"sub_category"`
	CountryOfOrigin string `json:"country_of_origin"`
	InventoryCount  *int64 `json:"inventory_count"`
}

func (h *InventoryHandler) syncIndex(c echo.Context, product *models.Product) {
	if h.ES == nil {
		return
	}
	ctx := c.Request().Context()
	if err := search.IndexProduct(ctx, h.ES, h.Index, product); err != nil {
		logging.FromContext(ctx).Error("es index error", "product_id", product.ID, "error", err)
	}
}

func (h *InventoryHandler) dropIndex(c echo.Context, id uint) {
	if h.ES == nil {
		return
	}
	ctx := c.Request().Context()
	if err := search.DeleteProduct(ctx, h.ES, h.Index, id); err != nil {
		logging.FromContext(ctx).Error("es delete error", "product_id", id, "error", err)
	}
}

func (h *InventoryHandler) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "inventory.list")

	limit, skip := util.LimitSkip(c.QueryParam("limit"), c.QueryParam("skip"))
	searchParam := c.QueryParam("search")

	var items []models.Product
	if err := h.DB.WithContext(ctx).
		Model(&models.Product{}).
		Group("id").
		Where("name LIKE ?", "%"+searchParam+"%").
		Limit(limit).
		Offset(skip).
		Find(&items).Error; err != nil {
		l.Error("list_inventory_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list inventory")
	}

	return c.JSON(http.StatusOK, items)
}

func (h *InventoryHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "inventory.create")

	var req productRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product := models.Product{
		Name:            req.Name,
		Manufacturer:    req.Manufacturer,
		Supplier:        req.Supplier,
		Category:        req.Category,
		SubCategory:     req.SubCategory,
		CountryOfOrigin: req.CountryOfOrigin,
		InventoryCount:  req.InventoryCount,
	}

	if err := h.DB.WithContext(ctx).Create(&product).Error; err != nil {
		l.Error("create_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create product")
	}

	h.syncIndex(c, &product)
	publish(c, h.Producer, "product_events", fmt.Sprint(product.ID), map[string]any{
		"type":      "product_created",
		"productID": product.ID,
		"name":      product.Name,
	})

	l.Info("product_created", "product_id", product.ID)
	return c.JSON(http.StatusCreated, product)
}

func (h *InventoryHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "inventory.get")

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

	return c.JSON(http.StatusOK, product)
}

// UpdateProduct is a full-field replace, partial updates are not supported.
func (h *InventoryHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "inventory.update")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_product_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	var product models.Product
	if err := h.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("product with id: %d does not exist", id))
		}
		l.Error("update_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load product")
	}

	product.Name = req.Name
	product.Manufacturer = req.Manufacturer
	product.Supplier = req.Supplier
	product.Category = req.Category
	product.SubCategory = req.SubCategory
	product.CountryOfOrigin = req.CountryOfOrigin
	product.InventoryCount = req.InventoryCount

	if err := h.DB.WithContext(ctx).Save(&product).Error; err != nil {
		l.Error("update_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update product")
	}

	h.syncIndex(c, &product)
	publish(c, h.Producer, "product_events", fmt.Sprint(product.ID), map[string]any{
		"type":      "product_updated",
		"productID": product.ID,
		"name":      product.Name,
	})

	l.Info("product_updated", "product_id", product.ID)
	return c.JSON(http.StatusAccepted, product)
}

func (h *InventoryHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "inventory.delete")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	res := h.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		l.Error("delete_product_failed", "status", 500, "error", res.Error)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete product")
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("product with id: %d does not exist", id))
	}

	h.dropIndex(c, uint(id))
	publish(c, h.Producer, "product_events", fmt.Sprint(id), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	l.Info("product_deleted", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}
