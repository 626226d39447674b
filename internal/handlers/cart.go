package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/store_api/internal/logging"
	authmw "github.com/Skotchmaster/store_api/internal/middleware/auth"
	"github.com/Skotchmaster/store_api/internal/models"
	"github.com/Skotchmaster/store_api/internal/mykafka"
	"github.com/Skotchmaster/store_api/internal/transport"
)

type CartHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

func (h *CartHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.list")

	userID := authmw.CurrentUserID(c)

	var items []models.CartItem
	if err := h.DB.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Find(&items).Error; err != nil {
		l.Error("list_cart_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list cart")
	}

	return c.JSON(http.StatusOK, transport.NewCartItemsOut(items))
}

// AddToCart validates availability and inserts inside one transaction, the
// unique (user_id, product_id) index backstops concurrent duplicates.
func (h *CartHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	userID := authmw.CurrentUserID(c)
	username := authmw.CurrentUsername(c)

	var req struct {
		ProductID uint `json:"product_id"`
		Quantity  uint `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Quantity < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "quantity must be positive")
	}

	item := models.CartItem{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}

	txErr := h.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Where("id = ? AND inventory_count > 0", req.ProductID).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return echo.NewHTTPError(http.StatusNotFound,
					fmt.Sprintf("product with id: %d does not exist", req.ProductID))
			}
			return err
		}

		var existing models.CartItem
		err := tx.Where("user_id = ? AND product_id = ?", userID, req.ProductID).First(&existing).Error
		if err == nil {
			return echo.NewHTTPError(http.StatusConflict,
				fmt.Sprintf("user %s has already added product %d to cart", username, req.ProductID))
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if int64(req.Quantity) > *product.InventoryCount {
			return echo.NewHTTPError(http.StatusConflict,
				fmt.Sprintf("Ordered quantity is greater than inventory quantity, Enter quantity below %d",
					*product.InventoryCount+1))
		}

		return tx.Create(&item).Error
	})
	if txErr != nil {
		var he *echo.HTTPError
		if errors.As(txErr, &he) {
			l.Warn("add_to_cart_failed", "status", he.Code, "product_id", req.ProductID)
			return he
		}
		l.Error("add_to_cart_failed", "status", 500, "error", txErr)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add to cart")
	}

	if err := h.DB.WithContext(ctx).Preload("Product").First(&item, item.ID).Error; err != nil {
		l.Error("add_to_cart_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load cart item")
	}

	publish(c, h.Producer, "cart_events", fmt.Sprint(userID), map[string]any{
		"type":      "cart_item_added",
		"userID":    userID,
		"productID": item.ProductID,
		"quantity":  item.Quantity,
	})

	l.Info("cart_item_added", "user_id", userID, "product_id", item.ProductID)
	return c.JSON(http.StatusCreated, transport.NewCartItemOut(&item))
}

// UpdateCart replaces the quantity of an existing cart row.
func (h *CartHandler) UpdateCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	userID := authmw.CurrentUserID(c)

	productID, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	var req struct {
		Quantity uint `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("update_cart_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Quantity < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "quantity must be positive")
	}

	var item models.CartItem
	txErr := h.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return echo.NewHTTPError(http.StatusNotFound,
					fmt.Sprintf("product with id: %d does not exist", productID))
			}
			return err
		}
		if item.UserID != userID {
			return echo.NewHTTPError(http.StatusForbidden, "Not authorized to perform requested action")
		}

		var product models.Product
		if err := tx.Where("id = ? AND inventory_count > 0", productID).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return echo.NewHTTPError(http.StatusNotFound,
					fmt.Sprintf("product with id: %d does not exist", productID))
			}
			return err
		}

		if int64(req.Quantity) > *product.InventoryCount {
			return echo.NewHTTPError(http.StatusConflict,
				fmt.Sprintf("Update quantity is greater than inventory quantity, Enter quantity below %d",
					*product.InventoryCount+1))
		}

		item.Quantity = req.Quantity
		return tx.Save(&item).Error
	})
	if txErr != nil {
		var he *echo.HTTPError
		if errors.As(txErr, &he) {
			l.Warn("update_cart_failed", "status", he.Code, "product_id", productID)
			return he
		}
		l.Error("update_cart_failed", "status", 500, "error", txErr)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update cart")
	}

	if err := h.DB.WithContext(ctx).Preload("Product").First(&item, item.ID).Error; err != nil {
		l.Error("update_cart_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load cart item")
	}

	publish(c, h.Producer, "cart_events", fmt.Sprint(userID), map[string]any{
		"type":      "cart_item_updated",
		"userID":    userID,
		"productID": item.ProductID,
		"quantity":  item.Quantity,
	})

	l.Info("cart_item_updated", "user_id", userID, "product_id", item.ProductID)
	return c.JSON(http.StatusAccepted, transport.NewCartItemOut(&item))
}

func (h *CartHandler) DeleteFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.delete")

	userID := authmw.CurrentUserID(c)

	productID, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	var item models.CartItem
	if err := h.DB.WithContext(ctx).Where("product_id = ?", productID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound,
				fmt.Sprintf("product with id: %d does not exist", productID))
		}
		l.Error("delete_from_cart_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load cart item")
	}

	if item.UserID != userID {
		l.Warn("delete_from_cart_failed", "status", 403, "product_id", productID)
		return echo.NewHTTPError(http.StatusForbidden, "Not authorized to perform requested action")
	}

	if err := h.DB.WithContext(ctx).Delete(&item).Error; err != nil {
		l.Error("delete_from_cart_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete cart item")
	}

	publish(c, h.Producer, "cart_events", fmt.Sprint(userID), map[string]any{
		"type":      "cart_item_removed",
		"userID":    userID,
		"productID": productID,
	})

	l.Info("cart_item_removed", "user_id", userID, "product_id", productID)
	return c.NoContent(http.StatusNoContent)
}
