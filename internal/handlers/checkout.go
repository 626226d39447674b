package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/store_api/internal/logging"
	authmw "github.com/Skotchmaster/store_api/internal/middleware/auth"
	"github.com/Skotchmaster/store_api/internal/models"
	"github.com/Skotchmaster/store_api/internal/mykafka"
)

type CheckoutHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

// Checkout empties the user's cart and reports how many line items went out.
// TODO: decrement product inventory_count once the purchase flow is real.
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout")

	userID := authmw.CurrentUserID(c)
	username := authmw.CurrentUsername(c)

	var itemCount int64
	txErr := h.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.CartItem
		if err := tx.Where("user_id = ?", userID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return echo.NewHTTPError(http.StatusNotFound,
					fmt.Sprintf("No items in cart for user %s", username))
			}
			return err
		}
		if item.UserID != userID {
			return echo.NewHTTPError(http.StatusForbidden, "Not authorized to perform requested action")
		}

		if err := tx.Model(&models.CartItem{}).
			Where("user_id = ?", userID).
			Count(&itemCount).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if txErr != nil {
		var he *echo.HTTPError
		if errors.As(txErr, &he) {
			l.Warn("checkout_failed", "status", he.Code)
			return he
		}
		l.Error("checkout_failed", "status", 500, "error", txErr)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot check out")
	}

	publish(c, h.Producer, "cart_events", fmt.Sprint(userID), map[string]any{
		"type":       "checkout_completed",
		"userID":     userID,
		"item_count": itemCount,
	})

	l.Info("checkout_completed", "user_id", userID, "item_count", itemCount)
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("%d products checked out for user %d", itemCount, userID),
	})
}
