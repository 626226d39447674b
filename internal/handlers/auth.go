package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/store_api/internal/hash"
	"github.com/Skotchmaster/store_api/internal/logging"
	"github.com/Skotchmaster/store_api/internal/models"
	"github.com/Skotchmaster/store_api/internal/mykafka"
	"github.com/Skotchmaster/store_api/internal/tokens"
	"github.com/Skotchmaster/store_api/internal/transport"
)

type AuthHandler struct {
	DB             *gorm.DB
	JWTSecret      []byte
	AccessTokenTTL time.Duration
	Producer       *mykafka.Producer
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req struct {
		Username string `json:"username" form:"username"`
		Password string `json:"password" form:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	var user models.User
	if err := h.DB.WithContext(ctx).Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "status", 403, "reason", "unknown username")
			return echo.NewHTTPError(http.StatusForbidden, "Invalid Credentials")
		}
		l.Error("login_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load user")
	}

	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		l.Warn("login_failed", "status", 403, "reason", "password mismatch")
		return echo.NewHTTPError(http.StatusForbidden, "Invalid Credentials")
	}

	accessToken, err := tokens.SignAccessToken(user.ID, user.Username, user.Role, h.JWTSecret, h.AccessTokenTTL)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot sign token", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create access token")
	}

	publish(c, h.Producer, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":     "user_logged_in",
		"userID":   user.ID,
		"username": user.Username,
	})

	l.Info("login_successful", "user_id", user.ID)
	return c.JSON(http.StatusOK, transport.TokenOut{
		AccessToken: accessToken,
		TokenType:   "bearer",
	})
}
