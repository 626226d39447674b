package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/store_api/internal/models"
)

func TestCheckout(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("test_user", "password", "user")
	product := env.createProduct("cheddar cheese", "dairy", "cheese", inventoryOf(5))

	addLoad := map[string]uint{"product_id": product.ID, "quantity": 3}
	_, cAdd := env.doJSONRequest(http.MethodPost, "/cart", addLoad)
	actAs(cAdd, user)
	require.NoError(t, env.Cart.AddToCart(cAdd))

	rec, c := env.doJSONRequest(http.MethodPost, "/checkout", nil)
	actAs(c, user)

	require.NoError(t, env.Checkout.Checkout(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "1 products checked out for user 1", resp["message"])

	var remaining int64
	require.NoError(t, env.DB.Model(&models.CartItem{}).
		Where("user_id = ?", user.ID).
		Count(&remaining).Error)
	require.Zero(t, remaining)
}

func TestCheckoutMultipleItems(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("test_user", "password", "user")
	first := env.createProduct("cheddar cheese", "dairy", "cheese", inventoryOf(5))
	second := env.createProduct("whole milk", "dairy", "milk", inventoryOf(8))

	for _, p := range []*models.Product{first, second} {
		addLoad := map[string]uint{"product_id": p.ID, "quantity": 1}
		_, cAdd := env.doJSONRequest(http.MethodPost, "/cart", addLoad)
		actAs(cAdd, user)
		require.NoError(t, env.Cart.AddToCart(cAdd))
	}

	rec, c := env.doJSONRequest(http.MethodPost, "/checkout", nil)
	actAs(c, user)

	require.NoError(t, env.Checkout.Checkout(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "2 products checked out for user 1", resp["message"])
}

func TestCheckoutEmptyCart(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("test_user", "password", "user")

	_, c := env.doJSONRequest(http.MethodPost, "/checkout", nil)
	actAs(c, user)

	err := env.Checkout.Checkout(c)
	require.Equal(t, http.StatusNotFound, httpErrCode(t, err))
	require.Equal(t, "No items in cart for user test_user", httpErrMessage(t, err))
}

func TestCheckoutLeavesOtherCartsAlone(t *testing.T) {
	env := newTestEnv(t)
	buyer := env.createUser("buyer", "password", "user")
	other := env.createUser("other", "password", "user")
	product := env.createProduct("cheddar cheese", "dairy", "cheese", inventoryOf(5))

	for _, u := range []*models.User{buyer, other} {
		addLoad := map[string]uint{"product_id": product.ID, "quantity": 1}
		_, cAdd := env.doJSONRequest(http.MethodPost, "/cart", addLoad)
		actAs(cAdd, u)
		require.NoError(t, env.Cart.AddToCart(cAdd))
	}

	_, c := env.doJSONRequest(http.MethodPost, "/checkout", nil)
	actAs(c, buyer)
	require.NoError(t, env.Checkout.Checkout(c))

	var remaining int64
	require.NoError(t, env.DB.Model(&models.CartItem{}).
		Where("user_id = ?", other.ID).
		Count(&remaining).Error)
	require.Equal(t, int64(1), remaining)
}
