package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/store_api/internal/transport"
)

func seedCatalog(env *testEnv) {
	env.createProduct("cheddar cheese", "dairy", "cheese", inventoryOf(5))
	env.createProduct("gouda cheese", "dairy", "cheese", inventoryOf(3))
	env.createProduct("whole milk", "dairy", "milk", inventoryOf(10))
	env.createProduct("rye bread", "bakery", "bread", inventoryOf(7))
}

func TestGetProducts(t *testing.T) {
	env := newTestEnv(t)
	seedCatalog(env)

	rec, c := env.doJSONRequest(http.MethodGet, "/products", nil)
	require.NoError(t, env.Products.GetProducts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []transport.ProductOut
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 4)

	// public view never leaks stock levels
	require.NotContains(t, rec.Body.String(), "inventory_count")
}

func TestGetProductsSearch(t *testing.T) {
	env := newTestEnv(t)
	seedCatalog(env)

	rec, c := env.doJSONRequest(http.MethodGet, "/products?search=cheese", nil)
	require.NoError(t, env.Products.GetProducts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []transport.ProductOut
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	for _, p := range resp {
		require.Contains(t, p.Name, "cheese")
	}
}

func TestGetProductsPagination(t *testing.T) {
	env := newTestEnv(t)
	seedCatalog(env)

	rec, c := env.doJSONRequest(http.MethodGet, "/products?limit=2&skip=0", nil)
	require.NoError(t, env.Products.GetProducts(c))

	var first []transport.ProductOut
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))
	require.Len(t, first, 2)

	rec2, c2 := env.doJSONRequest(http.MethodGet, "/products?limit=2&skip=2", nil)
	require.NoError(t, env.Products.GetProducts(c2))

	var second []transport.ProductOut
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &second))
	require.Len(t, second, 2)
	require.NotEqual(t, first[0].ID, second[0].ID)
}

func TestGetAllCategories(t *testing.T) {
	env := newTestEnv(t)
	seedCatalog(env)

	rec, c := env.doJSONRequest(http.MethodGet, "/products/category/all", nil)
	require.NoError(t, env.Products.GetAllCategories(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Category []string `json:"category"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.ElementsMatch(t, []string{"dairy", "bakery"}, resp.Category)
}

func TestGetAllCategoriesEmpty(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodGet, "/products/category/all", nil)
	err := env.Products.GetAllCategories(c)
	require.Equal(t, http.StatusNotFound, httpErrCode(t, err))
}

func TestGetProductsByCategory(t *testing.T) {
	env := newTestEnv(t)
	seedCatalog(env)

	rec, c := env.doJSONRequest(http.MethodGet, "/products/category/dairy", nil)
	c.SetParamNames("name")
	c.SetParamValues("dairy")

	require.NoError(t, env.Products.GetProductsByCategory(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []transport.ProductOut
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 3)
}

func TestGetProductsByCategoryNotFound(t *testing.T) {
	env := newTestEnv(t)
	seedCatalog(env)

	_, c := env.doJSONRequest(http.MethodGet, "/products/category/electronics", nil)
	c.SetParamNames("name")
	c.SetParamValues("electronics")

	err := env.Products.GetProductsByCategory(c)
	require.Equal(t, http.StatusNotFound, httpErrCode(t, err))
	require.Equal(t, "Products with category: electronics was not found", httpErrMessage(t, err))
}

func TestGetProductsBySubCategory(t *testing.T) {
	env := newTestEnv(t)
	seedCatalog(env)

	rec, c := env.doJSONRequest(http.MethodGet, "/products/sub_category/cheese", nil)
	c.SetParamNames("name")
	c.SetParamValues("cheese")

	require.NoError(t, env.Products.GetProductsBySubCategory(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []transport.ProductOut
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
}

func TestGetSubCategories(t *testing.T) {
	env := newTestEnv(t)
	seedCatalog(env)

	rec, c := env.doJSONRequest(http.MethodGet, "/products/sub_category?category=dairy", nil)
	require.NoError(t, env.Products.GetSubCategories(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Category      string   `json:"category"`
		SubCategories []string `json:"sub_category"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "dairy", resp.Category)
	require.ElementsMatch(t, []string{"cheese", "milk"}, resp.SubCategories)
}

func TestGetSubCategoriesNotFound(t *testing.T) {
	env := newTestEnv(t)
	seedCatalog(env)

	_, c := env.doJSONRequest(http.MethodGet, "/products/sub_category?category=electronics", nil)
	err := env.Products.GetSubCategories(c)
	require.Equal(t, http.StatusNotFound, httpErrCode(t, err))
}

func TestGetProduct(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct("cheddar cheese", "dairy", "cheese", inventoryOf(5))

	rec, c := env.doJSONRequest(http.MethodGet, "/products/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, env.Products.GetProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp transport.ProductOut
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, product.ID, resp.ID)
	require.Equal(t, "cheddar cheese", resp.Name)
}

func TestGetProductNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodGet, "/products/42", nil)
	c.SetParamNames("id")
	c.SetParamValues("42")

	err := env.Products.GetProduct(c)
	require.Equal(t, http.StatusNotFound, httpErrCode(t, err))
	require.Equal(t, "product with id: 42 was not found", httpErrMessage(t, err))
}
