package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/store_api/internal/hash"
	authmw "github.com/Skotchmaster/store_api/internal/middleware/auth"
	"github.com/Skotchmaster/store_api/internal/models"
	"github.com/Skotchmaster/store_api/internal/mykafka"
)

var testSecret = []byte("test-secret")

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB

	Auth      *AuthHandler
	Users     *UserHandler
	Products  *ProductHandler
	Inventory *InventoryHandler
	Cart      *CartHandler
	Checkout  *CheckoutHandler
}

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.CartItem{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func newTestEnv(t *testing.T) *testEnv {
	db := initTestDB(t)
	prod := mykafka.NewProducer(nil)

	return &testEnv{
		T:  t,
		E:  echo.New(),
		DB: db,

		Auth:      &AuthHandler{DB: db, JWTSecret: testSecret, AccessTokenTTL: 30 * time.Minute, Producer: prod},
		Users:     &UserHandler{DB: db, Producer: prod},
		Products:  &ProductHandler{DB: db},
		Inventory: &InventoryHandler{DB: db, Producer: prod},
		Cart:      &CartHandler{DB: db, Producer: prod},
		Checkout:  &CheckoutHandler{DB: db, Producer: prod},
	}
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

// actAs fills the context the way the login middleware would.
func actAs(c echo.Context, u *models.User) {
	c.Set(authmw.CtxUserID, u.ID)
	c.Set(authmw.CtxUsername, u.Username)
	c.Set(authmw.CtxRole, u.Role)
}

func (env *testEnv) createUser(username, password, role string) *models.User {
	pwHash, err := hash.HashPassword(password)
	require.NoError(env.T, err)

	user := models.User{Username: username, PasswordHash: pwHash, Role: role}
	require.NoError(env.T, env.DB.Create(&user).Error)
	return &user
}

func (env *testEnv) createProduct(name, category, subCategory string, inventory *int64) *models.Product {
	product := models.Product{
		Name:            name,
		Manufacturer:    "test_manufacturer",
		Supplier:        "test_supplier",
		Category:        category,
		SubCategory:     subCategory,
		CountryOfOrigin: "test_country",
		InventoryCount:  inventory,
	}
	require.NoError(env.T, env.DB.Create(&product).Error)
	return &product
}

func inventoryOf(n int64) *int64 { return &n }

func httpErrCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError, got %v", err)
	return he.Code
}

func httpErrMessage(t *testing.T, err error) string {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError, got %v", err)
	msg, ok := he.Message.(string)
	require.True(t, ok, "expected string message, got %T", he.Message)
	return msg
}
