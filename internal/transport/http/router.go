package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/store_api/internal/handlers"
	authmw "github.com/Skotchmaster/store_api/internal/middleware/auth"
)

type Deps struct {
	DB               *gorm.DB
	JWTSecret        []byte
	AuthHandler      *handlers.AuthHandler
	UserHandler      *handlers.UserHandler
	ProductHandler   *handlers.ProductHandler
	InventoryHandler *handlers.InventoryHandler
	CartHandler      *handlers.CartHandler
	CheckoutHandler  *handlers.CheckoutHandler
	SearchHandler    *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.POST("/login", d.AuthHandler.Login)

	users := e.Group("/users")
	users.POST("", d.UserHandler.CreateUser)
	users.GET("/:id", d.UserHandler.GetUser)

	products := e.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/category/all", d.ProductHandler.GetAllCategories)
	products.GET("/category/:name", d.ProductHandler.GetProductsByCategory)
	products.GET("/sub_category", d.ProductHandler.GetSubCategories)
	products.GET("/sub_category/:name", d.ProductHandler.GetProductsBySubCategory)
	products.GET("/:id", d.ProductHandler.GetProduct)

	e.GET("/search", d.SearchHandler.Search)

	requireLogin := authmw.RequireLogin(d.DB, d.JWTSecret)

	inventory := e.Group("/inventory", requireLogin, authmw.RequireRole("admin"))
	inventory.GET("", d.InventoryHandler.GetProducts)
	inventory.POST("", d.InventoryHandler.CreateProduct)
	inventory.GET("/:id", d.InventoryHandler.GetProduct)
	inventory.PUT("/:id", d.InventoryHandler.UpdateProduct)
	inventory.DELETE("/:id", d.InventoryHandler.DeleteProduct)

	cart := e.Group("/cart", requireLogin)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.PUT("/:product_id", d.CartHandler.UpdateCart)
	cart.DELETE("/:product_id", d.CartHandler.DeleteFromCart)

	e.POST("/checkout", d.CheckoutHandler.Checkout, requireLogin)
}
