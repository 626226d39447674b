package transport

import (
	"time"

	"github.com/Skotchmaster/store_api/internal/models"
)

// ProductOut is the public view of a product, inventory_count stays private
// to the inventory routes.
type ProductOut struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	Manufacturer    string    `json:"manufacturer"`
	Supplier        string    `json:"supplier"`
	Category        string    `json:"category"`
	SubCategory     string    `json:"sub_category"`
	CountryOfOrigin string    `json:"country_of_origin"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type UserOut struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

type TokenOut struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type CartItemOut struct {
	ID        uint       `json:"id"`
	UserID    uint       `json:"user_id"`
	ProductID uint       `json:"product_id"`
	Quantity  uint       `json:"quantity"`
	Product   ProductOut `json:"product"`
}

func NewProductOut(p *models.Product) ProductOut {
	return ProductOut{
		ID:              p.ID,
		Name:            p.Name,
		Manufacturer:    p.Manufacturer,
		Supplier:        p.Supplier,
		Category:        p.Category,
		SubCategory:     p.SubCategory,
		CountryOfOrigin: p.CountryOfOrigin,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func NewProductsOut(products []models.Product) []ProductOut {
	out := make([]ProductOut, len(products))
	for i := range products {
		out[i] = NewProductOut(&products[i])
	}
	return out
}

func NewUserOut(u *models.User) UserOut {
	return UserOut{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}

func NewCartItemOut(item *models.CartItem) CartItemOut {
	return CartItemOut{
		ID:        item.ID,
		UserID:    item.UserID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		Product:   NewProductOut(&item.Product),
	}
}

func NewCartItemsOut(items []models.CartItem) []CartItemOut {
	out := make([]CartItemOut, len(items))
	for i := range items {
		out[i] = NewCartItemOut(&items[i])
	}
	return out
}
