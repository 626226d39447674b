package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"unique;not null"          json:"username"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Role         string    `gorm:"not null;default:user"    json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type Product struct {
	ID              uint      `gorm:"primaryKey;autoIncrement"   json:"id"`
	Name            string    `gorm:"unique;not null"            json:"name"`
	Manufacturer    string    `gorm:"not null"                   json:"manufacturer"`
	Supplier        string    `gorm:"not null"                   json:"supplier"`
	Category        string    `gorm:"not null;index"             json:"category"`
	SubCategory     string    `gorm:"not null;index"             json:"sub_category"`
	CountryOfOrigin string    `gorm:"not null"                   json:"country_of_origin"`
	InventoryCount  *int64    `gorm:"check:inventory_count >= 0" json:"inventory_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CartItem keeps at most one row per (user, product), the composite index
// backs the duplicate check in the handlers.
type CartItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"                         json:"id"`
	UserID    uint    `gorm:"not null;uniqueIndex:idx_cart_user_product"       json:"user_id"`
	ProductID uint    `gorm:"not null;uniqueIndex:idx_cart_user_product"       json:"product_id"`
	Quantity  uint    `gorm:"not null;check:quantity > 0"                      json:"quantity"`
	User      User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"    json:"-"`
	Product   Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product"`
}
