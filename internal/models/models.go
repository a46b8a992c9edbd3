package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"not null"                 json:"name"`
	Email        string    `gorm:"unique;not null"          json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Role         string    `gorm:"not null;default:user"    json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type Product struct {
	ID            uint            `gorm:"primaryKey;autoIncrement"     json:"id"`
	Name          string          `gorm:"not null"                     json:"name"`
	Price         decimal.Decimal `gorm:"not null;type:decimal(10,2)"  json:"price"`
	Image         string          `json:"image"`
	Category      string          `gorm:"default:product"              json:"category"`
	Description   string          `gorm:"type:text"                    json:"description"`
	StockQuantity int             `gorm:"not null;default:100"         json:"stock_quantity"`
	IsActive      bool            `gorm:"default:true"                 json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
}

type CartItem struct {
	ID        uint      `gorm:"primaryKey"                                  json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_product"  json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_user_product"  json:"product_id"`
	Quantity  int       `gorm:"not null;default:1;check:quantity>0"         json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

type Order struct {
	ID              uint            `gorm:"primaryKey"                   json:"id"`
	UserID          uint            `gorm:"index;not null"               json:"user_id"`
	TotalAmount     decimal.Decimal `gorm:"not null;type:decimal(10,2)"  json:"total_amount"`
	Status          string          `gorm:"not null;default:pending"     json:"status"`
	PaymentStatus   string          `gorm:"not null;default:pending"     json:"payment_status"`
	ShippingAddress string          `gorm:"type:text"                    json:"shipping_address"`
	Phone           string          `json:"phone"`
	CreatedAt       time.Time       `json:"created_at"`
}

// OrderItem freezes one cart line at purchase time. Price is a snapshot of the
// product price, later product edits never touch it.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey"                   json:"id"`
	OrderID   uint            `gorm:"index;not null"               json:"order_id"`
	ProductID uint            `gorm:"not null"                     json:"product_id"`
	Quantity  int             `gorm:"not null;check:quantity>0"    json:"quantity"`
	Price     decimal.Decimal `gorm:"not null;type:decimal(10,2)"  json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}

type WishlistItem struct {
	ID        uint      `gorm:"primaryKey"                                      json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_product"  json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_product"  json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Review struct {
	ID        uint      `gorm:"primaryKey"                                    json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_review_user_product"  json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_review_user_product"  json:"product_id"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5"    json:"rating"`
	Comment   string    `gorm:"type:text"                                     json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type Coupon struct {
	ID            uint                `gorm:"primaryKey"                    json:"id"`
	Code          string              `gorm:"unique;not null"               json:"code"`
	DiscountType  string              `gorm:"not null"                      json:"discount_type"`
	DiscountValue decimal.Decimal     `gorm:"not null;type:decimal(10,2)"   json:"discount_value"`
	MinimumAmount decimal.Decimal     `gorm:"type:decimal(10,2);default:0"  json:"minimum_amount"`
	MaxDiscount   decimal.NullDecimal `gorm:"type:decimal(10,2)"            json:"max_discount"`
	UsageLimit    *int                `json:"usage_limit"`
	UsageCount    int                 `gorm:"default:0"                     json:"usage_count"`
	ExpiresAt     *time.Time          `json:"expires_at"`
	IsActive      bool                `gorm:"default:true"                  json:"is_active"`
	CreatedAt     time.Time           `json:"created_at"`
}
