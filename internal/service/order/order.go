package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopme/shopme-backend/internal/models"
)

var (
	ErrValidation = errors.New("validation")
	ErrEmptyCart  = errors.New("Cart is empty")
	ErrNotFound   = errors.New("Order not found")
)

// InsufficientStockError aborts a checkout when a cart line asks for more
// units than the product has left. The whole transaction rolls back.
type InsufficientStockError struct {
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for %s. Available: %d, Requested: %d",
		e.ProductName, e.Available, e.Requested)
}

type Service struct {
	DB *gorm.DB
}

// checkoutLine is the cart snapshot row read inside the transaction: one cart
// line joined with its product.
type checkoutLine struct {
	ProductID     uint
	Quantity      int
	Price         decimal.Decimal
	Name          string
	StockQuantity int
}

// Checkout converts the user's cart into an order, all inside one
// transaction: snapshot read, decimal total, order + item inserts, conditional
// stock decrement, cart clear. Any failure leaves no trace.
//
// userID is trusted as already authenticated; verifying it is the token
// middleware's job, not this service's.
func (s *Service) Checkout(ctx context.Context, userID uint, shippingAddress, phone string) (*models.Order, error) {
	if strings.TrimSpace(shippingAddress) == "" {
		return nil, fmt.Errorf("shipping_address is required: %w", ErrValidation)
	}

	var order models.Order

	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lines []checkoutLine
		if err := tx.Model(&models.CartItem{}).
			Select("cart_items.product_id, cart_items.quantity, products.price, products.name, products.stock_quantity").
			Joins("JOIN products ON products.id = cart_items.product_id").
			Where("cart_items.user_id = ?", userID).
			Order("cart_items.product_id ASC").
			Scan(&lines).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		total := decimal.Zero
		for _, ln := range lines {
			total = total.Add(ln.Price.Mul(decimal.NewFromInt(int64(ln.Quantity))))
		}

		order = models.Order{
			UserID:          userID,
			TotalAmount:     total,
			Status:          StatusPending,
			PaymentStatus:   "pending",
			ShippingAddress: shippingAddress,
			Phone:           phone,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, ln := range lines {
			if ln.Quantity > ln.StockQuantity {
				return &InsufficientStockError{
					ProductName: ln.Name,
					Available:   ln.StockQuantity,
					Requested:   ln.Quantity,
				}
			}

			// Conditional decrement: the WHERE guard is what makes two
			// concurrent checkouts of the same product safe. Zero rows
			// affected means someone else took the stock first.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock_quantity >= ?", ln.ProductID, ln.Quantity).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", ln.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				var p models.Product
				if err := tx.First(&p, ln.ProductID).Error; err != nil {
					return err
				}
				return &InsufficientStockError{
					ProductName: p.Name,
					Available:   p.StockQuantity,
					Requested:   ln.Quantity,
				}
			}

			item := models.OrderItem{
				OrderID:   order.ID,
				ProductID: ln.ProductID,
				Quantity:  ln.Quantity,
				Price:     ln.Price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}

		// The whole cart, not just the lines processed: lines added
		// mid-transaction must not survive a committed checkout.
		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})

	if txErr != nil {
		return nil, txErr
	}
	return &order, nil
}
