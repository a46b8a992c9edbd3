package coupon

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopme/shopme-backend/internal/models"
)

var ErrInvalidCoupon = errors.New("Invalid or expired coupon")

type Service struct {
	DB *gorm.DB
}

type Validation struct {
	Valid       bool            `json:"valid"`
	Coupon      models.Coupon   `json:"coupon"`
	Discount    decimal.Decimal `json:"discount"`
	FinalAmount decimal.Decimal `json:"final_amount"`
}

// Validate resolves a coupon code against a cart total. The lookup predicate
// mirrors the storefront rules: active, not expired, under its usage limit,
// minimum amount reached.
func (s *Service) Validate(ctx context.Context, code string, total decimal.Decimal) (*Validation, error) {
	var c models.Coupon
	err := s.DB.WithContext(ctx).
		Where("code = ? AND is_active = ?", strings.ToUpper(code), true).
		Where("expires_at > ?", time.Now()).
		Where("usage_limit IS NULL OR usage_count < usage_limit").
		Where("minimum_amount <= ?", total).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCoupon
		}
		return nil, err
	}

	discount := c.DiscountValue
	if c.DiscountType == "percentage" {
		discount = total.Mul(c.DiscountValue).Div(decimal.NewFromInt(100)).Round(2)
		if c.MaxDiscount.Valid && discount.GreaterThan(c.MaxDiscount.Decimal) {
			discount = c.MaxDiscount.Decimal
		}
	}

	return &Validation{
		Valid:       true,
		Coupon:      c,
		Discount:    discount,
		FinalAmount: total.Sub(discount),
	}, nil
}

// Apply bumps the usage counter. The increment is done in SQL so two
// concurrent applications both count.
func (s *Service) Apply(ctx context.Context, code string) error {
	return s.DB.WithContext(ctx).Model(&models.Coupon{}).
		Where("code = ?", strings.ToUpper(code)).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error
}
