package order

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shopme/shopme-backend/internal/models"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusPreparing = "preparing"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// transitions is the order lifecycle: pending → confirmed → preparing →
// delivered, with cancelled reachable from any non-terminal state.
var transitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusDelivered, StatusCancelled},
	StatusDelivered: {},
	StatusCancelled: {},
}

func ValidTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s *Service) UpdateStatus(ctx context.Context, orderID uint, status string) error {
	if _, known := transitions[status]; !known {
		return fmt.Errorf("unknown status %q: %w", status, ErrValidation)
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o models.Order
		if err := tx.First(&o, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !ValidTransition(o.Status, status) {
			return fmt.Errorf("cannot move order from %q to %q: %w", o.Status, status, ErrValidation)
		}
		return tx.Model(&o).Update("status", status).Error
	})
}
