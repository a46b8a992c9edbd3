package order

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shopme/shopme-backend/internal/models"
)

func TestValidTransition(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusPreparing, true},
		{StatusPreparing, StatusDelivered, true},
		{StatusPreparing, StatusCancelled, true},
		{StatusPending, StatusDelivered, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusConfirmed, StatusConfirmed, false},
	}

	for _, tc := range cases {
		require.Equal(t, tc.ok, ValidTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func seedOrder(t *testing.T, db *gorm.DB, status string) models.Order {
	t.Helper()
	o := models.Order{
		UserID:          1,
		TotalAmount:     decimal.RequireFromString("10.00"),
		Status:          status,
		PaymentStatus:   "pending",
		ShippingAddress: "12 Main St",
	}
	require.NoError(t, db.Create(&o).Error)
	return o
}

func TestUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	svc := &Service{DB: db}
	ctx := context.Background()

	o := seedOrder(t, db, StatusPending)

	require.NoError(t, svc.UpdateStatus(ctx, o.ID, StatusConfirmed))

	var got models.Order
	require.NoError(t, db.First(&got, o.ID).Error)
	require.Equal(t, StatusConfirmed, got.Status)
}

func TestUpdateStatusRejectsSkippedStep(t *testing.T) {
	db := newTestDB(t)
	svc := &Service{DB: db}

	o := seedOrder(t, db, StatusPending)

	err := svc.UpdateStatus(context.Background(), o.ID, StatusDelivered)
	require.ErrorIs(t, err, ErrValidation)

	var got models.Order
	require.NoError(t, db.First(&got, o.ID).Error)
	require.Equal(t, StatusPending, got.Status)
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	db := newTestDB(t)
	svc := &Service{DB: db}

	o := seedOrder(t, db, StatusPending)

	err := svc.UpdateStatus(context.Background(), o.ID, "shipped-ish")
	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdateStatusOrderNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := &Service{DB: db}

	err := svc.UpdateStatus(context.Background(), 12345, StatusConfirmed)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatusCancelFromNonTerminal(t *testing.T) {
	db := newTestDB(t)
	svc := &Service{DB: db}
	ctx := context.Background()

	o := seedOrder(t, db, StatusPreparing)
	require.NoError(t, svc.UpdateStatus(ctx, o.ID, StatusCancelled))

	err := svc.UpdateStatus(ctx, o.ID, StatusConfirmed)
	require.ErrorIs(t, err, ErrValidation)
}
