package order

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/shopme/shopme-backend/internal/models"
)

func TestListByUserReturnsItems(t *testing.T) {
	db := newTestDB(t)
	svc := &Service{DB: db}
	ctx := context.Background()

	p1 := seedProduct(t, db, "coffee", "9.99", 5)
	p2 := seedProduct(t, db, "mug", "5.00", 5)
	seedCartLine(t, db, 1, p1.ID, 2)
	seedCartLine(t, db, 1, p2.ID, 1)

	o, err := svc.Checkout(ctx, 1, "12 Main St", "")
	require.NoError(t, err)

	views, err := svc.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, o.ID, views[0].ID)
	require.Len(t, views[0].Items, 2)
	require.Equal(t, "coffee", views[0].Items[0].ProductName)
	require.True(t, views[0].Items[0].Price.Equal(decimal.RequireFromString("9.99")))

	other, err := svc.ListByUser(ctx, 2)
	require.NoError(t, err)
	require.Empty(t, other)
}

func TestGetByIDScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	svc := &Service{DB: db}
	ctx := context.Background()

	p := seedProduct(t, db, "coffee", "9.99", 5)
	seedCartLine(t, db, 1, p.ID, 1)

	o, err := svc.Checkout(ctx, 1, "12 Main St", "")
	require.NoError(t, err)

	view, err := svc.GetByID(ctx, o.ID, 1)
	require.NoError(t, err)
	require.Equal(t, o.ID, view.ID)

	_, err = svc.GetByID(ctx, o.ID, 2)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListAllIncludesUserInfo(t *testing.T) {
	db := newTestDB(t)
	svc := &Service{DB: db}
	ctx := context.Background()

	user := models.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "x", Role: "user"}
	require.NoError(t, db.Create(&user).Error)

	p := seedProduct(t, db, "coffee", "9.99", 5)
	seedCartLine(t, db, user.ID, p.ID, 1)

	_, err := svc.Checkout(ctx, user.ID, "12 Main St", "")
	require.NoError(t, err)

	views, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, "Alice", views[0].UserName)
	require.Equal(t, "alice@example.com", views[0].UserEmail)
	require.Len(t, views[0].Items, 1)
}
