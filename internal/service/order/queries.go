package order

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopme/shopme-backend/internal/models"
)

type ItemView struct {
	OrderID     uint            `json:"-"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
}

type View struct {
	models.Order
	Items []ItemView `json:"items"`
}

type AdminView struct {
	models.Order
	UserName  string     `json:"user_name"`
	UserEmail string     `json:"user_email"`
	Items     []ItemView `json:"items"`
}

func (s *Service) ListByUser(ctx context.Context, userID uint) ([]View, error) {
	var orders []models.Order
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return s.attachItems(ctx, orders)
}

func (s *Service) GetByID(ctx context.Context, orderID, userID uint) (*View, error) {
	var o models.Order
	err := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	views, err := s.attachItems(ctx, []models.Order{o})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *Service) ListAll(ctx context.Context) ([]AdminView, error) {
	var orders []models.Order
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}

	views, err := s.attachItems(ctx, orders)
	if err != nil {
		return nil, err
	}

	userIDs := make([]uint, 0, len(orders))
	for _, o := range orders {
		userIDs = append(userIDs, o.UserID)
	}
	var users []models.User
	if len(userIDs) > 0 {
		if err := s.DB.WithContext(ctx).Where("id IN ?", userIDs).Find(&users).Error; err != nil {
			return nil, err
		}
	}
	byID := make(map[uint]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	out := make([]AdminView, 0, len(views))
	for _, v := range views {
		u := byID[v.UserID]
		out = append(out, AdminView{
			Order:     v.Order,
			UserName:  u.Name,
			UserEmail: u.Email,
			Items:     v.Items,
		})
	}
	return out, nil
}

func (s *Service) attachItems(ctx context.Context, orders []models.Order) ([]View, error) {
	views := make([]View, 0, len(orders))
	if len(orders) == 0 {
		return views, nil
	}

	ids := make([]uint, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}

	var items []ItemView
	if err := s.DB.WithContext(ctx).Model(&models.OrderItem{}).
		Select("order_items.order_id, products.name AS product_name, order_items.quantity, order_items.price, products.image").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id IN ?", ids).
		Order("order_items.order_id, order_items.product_id").
		Scan(&items).Error; err != nil {
		return nil, err
	}

	byOrder := make(map[uint][]ItemView, len(orders))
	for _, it := range items {
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}
	for _, o := range orders {
		views = append(views, View{Order: o, Items: byOrder[o.ID]})
	}
	return views, nil
}
