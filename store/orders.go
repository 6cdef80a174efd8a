package store

import (
	"context"
	"fmt"

	"github.com/junaidrashid-git/shopfront-api/models"
	"gorm.io/gorm"
)

type OrderStore struct {
	gw *Gateway
}

func NewOrderStore(gw *Gateway) *OrderStore { return &OrderStore{gw: gw} }

const statsQuery = `SELECT
	(SELECT COALESCE(SUM(total_amount), 0) FROM orders) AS revenue,
	(SELECT COUNT(*) FROM orders) AS orders,
	(SELECT COUNT(*) FROM products) AS products`

func (s *OrderStore) Stats(ctx context.Context) (models.Stats, error) {
	var stats models.Stats
	err := s.gw.Conn(ctx, func(db *gorm.DB) error {
		return db.Raw(statsQuery).Scan(&stats).Error
	})
	if err != nil {
		return models.Stats{}, fmt.Errorf("load stats: %w", err)
	}
	return stats, nil
}

// ListOrders returns every order with its customer's name, newest first.
func (s *OrderStore) ListOrders(ctx context.Context) ([]models.OrderSummary, error) {
	orders := []models.OrderSummary{}
	err := s.gw.Conn(ctx, func(db *gorm.DB) error {
		return db.Table("orders AS o").
			Select("o.id, u.name AS customer, o.total_amount AS amount, o.status, o.created_at AS date").
			Joins("JOIN users u ON o.user_id = u.id").
			Order("o.created_at DESC").
			Scan(&orders).Error
	})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// UpdateOrderStatus sets status on the order; an unknown id changes nothing
// and is reported as zero rows, not an error.
func (s *OrderStore) UpdateOrderStatus(ctx context.Context, orderID uint, status string) (int64, error) {
	var affected int64
	err := s.gw.Tx(ctx, func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).Where("id = ?", orderID).Update("status", status)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, fmt.Errorf("update order %d: %w", orderID, err)
	}
	return affected, nil
}
