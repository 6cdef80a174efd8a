package store

import (
	"context"
	"fmt"

	"github.com/junaidrashid-git/shopfront-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartStore struct {
	gw *Gateway
}

func NewCartStore(gw *Gateway) *CartStore { return &CartStore{gw: gw} }

// AddOrIncrement inserts the (user, product) line or adds quantity to the
// existing one in a single statement, so concurrent adds never lose an increment.
func (s *CartStore) AddOrIncrement(ctx context.Context, userID, productID uint, quantity int) error {
	item := models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
	err := s.gw.Tx(ctx, func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("cart.quantity + EXCLUDED.quantity"),
			}),
		}).Create(&item).Error
	})
	if err != nil {
		return fmt.Errorf("upsert cart item: %w", err)
	}
	return nil
}

// CartLines joins the user's cart rows with their products.
func (s *CartStore) CartLines(ctx context.Context, userID uint) ([]models.CartLine, error) {
	lines := []models.CartLine{}
	err := s.gw.Conn(ctx, func(db *gorm.DB) error {
		return db.Table("cart AS c").
			Select("c.id, p.name, p.price, p.image_url, c.quantity").
			Joins("JOIN products p ON c.product_id = p.id").
			Where("c.user_id = ?", userID).
			Order("c.id").
			Scan(&lines).Error
	})
	if err != nil {
		return nil, fmt.Errorf("load cart for user %d: %w", userID, err)
	}
	return lines, nil
}
