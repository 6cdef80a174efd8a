package store

import (
	"context"
	"fmt"

	"github.com/junaidrashid-git/shopfront-api/models"
	"gorm.io/gorm"
)

type ProductStore struct {
	gw *Gateway
}

func NewProductStore(gw *Gateway) *ProductStore { return &ProductStore{gw: gw} }

// ListProducts returns every product, or only those in category when it is non-empty.
func (s *ProductStore) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	products := []models.Product{}
	err := s.gw.Conn(ctx, func(db *gorm.DB) error {
		q := db.Model(&models.Product{})
		if category != "" {
			q = q.Where("category = ?", category)
		}
		return q.Order("id").Find(&products).Error
	})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *ProductStore) CreateProduct(ctx context.Context, p *models.Product) error {
	err := s.gw.Tx(ctx, func(tx *gorm.DB) error {
		return tx.Create(p).Error
	})
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// DeleteProduct removes the product and any cart rows pointing at it.
// Deleting an id that does not exist is not an error.
func (s *ProductStore) DeleteProduct(ctx context.Context, id uint) (int64, error) {
	var affected int64
	err := s.gw.Tx(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Product{}, id)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, fmt.Errorf("delete product %d: %w", id, err)
	}
	return affected, nil
}
