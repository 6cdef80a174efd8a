package productcontroller

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/shopfront-api/events"
	"github.com/junaidrashid-git/shopfront-api/models"
)

// Store is what catalog operations need from persistence.
type Store interface {
	ListProducts(ctx context.Context, category string) ([]models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id uint) (int64, error)
}

type CreateProductInput struct {
	Name     string   `json:"name" binding:"required"`
	Category string   `json:"category" binding:"required"`
	Price    *float64 `json:"price" binding:"required"`
	ImageURL string   `json:"image_url" binding:"required"`
}

const missingProductFields = "name, category, price and image_url required"

type Service struct {
	store  Store
	events events.Publisher
}

func NewService(store Store, pub events.Publisher) *Service {
	if pub == nil {
		pub = events.Nop{}
	}
	return &Service{store: store, events: pub}
}

// List returns the catalog, optionally restricted to one category.
func (s *Service) List(ctx context.Context, category string) ([]models.Product, error) {
	return s.store.ListProducts(ctx, category)
}

func (s *Service) Create(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	if in.Name == "" || in.Category == "" || in.Price == nil || in.ImageURL == "" {
		return nil, models.ValidationError(missingProductFields)
	}

	p := &models.Product{
		Name:     in.Name,
		Category: in.Category,
		Price:    *in.Price,
		ImageURL: in.ImageURL,
	}
	if err := s.store.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, events.TopicProductCreated, p)
	return p, nil
}

// Delete removes the product and its cart rows. Deleting an unknown id succeeds.
func (s *Service) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return models.ValidationError("id required")
	}

	n, err := s.store.DeleteProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if n > 0 {
		s.events.Publish(ctx, events.TopicProductDeleted, gin.H{"product_id": id})
	}
	return nil
}
