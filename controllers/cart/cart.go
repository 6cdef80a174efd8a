package cartControllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/shopfront-api/controllers/respond"
	"github.com/junaidrashid-git/shopfront-api/events"
	"github.com/junaidrashid-git/shopfront-api/models"
)

// Store is what cart operations need from persistence.
type Store interface {
	AddOrIncrement(ctx context.Context, userID, productID uint, quantity int) error
	CartLines(ctx context.Context, userID uint) ([]models.CartLine, error)
}

type AddToCartRequest struct {
	UserID    uint `json:"user_id"`
	ProductID uint `json:"product_id"`
	Quantity  *int `json:"quantity"`
}

// -------- Core Logic --------

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

// Add puts quantity of the product in the user's cart, adding to any
// quantity already there. Concurrent adds for the same pair all count.
func (s *Service) Add(ctx context.Context, userID, productID uint, quantity int) error {
	if userID == 0 || productID == 0 {
		return models.ValidationError("user_id and product_id required")
	}
	if err := s.store.AddOrIncrement(ctx, userID, productID, quantity); err != nil {
		return err
	}

	s.events.Publish(ctx, events.TopicCartItemAdded, gin.H{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})
	return nil
}

// Get returns the user's cart lines joined with product details.
func (s *Service) Get(ctx context.Context, userID uint) ([]models.CartLine, error) {
	if userID == 0 {
		return nil, models.ValidationError("user_id required")
	}
	return s.store.CartLines(ctx, userID)
}

// -------- Handlers --------

// POST /add-to-cart
func AddToCart(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Invalid(c, "user_id and product_id required")
			return
		}

		quantity := 1
		if req.Quantity != nil {
			quantity = *req.Quantity
		}

		if err := svc.Add(c.Request.Context(), req.UserID, req.ProductID, quantity); err != nil {
			respond.Error(c, err, "Error adding to cart")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product added to cart"})
	}
}

// GET /cart?user_id=
func GetCart(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Query("user_id")
		if raw == "" {
			respond.Invalid(c, "user_id required")
			return
		}
		userID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respond.Invalid(c, "Invalid user_id")
			return
		}

		lines, err := svc.Get(c.Request.Context(), uint(userID))
		if err != nil {
			respond.Error(c, err, "Failed to fetch cart")
			return
		}

		c.JSON(http.StatusOK, lines)
	}
}
