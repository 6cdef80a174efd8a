package orderControllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/shopfront-api/controllers/respond"
	"github.com/junaidrashid-git/shopfront-api/events"
	"github.com/junaidrashid-git/shopfront-api/models"
)

// Store is what order administration needs from persistence.
type Store interface {
	Stats(ctx context.Context) (models.Stats, error)
	ListOrders(ctx context.Context) ([]models.OrderSummary, error)
	UpdateOrderStatus(ctx context.Context, orderID uint, status string) (int64, error)
}

// -------- Request Structs --------

// Status must be present but may be empty.
type UpdateOrderStatusRequest struct {
	OrderID uint    `json:"order_id" binding:"required"`
	Status  *string `json:"status" binding:"required"`
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

// Stats returns revenue (0 with no orders), order count and product count.
func (s *Service) Stats(ctx context.Context) (models.Stats, error) {
	return s.store.Stats(ctx)
}

// List returns every order with its customer name, newest first.
func (s *Service) List(ctx context.Context) ([]models.OrderSummary, error) {
	return s.store.ListOrders(ctx)
}

// UpdateStatus overwrites the order's status with any string, the empty one
// included. An unknown order id changes nothing and is not an error.
func (s *Service) UpdateStatus(ctx context.Context, orderID uint, status string) error {
	if orderID == 0 {
		return models.ValidationError("order_id required")
	}

	n, err := s.store.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		return err
	}

	s.events.Publish(ctx, events.TopicOrderStatusUpdated, gin.H{
		"order_id": orderID,
		"status":   status,
		"updated":  n,
	})
	return nil
}

// -------- Handlers --------

// GET /admin/stats
func GetStats(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.Stats(c.Request.Context())
		if err != nil {
			respond.Error(c, err, "Failed to load stats")
			return
		}

		c.JSON(http.StatusOK, stats)
	}
}

// GET /admin/orders
func GetAllOrders(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.List(c.Request.Context())
		if err != nil {
			respond.Error(c, err, "Failed to fetch orders")
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

// PUT /admin/orders
func UpdateOrderStatus(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Invalid(c, "order_id and status required")
			return
		}

		if err := svc.UpdateStatus(c.Request.Context(), req.OrderID, *req.Status); err != nil {
			respond.Error(c, err, "Failed to update order")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Order updated"})
	}
}
