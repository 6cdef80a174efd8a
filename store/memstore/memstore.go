// Package memstore keeps users, products, cart lines and orders in memory.
// It satisfies the same store interfaces as the PostgreSQL gateway.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/junaidrashid-git/shopfront-api/models"
)

type cartKey struct {
	userID    uint
	productID uint
}

type Store struct {
	mu sync.RWMutex

	users    map[uint]models.User
	products map[uint]models.Product
	cart     map[cartKey]models.CartItem
	orders   map[uint]models.Order

	nextUserID    uint
	nextProductID uint
	nextCartID    uint
	nextOrderID   uint

	failure error
}

func New() *Store {
	return &Store{
		users:         make(map[uint]models.User),
		products:      make(map[uint]models.Product),
		cart:          make(map[cartKey]models.CartItem),
		orders:        make(map[uint]models.Order),
		nextUserID:    1,
		nextProductID: 1,
		nextCartID:    1,
		nextOrderID:   1,
	}
}

// SetFailure makes every following call return err, as if the database were down.
// Pass nil to recover.
func (s *Store) SetFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = err
}

func (s *Store) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return s.failure
	}

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return models.ErrDuplicateEmail
		}
	}
	u.ID = s.nextUserID
	s.nextUserID++
	s.users[u.ID] = *u
	return nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failure != nil {
		return nil, s.failure
	}

	for _, u := range s.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *Store) ListProducts(_ context.Context, category string) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failure != nil {
		return nil, s.failure
	}

	res := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if category == "" || p.Category == category {
			res = append(res, p)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (s *Store) CreateProduct(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return s.failure
	}

	p.ID = s.nextProductID
	s.nextProductID++
	s.products[p.ID] = *p
	return nil
}

func (s *Store) DeleteProduct(_ context.Context, id uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return 0, s.failure
	}

	for k := range s.cart {
		if k.productID == id {
			delete(s.cart, k)
		}
	}
	if _, ok := s.products[id]; !ok {
		return 0, nil
	}
	delete(s.products, id)
	return 1, nil
}

// AddOrIncrement holds the write lock across read and write, so concurrent
// adds for the same pair always sum.
func (s *Store) AddOrIncrement(_ context.Context, userID, productID uint, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return s.failure
	}

	k := cartKey{userID: userID, productID: productID}
	if item, ok := s.cart[k]; ok {
		item.Quantity += quantity
		s.cart[k] = item
		return nil
	}
	s.cart[k] = models.CartItem{
		ID:        s.nextCartID,
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	s.nextCartID++
	return nil
}

// CartLines drops rows whose product no longer exists, like the SQL inner join.
func (s *Store) CartLines(_ context.Context, userID uint) ([]models.CartLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failure != nil {
		return nil, s.failure
	}

	lines := []models.CartLine{}
	for k, item := range s.cart {
		if k.userID != userID {
			continue
		}
		p, ok := s.products[k.productID]
		if !ok {
			continue
		}
		lines = append(lines, models.CartLine{
			ID:       item.ID,
			Name:     p.Name,
			Price:    p.Price,
			ImageURL: p.ImageURL,
			Quantity: item.Quantity,
		})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ID < lines[j].ID })
	return lines, nil
}

// CartRows returns the raw cart rows for a user, including orphans.
func (s *Store) CartRows(userID uint) []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows []models.CartItem
	for k, item := range s.cart {
		if k.userID == userID {
			rows = append(rows, item)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows
}

// AddOrder seeds an order. There is no public create-order operation.
func (s *Store) AddOrder(userID uint, amount float64, status string, createdAt time.Time) models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	if status == "" {
		status = models.OrderStatusPending
	}
	o := models.Order{
		ID:          s.nextOrderID,
		UserID:      userID,
		TotalAmount: amount,
		Status:      status,
		CreatedAt:   createdAt,
	}
	s.orders[o.ID] = o
	s.nextOrderID++
	return o
}

func (s *Store) Order(id uint) (models.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	return o, ok
}

func (s *Store) Stats(_ context.Context) (models.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failure != nil {
		return models.Stats{}, s.failure
	}

	var revenue float64
	for _, o := range s.orders {
		revenue += o.TotalAmount
	}
	return models.Stats{
		Revenue:  revenue,
		Orders:   int64(len(s.orders)),
		Products: int64(len(s.products)),
	}, nil
}

func (s *Store) ListOrders(_ context.Context) ([]models.OrderSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failure != nil {
		return nil, s.failure
	}

	res := []models.OrderSummary{}
	for _, o := range s.orders {
		u, ok := s.users[o.UserID]
		if !ok {
			continue
		}
		res = append(res, models.OrderSummary{
			ID:       o.ID,
			Customer: u.Name,
			Amount:   o.TotalAmount,
			Status:   o.Status,
			Date:     o.CreatedAt,
		})
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Date.Equal(res[j].Date) {
			return res[i].ID > res[j].ID
		}
		return res[i].Date.After(res[j].Date)
	})
	return res, nil
}

func (s *Store) UpdateOrderStatus(_ context.Context, orderID uint, status string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return 0, s.failure
	}

	o, ok := s.orders[orderID]
	if !ok {
		return 0, nil
	}
	o.Status = status
	s.orders[orderID] = o
	return 1, nil
}
