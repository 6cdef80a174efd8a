package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/junaidrashid-git/shopfront-api/models"
	"gorm.io/gorm"
)

type UserStore struct {
	gw *Gateway
}

func NewUserStore(gw *Gateway) *UserStore { return &UserStore{gw: gw} }

// CreateUser inserts u and fills in its id. A taken email is reported as
// models.ErrDuplicateEmail; the transaction is rolled back either way.
func (s *UserStore) CreateUser(ctx context.Context, u *models.User) error {
	err := s.gw.Tx(ctx, func(tx *gorm.DB) error {
		return tx.Create(u).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *UserStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.gw.Conn(ctx, func(db *gorm.DB) error {
		return db.Where("email = ?", email).Take(&u).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}
