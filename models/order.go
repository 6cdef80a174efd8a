package models

import "time"

// Order statuses are free text; these are the values the admin panel uses.
const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        *User     `gorm:"foreignKey:UserID" json:"-"`
	TotalAmount float64   `gorm:"type:numeric(10,2);not null;default:0" json:"total_amount"`
	Status      string    `gorm:"type:varchar(32);not null;default:'pending'" json:"status"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

// OrderSummary is an order joined with its customer, as listed in the admin panel.
type OrderSummary struct {
	ID       uint      `json:"id"`
	Customer string    `json:"customer"`
	Amount   float64   `json:"amount"`
	Status   string    `json:"status"`
	Date     time.Time `json:"date"`
}

type Stats struct {
	Revenue  float64 `json:"revenue"`
	Orders   int64   `json:"orders"`
	Products int64   `json:"products"`
}
