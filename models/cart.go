package models

// CartItem is one line of a user's cart. The unique index on
// (user_id, product_id) is what the add-to-cart upsert conflicts on.
type CartItem struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	UserID    uint     `gorm:"not null;uniqueIndex:idx_cart_user_product,priority:1" json:"user_id"`
	ProductID uint     `gorm:"not null;uniqueIndex:idx_cart_user_product,priority:2" json:"product_id"`
	Quantity  int      `gorm:"not null" json:"quantity"`
	User      *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Product   *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
}

func (CartItem) TableName() string { return "cart" }

// CartLine is a cart row joined with its product.
type CartLine struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url"`
	Quantity int     `json:"quantity"`
}
