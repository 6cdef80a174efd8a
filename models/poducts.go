package models

type Product struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"not null" json:"name"`
	Price    float64 `gorm:"type:numeric(10,2);not null" json:"price"`
	Category string  `gorm:"index" json:"category"`
	ImageURL string  `json:"image_url"`
}
