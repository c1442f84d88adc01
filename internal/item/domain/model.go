package domain

import "time"

// Item is one physical stock entry of a product at a location. Several items
// may reference the same product.
type Item struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	ProductID      int64     `json:"product_id" gorm:"not null"`
	LocationID     int64     `json:"location_id" gorm:"not null"`
	Quantity       int       `json:"quantity" gorm:"not null;default:1"`
	ExpirationDate *string   `json:"expiration_date" gorm:"type:text"`
	FrozenDate     *string   `json:"frozen_date" gorm:"type:text"`
	CreatedAt      time.Time `json:"created_at" gorm:"not null"`
}

func (Item) TableName() string { return "items" }
