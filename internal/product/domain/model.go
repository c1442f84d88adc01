package domain

import "time"

// Product carries exactly one identity field: ean13 for barcoded retail
// goods, product_code for store-internal identifiers.
type Product struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	EAN13       *string   `json:"ean13" gorm:"column:ean13;type:text"`
	ProductCode *string   `json:"product_code" gorm:"type:text"`
	Name        string    `json:"name" gorm:"type:text;not null"`
	ImageURL    string    `json:"image_url" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"not null"`
}

func (Product) TableName() string { return "products" }

// ProductTag links a product to a tag.
type ProductTag struct {
	ProductID int64 `gorm:"primaryKey"`
	TagID     int64 `gorm:"primaryKey"`
}

func (ProductTag) TableName() string { return "product_tags" }
