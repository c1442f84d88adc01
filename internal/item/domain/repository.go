package domain

import (
	"context"

	"gorm.io/gorm"
)

// LocationRow is an item joined with its product's display fields.
type LocationRow struct {
	Item
	ProductName     string
	ProductImageURL string
}

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, item *Item) error
	FindByLocation(ctx context.Context, db *gorm.DB, locationID int64) ([]LocationRow, error)
}
