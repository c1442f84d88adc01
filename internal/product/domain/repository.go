package domain

import (
	"context"

	"gorm.io/gorm"
)

// TagLink pairs a product with one of its tag names. Used to assemble tag
// slices for list responses in a single query.
type TagLink struct {
	ProductID int64
	Name      string
}

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, product *Product) error
	Update(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Product, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]Product, error)

	LinkTag(ctx context.Context, db *gorm.DB, productID, tagID int64) error
	DeleteTagLinks(ctx context.Context, db *gorm.DB, productID int64) error
	FindTagNames(ctx context.Context, db *gorm.DB, productID int64) ([]string, error)
	FindAllTagLinks(ctx context.Context, db *gorm.DB) ([]TagLink, error)
}
