package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, tag *Tag) error
	FindByName(ctx context.Context, db *gorm.DB, name string) (*Tag, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]Tag, error)
}
