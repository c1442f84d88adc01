package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	FindAll(ctx context.Context, db *gorm.DB) ([]Location, error)
}
