package repository

import (
	"context"

	"github.com/pantryworks/pantry/internal/location/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.Location, error) {
	var items []domain.Location
	err := db.WithContext(ctx).Raw(
		`SELECT id, name FROM locations ORDER BY name ASC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
