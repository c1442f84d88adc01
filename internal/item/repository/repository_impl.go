package repository

import (
	"context"

	"github.com/pantryworks/pantry/internal/item/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, item *domain.Item) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO items (id, product_id, location_id, quantity, expiration_date, frozen_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.ProductID,
		item.LocationID,
		item.Quantity,
		item.ExpirationDate,
		item.FrozenDate,
		item.CreatedAt,
	).Error
}

func (r *repo) FindByLocation(ctx context.Context, db *gorm.DB, locationID int64) ([]domain.LocationRow, error) {
	var rows []domain.LocationRow
	err := db.WithContext(ctx).Raw(
		`SELECT i.id, i.product_id, i.location_id, i.quantity, i.expiration_date, i.frozen_date, i.created_at,
		        p.name AS product_name, p.image_url AS product_image_url
		 FROM items i
		 JOIN products p ON p.id = i.product_id
		 WHERE i.location_id = ?
		 ORDER BY i.created_at ASC`,
		locationID,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
