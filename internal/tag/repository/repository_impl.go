package repository

import (
	"context"

	"github.com/pantryworks/pantry/internal/tag/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, tag *domain.Tag) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO tags (id, name) VALUES (?, ?)`,
		tag.ID,
		tag.Name,
	).Error
}

func (r *repo) FindByName(ctx context.Context, db *gorm.DB, name string) (*domain.Tag, error) {
	var t domain.Tag
	err := db.WithContext(ctx).Raw(
		`SELECT id, name FROM tags WHERE name = ?`,
		name,
	).Scan(&t).Error
	if err != nil {
		return nil, err
	}
	if t.ID == 0 {
		return nil, nil
	}
	return &t, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.Tag, error) {
	var items []domain.Tag
	err := db.WithContext(ctx).Raw(
		`SELECT id, name FROM tags ORDER BY name ASC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
