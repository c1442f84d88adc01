package repository

import (
	"context"

	"github.com/pantryworks/pantry/internal/product/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO products (id, ean13, product_code, name, image_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		product.ID,
		product.EAN13,
		product.ProductCode,
		product.Name,
		product.ImageURL,
		product.CreatedAt,
		product.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	if product == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Exec(
		`UPDATE products
		 SET ean13 = ?, product_code = ?, name = ?, image_url = ?, updated_at = ?
		 WHERE id = ?`,
		product.EAN13,
		product.ProductCode,
		product.Name,
		product.ImageURL,
		product.UpdatedAt,
		product.ID,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Product, error) {
	var p domain.Product
	err := db.WithContext(ctx).Raw(
		`SELECT id, ean13, product_code, name, image_url, created_at, updated_at
		 FROM products WHERE id = ?`,
		id,
	).Scan(&p).Error
	if err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, nil
	}
	return &p, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.Product, error) {
	var items []domain.Product
	err := db.WithContext(ctx).Raw(
		`SELECT id, ean13, product_code, name, image_url, created_at, updated_at
		 FROM products ORDER BY created_at ASC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) LinkTag(ctx context.Context, db *gorm.DB, productID, tagID int64) error {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(1) FROM product_tags WHERE product_id = ? AND tag_id = ?`,
		productID,
		tagID,
	).Scan(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.WithContext(ctx).Exec(
		`INSERT INTO product_tags (product_id, tag_id) VALUES (?, ?)`,
		productID,
		tagID,
	).Error
}

func (r *repo) DeleteTagLinks(ctx context.Context, db *gorm.DB, productID int64) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM product_tags WHERE product_id = ?`,
		productID,
	).Error
}

func (r *repo) FindTagNames(ctx context.Context, db *gorm.DB, productID int64) ([]string, error) {
	var names []string
	err := db.WithContext(ctx).Raw(
		`SELECT t.name FROM tags t
		 JOIN product_tags pt ON pt.tag_id = t.id
		 WHERE pt.product_id = ?
		 ORDER BY t.name ASC`,
		productID,
	).Scan(&names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (r *repo) FindAllTagLinks(ctx context.Context, db *gorm.DB) ([]domain.TagLink, error) {
	var links []domain.TagLink
	err := db.WithContext(ctx).Raw(
		`SELECT pt.product_id AS product_id, t.name AS name
		 FROM product_tags pt
		 JOIN tags t ON t.id = pt.tag_id
		 ORDER BY t.name ASC`,
	).Scan(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}
