package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	List(ctx context.Context) ([]Response, error)

	// AttachTags links each name in the comma-separated list to the product,
	// creating missing tags. It runs against the caller's transaction so the
	// inventory service can share one atomic scope.
	AttachTags(ctx context.Context, tx *gorm.DB, productID int64, tagList string) error
}

type CreateRequest struct {
	Name        string `json:"product_name"`
	EAN13       string `json:"ean13"`
	ProductCode string `json:"product_code"`
	ImageURL    string `json:"image_url"`
	Tags        string `json:"tags"`
}

type UpdateRequest struct {
	ID          string
	Name        string `json:"product_name"`
	EAN13       string `json:"ean13"`
	ProductCode string `json:"product_code"`
	ImageURL    string `json:"image_url"`
	Tags        string `json:"tags"`
}

type Response struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	EAN13       *string   `json:"ean13"`
	ProductCode *string   `json:"product_code"`
	ImageURL    string    `json:"image_url"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

var (
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidEAN13        = errors.New("invalid_ean13")
	ErrInvalidProductCode  = errors.New("invalid_product_code")
	ErrMissingIdentifier   = errors.New("missing_identifier")
	ErrAmbiguousIdentifier = errors.New("ambiguous_identifier")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
)
