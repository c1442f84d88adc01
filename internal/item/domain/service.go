package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*CreateResponse, error)
	ListByLocation(ctx context.Context, locationID string) ([]Response, error)
}

type CreateRequest struct {
	ProductID      string `json:"product_id"`
	LocationID     string `json:"location_id"`
	Quantity       int    `json:"quantity"`
	ExpirationDate string `json:"expiration_date"`
	FrozenDate     string `json:"frozen_date"`
	Tags           string `json:"tags"`
}

type CreateResponse struct {
	ItemID string `json:"itemId"`
}

// Response is an item enriched with its product's name, image and tags.
type Response struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	LocationID     string    `json:"location_id"`
	Quantity       int       `json:"quantity"`
	ExpirationDate *string   `json:"expiration_date"`
	FrozenDate     *string   `json:"frozen_date"`
	Name           string    `json:"name"`
	ImageURL       string    `json:"image_url"`
	Tags           []string  `json:"tags"`
	CreatedAt      time.Time `json:"created_at"`
}

var (
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidQuantity = errors.New("invalid_quantity")
	ErrProductNotFound = errors.New("product_not_found")
)
