package domain

import (
	"context"
	"errors"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context) ([]Response, error)
}

type CreateRequest struct {
	Name string `json:"name"`
}

type Response struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var ErrInvalidName = errors.New("invalid_name")

// ConflictError reports a duplicate tag name and carries the stored row so
// callers can surface it.
type ConflictError struct {
	Existing Response
}

func (e *ConflictError) Error() string { return "tag_exists" }
