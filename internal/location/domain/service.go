package domain

import "context"

type Service interface {
	List(ctx context.Context) ([]Response, error)
}

type Response struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
