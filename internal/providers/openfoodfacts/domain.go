package openfoodfacts

import (
	"context"
	"errors"
)

// Suggestion is the normalized enrichment payload for a barcode. Nothing is
// persisted automatically; the caller decides what to keep.
type Suggestion struct {
	Name     string   `json:"name"`
	ImageURL string   `json:"image_url"`
	Tags     []string `json:"tags"`
}

type Lookup interface {
	Lookup(ctx context.Context, barcode string) (*Suggestion, error)
}

var (
	ErrInvalidBarcode      = errors.New("invalid_barcode")
	ErrNoMatch             = errors.New("no_match")
	ErrUpstreamUnavailable = errors.New("upstream_unavailable")
)
