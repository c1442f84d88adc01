package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/pantryworks/pantry/internal/config"
	"go.uber.org/zap"
)

var barcodePattern = regexp.MustCompile(`^[0-9]{13}$`)

// Client queries the OpenFoodFacts v0 product API. Lookups are uncached and
// carry no retries; a slow or failing upstream surfaces directly to the
// caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
	holder     *config.EnrichmentConfigHolder
	log        *zap.Logger
}

func NewClient(cfg config.Config, holder *config.EnrichmentConfigHolder, log *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.OpenFoodFactsBaseURL, "/"),
		httpClient: &http.Client{},
		holder:     holder,
		log:        log.Named("openfoodfacts.client"),
	}
}

type productPayload struct {
	ProductName   string   `json:"product_name"`
	GenericName   string   `json:"generic_name"`
	ImageFrontURL string   `json:"image_front_url"`
	ImageURL      string   `json:"image_url"`
	Categories    []string `json:"categories_tags"`
	Labels        []string `json:"labels_tags"`
}

type lookupPayload struct {
	Status  int             `json:"status"`
	Product *productPayload `json:"product"`
}

func (c *Client) Lookup(ctx context.Context, barcode string) (*Suggestion, error) {
	barcode = strings.TrimSpace(barcode)
	if !barcodePattern.MatchString(barcode) {
		return nil, ErrInvalidBarcode
	}

	settings := c.holder.Get()
	baseURL := c.baseURL
	if override := strings.TrimRight(strings.TrimSpace(settings.BaseURL), "/"); override != "" {
		baseURL = override
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(settings.TimeoutSeconds)*time.Second)
	defer cancel()

	url := fmt.Sprintf("%s/api/v0/product/%s.json", baseURL, barcode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("upstream request failed", zap.String("barcode", barcode), zap.Error(err))
		return nil, ErrUpstreamUnavailable
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		c.log.Warn("upstream returned error status",
			zap.String("barcode", barcode),
			zap.Int("status", res.StatusCode),
		)
		return nil, ErrUpstreamUnavailable
	}

	var payload lookupPayload
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, ErrUpstreamUnavailable
	}

	if payload.Status != 1 || payload.Product == nil {
		return nil, ErrNoMatch
	}

	name := payload.Product.ProductName
	if name == "" {
		name = payload.Product.GenericName
	}
	imageURL := payload.Product.ImageFrontURL
	if imageURL == "" {
		imageURL = payload.Product.ImageURL
	}

	return &Suggestion{
		Name:     name,
		ImageURL: imageURL,
		Tags:     suggestTags(payload.Product.Categories, payload.Product.Labels, settings.MaxTagSuggestions),
	}, nil
}

// suggestTags folds upstream category and label entries into tag names:
// last colon-delimited segment, hyphens/underscores to spaces, uppercased,
// deduplicated in first-occurrence order, capped at max entries.
func suggestTags(categories, labels []string, max int) []string {
	seen := make(map[string]struct{})
	tags := make([]string, 0, max)

	for _, entry := range append(append([]string{}, categories...), labels...) {
		parts := strings.Split(entry, ":")
		segment := strings.TrimSpace(parts[len(parts)-1])
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "-", " ")
		segment = strings.ReplaceAll(segment, "_", " ")
		segment = strings.ToUpper(segment)
		if _, ok := seen[segment]; ok {
			continue
		}
		seen[segment] = struct{}{}
		tags = append(tags, segment)
		if len(tags) >= max {
			break
		}
	}
	return tags
}
