package openfoodfacts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pantryworks/pantry/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestClient(t *testing.T, baseURL string, cfg config.EnrichmentConfig) *Client {
	t.Helper()

	holder := &config.EnrichmentConfigHolder{}
	holder.Store(cfg)

	return NewClient(
		config.Config{OpenFoodFactsBaseURL: baseURL},
		holder,
		zaptest.NewLogger(t),
	)
}

func enrichmentDefaults() config.EnrichmentConfig {
	return config.EnrichmentConfig{MaxTagSuggestions: 12, TimeoutSeconds: 10}
}

func TestLookupSuccess(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v0/product/3017620422003.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": 1,
			"product": {
				"product_name": "Nutella",
				"image_front_url": "https://img.example/nutella.jpg",
				"categories_tags": ["en:breakfasts", "en:sweet-spreads"],
				"labels_tags": ["en:gluten-free"]
			}
		}`))
	}))
	defer upstream.Close()

	client := newTestClient(t, upstream.URL, enrichmentDefaults())

	got, err := client.Lookup(context.Background(), "3017620422003")
	require.NoError(t, err)
	assert.Equal(t, "Nutella", got.Name)
	assert.Equal(t, "https://img.example/nutella.jpg", got.ImageURL)
	assert.Equal(t, []string{"BREAKFASTS", "SWEET SPREADS", "GLUTEN FREE"}, got.Tags)
}

func TestLookupFallsBackToGenericNameAndImage(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"status": 1,
			"product": {
				"generic_name": "Hazelnut spread",
				"image_url": "https://img.example/fallback.jpg"
			}
		}`))
	}))
	defer upstream.Close()

	client := newTestClient(t, upstream.URL, enrichmentDefaults())

	got, err := client.Lookup(context.Background(), "3017620422003")
	require.NoError(t, err)
	assert.Equal(t, "Hazelnut spread", got.Name)
	assert.Equal(t, "https://img.example/fallback.jpg", got.ImageURL)
	assert.Empty(t, got.Tags)
}

func TestLookupInvalidBarcodeSkipsUpstream(t *testing.T) {
	var calls int
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer upstream.Close()

	client := newTestClient(t, upstream.URL, enrichmentDefaults())

	for _, barcode := range []string{"", "12345", "301762042200X", "30176204220031"} {
		_, err := client.Lookup(context.Background(), barcode)
		assert.ErrorIs(t, err, ErrInvalidBarcode, "barcode %q", barcode)
	}
	assert.Zero(t, calls)
}

func TestLookupNoMatch(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": 0, "status_verbose": "product not found"}`))
	}))
	defer upstream.Close()

	client := newTestClient(t, upstream.URL, enrichmentDefaults())

	_, err := client.Lookup(context.Background(), "3017620422003")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestLookupUpstreamFailures(t *testing.T) {
	t.Run("http error status", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer upstream.Close()

		client := newTestClient(t, upstream.URL, enrichmentDefaults())
		_, err := client.Lookup(context.Background(), "3017620422003")
		assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	})

	t.Run("malformed body", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status": `))
		}))
		defer upstream.Close()

		client := newTestClient(t, upstream.URL, enrichmentDefaults())
		_, err := client.Lookup(context.Background(), "3017620422003")
		assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	})

	t.Run("unreachable host", func(t *testing.T) {
		client := newTestClient(t, "http://127.0.0.1:1", enrichmentDefaults())
		_, err := client.Lookup(context.Background(), "3017620422003")
		assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	})
}

func TestLookupHonorsTagSuggestionCap(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"status": 1,
			"product": {
				"product_name": "Busy product",
				"categories_tags": ["en:a", "en:b", "en:c", "en:d"],
				"labels_tags": ["en:e", "en:f"]
			}
		}`))
	}))
	defer upstream.Close()

	cfg := enrichmentDefaults()
	cfg.MaxTagSuggestions = 3
	client := newTestClient(t, upstream.URL, cfg)

	got, err := client.Lookup(context.Background(), "3017620422003")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, got.Tags)
}

func TestLookupBaseURLOverride(t *testing.T) {
	var primaryCalls int
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		primaryCalls++
	}))
	defer primary.Close()
	override := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": 1, "product": {"product_name": "Mirror"}}`))
	}))
	defer override.Close()

	cfg := enrichmentDefaults()
	cfg.BaseURL = override.URL + "/"
	client := newTestClient(t, primary.URL, cfg)

	got, err := client.Lookup(context.Background(), "3017620422003")
	require.NoError(t, err)
	assert.Equal(t, "Mirror", got.Name)
	assert.Zero(t, primaryCalls)
}

func TestSuggestTagsDeduplicates(t *testing.T) {
	tags := suggestTags(
		[]string{"en:sweet-spreads", "fr:sweet_spreads", "en:"},
		[]string{"en:sweet-spreads", "organic"},
		12,
	)
	assert.Equal(t, []string{"SWEET SPREADS", "ORGANIC"}, tags)
}
