package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/pantryworks/pantry/internal/config"
	itemrepository "github.com/pantryworks/pantry/internal/item/repository"
	itemservice "github.com/pantryworks/pantry/internal/item/service"
	locationrepository "github.com/pantryworks/pantry/internal/location/repository"
	locationservice "github.com/pantryworks/pantry/internal/location/service"
	"github.com/pantryworks/pantry/internal/observability"
	obsmetrics "github.com/pantryworks/pantry/internal/observability/metrics"
	"github.com/pantryworks/pantry/internal/providers/openfoodfacts"
	productrepository "github.com/pantryworks/pantry/internal/product/repository"
	productservice "github.com/pantryworks/pantry/internal/product/service"
	"github.com/pantryworks/pantry/internal/seed"
	tagrepository "github.com/pantryworks/pantry/internal/tag/repository"
	tagservice "github.com/pantryworks/pantry/internal/tag/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

// Prometheus instruments register on the default registry, so they are built
// once for the whole test binary.
var httpMetrics = obsmetrics.NewHTTPMetrics()

var schema = []string{
	`CREATE TABLE IF NOT EXISTS locations (
		id BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		CONSTRAINT ux_locations_name UNIQUE (name)
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id BIGINT PRIMARY KEY,
		ean13 TEXT,
		product_code TEXT,
		name TEXT NOT NULL,
		image_url TEXT,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tags (
		id BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		CONSTRAINT ux_tags_name UNIQUE (name)
	)`,
	`CREATE TABLE IF NOT EXISTS product_tags (
		product_id BIGINT NOT NULL,
		tag_id BIGINT NOT NULL,
		PRIMARY KEY (product_id, tag_id)
	)`,
	`CREATE TABLE IF NOT EXISTS items (
		id BIGINT PRIMARY KEY,
		product_id BIGINT NOT NULL,
		location_id BIGINT NOT NULL,
		quantity INT NOT NULL DEFAULT 1,
		expiration_date TEXT,
		frozen_date TEXT,
		created_at TIMESTAMP NOT NULL
	)`,
}

func newTestServer(t *testing.T, dsn, upstreamURL string) *Server {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	for _, stmt := range schema {
		require.NoError(t, conn.Exec(stmt).Error)
	}

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	require.NoError(t, seed.EnsureDefaultLocations(conn, node))

	log := zaptest.NewLogger(t)
	cfg := config.Config{OpenFoodFactsBaseURL: upstreamURL}

	holder := &config.EnrichmentConfigHolder{}
	holder.Store(config.DefaultEnrichmentConfig())

	productRepo := productrepository.Provide()
	tagRepo := tagrepository.Provide()
	productSvc := productservice.New(productservice.Params{
		DB: conn, Log: log, GenID: node, Repo: productRepo, TagRepo: tagRepo,
	})

	engine := NewEngine(observability.Config{}, httpMetrics)
	return NewServer(ServerParams{
		Gin: engine,
		Cfg: cfg,
		Log: log,
		LocationSvc: locationservice.New(locationservice.Params{
			DB: conn, Log: log, Repo: locationrepository.Provide(),
		}),
		TagSvc: tagservice.New(tagservice.Params{
			DB: conn, Log: log, GenID: node, Repo: tagRepo,
		}),
		ProductSvc: productSvc,
		ItemSvc: itemservice.New(itemservice.Params{
			DB: conn, Log: log, GenID: node, Repo: itemrepository.Provide(),
			ProductRepo: productRepo, ProductSvc: productSvc,
		}),
		Lookup: openfoodfacts.NewClient(cfg, holder, log),
	})
}

func perform(s *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func errorType(t *testing.T, w *httptest.ResponseRecorder) (string, string) {
	t.Helper()
	body := decode(t, w)
	payload, ok := body["error"].(map[string]any)
	require.True(t, ok, "missing error payload: %s", w.Body.String())
	typ, _ := payload["type"].(string)
	msg, _ := payload["message"].(string)
	return typ, msg
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, "file:srv_health?mode=memory&cache=shared", "http://127.0.0.1:1")

	w := perform(s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])
}

func TestListLocationsReturnsSeededDefaults(t *testing.T) {
	s := newTestServer(t, "file:srv_locations?mode=memory&cache=shared", "http://127.0.0.1:1")

	w := perform(s, http.MethodGet, "/locations", "")
	require.Equal(t, http.StatusOK, w.Code)

	rows := decodeList(t, w)
	require.Len(t, rows, 3)
	names := make([]string, 0, 3)
	for _, row := range rows {
		names = append(names, row["name"].(string))
		assert.NotEmpty(t, row["id"])
	}
	assert.ElementsMatch(t, []string{"Fridge", "Freezer", "Pantry"}, names)
}

func TestTagEndpoints(t *testing.T) {
	s := newTestServer(t, "file:srv_tags?mode=memory&cache=shared", "http://127.0.0.1:1")

	w := perform(s, http.MethodPost, "/tag", `{"name": "dairy"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode(t, w)
	assert.Equal(t, "DAIRY", created["name"])

	// Same name under case variation conflicts and echoes the stored row.
	w = perform(s, http.MethodPost, "/tag", `{"name": "Dairy"}`)
	require.Equal(t, http.StatusConflict, w.Code)
	body := decode(t, w)
	typ := body["error"].(map[string]any)["type"]
	assert.Equal(t, "conflict", typ)
	assert.Equal(t, created["id"], body["tag"].(map[string]any)["id"])

	w = perform(s, http.MethodPost, "/tag", `{"name": "   "}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	typStr, msg := errorType(t, w)
	assert.Equal(t, "validation_error", typStr)
	assert.Equal(t, "tag name is required", msg)

	w = perform(s, http.MethodPost, "/tag", `{"name": `)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(s, http.MethodGet, "/tags", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 1)
}

func TestProductEndpoints(t *testing.T) {
	s := newTestServer(t, "file:srv_products?mode=memory&cache=shared", "http://127.0.0.1:1")

	w := perform(s, http.MethodPost, "/product", `{
		"product_name": "Oat Milk",
		"ean13": "3017620422003",
		"image_url": "https://img.example/oat.jpg",
		"tags": "drink, vegan"
	}`)
	require.Equal(t, http.StatusCreated, w.Code)
	productID := decode(t, w)["productId"].(string)
	require.NotEmpty(t, productID)

	w = perform(s, http.MethodGet, "/products/"+productID, "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode(t, w)
	assert.Equal(t, "Oat Milk", got["name"])
	assert.Equal(t, "3017620422003", got["ean13"])
	assert.Nil(t, got["product_code"])
	assert.Equal(t, []any{"DRINK", "VEGAN"}, got["tags"])

	w = perform(s, http.MethodPut, "/product/"+productID, `{
		"product_name": "Oat Milk Barista",
		"ean13": "3017620422003",
		"tags": "drink"
	}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "product updated", decode(t, w)["message"])

	w = perform(s, http.MethodGet, "/products", "")
	require.Equal(t, http.StatusOK, w.Code)
	rows := decodeList(t, w)
	require.Len(t, rows, 1)
	assert.Equal(t, "Oat Milk Barista", rows[0]["name"])
	assert.Equal(t, []any{"DRINK"}, rows[0]["tags"])

	w = perform(s, http.MethodGet, "/products/not-a-number", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	typ, msg := errorType(t, w)
	assert.Equal(t, "validation_error", typ)
	assert.Equal(t, "invalid id", msg)

	w = perform(s, http.MethodGet, "/products/987654321", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	typ, _ = errorType(t, w)
	assert.Equal(t, "not_found", typ)

	w = perform(s, http.MethodPost, "/product", `{
		"product_name": "Bad",
		"ean13": "3017620422003",
		"product_code": "CODE1"
	}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	_, msg = errorType(t, w)
	assert.Equal(t, "ean13 and product code are mutually exclusive", msg)

	w = perform(s, http.MethodPut, "/product/987654321", `{
		"product_name": "Ghost",
		"ean13": "3017620422003"
	}`)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestItemEndpoints(t *testing.T) {
	s := newTestServer(t, "file:srv_items?mode=memory&cache=shared", "http://127.0.0.1:1")

	w := perform(s, http.MethodPost, "/product", `{
		"product_name": "Frozen Peas",
		"ean13": "3017620422003"
	}`)
	require.Equal(t, http.StatusCreated, w.Code)
	productID := decode(t, w)["productId"].(string)

	w = perform(s, http.MethodPost, "/item", `{
		"product_id": "`+productID+`",
		"location_id": "42",
		"quantity": 2,
		"frozen_date": "2026-08-30",
		"tags": "frozen"
	}`)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Item added successfully", body["message"])
	itemID := body["itemId"].(string)
	require.NotEmpty(t, itemID)

	w = perform(s, http.MethodGet, "/items/42", "")
	require.Equal(t, http.StatusOK, w.Code)
	rows := decodeList(t, w)
	require.Len(t, rows, 1)
	assert.Equal(t, itemID, rows[0]["id"])
	assert.Equal(t, "Frozen Peas", rows[0]["name"])
	assert.Equal(t, float64(2), rows[0]["quantity"])
	assert.Equal(t, "2026-08-30", rows[0]["frozen_date"])
	assert.Equal(t, []any{"FROZEN"}, rows[0]["tags"])

	w = perform(s, http.MethodGet, "/items/99", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeList(t, w))

	w = perform(s, http.MethodGet, "/items/freezer", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(s, http.MethodPost, "/item", `{
		"product_id": "987654321",
		"location_id": "42"
	}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	typ, msg := errorType(t, w)
	assert.Equal(t, "validation_error", typ)
	assert.Equal(t, "Product not found", msg)

	w = perform(s, http.MethodPost, "/item", `{
		"product_id": "`+productID+`",
		"location_id": "42",
		"quantity": -1
	}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBarcodeLookupEndpoint(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v0/product/3017620422003.json":
			w.Write([]byte(`{
				"status": 1,
				"product": {
					"product_name": "Nutella",
					"image_front_url": "https://img.example/nutella.jpg",
					"categories_tags": ["en:sweet-spreads"]
				}
			}`))
		case "/api/v0/product/9999999999999.json":
			w.Write([]byte(`{"status": 0}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer upstream.Close()

	s := newTestServer(t, "file:srv_barcode?mode=memory&cache=shared", upstream.URL)

	w := perform(s, http.MethodGet, "/openfoodfacts/3017620422003", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Nutella", body["name"])
	assert.Equal(t, "https://img.example/nutella.jpg", body["image_url"])
	assert.Equal(t, []any{"SWEET SPREADS"}, body["tags"])

	w = perform(s, http.MethodGet, "/openfoodfacts/9999999999999", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	typ, _ := errorType(t, w)
	assert.Equal(t, "not_found", typ)

	w = perform(s, http.MethodGet, "/openfoodfacts/12345", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	typ, msg := errorType(t, w)
	assert.Equal(t, "validation_error", typ)
	assert.Equal(t, "barcode must be exactly 13 digits", msg)

	w = perform(s, http.MethodGet, "/openfoodfacts/1111111111111", "")
	require.Equal(t, http.StatusBadGateway, w.Code)
	typ, msg = errorType(t, w)
	assert.Equal(t, "upstream_unavailable", typ)
	assert.Equal(t, "product database unavailable", msg)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, "file:srv_metrics?mode=memory&cache=shared", "http://127.0.0.1:1")

	perform(s, http.MethodGet, "/health", "")

	w := perform(s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pantry_http_requests_total")
}
