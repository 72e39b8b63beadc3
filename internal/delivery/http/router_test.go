package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/storefront/internal/config"
	"github.com/Pesokrava/storefront/internal/delivery/events"
	"github.com/Pesokrava/storefront/internal/delivery/http/handler"
	"github.com/Pesokrava/storefront/internal/domain"
	"github.com/Pesokrava/storefront/internal/pkg/logger"
	cacheRepo "github.com/Pesokrava/storefront/internal/repository/cache"
	"github.com/Pesokrava/storefront/internal/repository/remote"
	"github.com/Pesokrava/storefront/internal/usecase/cart"
	"github.com/Pesokrava/storefront/internal/usecase/catalog"
	"github.com/Pesokrava/storefront/internal/usecase/wishlist"
	"github.com/Pesokrava/storefront/internal/worker"
)

var fixtureProducts = []domain.Product{
	{ID: 1, Title: "iPhone 9", Category: "smartphones", Price: 549},
	{ID: 2, Title: "iPhone X", Category: "smartphones", Price: 899},
	{ID: 3, Title: "Samsung Universe 9", Category: "smartphones", Price: 1249},
	{ID: 4, Title: "OPPOF19", Category: "smartphones", Price: 280},
	{ID: 5, Title: "Huawei P30", Category: "smartphones", Price: 499},
	{ID: 6, Title: "MacBook Pro", Category: "laptops", Price: 1749},
	{ID: 7, Title: "Samsung Galaxy Book", Category: "laptops", Price: 1499},
	{ID: 8, Title: "Microsoft Surface Laptop 4", Category: "laptops", Price: 1499},
	{ID: 9, Title: "Infinix INBOOK", Category: "laptops", Price: 1099},
	{ID: 10, Title: "HP Pavilion 15-DK1056WM", Category: "laptops", Price: 1099},
	{ID: 11, Title: "Table Lamp", Category: "lighting", Price: 12.5},
	{ID: 12, Title: "Ceiling Lamp", Category: "lighting", Price: 45},
}

// fakeCatalog serves the fixture the way the remote catalog API does; limit=0 means everything
func fakeCatalog(t *testing.T) *httptest.Server {
	t.Helper()

	writePage := func(w http.ResponseWriter, r *http.Request, products []domain.Product) {
		limit, skip := 30, 0
		if v := r.URL.Query().Get("limit"); v != "" {
			limit, _ = strconv.Atoi(v)
		}
		if v := r.URL.Query().Get("skip"); v != "" {
			skip, _ = strconv.Atoi(v)
		}

		total := len(products)
		start := min(skip, total)
		end := total
		if limit > 0 {
			end = min(start+limit, total)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(domain.ProductPage{
			Products: products[start:end],
			Total:    total,
			Skip:     skip,
			Limit:    limit,
		})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		writePage(w, r, fixtureProducts)
	})
	mux.HandleFunc("GET /products/search", func(w http.ResponseWriter, r *http.Request) {
		term := strings.ToLower(r.URL.Query().Get("q"))
		var matched []domain.Product
		for _, p := range fixtureProducts {
			if strings.Contains(strings.ToLower(p.Title), term) {
				matched = append(matched, p)
			}
		}
		writePage(w, r, matched)
	})
	mux.HandleFunc("GET /products/category/{slug}", func(w http.ResponseWriter, r *http.Request) {
		var matched []domain.Product
		for _, p := range fixtureProducts {
			if p.Category == r.PathValue("slug") {
				matched = append(matched, p)
			}
		}
		writePage(w, r, matched)
	})
	mux.HandleFunc("GET /products/categories", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]domain.Category{
			{Slug: "laptops", Name: "Laptops"},
			{Slug: "lighting", Name: "Lighting"},
			{Slug: "smartphones", Name: "Smartphones"},
		})
	})
	mux.HandleFunc("GET /products/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(r.PathValue("id"))
		for _, p := range fixtureProducts {
			if p.ID == id {
				json.NewEncoder(w).Encode(p)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintf(w, `{"message":"Product with id '%d' not found"}`, id)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

type testApp struct {
	handler http.Handler
	catalog *catalog.Service
}

func setupTestServer(t *testing.T) *testApp {
	t.Helper()

	log := logger.New("test")
	cfg := &config.Config{
		Env: "test",
		Server: config.ServerConfig{
			WriteTimeout:   5 * time.Second,
			AllowedOrigins: []string{"*"},
		},
	}

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	remoteCatalog := remote.NewCatalogClient(fakeCatalog(t).URL, 5*time.Second)
	repo := cacheRepo.NewRedisCache(remoteCatalog, redisClient, time.Minute, time.Hour, log)

	broadcaster := events.NewBroadcaster(log)
	catalogService := catalog.NewService(repo, broadcaster, 5, log)
	cartService := cart.NewService(broadcaster, log)
	wishlistService := wishlist.NewService(broadcaster, log)

	refreshWorker := worker.NewRefreshWorker(catalogService, 10*time.Millisecond, 5*time.Second, log)
	queryChanges, unsubscribe := broadcaster.SubscribeLatest(domain.SubjectCatalogQuery)
	ctx, cancel := context.WithCancel(context.Background())
	go refreshWorker.Run(ctx, queryChanges)
	t.Cleanup(func() {
		cancel()
		unsubscribe()
		_ = refreshWorker.Shutdown(context.Background())
	})

	router := NewRouter(
		handler.NewCatalogHandler(catalogService, log),
		handler.NewCartHandler(cartService, catalogService, log),
		handler.NewWishlistHandler(wishlistService, catalogService, log),
		cfg,
		log,
	)

	return &testApp{handler: router.Setup(), catalog: catalogService}
}

func (a *testApp) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

func decodeState(t *testing.T, w *httptest.ResponseRecorder) domain.CatalogState {
	t.Helper()

	var resp struct {
		Success bool                `json:"success"`
		Data    domain.CatalogState `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.True(t, resp.Success)
	return resp.Data
}

func productIDs(products []domain.Product) []int {
	ids := make([]int, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func TestHealthCheck(t *testing.T) {
	app := setupTestServer(t)

	w := app.do(t, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var resp map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "healthy", resp["status"])
}

func TestCatalogRefreshAndPaging(t *testing.T) {
	app := setupTestServer(t)

	w := app.do(t, http.MethodPost, "/api/v1/catalog/refresh", "")
	require.Equal(t, http.StatusOK, w.Code)
	state := decodeState(t, w)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, productIDs(state.Items))
	assert.Equal(t, 12, state.Total)
	assert.False(t, state.HasPrevPage)
	assert.True(t, state.HasNextPage)
	assert.Len(t, state.Categories, 3)

	w = app.do(t, http.MethodPut, "/api/v1/catalog/page", `{"page":3}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodPost, "/api/v1/catalog/refresh", "")
	require.Equal(t, http.StatusOK, w.Code)
	state = decodeState(t, w)
	assert.Equal(t, []int{11, 12}, productIDs(state.Items))
	assert.True(t, state.HasPrevPage)
	assert.False(t, state.HasNextPage)
}

func TestSearchInCategory(t *testing.T) {
	app := setupTestServer(t)

	require.Equal(t, http.StatusOK, app.do(t, http.MethodPut, "/api/v1/catalog/category", `{"slug":"smartphones"}`).Code)
	require.Equal(t, http.StatusOK, app.do(t, http.MethodPut, "/api/v1/catalog/search", `{"term":"samsung"}`).Code)

	w := app.do(t, http.MethodPost, "/api/v1/catalog/refresh", "")
	require.Equal(t, http.StatusOK, w.Code)

	state := decodeState(t, w)
	assert.Equal(t, []int{3}, productIDs(state.Items))
	assert.Equal(t, 1, state.Total)
	assert.False(t, state.HasNextPage)
}

func TestQueryChangeTriggersRefresh(t *testing.T) {
	app := setupTestServer(t)

	w := app.do(t, http.MethodPut, "/api/v1/catalog/category", `{"slug":"lighting"}`)
	require.Equal(t, http.StatusOK, w.Code)

	require.Eventually(t, func() bool {
		state := app.catalog.Snapshot()
		return !state.IsLoading && assert.ObjectsAreEqual([]int{11, 12}, productIDs(state.Items))
	}, 2*time.Second, 10*time.Millisecond)
}

func TestCartFlow(t *testing.T) {
	app := setupTestServer(t)

	w := app.do(t, http.MethodPost, "/api/v1/cart/items", `{"productId":11}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.do(t, http.MethodPatch, "/api/v1/cart/items/11", `{"quantity":"3"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodPost, "/api/v1/cart/items", `{"productId":11}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/api/v1/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data domain.CartSummary `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Data.Items, 1)
	assert.Equal(t, 3, resp.Data.Items[0].Quantity)
	assert.Equal(t, "37.50", resp.Data.TotalDisplay)

	w = app.do(t, http.MethodDelete, "/api/v1/cart/items/11", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = app.do(t, http.MethodPost, "/api/v1/cart/items", `{"productId":404}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWishlistToggle(t *testing.T) {
	app := setupTestServer(t)

	w := app.do(t, http.MethodPost, "/api/v1/wishlist/toggle", `{"productId":6}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodPost, "/api/v1/wishlist/toggle", `{"productId":6}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/api/v1/wishlist", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, w.Body.String())
}

func TestProductDetails(t *testing.T) {
	app := setupTestServer(t)

	w := app.do(t, http.MethodGet, "/api/v1/products/8", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data domain.Product `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "Microsoft Surface Laptop 4", resp.Data.Title)

	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodGet, "/api/v1/products/99", "").Code)
	assert.Equal(t, http.StatusBadRequest, app.do(t, http.MethodGet, "/api/v1/products/abc", "").Code)
}
