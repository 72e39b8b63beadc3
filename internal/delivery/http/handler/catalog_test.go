package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Pesokrava/storefront/internal/domain"
)

func TestCatalogHandler_Get(t *testing.T) {
	s := setupServices()
	handler := NewCatalogHandler(s.catalog, s.log)

	w := httptest.NewRecorder()
	handler.Get(w, httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	state := decodeData[domain.CatalogState](t, w)
	assert.Equal(t, 1, state.CurrentPage)
	assert.Equal(t, 10, state.PageLimit)
	assert.Equal(t, "asc", state.Order)
	assert.NotNil(t, state.Items)
}

func TestCatalogHandler_SetLimit(t *testing.T) {
	s := setupServices()
	handler := NewCatalogHandler(s.catalog, s.log)

	w := httptest.NewRecorder()
	handler.SetPage(w, jsonRequest(t, http.MethodPut, "/api/v1/catalog/page", map[string]int{"page": 4}))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.SetLimit(w, jsonRequest(t, http.MethodPut, "/api/v1/catalog/limit", map[string]int{"limit": 20}))

	assert.Equal(t, http.StatusOK, w.Code)
	state := decodeData[domain.CatalogState](t, w)
	assert.Equal(t, 20, state.PageLimit)
	assert.Equal(t, 1, state.CurrentPage)
	assert.Equal(t, uint64(2), state.Generation)
}

func TestCatalogHandler_SetLimit_Invalid(t *testing.T) {
	s := setupServices()
	handler := NewCatalogHandler(s.catalog, s.log)

	w := httptest.NewRecorder()
	handler.SetLimit(w, jsonRequest(t, http.MethodPut, "/api/v1/catalog/limit", map[string]int{"limit": 0}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 10, s.catalog.Query().Limit)
}

func TestCatalogHandler_SetLimit_AnyPositiveSize(t *testing.T) {
	s := setupServices()
	handler := NewCatalogHandler(s.catalog, s.log)

	w := httptest.NewRecorder()
	handler.SetLimit(w, jsonRequest(t, http.MethodPut, "/api/v1/catalog/limit", map[string]int{"limit": 1000}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1000, decodeData[domain.CatalogState](t, w).PageLimit)
}

func TestCatalogHandler_SetPage_MissingField(t *testing.T) {
	s := setupServices()
	handler := NewCatalogHandler(s.catalog, s.log)

	w := httptest.NewRecorder()
	handler.SetPage(w, jsonRequest(t, http.MethodPut, "/api/v1/catalog/page", `{}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body", decodeError(t, w))
}

func TestCatalogHandler_SetSearchAndCategory(t *testing.T) {
	s := setupServices()
	handler := NewCatalogHandler(s.catalog, s.log)

	w := httptest.NewRecorder()
	handler.SetSearch(w, jsonRequest(t, http.MethodPut, "/api/v1/catalog/search", map[string]string{"term": "phone"}))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.SetCategory(w, jsonRequest(t, http.MethodPut, "/api/v1/catalog/category", map[string]string{"slug": "smartphones"}))

	assert.Equal(t, http.StatusOK, w.Code)
	query := s.catalog.Query()
	assert.Equal(t, "phone", query.Search)
	assert.Equal(t, "smartphones", query.Category)
	assert.Equal(t, domain.QuerySearchInCategory, query.Kind())
}

func TestCatalogHandler_SetSort(t *testing.T) {
	s := setupServices()
	handler := NewCatalogHandler(s.catalog, s.log)

	w := httptest.NewRecorder()
	handler.SetSort(w, jsonRequest(t, http.MethodPut, "/api/v1/catalog/sort", map[string]string{"order": "sideways"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	handler.SetSort(w, jsonRequest(t, http.MethodPut, "/api/v1/catalog/sort", map[string]string{"sortBy": "price", "order": "desc"}))

	assert.Equal(t, http.StatusOK, w.Code)
	state := decodeData[domain.CatalogState](t, w)
	assert.Equal(t, "price", state.SortBy)
	assert.Equal(t, "desc", state.Order)
}

func TestCatalogHandler_Refresh_Success(t *testing.T) {
	s := setupServices()
	handler := NewCatalogHandler(s.catalog, s.log)

	s.repo.On("ListProducts", mock.Anything, domain.PageRequest{Limit: 10, Order: "asc"}).
		Return(&domain.ProductPage{Products: []domain.Product{{ID: 1, Title: "Mascara"}}, Total: 30}, nil)
	s.repo.On("Categories", mock.Anything).
		Return([]domain.Category{{Slug: "beauty", Name: "Beauty"}}, nil).Once()

	w := httptest.NewRecorder()
	handler.Refresh(w, httptest.NewRequest(http.MethodPost, "/api/v1/catalog/refresh", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	state := decodeData[domain.CatalogState](t, w)
	assert.Len(t, state.Items, 1)
	assert.Equal(t, 30, state.Total)
	assert.True(t, state.HasNextPage)
	assert.Len(t, state.Categories, 1)
	s.repo.AssertExpectations(t)
}

func TestCatalogHandler_Refresh_Unavailable(t *testing.T) {
	s := setupServices()
	handler := NewCatalogHandler(s.catalog, s.log)

	s.repo.On("ListProducts", mock.Anything, mock.Anything).Return(nil, errors.New("dial tcp: connection refused"))

	w := httptest.NewRecorder()
	handler.Refresh(w, httptest.NewRequest(http.MethodPost, "/api/v1/catalog/refresh?fresh=true", nil))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Catalog unavailable", decodeError(t, w))
}

func TestCatalogHandler_Categories_LoadsOnce(t *testing.T) {
	s := setupServices()
	handler := NewCatalogHandler(s.catalog, s.log)

	s.repo.On("Categories", mock.Anything).
		Return([]domain.Category{{Slug: "laptops", Name: "Laptops"}}, nil).Once()

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		handler.Categories(w, httptest.NewRequest(http.MethodGet, "/api/v1/catalog/categories", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		categories := decodeData[[]domain.Category](t, w)
		assert.Equal(t, "laptops", categories[0].Slug)
	}
	s.repo.AssertNumberOfCalls(t, "Categories", 1)
}

func TestCatalogHandler_GetProduct(t *testing.T) {
	s := setupServices()
	handler := NewCatalogHandler(s.catalog, s.log)

	s.repo.On("GetProduct", mock.Anything, 7).Return(&domain.Product{ID: 7, Title: "Lamp"}, nil)
	s.repo.On("GetProduct", mock.Anything, 999).Return(nil, domain.ErrNotFound)

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{name: "found", id: "7", status: http.StatusOK},
		{name: "not found", id: "999", status: http.StatusNotFound},
		{name: "not a number", id: "abc", status: http.StatusBadRequest},
		{name: "not positive", id: "0", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/products/"+tt.id, nil), "id", tt.id)
			w := httptest.NewRecorder()

			handler.GetProduct(w, req)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}
