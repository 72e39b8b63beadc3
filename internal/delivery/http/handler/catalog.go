package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/Pesokrava/storefront/internal/delivery/http/request"
	"github.com/Pesokrava/storefront/internal/delivery/http/response"
	"github.com/Pesokrava/storefront/internal/domain"
	"github.com/Pesokrava/storefront/internal/pkg/logger"
	"github.com/Pesokrava/storefront/internal/usecase/catalog"
)

// CatalogHandler handles HTTP requests for the catalog slice
type CatalogHandler struct {
	service *catalog.Service
	logger  *logger.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(service *catalog.Service, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  log,
	}
}

// SetPageRequest represents the request body for changing the page
type SetPageRequest struct {
	Page *int `json:"page" validate:"required"`
}

// SetSearchRequest represents the request body for changing the search term
type SetSearchRequest struct {
	Term string `json:"term" validate:"max=200"`
}

// SetLimitRequest represents the request body for changing the page size
type SetLimitRequest struct {
	Limit int `json:"limit" validate:"gt=0"`
}

// SetCategoryRequest represents the request body for changing the category filter
type SetCategoryRequest struct {
	Slug string `json:"slug" validate:"max=100"`
}

// SetSortRequest represents the request body for changing the sort; absent fields are kept
type SetSortRequest struct {
	SortBy *string `json:"sortBy,omitempty" validate:"omitempty,max=50"`
	Order  *string `json:"order,omitempty" validate:"omitempty,sortorder"`
}

// Get handles GET /api/v1/catalog
// @Summary Get the catalog state
// @Description Current items, query parameters, loading flag and navigation boundaries
// @Tags Catalog
// @Produce json
// @Success 200 {object} map[string]interface{} "Catalog state"
// @Router /catalog [get]
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.service.Snapshot())
}

// SetPage handles PUT /api/v1/catalog/page
// @Summary Change the current page
// @Tags Catalog
// @Accept json
// @Produce json
// @Param body body SetPageRequest true "Page number (1-based)"
// @Success 200 {object} map[string]interface{} "Catalog state"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Router /catalog/page [put]
func (h *CatalogHandler) SetPage(w http.ResponseWriter, r *http.Request) {
	var req SetPageRequest
	if err := request.DecodeAndValidate(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.update(w, r, func(ctx context.Context) error {
		return h.service.SetPage(ctx, *req.Page)
	})
}

// SetSearch handles PUT /api/v1/catalog/search
// @Summary Change the search term
// @Description An empty term clears the search. The page is kept.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param body body SetSearchRequest true "Search term"
// @Success 200 {object} map[string]interface{} "Catalog state"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Router /catalog/search [put]
func (h *CatalogHandler) SetSearch(w http.ResponseWriter, r *http.Request) {
	var req SetSearchRequest
	if err := request.DecodeAndValidate(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.update(w, r, func(ctx context.Context) error {
		return h.service.SetSearch(ctx, req.Term)
	})
}

// SetLimit handles PUT /api/v1/catalog/limit
// @Summary Change the page size
// @Description Returns to page 1
// @Tags Catalog
// @Accept json
// @Produce json
// @Param body body SetLimitRequest true "Page size"
// @Success 200 {object} map[string]interface{} "Catalog state"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Router /catalog/limit [put]
func (h *CatalogHandler) SetLimit(w http.ResponseWriter, r *http.Request) {
	var req SetLimitRequest
	if err := request.DecodeAndValidate(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.update(w, r, func(ctx context.Context) error {
		return h.service.SetPageLimit(ctx, req.Limit)
	})
}

// SetCategory handles PUT /api/v1/catalog/category
// @Summary Change the category filter
// @Description An empty slug shows all categories. Returns to page 1.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param body body SetCategoryRequest true "Category slug"
// @Success 200 {object} map[string]interface{} "Catalog state"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Router /catalog/category [put]
func (h *CatalogHandler) SetCategory(w http.ResponseWriter, r *http.Request) {
	var req SetCategoryRequest
	if err := request.DecodeAndValidate(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.update(w, r, func(ctx context.Context) error {
		return h.service.SetCategory(ctx, req.Slug)
	})
}

// SetSort handles PUT /api/v1/catalog/sort
// @Summary Change the sort field and order
// @Tags Catalog
// @Accept json
// @Produce json
// @Param body body SetSortRequest true "Sort field and order (asc or desc)"
// @Success 200 {object} map[string]interface{} "Catalog state"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Router /catalog/sort [put]
func (h *CatalogHandler) SetSort(w http.ResponseWriter, r *http.Request) {
	var req SetSortRequest
	if err := request.DecodeAndValidate(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.update(w, r, func(ctx context.Context) error {
		if req.SortBy != nil {
			if err := h.service.SetSortBy(ctx, *req.SortBy); err != nil {
				return err
			}
		}
		if req.Order != nil {
			return h.service.SetOrder(ctx, *req.Order)
		}
		return nil
	})
}

// Refresh handles POST /api/v1/catalog/refresh
// @Summary Refresh the catalog now
// @Description Fetches the current page synchronously. fresh=true drops cached remote responses first.
// @Tags Catalog
// @Produce json
// @Param fresh query bool false "Bypass the response cache" default(false)
// @Success 200 {object} map[string]interface{} "Catalog state"
// @Failure 502 {object} map[string]string "Catalog unavailable"
// @Router /catalog/refresh [post]
func (h *CatalogHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if request.GetBoolQuery(r, "fresh", false) {
		if err := h.service.Invalidate(ctx); err != nil {
			h.logger.Error("Failed to invalidate catalog cache", err)
		}
	}

	// A stale result means a newer query is already being fetched
	if _, err := h.service.Refresh(ctx); err != nil && !errors.Is(err, domain.ErrStaleResult) {
		handleError(w, h.logger, err, "Products not found")
		return
	}

	if !h.service.HasCategories() {
		if _, err := h.service.RefreshCategories(ctx); err != nil {
			h.logger.Error("Failed to load categories", err)
		}
	}

	response.Success(w, h.service.Snapshot())
}

// Categories handles GET /api/v1/catalog/categories
// @Summary List categories
// @Description Loads the category list on first use
// @Tags Catalog
// @Produce json
// @Success 200 {object} map[string]interface{} "Categories"
// @Failure 502 {object} map[string]string "Catalog unavailable"
// @Router /catalog/categories [get]
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	if h.service.HasCategories() {
		response.Success(w, h.service.Snapshot().Categories)
		return
	}

	categories, err := h.service.RefreshCategories(r.Context())
	if err != nil {
		handleError(w, h.logger, err, "Categories not found")
		return
	}

	response.Success(w, categories)
}

// GetProduct handles GET /api/v1/products/:id
// @Summary Get a product by ID
// @Description Served from the displayed page when present, otherwise from the remote catalog
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} map[string]interface{} "Product details"
// @Failure 400 {object} map[string]string "Invalid product ID"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 502 {object} map[string]string "Catalog unavailable"
// @Router /products/{id} [get]
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetIntParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := h.service.Lookup(r.Context(), id)
	if err != nil {
		handleError(w, h.logger, err, "Product not found")
		return
	}

	response.Success(w, product)
}

// update applies a query change and answers with the resulting state
func (h *CatalogHandler) update(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context) error) {
	if err := apply(r.Context()); err != nil {
		handleError(w, h.logger, err, "Not found")
		return
	}

	response.Success(w, h.service.Snapshot())
}
