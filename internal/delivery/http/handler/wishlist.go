package handler

import (
	"net/http"

	"github.com/Pesokrava/storefront/internal/delivery/http/request"
	"github.com/Pesokrava/storefront/internal/delivery/http/response"
	"github.com/Pesokrava/storefront/internal/domain"
	"github.com/Pesokrava/storefront/internal/pkg/logger"
	"github.com/Pesokrava/storefront/internal/usecase/catalog"
	"github.com/Pesokrava/storefront/internal/usecase/wishlist"
)

// WishlistHandler handles HTTP requests for the wishlist slice
type WishlistHandler struct {
	wishlist *wishlist.Service
	catalog  *catalog.Service
	logger   *logger.Logger
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(wishlistService *wishlist.Service, catalogService *catalog.Service, log *logger.Logger) *WishlistHandler {
	return &WishlistHandler{
		wishlist: wishlistService,
		catalog:  catalogService,
		logger:   log,
	}
}

// ToggleRequest represents the request body for toggling a product
type ToggleRequest struct {
	ProductID int `json:"productId" validate:"required,gt=0"`
}

// ToggleResult reports the membership after a toggle
type ToggleResult struct {
	ProductID int              `json:"productId"`
	Listed    bool             `json:"listed"`
	Items     []domain.Product `json:"items"`
}

// Get handles GET /api/v1/wishlist
// @Summary Get the wishlist
// @Tags Wishlist
// @Produce json
// @Success 200 {object} map[string]interface{} "Wishlist products"
// @Router /wishlist [get]
func (h *WishlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.wishlist.Items())
}

// Toggle handles POST /api/v1/wishlist/toggle
// @Summary Add or remove a product
// @Description Removes the product if it is listed, adds it otherwise
// @Tags Wishlist
// @Accept json
// @Produce json
// @Param body body ToggleRequest true "Product to toggle"
// @Success 200 {object} ToggleResult "Membership after the toggle"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 502 {object} map[string]string "Catalog unavailable"
// @Router /wishlist/toggle [post]
func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if err := request.DecodeAndValidate(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Removal needs no product details, so a listed product never hits the catalog
	listed := false
	if !h.wishlist.Remove(r.Context(), req.ProductID) {
		product, err := h.catalog.Lookup(r.Context(), req.ProductID)
		if err != nil {
			handleError(w, h.logger, err, "Product not found")
			return
		}
		h.wishlist.Add(r.Context(), *product)
		listed = true
	}

	response.Success(w, ToggleResult{
		ProductID: req.ProductID,
		Listed:    listed,
		Items:     h.wishlist.Items(),
	})
}
