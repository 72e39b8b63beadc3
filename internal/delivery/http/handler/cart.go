package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Pesokrava/storefront/internal/delivery/http/request"
	"github.com/Pesokrava/storefront/internal/delivery/http/response"
	"github.com/Pesokrava/storefront/internal/pkg/logger"
	"github.com/Pesokrava/storefront/internal/usecase/cart"
	"github.com/Pesokrava/storefront/internal/usecase/catalog"
)

// CartHandler handles HTTP requests for the cart slice
type CartHandler struct {
	cart    *cart.Service
	catalog *catalog.Service
	logger  *logger.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service, catalogService *catalog.Service, log *logger.Logger) *CartHandler {
	return &CartHandler{
		cart:    cartService,
		catalog: catalogService,
		logger:  log,
	}
}

// AddItemRequest represents the request body for adding a product
type AddItemRequest struct {
	ProductID int `json:"productId" validate:"required,gt=0"`
}

// UpdateQuantityRequest represents the request body for changing a quantity.
// Quantity may be a JSON number or a string as typed into a form field.
type UpdateQuantityRequest struct {
	Quantity json.RawMessage `json:"quantity" validate:"required" swaggertype:"string"`
}

// Get handles GET /api/v1/cart
// @Summary Get the cart
// @Description Entries in insertion order with item count and total price
// @Tags Cart
// @Produce json
// @Success 200 {object} map[string]interface{} "Cart summary"
// @Router /cart [get]
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.cart.Summary())
}

// AddItem handles POST /api/v1/cart/items
// @Summary Add a product to the cart
// @Description Adds with quantity 1. A product already in the cart is left as it is.
// @Tags Cart
// @Accept json
// @Produce json
// @Param body body AddItemRequest true "Product to add"
// @Success 201 {object} map[string]interface{} "Entry created"
// @Success 200 {object} map[string]interface{} "Product was already in the cart"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 502 {object} map[string]string "Catalog unavailable"
// @Router /cart/items [post]
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := request.DecodeAndValidate(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.catalog.Lookup(r.Context(), req.ProductID)
	if err != nil {
		handleError(w, h.logger, err, "Product not found")
		return
	}

	entry, added := h.cart.Add(r.Context(), *product)
	if added {
		response.Created(w, entry)
		return
	}

	response.Success(w, entry)
}

// UpdateQuantity handles PATCH /api/v1/cart/items/:id
// @Summary Change the quantity of a cart entry
// @Description Unparsable, zero or negative quantities become 1
// @Tags Cart
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param body body UpdateQuantityRequest true "New quantity"
// @Success 200 {object} map[string]interface{} "Updated entry"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Product not in cart"
// @Router /cart/items/{id} [patch]
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetIntParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req UpdateQuantityRequest
	if err := request.DecodeAndValidate(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.cart.UpdateQuantity(r.Context(), id, quantityFromJSON(req.Quantity))
	if err != nil {
		handleError(w, h.logger, err, "Product not in cart")
		return
	}

	response.Success(w, entry)
}

// RemoveItem handles DELETE /api/v1/cart/items/:id
// @Summary Remove a product from the cart
// @Description Removing a product that is not in the cart is a no-op
// @Tags Cart
// @Param id path int true "Product ID"
// @Success 204 "Removed"
// @Failure 400 {object} map[string]string "Invalid product ID"
// @Router /cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetIntParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	h.cart.Remove(r.Context(), id)
	response.NoContent(w)
}

// quantityFromJSON accepts "3", 3 or 3.7 and leaves the coercion to cart.ParseQuantity
func quantityFromJSON(raw json.RawMessage) int {
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		text = string(raw)
	}
	return cart.ParseQuantity(text)
}
