package domain

import (
	"time"

	"github.com/google/uuid"
)

// Subjects on which slice changes are announced
const (
	SubjectCatalogQuery      = "storefront.catalog.query"
	SubjectCatalogProducts   = "storefront.catalog.products"
	SubjectCatalogCategories = "storefront.catalog.categories"
	SubjectCart              = "storefront.cart"
	SubjectWishlist          = "storefront.wishlist"
)

// Event types
const (
	EventQueryChanged     = "catalog.query_changed"
	EventProductsLoaded   = "catalog.products_loaded"
	EventCategoriesLoaded = "catalog.categories_loaded"
	EventCartItemAdded    = "cart.item_added"
	EventCartItemUpdated  = "cart.item_updated"
	EventCartItemRemoved  = "cart.item_removed"
	EventWishlistAdded    = "wishlist.item_added"
	EventWishlistRemoved  = "wishlist.item_removed"
)

// ChangeEvent announces a mutation of one of the state slices
type ChangeEvent struct {
	ID         uuid.UUID `json:"id"`
	Type       string    `json:"type"`
	Generation uint64    `json:"generation,omitempty"`
	ProductID  int       `json:"product_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewChangeEvent stamps a new event of the given type
func NewChangeEvent(eventType string) ChangeEvent {
	return ChangeEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Timestamp: time.Now(),
	}
}
