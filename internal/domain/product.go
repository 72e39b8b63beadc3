package domain

import "context"

// Dimensions holds the physical size of a product
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

// Product is a value snapshot of a catalog item as served by the remote catalog.
// Records are never mutated locally, only copied into cart and wishlist state.
type Product struct {
	ID                  int        `json:"id" validate:"required,gt=0"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Price               float64    `json:"price" validate:"gte=0"`
	DiscountPercentage  float64    `json:"discountPercentage"`
	Category            string     `json:"category"`
	Brand               string     `json:"brand,omitempty"`
	Rating              float64    `json:"rating" validate:"gte=0,lte=5"`
	Stock               int        `json:"stock"`
	AvailabilityStatus  string     `json:"availabilityStatus"`
	Weight              float64    `json:"weight"`
	Dimensions          Dimensions `json:"dimensions"`
	ShippingInformation string     `json:"shippingInformation"`
	WarrantyInformation string     `json:"warrantyInformation"`
	ReturnPolicy        string     `json:"returnPolicy"`
	SKU                 string     `json:"sku"`
	Thumbnail           string     `json:"thumbnail"`
	Images              []string   `json:"images"`
	Reviews             []Review   `json:"reviews"`
}

// Category is a catalog category, keyed by slug
type Category struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ProductPage is the list envelope returned by the remote catalog
type ProductPage struct {
	Products []Product `json:"products" validate:"dive"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

// PageRequest carries pagination and sorting for a single remote request
type PageRequest struct {
	Limit  int
	Skip   int
	SortBy string
	Order  string

	// Unpaged asks for the whole result set instead of a window
	Unpaged bool
}

// Sorted reports whether sort parameters should be sent
func (p PageRequest) Sorted() bool {
	return p.SortBy != "" && p.Order != ""
}

// CatalogRepository defines read access to the remote product catalog
type CatalogRepository interface {
	// ListProducts retrieves a page of the full catalog
	ListProducts(ctx context.Context, page PageRequest) (*ProductPage, error)

	// SearchProducts retrieves a page of products matching a free-text term
	SearchProducts(ctx context.Context, term string, page PageRequest) (*ProductPage, error)

	// ProductsByCategory retrieves a page of products in a category
	ProductsByCategory(ctx context.Context, slug string, page PageRequest) (*ProductPage, error)

	// Categories retrieves every category
	Categories(ctx context.Context) ([]Category, error)

	// GetProduct retrieves a single product by ID
	GetProduct(ctx context.Context, id int) (*Product, error)
}
