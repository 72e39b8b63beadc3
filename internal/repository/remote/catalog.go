package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Pesokrava/storefront/internal/domain"
	"github.com/Pesokrava/storefront/internal/pkg/validator"
)

const maxResponseBodySize = 8 << 20 // 8MB

// CatalogClient implements domain.CatalogRepository against a dummyjson-style HTTP API
type CatalogClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCatalogClient creates a new remote catalog client. A zero timeout disables the client deadline.
func NewCatalogClient(baseURL string, timeout time.Duration) *CatalogClient {
	return &CatalogClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewCatalogClientWithHTTP creates a client on top of an existing http.Client
func NewCatalogClientWithHTTP(baseURL string, httpClient *http.Client) *CatalogClient {
	return &CatalogClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// ListProducts retrieves a page of the full catalog
func (c *CatalogClient) ListProducts(ctx context.Context, page domain.PageRequest) (*domain.ProductPage, error) {
	return c.getPage(ctx, "/products", pageValues(page))
}

// SearchProducts retrieves a page of products matching term
func (c *CatalogClient) SearchProducts(ctx context.Context, term string, page domain.PageRequest) (*domain.ProductPage, error) {
	values := pageValues(page)
	values.Set("q", term)
	return c.getPage(ctx, "/products/search", values)
}

// ProductsByCategory retrieves a page of products in the category identified by slug
func (c *CatalogClient) ProductsByCategory(ctx context.Context, slug string, page domain.PageRequest) (*domain.ProductPage, error) {
	return c.getPage(ctx, "/products/category/"+url.PathEscape(slug), pageValues(page))
}

// Categories retrieves every category
func (c *CatalogClient) Categories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.get(ctx, "/products/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetProduct retrieves a single product by ID
func (c *CatalogClient) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	var product domain.Product
	path := "/products/" + strconv.Itoa(id)
	if err := c.get(ctx, path, nil, &product); err != nil {
		return nil, err
	}
	if err := validateRecord(path, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *CatalogClient) getPage(ctx context.Context, path string, values url.Values) (*domain.ProductPage, error) {
	var page domain.ProductPage
	if err := c.get(ctx, path, values, &page); err != nil {
		return nil, err
	}
	if err := validateRecord(path, &page); err != nil {
		return nil, err
	}
	if page.Products == nil {
		page.Products = []domain.Product{}
	}
	return &page, nil
}

func (c *CatalogClient) get(ctx context.Context, path string, values url.Values, dest any) error {
	endpoint := c.baseURL + path
	if len(values) > 0 {
		endpoint += "?" + values.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s failed: %w", path, errors.Join(domain.ErrUnavailable, err))
	}
	defer resp.Body.Close()

	body := io.LimitReader(resp.Body, maxResponseBodySize)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", path, domain.ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		snippet, _ := io.ReadAll(io.LimitReader(body, 512))
		return fmt.Errorf("%s returned status %d: %s: %w", path, resp.StatusCode, snippet, domain.ErrUnavailable)
	}

	if err := json.NewDecoder(body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, errors.Join(domain.ErrUnavailable, err))
	}

	return nil
}

// validateRecord rejects decoded records that break the product invariants
func validateRecord(path string, record any) error {
	if err := validator.Struct(record); err != nil {
		return fmt.Errorf("invalid %s response: %w", path, errors.Join(domain.ErrUnavailable, err))
	}
	return nil
}

// pageValues encodes pagination and sort parameters. Sorting is sent only when both field and order are set.
func pageValues(page domain.PageRequest) url.Values {
	values := url.Values{}
	if page.Unpaged {
		values.Set("limit", "0")
	} else {
		values.Set("limit", strconv.Itoa(page.Limit))
		values.Set("skip", strconv.Itoa(page.Skip))
	}
	if page.Sorted() {
		values.Set("sortBy", page.SortBy)
		values.Set("order", page.Order)
	}
	return values
}
