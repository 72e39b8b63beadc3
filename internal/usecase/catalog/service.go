package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/Pesokrava/storefront/internal/domain"
	"github.com/Pesokrava/storefront/internal/pkg/logger"
)

// DefaultPageLimit is used when no positive page limit is configured
const DefaultPageLimit = 10

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// Invalidator is implemented by repositories that cache remote responses
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Service owns the catalog slice: the current query, the fetched page and the category list.
//
// Every query change bumps a generation counter. A fetch applies its result only when
// the generation it started with is still current, so a slow response for an old
// query can never overwrite a newer one.
type Service struct {
	repo      domain.CatalogRepository
	publisher EventPublisher
	logger    *logger.Logger

	mu         sync.RWMutex
	query      domain.CatalogQuery
	items      []domain.Product
	total      int
	categories []domain.Category
	generation uint64
	inflight   int
}

// NewService creates a new catalog service starting at page 1 in ascending order
func NewService(repo domain.CatalogRepository, publisher EventPublisher, pageLimit int, log *logger.Logger) *Service {
	if pageLimit <= 0 {
		pageLimit = DefaultPageLimit
	}

	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    log,
		query: domain.CatalogQuery{
			Page:  1,
			Limit: pageLimit,
			Order: domain.OrderAsc,
		},
		items:      []domain.Product{},
		categories: []domain.Category{},
	}
}

// Snapshot returns a copy of the catalog state
func (s *Service) Snapshot() domain.CatalogState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.CatalogState{
		Items:            slices.Clone(s.items),
		IsLoading:        s.inflight > 0,
		CurrentPage:      s.query.Page,
		Total:            s.total,
		Search:           s.query.Search,
		PageLimit:        s.query.Limit,
		Categories:       slices.Clone(s.categories),
		SelectedCategory: s.query.Category,
		SortBy:           s.query.SortBy,
		Order:            s.query.Order,
		Generation:       s.generation,
		HasPrevPage:      s.query.Page > 1,
		HasNextPage:      s.query.Page*s.query.Limit < s.total,
	}
}

// Query returns the current query
func (s *Service) Query() domain.CatalogQuery {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// Generation returns the current query generation
func (s *Service) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// HasCategories reports whether a category list has been loaded
func (s *Service) HasCategories() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.categories) > 0
}

// SetPage moves to page n. Out-of-range pages are allowed and simply yield no items.
func (s *Service) SetPage(ctx context.Context, page int) error {
	return s.updateQuery(ctx, func(q *domain.CatalogQuery) {
		q.Page = page
	})
}

// SetSearch sets the free-text term. The current page is kept.
func (s *Service) SetSearch(ctx context.Context, term string) error {
	return s.updateQuery(ctx, func(q *domain.CatalogQuery) {
		q.Search = term
	})
}

// SetPageLimit changes the page size and returns to page 1
func (s *Service) SetPageLimit(ctx context.Context, limit int) error {
	if limit <= 0 {
		return domain.ErrInvalidInput
	}
	return s.updateQuery(ctx, func(q *domain.CatalogQuery) {
		q.Limit = limit
		q.Page = 1
	})
}

// SetCategory filters by category slug (empty for all) and returns to page 1
func (s *Service) SetCategory(ctx context.Context, slug string) error {
	return s.updateQuery(ctx, func(q *domain.CatalogQuery) {
		q.Category = slug
		q.Page = 1
	})
}

// SetSortBy sets the sort field (empty for the remote default)
func (s *Service) SetSortBy(ctx context.Context, field string) error {
	return s.updateQuery(ctx, func(q *domain.CatalogQuery) {
		q.SortBy = field
	})
}

// SetOrder sets the sort direction, asc or desc
func (s *Service) SetOrder(ctx context.Context, dir string) error {
	if !domain.ValidOrder(dir) {
		return domain.ErrInvalidInput
	}
	return s.updateQuery(ctx, func(q *domain.CatalogQuery) {
		q.Order = strings.ToLower(dir)
	})
}

// updateQuery applies mutate and, if the query actually changed, bumps the generation and announces it
func (s *Service) updateQuery(ctx context.Context, mutate func(q *domain.CatalogQuery)) error {
	s.mu.Lock()
	next := s.query
	mutate(&next)
	if next == s.query {
		s.mu.Unlock()
		return nil
	}
	s.query = next
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	s.logger.WithFields(map[string]any{
		"generation": gen,
		"page":       next.Page,
		"limit":      next.Limit,
		"search":     next.Search,
		"category":   next.Category,
		"sort_by":    next.SortBy,
		"order":      next.Order,
	}).Debug("Catalog query changed")

	event := domain.NewChangeEvent(domain.EventQueryChanged)
	event.Generation = gen
	s.publishEvent(ctx, domain.SubjectCatalogQuery, event)

	return nil
}

// Refresh fetches the page for the current query. The result replaces items and total
// only if no query change happened meanwhile; otherwise it is dropped and ErrStaleResult
// is returned alongside it. On failure the previous items stay in place.
func (s *Service) Refresh(ctx context.Context) (*domain.ProductPage, error) {
	s.mu.Lock()
	query, gen := s.query, s.generation
	s.inflight++
	s.mu.Unlock()

	page, err := s.fetch(ctx, query)

	s.mu.Lock()
	s.inflight--
	if err != nil {
		s.mu.Unlock()
		s.logger.WithFields(map[string]any{
			"generation": gen,
			"kind":       query.Kind().String(),
		}).Error("Failed to refresh products", err)
		return nil, err
	}
	if gen != s.generation {
		current := s.generation
		s.mu.Unlock()
		s.logger.WithFields(map[string]any{
			"generation": gen,
			"current":    current,
		}).Debug("Discarding stale product page")
		return page, domain.ErrStaleResult
	}
	s.items = page.Products
	if s.items == nil {
		s.items = []domain.Product{}
	}
	s.total = page.Total
	s.mu.Unlock()

	s.logger.WithFields(map[string]any{
		"generation": gen,
		"kind":       query.Kind().String(),
		"items":      len(page.Products),
		"total":      page.Total,
	}).Debug("Products refreshed")

	event := domain.NewChangeEvent(domain.EventProductsLoaded)
	event.Generation = gen
	s.publishEvent(ctx, domain.SubjectCatalogProducts, event)

	return page, nil
}

// RefreshCategories reloads the category list. On failure the previous list stays in place.
func (s *Service) RefreshCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		s.logger.Error("Failed to refresh categories", err)
		return nil, &domain.FetchError{Op: "fetch categories", Err: err}
	}
	if categories == nil {
		categories = []domain.Category{}
	}

	s.mu.Lock()
	s.categories = categories
	s.mu.Unlock()

	s.publishEvent(ctx, domain.SubjectCatalogCategories, domain.NewChangeEvent(domain.EventCategoriesLoaded))

	return slices.Clone(categories), nil
}

// Lookup finds a product among the displayed items, falling back to the remote catalog
func (s *Service) Lookup(ctx context.Context, id int) (*domain.Product, error) {
	s.mu.RLock()
	for _, p := range s.items {
		if p.ID == id {
			s.mu.RUnlock()
			return &p, nil
		}
	}
	s.mu.RUnlock()

	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Debugf("Product not found: %d", id)
			return nil, domain.ErrNotFound
		}
		s.logger.Error("Failed to get product", err)
		return nil, &domain.FetchError{Op: "fetch product", Err: err}
	}

	return product, nil
}

// Invalidate drops cached remote responses when the repository caches them
func (s *Service) Invalidate(ctx context.Context) error {
	inv, ok := s.repo.(Invalidator)
	if !ok {
		return nil
	}
	return inv.Invalidate(ctx)
}

// publishEvent publishes a catalog event (non-blocking)
func (s *Service) publishEvent(ctx context.Context, subject string, event domain.ChangeEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorf(err, "Failed to marshal %s event", event.Type)
		return
	}

	// The request context may end before the publish does
	pubCtx := context.WithoutCancel(ctx)
	go func() {
		if err := s.publisher.Publish(pubCtx, subject, data); err != nil {
			s.logger.Errorf(err, "Failed to publish %s event", event.Type)
		}
	}()
}
