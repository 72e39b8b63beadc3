package catalog

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Pesokrava/storefront/internal/domain"
)

// fetch dispatches the query to the request strategy its kind calls for
func (s *Service) fetch(ctx context.Context, q domain.CatalogQuery) (*domain.ProductPage, error) {
	kind := q.Kind()

	var (
		page *domain.ProductPage
		err  error
	)
	switch kind {
	case domain.QuerySearch:
		page, err = s.repo.SearchProducts(ctx, q.Search, q.PageRequest())
	case domain.QueryCategory:
		page, err = s.repo.ProductsByCategory(ctx, q.Category, q.PageRequest())
	case domain.QuerySearchInCategory:
		page, err = s.fetchSearchInCategory(ctx, q)
	default:
		page, err = s.repo.ListProducts(ctx, q.PageRequest())
	}
	if err != nil {
		return nil, &domain.FetchError{
			Op:   fmt.Sprintf("fetch %s products", kind),
			Kind: kind,
			Err:  err,
		}
	}

	return page, nil
}

// fetchSearchInCategory loads the whole category and the whole search result concurrently,
// keeps the category products whose ids the search also returned and pages the result locally.
func (s *Service) fetchSearchInCategory(ctx context.Context, q domain.CatalogQuery) (*domain.ProductPage, error) {
	var byCategory, bySearch *domain.ProductPage

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		page, err := s.repo.ProductsByCategory(gctx, q.Category, q.UnpagedRequest())
		if err != nil {
			return fmt.Errorf("category %q: %w", q.Category, err)
		}
		byCategory = page
		return nil
	})
	g.Go(func() error {
		page, err := s.repo.SearchProducts(gctx, q.Search, q.UnpagedRequest())
		if err != nil {
			return fmt.Errorf("search %q: %w", q.Search, err)
		}
		bySearch = page
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	matched := Intersect(byCategory.Products, bySearch.Products)

	return &domain.ProductPage{
		Products: Paginate(matched, q.Skip(), q.Limit),
		Total:    len(matched),
		Skip:     q.Skip(),
		Limit:    q.Limit,
	}, nil
}

// Intersect returns the products of primary whose id also occurs in filter, in primary's order
func Intersect(primary, filter []domain.Product) []domain.Product {
	ids := make(map[int]struct{}, len(filter))
	for _, p := range filter {
		ids[p.ID] = struct{}{}
	}

	matched := make([]domain.Product, 0, min(len(primary), len(filter)))
	for _, p := range primary {
		if _, ok := ids[p.ID]; ok {
			matched = append(matched, p)
		}
	}
	return matched
}

// Paginate returns the window [skip, skip+limit) of items, clamped to its bounds
func Paginate(items []domain.Product, skip, limit int) []domain.Product {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || skip >= len(items) {
		return []domain.Product{}
	}

	end := min(skip+limit, len(items))
	window := make([]domain.Product, end-skip)
	copy(window, items[skip:end])
	return window
}
