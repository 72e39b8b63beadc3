package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCatalogQuery_Kind(t *testing.T) {
	tests := []struct {
		name  string
		query CatalogQuery
		want  QueryKind
	}{
		{name: "all", query: CatalogQuery{}, want: QueryAll},
		{name: "search", query: CatalogQuery{Search: "phone"}, want: QuerySearch},
		{name: "category", query: CatalogQuery{Category: "beauty"}, want: QueryCategory},
		{name: "search_in_category", query: CatalogQuery{Search: "phone", Category: "smartphones"}, want: QuerySearchInCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.query.Kind())
			assert.Equal(t, tt.name, tt.want.String())
		})
	}
}

func TestCatalogQuery_Skip(t *testing.T) {
	assert.Equal(t, 0, CatalogQuery{Page: 1, Limit: 10}.Skip())
	assert.Equal(t, 20, CatalogQuery{Page: 3, Limit: 10}.Skip())
	assert.Equal(t, 0, CatalogQuery{Page: 0, Limit: 10}.Skip())
	assert.Equal(t, 0, CatalogQuery{Page: -4, Limit: 10}.Skip())
}

func TestCatalogQuery_Requests(t *testing.T) {
	q := CatalogQuery{Page: 2, Limit: 10, SortBy: "price", Order: OrderDesc}

	assert.Equal(t, PageRequest{Limit: 10, Skip: 10, SortBy: "price", Order: OrderDesc}, q.PageRequest())
	assert.Equal(t, PageRequest{SortBy: "price", Order: OrderDesc, Unpaged: true}, q.UnpagedRequest())
	assert.True(t, q.PageRequest().Sorted())
	assert.False(t, CatalogQuery{Order: OrderAsc}.PageRequest().Sorted())
}

func TestValidOrder(t *testing.T) {
	assert.True(t, ValidOrder("asc"))
	assert.True(t, ValidOrder("DESC"))
	assert.False(t, ValidOrder(""))
	assert.False(t, ValidOrder("random"))
}

func TestCatalogState_Query(t *testing.T) {
	state := CatalogState{CurrentPage: 2, PageLimit: 5, Search: "lamp", SelectedCategory: "lighting", SortBy: "title", Order: OrderAsc}

	assert.Equal(t, CatalogQuery{Page: 2, Limit: 5, Search: "lamp", Category: "lighting", SortBy: "title", Order: OrderAsc}, state.Query())
}

func TestFetchError(t *testing.T) {
	down := &FetchError{Op: "fetch all products", Kind: QueryAll, Err: errors.New("connection refused")}
	missing := &FetchError{Op: "fetch product", Err: ErrNotFound}

	assert.ErrorIs(t, down, ErrUnavailable)
	assert.EqualError(t, down, "fetch all products: connection refused")
	assert.NotErrorIs(t, missing, ErrUnavailable)
	assert.ErrorIs(t, missing, ErrNotFound)

	var fetchErr *FetchError
	assert.ErrorAs(t, fmt.Errorf("refresh: %w", down), &fetchErr)
	assert.Equal(t, QueryAll, fetchErr.Kind)
}

func TestCartEntry_Subtotal(t *testing.T) {
	entry := CartEntry{Product: Product{ID: 1, Price: 19.99}, Quantity: 3}

	assert.True(t, decimal.RequireFromString("59.97").Equal(entry.Subtotal()))
}
