package domain

import "strings"

// Sort orders accepted by the remote catalog
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// QueryKind selects the request strategy for a catalog query
type QueryKind int

const (
	// QueryAll lists the whole catalog
	QueryAll QueryKind = iota
	// QuerySearch filters by a free-text term only
	QuerySearch
	// QueryCategory filters by category only
	QueryCategory
	// QuerySearchInCategory filters by term and category; no single remote endpoint serves it
	QuerySearchInCategory
)

func (k QueryKind) String() string {
	switch k {
	case QuerySearch:
		return "search"
	case QueryCategory:
		return "category"
	case QuerySearchInCategory:
		return "search_in_category"
	default:
		return "all"
	}
}

// CatalogQuery is the set of parameters that drives a catalog fetch
type CatalogQuery struct {
	Page     int    `json:"currentPage"`
	Limit    int    `json:"pageLimit"`
	Search   string `json:"search"`
	Category string `json:"selectedCategory"`
	SortBy   string `json:"sortBy"`
	Order    string `json:"order"`
}

// Kind resolves which request strategy serves the query
func (q CatalogQuery) Kind() QueryKind {
	switch {
	case q.Search != "" && q.Category != "":
		return QuerySearchInCategory
	case q.Search != "":
		return QuerySearch
	case q.Category != "":
		return QueryCategory
	default:
		return QueryAll
	}
}

// Skip is the zero-based offset of the current page. Pages below 1 read from the start.
func (q CatalogQuery) Skip() int {
	skip := (q.Page - 1) * q.Limit
	if skip < 0 {
		return 0
	}
	return skip
}

// PageRequest converts the query into a windowed remote request
func (q CatalogQuery) PageRequest() PageRequest {
	return PageRequest{
		Limit:  q.Limit,
		Skip:   q.Skip(),
		SortBy: q.SortBy,
		Order:  q.Order,
	}
}

// UnpagedRequest converts the query into a whole-result-set remote request that keeps sorting
func (q CatalogQuery) UnpagedRequest() PageRequest {
	return PageRequest{
		SortBy:  q.SortBy,
		Order:   q.Order,
		Unpaged: true,
	}
}

// ValidOrder reports whether dir is a supported sort order
func ValidOrder(dir string) bool {
	switch strings.ToLower(dir) {
	case OrderAsc, OrderDesc:
		return true
	}
	return false
}

// CatalogState is a read-only snapshot of the catalog slice
type CatalogState struct {
	Items            []Product  `json:"items"`
	IsLoading        bool       `json:"isLoading"`
	CurrentPage      int        `json:"currentPage"`
	Total            int        `json:"total"`
	Search           string     `json:"search"`
	PageLimit        int        `json:"pageLimit"`
	Categories       []Category `json:"categories"`
	SelectedCategory string     `json:"selectedCategory"`
	SortBy           string     `json:"sortBy"`
	Order            string     `json:"order"`
	Generation       uint64     `json:"generation"`
	HasPrevPage      bool       `json:"hasPrevPage"`
	HasNextPage      bool       `json:"hasNextPage"`
}

// Query extracts the fetch parameters from the snapshot
func (s CatalogState) Query() CatalogQuery {
	return CatalogQuery{
		Page:     s.CurrentPage,
		Limit:    s.PageLimit,
		Search:   s.Search,
		Category: s.SelectedCategory,
		SortBy:   s.SortBy,
		Order:    s.Order,
	}
}
