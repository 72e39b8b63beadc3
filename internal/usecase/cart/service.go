package cart

import (
	"context"
	"encoding/json"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Pesokrava/storefront/internal/domain"
	"github.com/Pesokrava/storefront/internal/pkg/logger"
)

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// Service holds the cart: at most one entry per product, kept in insertion order
type Service struct {
	publisher EventPublisher
	logger    *logger.Logger

	mu      sync.RWMutex
	entries []domain.CartEntry
}

// NewService creates a new empty cart
func NewService(publisher EventPublisher, log *logger.Logger) *Service {
	return &Service{
		publisher: publisher,
		logger:    log,
		entries:   []domain.CartEntry{},
	}
}

// Add puts product in the cart with quantity 1. If it is already there the existing
// entry is returned untouched and added is false.
func (s *Service) Add(ctx context.Context, product domain.Product) (entry domain.CartEntry, added bool) {
	s.mu.Lock()
	if i := s.indexOf(product.ID); i >= 0 {
		entry = s.entries[i]
		s.mu.Unlock()
		return entry, false
	}
	entry = domain.CartEntry{Product: product, Quantity: 1}
	s.entries = append(s.entries, entry)
	s.mu.Unlock()

	s.logger.WithFields(map[string]any{
		"product_id": product.ID,
		"title":      product.Title,
	}).Info("Product added to cart")

	s.publishEvent(ctx, domain.EventCartItemAdded, product.ID)

	return entry, true
}

// UpdateQuantity sets the quantity of an entry. Quantities below 1 become 1.
func (s *Service) UpdateQuantity(ctx context.Context, id, quantity int) (domain.CartEntry, error) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		s.logger.Debugf("Cart entry not found: %d", id)
		return domain.CartEntry{}, domain.ErrNotFound
	}
	s.entries[i].Quantity = quantity
	entry := s.entries[i]
	s.mu.Unlock()

	s.logger.WithFields(map[string]any{
		"product_id": id,
		"quantity":   quantity,
	}).Debug("Cart quantity updated")

	s.publishEvent(ctx, domain.EventCartItemUpdated, id)

	return entry, nil
}

// Remove deletes the entry for id and reports whether there was one
func (s *Service) Remove(ctx context.Context, id int) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.entries = slices.Delete(s.entries, i, i+1)
	s.mu.Unlock()

	s.logger.Infof("Product removed from cart: %d", id)
	s.publishEvent(ctx, domain.EventCartItemRemoved, id)

	return true
}

// Items returns a copy of the entries in insertion order
func (s *Service) Items() []domain.CartEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries)
}

// Summary returns the entries with their item count and total price
func (s *Service) Summary() domain.CartSummary {
	items := s.Items()

	count := 0
	total := decimal.Zero
	for _, entry := range items {
		count += entry.Quantity
		total = total.Add(entry.Subtotal())
	}

	return domain.CartSummary{
		Items:        items,
		ItemCount:    count,
		TotalPrice:   total,
		TotalDisplay: total.StringFixed(2),
	}
}

// ParseQuantity reads a quantity typed by a user. The leading integer of raw is used
// and anything that yields no digits, or zero, becomes 1.
func ParseQuantity(raw string) int {
	s := strings.TrimSpace(raw)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 1
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil || n == 0 {
		return 1
	}
	return n
}

// indexOf must be called with mu held
func (s *Service) indexOf(id int) int {
	return slices.IndexFunc(s.entries, func(e domain.CartEntry) bool {
		return e.ID == id
	})
}

// publishEvent publishes a cart event (non-blocking)
func (s *Service) publishEvent(ctx context.Context, eventType string, productID int) {
	event := domain.NewChangeEvent(eventType)
	event.ProductID = productID

	data, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorf(err, "Failed to marshal %s event", eventType)
		return
	}

	pubCtx := context.WithoutCancel(ctx)
	go func() {
		if err := s.publisher.Publish(pubCtx, domain.SubjectCart, data); err != nil {
			s.logger.Errorf(err, "Failed to publish %s event", eventType)
		}
	}()
}
