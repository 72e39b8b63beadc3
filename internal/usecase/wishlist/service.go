package wishlist

import (
	"context"
	"encoding/json"
	"slices"
	"sync"

	"github.com/Pesokrava/storefront/internal/domain"
	"github.com/Pesokrava/storefront/internal/pkg/logger"
)

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// Service holds the wishlist, a set of product snapshots in insertion order
type Service struct {
	publisher EventPublisher
	logger    *logger.Logger

	mu    sync.RWMutex
	items []domain.Product
}

// NewService creates a new empty wishlist
func NewService(publisher EventPublisher, log *logger.Logger) *Service {
	return &Service{
		publisher: publisher,
		logger:    log,
		items:     []domain.Product{},
	}
}

// Toggle removes product if it is listed and appends it otherwise.
// It returns whether the product is listed afterwards.
func (s *Service) Toggle(ctx context.Context, product domain.Product) bool {
	s.mu.Lock()
	i := s.indexOf(product.ID)
	listed := i < 0
	if listed {
		s.items = append(s.items, product)
	} else {
		s.items = slices.Delete(s.items, i, i+1)
	}
	s.mu.Unlock()

	s.changed(ctx, product.ID, listed)
	return listed
}

// Add appends product unless it is already listed. It reports whether it was added.
func (s *Service) Add(ctx context.Context, product domain.Product) bool {
	s.mu.Lock()
	added := s.indexOf(product.ID) < 0
	if added {
		s.items = append(s.items, product)
	}
	s.mu.Unlock()

	if added {
		s.changed(ctx, product.ID, true)
	}
	return added
}

// Remove drops the product with id. It reports whether it was listed.
func (s *Service) Remove(ctx context.Context, id int) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i >= 0 {
		s.items = slices.Delete(s.items, i, i+1)
	}
	s.mu.Unlock()

	if i < 0 {
		return false
	}
	s.changed(ctx, id, false)
	return true
}

// indexOf must be called with mu held
func (s *Service) indexOf(id int) int {
	return slices.IndexFunc(s.items, func(p domain.Product) bool {
		return p.ID == id
	})
}

func (s *Service) changed(ctx context.Context, productID int, listed bool) {
	eventType := domain.EventWishlistRemoved
	if listed {
		eventType = domain.EventWishlistAdded
	}

	s.logger.WithFields(map[string]any{
		"product_id": productID,
		"listed":     listed,
	}).Info("Wishlist toggled")

	s.publishEvent(ctx, eventType, productID)
}

// Items returns a copy of the wishlist
func (s *Service) Items() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// Contains reports whether the product with id is listed
func (s *Service) Contains(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(id) >= 0
}

// publishEvent publishes a wishlist event (non-blocking)
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
		if err := s.publisher.Publish(pubCtx, domain.SubjectWishlist, data); err != nil {
			s.logger.Errorf(err, "Failed to publish %s event", eventType)
		}
	}()
}
