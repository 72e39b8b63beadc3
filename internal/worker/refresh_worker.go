package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Pesokrava/storefront/internal/domain"
	"github.com/Pesokrava/storefront/internal/pkg/logger"
)

const (
	// DefaultDebounce collects query changes arriving within this window into one refresh
	DefaultDebounce = 250 * time.Millisecond

	// DefaultRequestTimeout bounds a single refresh
	DefaultRequestTimeout = 15 * time.Second
)

// Refresher is the part of the catalog service the worker drives
type Refresher interface {
	Refresh(ctx context.Context) (*domain.ProductPage, error)
	RefreshCategories(ctx context.Context) ([]domain.Category, error)
	HasCategories() bool
}

// RefreshWorker turns catalog query changes into debounced refreshes
type RefreshWorker struct {
	catalog        Refresher
	logger         *logger.Logger
	debounce       time.Duration
	requestTimeout time.Duration

	// Debouncing state
	mu         sync.Mutex
	pending    *pendingRefresh
	shutdownCh chan struct{}
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
}

type pendingRefresh struct {
	generation uint64
	timer      *time.Timer
}

// NewRefreshWorker creates a new refresh worker. Non-positive durations fall back to the defaults.
func NewRefreshWorker(catalog Refresher, debounce, requestTimeout time.Duration, log *logger.Logger) *RefreshWorker {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &RefreshWorker{
		catalog:        catalog,
		logger:         log.Component("refresh_worker"),
		debounce:       debounce,
		requestTimeout: requestTimeout,
		shutdownCh:     make(chan struct{}),
		ctx:            ctx,
		cancel:         cancel,
	}
}

// Run handles messages from ch until ctx is done or ch is closed
func (w *RefreshWorker) Run(ctx context.Context, ch <-chan []byte) {
	for {
		select {
		case <-ctx.Done():
			return
		case data, ok := <-ch:
			if !ok {
				return
			}
			// Malformed events are logged by HandleEvent
			_ = w.HandleEvent(data)
		}
	}
}

// HandleEvent processes a catalog query change event
func (w *RefreshWorker) HandleEvent(data []byte) error {
	var event domain.ChangeEvent
	if err := json.Unmarshal(data, &event); err != nil {
		w.logger.Error("Failed to unmarshal catalog event", err)
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	if event.Type != domain.EventQueryChanged {
		w.logger.Debugf("Ignoring catalog event %s", event.Type)
		return nil
	}

	w.logger.WithFields(map[string]any{
		"type":       event.Type,
		"generation": event.Generation,
		"timestamp":  event.Timestamp,
	}).Debug("Received catalog query event")

	w.scheduleUpdate(event.Generation)

	return nil
}

// scheduleUpdate implements debouncing logic.
// Multiple query changes within the debounce window result in a single refresh.
func (w *RefreshWorker) scheduleUpdate(generation uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	select {
	case <-w.shutdownCh:
		w.logger.Info("Worker shutting down, ignoring new event")
		return
	default:
	}

	if w.pending != nil && w.pending.timer.Stop() {
		w.pending.timer.Reset(w.debounce)
		// Publishes are asynchronous, so an older generation may arrive last
		w.pending.generation = max(w.pending.generation, generation)
		w.logger.WithFields(map[string]any{
			"pending_generation": w.pending.generation,
			"event_generation":   generation,
		}).Debug("Debouncing: resetting refresh timer")
		return
	}
	// No pending refresh, or its timer already fired and the refresh may predate this change

	w.wg.Add(1)
	p := &pendingRefresh{generation: generation}
	p.timer = time.AfterFunc(w.debounce, func() {
		w.processUpdate(p)
	})
	w.pending = p
}

// processUpdate runs one refresh for the latest query
func (w *RefreshWorker) processUpdate(p *pendingRefresh) {
	defer w.wg.Done()

	w.mu.Lock()
	if w.pending == p {
		w.pending = nil
	}
	generation := p.generation
	w.mu.Unlock()

	ctx, cancel := context.WithTimeout(w.ctx, w.requestTimeout)
	defer cancel()

	page, err := w.catalog.Refresh(ctx)
	switch {
	case errors.Is(err, domain.ErrStaleResult):
		w.logger.WithFields(map[string]any{
			"generation": generation,
		}).Debug("Refresh superseded by a newer query")
	case err != nil:
		w.logger.WithFields(map[string]any{
			"generation": generation,
		}).Error("Catalog refresh failed", err)
	default:
		w.logger.WithFields(map[string]any{
			"generation": generation,
			"items":      len(page.Products),
			"total":      page.Total,
		}).Info("Catalog refreshed")
	}

	if w.catalog.HasCategories() {
		return
	}
	if _, err := w.catalog.RefreshCategories(ctx); err != nil {
		w.logger.Error("Category refresh failed", err)
	}
}

// Shutdown gracefully shuts down the worker.
// Cancels the pending timer and waits for an in-flight refresh to complete.
func (w *RefreshWorker) Shutdown(ctx context.Context) error {
	w.logger.Info("Shutting down refresh worker...")

	w.mu.Lock()
	select {
	case <-w.shutdownCh:
	default:
		close(w.shutdownCh)
	}
	cancelled := 0
	if w.pending != nil && w.pending.timer.Stop() {
		w.wg.Done()
		cancelled = 1
	}
	w.pending = nil
	w.mu.Unlock()

	// Stop an in-flight refresh
	w.cancel()

	w.logger.WithFields(map[string]any{
		"cancelled_updates": cancelled,
	}).Info("Cancelled pending refresh")

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.logger.Info("All in-flight refreshes completed")
		return nil
	case <-ctx.Done():
		w.logger.Warn("Shutdown timeout reached, forcing exit")
		return ctx.Err()
	}
}

// GetPendingCount returns the number of scheduled refreshes (used for monitoring/testing)
func (w *RefreshWorker) GetPendingCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending == nil {
		return 0
	}
	return 1
}
