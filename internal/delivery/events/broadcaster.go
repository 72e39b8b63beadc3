package events

import (
	"context"
	"sync"

	"github.com/Pesokrava/storefront/internal/pkg/logger"
)

// Broadcaster is an in-process publisher with per-subject subscriptions.
// Publishing never blocks: a buffered subscriber whose buffer is full misses the message,
// a latest subscriber has its unread message replaced.
type Broadcaster struct {
	mu     sync.RWMutex
	subs   map[string]map[*subscription]struct{}
	logger *logger.Logger
}

type subscription struct {
	ch     chan []byte
	latest bool
	mu     sync.Mutex
}

// replace swaps the unread message for data; mu serializes senders
func (s *subscription) replace(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	select {
	case <-s.ch:
	default:
	}
	s.ch <- data
}

// NewBroadcaster creates a new in-process broadcaster
func NewBroadcaster(log *logger.Logger) *Broadcaster {
	return &Broadcaster{
		subs:   make(map[string]map[*subscription]struct{}),
		logger: log,
	}
}

// Subscribe registers a buffered subscription on subject. The returned cancel func closes the channel.
func (b *Broadcaster) Subscribe(subject string, buffer int) (<-chan []byte, func()) {
	return b.subscribe(subject, &subscription{ch: make(chan []byte, buffer)})
}

// SubscribeLatest registers a subscription that holds only the newest unread message on subject.
// A newer publish replaces the unread message.
func (b *Broadcaster) SubscribeLatest(subject string) (<-chan []byte, func()) {
	return b.subscribe(subject, &subscription{ch: make(chan []byte, 1), latest: true})
}

func (b *Broadcaster) subscribe(subject string, sub *subscription) (<-chan []byte, func()) {
	b.mu.Lock()
	if b.subs[subject] == nil {
		b.subs[subject] = make(map[*subscription]struct{})
	}
	b.subs[subject][sub] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs[subject], sub)
			close(sub.ch)
		})
	}

	return sub.ch, cancel
}

// Publish delivers data to every subscriber of subject
func (b *Broadcaster) Publish(_ context.Context, subject string, data []byte) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subs[subject] {
		if sub.latest {
			sub.replace(data)
			continue
		}
		select {
		case sub.ch <- data:
		default:
			b.logger.Warnf("Subscriber buffer full on %s, dropping message", subject)
		}
	}

	return nil
}

// SubscriberCount returns the number of live subscriptions on subject
func (b *Broadcaster) SubscriberCount(subject string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[subject])
}
