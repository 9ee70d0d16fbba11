package events

import (
	"context"
	"sync"
)

// Update tells subscribers which state slot was replaced
type Update struct {
	Source string
}

// Subscription receives updates on a buffered channel. When the buffer is
// full further updates are dropped, so a slow subscriber sees the latest
// state on its next read rather than every transition.
type Subscription struct {
	ch   chan Update
	mgr  *SubscriptionManager
	once sync.Once

	mu        sync.Mutex
	cancel    context.CancelFunc
	cancelled bool
}

// Chan returns a read-only channel for self-handling updates
func (s *Subscription) Chan() <-chan Update { return s.ch }

// Cancel unsubscribes and closes the channel. Safe for repeated calls.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.mu.Lock()
		s.cancelled = true
		cancel := s.cancel
		s.mu.Unlock()

		if cancel != nil {
			cancel()
		}
		s.mgr.unsubscribe(s.ch)
	})
}

// Watch calls cb for every update until parentCtx is done or the
// subscription is cancelled.
func (s *Subscription) Watch(parentCtx context.Context, cb func(Update)) *Subscription {
	ctx, cancel := context.WithCancel(parentCtx)

	s.mu.Lock()
	if s.cancelled {
		s.mu.Unlock()
		cancel()
		return s
	}
	s.cancel = cancel
	s.mu.Unlock()

	go func() {
		defer s.Cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case update, ok := <-s.ch:
				if !ok {
					return
				}
				cb(update)
			}
		}
	}()

	return s
}

// SubscriptionManager fans state updates out to subscribers
type SubscriptionManager struct {
	mu          sync.RWMutex
	subscribers map[chan Update]struct{}
}

func NewSubscriptionManager() *SubscriptionManager {
	return &SubscriptionManager{
		subscribers: make(map[chan Update]struct{}),
	}
}

// Subscribe registers a new subscriber with a buffer of bufferSize updates (minimum 1)
func (m *SubscriptionManager) Subscribe(bufferSize int) *Subscription {
	if bufferSize < 1 {
		bufferSize = 1
	}
	ch := make(chan Update, bufferSize)

	m.mu.Lock()
	m.subscribers[ch] = struct{}{}
	m.mu.Unlock()

	return &Subscription{ch: ch, mgr: m}
}

func (m *SubscriptionManager) unsubscribe(ch chan Update) {
	m.mu.Lock()
	if _, ok := m.subscribers[ch]; ok {
		delete(m.subscribers, ch)
		close(ch)
	}
	m.mu.Unlock()
}

// Count returns the number of active subscribers
func (m *SubscriptionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscribers)
}

// Emit sends update to all subscribers without blocking
func (m *SubscriptionManager) Emit(ctx context.Context, update Update) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for sub := range m.subscribers {
		select {
		case <-ctx.Done():
			return
		case sub <- update:
		default:
		}
	}
}
