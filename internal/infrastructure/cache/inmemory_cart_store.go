package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lincyaw/storefront/internal/domain/cart"
)

var _ cart.Store = (*InMemoryCartStore)(nil)

// InMemoryCartStore keeps carts in process memory. Suitable for
// single-instance deployments and testing. State is not shared across
// instances and is lost on restart.
type InMemoryCartStore struct {
	mu      sync.RWMutex
	carts   map[uuid.UUID]entry
	ttl     time.Duration
	stopCh  chan struct{}
	stopped sync.Once
}

type entry struct {
	data      []byte
	expiresAt time.Time
}

// NewInMemoryCartStore creates an in-memory cart store. A janitor
// goroutine evicts expired carts every minute.
func NewInMemoryCartStore(ttl time.Duration) *InMemoryCartStore {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	s := &InMemoryCartStore{
		carts:  make(map[uuid.UUID]entry),
		ttl:    ttl,
		stopCh: make(chan struct{}),
	}
	go s.janitor()
	return s
}

func (s *InMemoryCartStore) Get(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	s.mu.RLock()
	e, ok := s.carts[userID]
	s.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		return cart.NewCart(userID), nil
	}

	var c cart.Cart
	if err := json.Unmarshal(e.data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *InMemoryCartStore) Save(ctx context.Context, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.carts[c.UserID] = entry{data: data, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return nil
}

func (s *InMemoryCartStore) Delete(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	delete(s.carts, userID)
	s.mu.Unlock()
	return nil
}

// Close stops the janitor goroutine
func (s *InMemoryCartStore) Close() error {
	s.stopped.Do(func() { close(s.stopCh) })
	return nil
}

func (s *InMemoryCartStore) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for userID, e := range s.carts {
				if now.After(e.expiresAt) {
					delete(s.carts, userID)
				}
			}
			s.mu.Unlock()
		}
	}
}
