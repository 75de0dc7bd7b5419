package cache

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type priceEntry struct {
	price     decimal.Decimal
	expiresAt time.Time
}

// InMemoryPriceCache implements PriceCache with a process-local map.
// Suitable for single-instance deployments and tests.
type InMemoryPriceCache struct {
	mu        sync.RWMutex
	entries   map[int64]priceEntry
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryPriceCache creates the cache and starts its expiry sweeper
func NewInMemoryPriceCache() *InMemoryPriceCache {
	c := &InMemoryPriceCache{
		entries:  make(map[int64]priceEntry),
		now:      time.Now,
		stopChan: make(chan struct{}),
	}

	c.wg.Add(1)
	go c.cleanupLoop(time.Minute)

	return c
}

// Get returns the cached price if it has not expired
func (c *InMemoryPriceCache) Get(ctx context.Context, productID int64) (decimal.Decimal, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[productID]
	if !ok || !c.now().Before(e.expiresAt) {
		return decimal.Zero, false, nil
	}
	return e.price, true, nil
}

// Set stores a price for ttl
func (c *InMemoryPriceCache) Set(ctx context.Context, productID int64, price decimal.Decimal, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[productID] = priceEntry{price: price, expiresAt: c.now().Add(ttl)}
	return nil
}

// Delete evicts a price
func (c *InMemoryPriceCache) Delete(ctx context.Context, productID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, productID)
	return nil
}

// Close stops the sweeper. Safe to call multiple times.
func (c *InMemoryPriceCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

// Size returns the number of entries, expired ones included
func (c *InMemoryPriceCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *InMemoryPriceCache) cleanupLoop(interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *InMemoryPriceCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for id, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, id)
		}
	}
}

// Ensure InMemoryPriceCache implements PriceCache
var _ PriceCache = (*InMemoryPriceCache)(nil)
