// Package cache keeps the orders the user has viewed this run so repeated
// renders don't re-fetch. Entries are overwritten after every successful
// mutation; a failed refresh leaves the stale entry in place until the next
// fetch succeeds.
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"gitlab.ozon.dev/qwestard/storefront/internal/models"
)

// Fetcher re-reads one order from the backend.
type Fetcher func(ctx context.Context, id int64) (*models.Order, error)

type OrderCache struct {
	mu     sync.RWMutex
	orders map[int64]*models.Order
}

func New() *OrderCache {
	return &OrderCache{orders: make(map[int64]*models.Order)}
}

func (c *OrderCache) Get(id int64) (*models.Order, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	o, ok := c.orders[id]
	return o, ok
}

func (c *OrderCache) Put(o *models.Order) {
	c.mu.Lock()
	c.orders[o.ID] = o
	c.mu.Unlock()
}

func (c *OrderCache) IDs() []int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]int64, 0, len(c.orders))
	for id := range c.orders {
		ids = append(ids, id)
	}
	return ids
}

// Refresh re-fetches every tracked order, a few at a time. Orders that fail
// to fetch keep their stale entry.
func (c *OrderCache) Refresh(ctx context.Context, fetch Fetcher) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, id := range c.IDs() {
		g.Go(func() error {
			o, err := fetch(ctx, id)
			if err != nil {
				return err
			}
			c.Put(o)
			return nil
		})
	}
	return g.Wait()
}

// StartAutoRefresh refreshes on a ticker until the context is cancelled.
// Refresh errors are swallowed; the next tick tries again.
func (c *OrderCache) StartAutoRefresh(ctx context.Context, fetch Fetcher, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			_ = c.Refresh(ctx, fetch)
		case <-ctx.Done():
			return
		}
	}
}
