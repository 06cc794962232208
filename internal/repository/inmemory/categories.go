package inmemory

import (
	"sync"
	"time"

	transactionsdomain "smartfinance-go/internal/domain/transactions"
)

// CategoriesCache keeps each user's visible category list until its TTL
// expires. Values are copied in and out so callers cannot mutate entries.
type CategoriesCache struct {
	mu    sync.RWMutex
	items map[string]categoriesItem
	now   func() time.Time
}

type categoriesItem struct {
	value     []transactionsdomain.Category
	expiresAt time.Time
}

func NewCategoriesCache() *CategoriesCache {
	return &CategoriesCache{
		items: make(map[string]categoriesItem),
		now:   time.Now,
	}
}

func (c *CategoriesCache) GetByUserID(userID string) ([]transactionsdomain.Category, bool) {
	now := c.now()

	c.mu.RLock()
	item, ok := c.items[userID]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[userID]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, userID)
		}
		c.mu.Unlock()
		return nil, false
	}

	return cloneCategories(item.value), true
}

func (c *CategoriesCache) SetByUserID(userID string, categories []transactionsdomain.Category, ttl time.Duration) {
	if ttl <= 0 {
		c.DeleteByUserID(userID)
		return
	}

	c.mu.Lock()
	c.items[userID] = categoriesItem{
		value:     cloneCategories(categories),
		expiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()
}

func (c *CategoriesCache) DeleteByUserID(userID string) {
	c.mu.Lock()
	delete(c.items, userID)
	c.mu.Unlock()
}

func cloneCategories(categories []transactionsdomain.Category) []transactionsdomain.Category {
	if categories == nil {
		return nil
	}
	cloned := make([]transactionsdomain.Category, len(categories))
	for i := range categories {
		cloned[i] = categories[i]
		if categories[i].UserID != nil {
			owner := *categories[i].UserID
			cloned[i].UserID = &owner
		}
	}
	return cloned
}
