package cache

import (
	"context"
	"sync"

	"github.com/coldstore/backend/internal/domain/ledger"
	"github.com/coldstore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// MemoryBalanceCache is an in-process balance cache for deployments that run
// without Redis. One sheet per (tenant, fiscal year): a lookup with a newer
// log version replaces the stored entry on Put.
type MemoryBalanceCache struct {
	mu      sync.RWMutex
	entries map[memoryCacheKey]memoryCacheEntry
}

type memoryCacheKey struct {
	tenantID   uuid.UUID
	fiscalYear valueobject.FiscalYear
}

type memoryCacheEntry struct {
	version int64
	sheet   ledger.BalanceSheet
}

// NewMemoryBalanceCache creates an empty in-process cache
func NewMemoryBalanceCache() *MemoryBalanceCache {
	return &MemoryBalanceCache{
		entries: make(map[memoryCacheKey]memoryCacheEntry),
	}
}

// Get retrieves the cached sheet if it matches this log version
func (c *MemoryBalanceCache) Get(_ context.Context, tenantID uuid.UUID, fiscalYear valueobject.FiscalYear, version int64) (*ledger.BalanceSheet, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[memoryCacheKey{tenantID: tenantID, fiscalYear: fiscalYear}]
	if !ok || entry.version != version {
		return nil, false
	}
	sheet := entry.sheet
	return &sheet, true
}

// Put stores the sheet for this log version, replacing any older one
func (c *MemoryBalanceCache) Put(_ context.Context, tenantID uuid.UUID, fiscalYear valueobject.FiscalYear, version int64, sheet *ledger.BalanceSheet) {
	if sheet == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[memoryCacheKey{tenantID: tenantID, fiscalYear: fiscalYear}] = memoryCacheEntry{
		version: version,
		sheet:   *sheet,
	}
}

// Invalidate removes every cached sheet of the tenant
func (c *MemoryBalanceCache) Invalidate(_ context.Context, tenantID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if key.tenantID == tenantID {
			delete(c.entries, key)
		}
	}
}
