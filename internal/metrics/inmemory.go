package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered  uint64
	TokensIssued     uint64
	RecipesCreated   uint64
	RecipesUpdated   uint64
	RecipesDeleted   uint64
	CartsExported    uint64
	CartBuildCount   uint64
	CartBuildTotalNs int64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	usersRegistered  uint64
	tokensIssued     uint64
	recipesCreated   uint64
	recipesUpdated   uint64
	recipesDeleted   uint64
	cartsExported    uint64
	cartBuildCount   uint64
	cartBuildTotalNs int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered:  atomic.LoadUint64(&m.usersRegistered),
		TokensIssued:     atomic.LoadUint64(&m.tokensIssued),
		RecipesCreated:   atomic.LoadUint64(&m.recipesCreated),
		RecipesUpdated:   atomic.LoadUint64(&m.recipesUpdated),
		RecipesDeleted:   atomic.LoadUint64(&m.recipesDeleted),
		CartsExported:    atomic.LoadUint64(&m.cartsExported),
		CartBuildCount:   atomic.LoadUint64(&m.cartBuildCount),
		CartBuildTotalNs: atomic.LoadInt64(&m.cartBuildTotalNs),
	}
}

// IncUserRegistered increments the registration counter.
func (m *InMemoryRecorder) IncUserRegistered() {
	atomic.AddUint64(&m.usersRegistered, 1)
}

// IncTokenIssued increments the token counter.
func (m *InMemoryRecorder) IncTokenIssued() {
	atomic.AddUint64(&m.tokensIssued, 1)
}

// IncRecipeCreated increments the recipe created counter.
func (m *InMemoryRecorder) IncRecipeCreated() {
	atomic.AddUint64(&m.recipesCreated, 1)
}

// IncRecipeUpdated increments the recipe updated counter.
func (m *InMemoryRecorder) IncRecipeUpdated() {
	atomic.AddUint64(&m.recipesUpdated, 1)
}

// IncRecipeDeleted increments the recipe deleted counter.
func (m *InMemoryRecorder) IncRecipeDeleted() {
	atomic.AddUint64(&m.recipesDeleted, 1)
}

// IncCartExported increments the shopping cart export counter.
func (m *InMemoryRecorder) IncCartExported() {
	atomic.AddUint64(&m.cartsExported, 1)
}

// ObserveCartBuildDuration records the time spent aggregating a cart.
func (m *InMemoryRecorder) ObserveCartBuildDuration(duration time.Duration) {
	atomic.AddUint64(&m.cartBuildCount, 1)
	atomic.AddInt64(&m.cartBuildTotalNs, duration.Nanoseconds())
}
