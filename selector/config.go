package selector

import "github.com/goliatone/go-selector-cache/internal/cacheinfra"

// StoreConfig configures the instance cache backend.
type StoreConfig = cacheinfra.Config

// StoreKind selects the instance cache backend.
type StoreKind = cacheinfra.Kind

const (
	// StoreFlat keeps instances in a plain map. It never evicts; callers
	// bound it with RemoveMatchingSelector, RemoveWhere or ClearCache, and
	// serialize access to the selector. NaN keys are never found again, see
	// Resolver.
	StoreFlat = cacheinfra.KindFlat
	// StoreConcurrent keeps instances in a concurrent map. It never evicts.
	StoreConcurrent = cacheinfra.KindConcurrent
	// StoreBounded evicts instances by capacity and TTL. Keys are indexed by
	// an encoding that keeps pointer identity, so distinct keys never share
	// an instance. Evicted keys are rebuilt on their next call, so
	// GetMatchingSelector may miss for a key that was used before.
	StoreBounded = cacheinfra.KindBounded
)

// DefaultStoreConfig returns the flat store configuration.
func DefaultStoreConfig() StoreConfig {
	return cacheinfra.DefaultConfig()
}

// DefaultBoundedStoreConfig returns a bounded store configuration with sensible defaults.
func DefaultBoundedStoreConfig() StoreConfig {
	return cacheinfra.DefaultBoundedConfig()
}

// ConfigError reports an invalid construction argument or option.
type ConfigError = cacheinfra.ConfigError

// ErrInvalidConfig is matched by every ConfigError through errors.Is.
var ErrInvalidConfig = cacheinfra.ErrInvalidConfig
