package di

import (
	"sort"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"

	"github.com/goliatone/go-selector-cache/keys"
	"github.com/goliatone/go-selector-cache/selector"
)

// Config holds the shared settings of every selector built through a Container.
type Config struct {
	// Logger receives selector lifecycle events. Nil uses a no-op logger.
	Logger *zap.Logger

	// Store is the instance cache backend of every selector.
	Store selector.StoreConfig

	// KeyMaxLen hashes serialized keys longer than this many bytes.
	// Zero disables hashing.
	KeyMaxLen int
}

// DefaultConfig returns a container configuration using the flat store and
// unhashed keys.
func DefaultConfig() Config {
	return Config{Store: selector.DefaultStoreConfig()}
}

// Validate checks if the configuration values are valid.
func (c Config) Validate() error {
	if err := c.Store.Validate(); err != nil {
		return err
	}

	err := validation.ValidateStruct(&c,
		validation.Field(&c.KeyMaxLen, validation.Min(0).Error("must be non-negative")),
	)
	if err != nil {
		return &selector.ConfigError{Field: "KeyMaxLen", Message: "must be non-negative"}
	}
	return nil
}

// Managed is the type independent view of a cached selector registered in a
// Container.
type Managed interface {
	ID() string
	Name() string
	ClearCache()
	Len() int
}

// SelectorStats describes one registered selector.
type SelectorStats struct {
	ID        string
	Name      string
	Instances int
}

// Container provides dependency injection for cached selectors.
// It holds the shared logger, key serializer and store configuration, and
// keeps track of every selector built through it so their caches can be
// managed together.
type Container struct {
	logger        *zap.Logger
	keySerializer keys.Serializer
	config        Config

	mu        sync.RWMutex
	selectors map[string]Managed
}

// NewContainer creates a new DI container with the provided configuration.
func NewContainer(config Config) (*Container, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Container{
		logger:        logger,
		keySerializer: keys.NewHashingSerializer(keys.NewDefaultSerializer(), config.KeyMaxLen),
		config:        config,
		selectors:     make(map[string]Managed),
	}, nil
}

// NewContainerWithDefaults creates a new DI container using default configuration.
func NewContainerWithDefaults() (*Container, error) {
	return NewContainer(DefaultConfig())
}

// Logger returns the shared logger.
func (c *Container) Logger() *zap.Logger {
	return c.logger
}

// KeySerializer returns the shared key serializer, for use with
// selector.SerializedResolver.
func (c *Container) KeySerializer() keys.Serializer {
	return c.keySerializer
}

// StoreConfig returns the store configuration applied to every selector.
func (c *Container) StoreConfig() selector.StoreConfig {
	return c.config.Store
}

// Config returns a copy of the container configuration.
func (c *Container) Config() Config {
	return c.config
}

// Build builds a cached selector with the container's logger and store, and
// registers it. Options passed here are applied after the container defaults,
// so they win.
//
// Since Go methods cannot have type parameters, this is provided as a package-level function.
// Example: di.Build(container, selector.Create1(...), resolver)
func Build[C any, K comparable, R any](c *Container, b *selector.Builder[C, R], resolver selector.Resolver[C, K], opts ...selector.Option) (*selector.CachedSelector[C, K, R], error) {
	all := make([]selector.Option, 0, len(opts)+2)
	all = append(all, selector.WithLogger(c.logger), selector.WithStore(c.config.Store))
	all = append(all, opts...)

	s, err := selector.Build(b, resolver, all...)
	if err != nil {
		return nil, err
	}

	c.Register(s)
	return s, nil
}

// Register adds a selector built elsewhere to the container.
func (c *Container) Register(s Managed) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.selectors[s.ID()] = s
	c.logger.Debug("selector registered", zap.String("selector", s.Name()), zap.String("selector_id", s.ID()))
}

// Unregister removes a selector from the container. Its cache is left as is.
// It reports whether the selector was registered.
func (c *Container) Unregister(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.selectors[id]; !ok {
		return false
	}
	delete(c.selectors, id)
	return true
}

// Len returns the number of registered selectors.
func (c *Container) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.selectors)
}

// ClearAll clears the cache of every registered selector and returns the
// number of instances dropped.
func (c *Container) ClearAll() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0
	for _, s := range c.selectors {
		total += s.Len()
		s.ClearCache()
	}
	c.logger.Debug("all selector caches cleared", zap.Int("selectors", len(c.selectors)), zap.Int("count", total))
	return total
}

// Stats returns the instance count of every registered selector, ordered by
// name and then id.
func (c *Container) Stats() []SelectorStats {
	c.mu.RLock()
	stats := make([]SelectorStats, 0, len(c.selectors))
	for _, s := range c.selectors {
		stats = append(stats, SelectorStats{ID: s.ID(), Name: s.Name(), Instances: s.Len()})
	}
	c.mu.RUnlock()

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Name != stats[j].Name {
			return stats[i].Name < stats[j].Name
		}
		return stats[i].ID < stats[j].ID
	})
	return stats
}
