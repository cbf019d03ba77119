package cacheinfra

import (
	"errors"
	"fmt"
	"sort"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/viccon/sturdyc"
)

// Kind selects the storage backend of an instance cache.
type Kind int

const (
	// KindFlat is a plain map. It never evicts and is not safe for concurrent use.
	KindFlat Kind = iota
	// KindConcurrent is a concurrent map. It never evicts.
	KindConcurrent
	// KindBounded is a sharded sturdyc cache with capacity and TTL eviction.
	KindBounded
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindFlat:
		return "flat"
	case KindConcurrent:
		return "concurrent"
	case KindBounded:
		return "bounded"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Config holds the configuration of an instance cache store.
// Only KindBounded reads the sizing fields.
type Config struct {
	Kind Kind

	// Capacity is the maximum number of entries of a bounded store.
	Capacity int

	// NumShards is the number of sturdyc shards. Higher values reduce lock
	// contention at the cost of memory.
	NumShards int

	// TTL is how long an entry stays reachable after it was created.
	TTL time.Duration

	// EvictionPercentage is the share of entries evicted when the store is full.
	EvictionPercentage int

	// EvictionInterval sets how often expired entries are swept.
	// Zero uses the sturdyc default.
	EvictionInterval time.Duration
}

// DefaultConfig returns the flat, never evicting store.
func DefaultConfig() Config {
	return Config{Kind: KindFlat}
}

// DefaultBoundedConfig returns a bounded store configuration with sensible defaults.
func DefaultBoundedConfig() Config {
	return Config{
		Kind:               KindBounded,
		Capacity:           10000,
		NumShards:          256,
		TTL:                5 * time.Minute,
		EvictionPercentage: 10,
	}
}

const (
	msgPositive = "must be greater than 0"
	msgPercent  = "must be between 1 and 100"
)

// Validate checks if the configuration values are valid.
func (c Config) Validate() error {
	switch c.Kind {
	case KindFlat, KindConcurrent:
		return nil
	case KindBounded:
	default:
		return &ConfigError{Field: "Kind", Message: "unknown store kind " + c.Kind.String()}
	}

	err := validation.ValidateStruct(&c,
		validation.Field(&c.Capacity,
			validation.Required.Error(msgPositive),
			validation.Min(1).Error(msgPositive),
		),
		validation.Field(&c.NumShards,
			validation.Required.Error(msgPositive),
			validation.Min(1).Error(msgPositive),
		),
		validation.Field(&c.TTL,
			validation.Required.Error(msgPositive),
			validation.Min(1).Error(msgPositive),
		),
		validation.Field(&c.EvictionPercentage,
			validation.Required.Error(msgPercent),
			validation.Min(1).Error(msgPercent),
			validation.Max(100).Error(msgPercent),
		),
		validation.Field(&c.EvictionInterval,
			validation.Min(0).Error("must be non-negative"),
		),
	)

	return toConfigError(err)
}

// sturdycOptions maps the optional settings to sturdyc options. Capacity,
// NumShards, TTL and EvictionPercentage go to sturdyc.New directly.
func (c Config) sturdycOptions() []sturdyc.Option {
	var options []sturdyc.Option
	if c.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(c.EvictionInterval))
	}
	return options
}

// ErrInvalidConfig is matched by every ConfigError through errors.Is.
var ErrInvalidConfig = errors.New("invalid configuration")

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// toConfigError reports the first failing field, in name order, as a ConfigError.
func toConfigError(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fields := make([]string, 0, len(fieldErrs))
		for field := range fieldErrs {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		return &ConfigError{Field: fields[0], Message: fieldErrs[fields[0]].Error()}
	}

	return &ConfigError{Field: "Config", Message: err.Error()}
}
