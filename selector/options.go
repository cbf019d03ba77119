package selector

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-selector-cache/internal/cacheinfra"
)

// Option configures a cached selector at Build time.
//
// Two forms select the memoizer creator: a Creator value passed directly,
// or an Options struct carrying it in SelectorCreator.
type Option interface {
	apply(*settings)
}

// settings collects every option. The creator is stored untyped because
// options do not carry the selector's type parameters; Build checks it.
type settings struct {
	creator    any
	creatorSet bool
	logger     *zap.Logger
	name       string
	store      cacheinfra.Config
}

func defaultSettings() settings {
	return settings{
		logger: zap.NewNop(),
		store:  cacheinfra.DefaultConfig(),
	}
}

// Options is the struct form of the creator option.
type Options[C, R any] struct {
	SelectorCreator Creator[C, R]
}

func (o Options[C, R]) apply(s *settings) {
	s.creator = o.SelectorCreator
	s.creatorSet = true
}

type optionFunc func(*settings)

func (f optionFunc) apply(s *settings) {
	f(s)
}

// WithLogger sets the logger used for instance lifecycle events.
// A nil logger keeps the no-op default.
func WithLogger(logger *zap.Logger) Option {
	return optionFunc(func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	})
}

// WithName names the selector in log output.
func WithName(name string) Option {
	return optionFunc(func(s *settings) {
		s.name = name
	})
}

// WithStore selects the instance cache backend.
func WithStore(cfg StoreConfig) Option {
	return optionFunc(func(s *settings) {
		s.store = cfg
	})
}

// WithConcurrentStore is shorthand for a never evicting store that is safe
// for concurrent callers.
func WithConcurrentStore() Option {
	return WithStore(StoreConfig{Kind: StoreConcurrent})
}
