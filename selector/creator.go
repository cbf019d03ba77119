package selector

// Creator builds the memoized instance used for one cache key. A cached
// selector calls it once per key on the first miss. Build also calls it once
// to reject creators returning nil and discards that instance, so a creator
// that counts or registers its instances sees one extra call per selector.
//
// A Creator is also an Option, so it can be passed to Build directly:
//
//	selector.Build(b, resolver, selector.NewCreator[State, int](selector.WithEqual(selector.DeepEqual)))
type Creator[C, R any] func(inputs []Derivation[C], combiner Combiner[R]) Memoized[C, R]

func (c Creator[C, R]) apply(s *settings) {
	s.creator = c
	s.creatorSet = true
}

const defaultCacheSize = 1

type creatorSettings struct {
	equal EqualFunc
	size  int
}

// CreatorOption customizes the instances built by NewCreator.
type CreatorOption func(*creatorSettings)

// WithEqual sets the equality check used to compare derivation values.
// A nil check keeps ReferenceEqual.
func WithEqual(equal EqualFunc) CreatorOption {
	return func(s *creatorSettings) {
		if equal != nil {
			s.equal = equal
		}
	}
}

// WithCacheSize sets how many distinct sets of derivation values an instance
// remembers. Values below 1 fall back to 1.
func WithCacheSize(size int) CreatorOption {
	return func(s *creatorSettings) {
		s.size = size
	}
}

// NewCreator returns a Creator producing the default memoized instances.
func NewCreator[C, R any](opts ...CreatorOption) Creator[C, R] {
	cfg := creatorSettings{equal: ReferenceEqual, size: defaultCacheSize}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.size < 1 {
		cfg.size = defaultCacheSize
	}

	return func(inputs []Derivation[C], combiner Combiner[R]) Memoized[C, R] {
		return newMemoized(inputs, combiner, cfg.equal, cfg.size)
	}
}

// DefaultCreator returns the single-slot, reference equality creator.
func DefaultCreator[C, R any]() Creator[C, R] {
	return NewCreator[C, R]()
}
