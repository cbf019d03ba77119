package selector

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"

	"github.com/goliatone/go-selector-cache/internal/cacheinfra"
)

// Builder holds the derivations and the combiner of a cached selector until
// a resolver is supplied with Build. Construction errors are kept and
// returned by Build.
type Builder[C, R any] struct {
	inputs     []Derivation[C]
	combiner   Combiner[R]
	resultFunc any
	typed      bool
	err        error
}

// Create starts a cached selector from an ordered list of derivations and a
// combiner receiving their values positionally.
func Create[C, R any](inputs []Derivation[C], combiner Combiner[R]) *Builder[C, R] {
	b := &Builder[C, R]{
		inputs:     append([]Derivation[C](nil), inputs...),
		combiner:   combiner,
		resultFunc: combiner,
	}
	b.err = b.validate()
	return b
}

// Err returns the construction error, if any.
func (b *Builder[C, R]) Err() error {
	return b.err
}

func (b *Builder[C, R]) validate() error {
	if len(b.inputs) == 0 {
		return &ConfigError{Field: "Inputs", Message: "at least one input derivation is required"}
	}
	for i, in := range b.inputs {
		if in == nil {
			return &ConfigError{Field: fmt.Sprintf("Inputs[%d]", i), Message: "must be a non-nil function"}
		}
	}
	if b.combiner == nil || isNilFunc(b.resultFunc) {
		return &ConfigError{Field: "ResultFunc", Message: "must be a non-nil function"}
	}
	return nil
}

func isNilFunc(fn any) bool {
	if fn == nil {
		return true
	}
	rv := reflect.ValueOf(fn)
	return rv.Kind() == reflect.Func && rv.IsNil()
}

// typed wraps a typed combiner while keeping the original for ResultFunc.
func typed[C, R any](inputs []Derivation[C], original any, combiner Combiner[R]) *Builder[C, R] {
	b := Create(inputs, combiner)
	b.resultFunc = original
	b.typed = true
	b.err = b.validate()
	return b
}

// Create1 starts a cached selector from one typed derivation.
func Create1[C, A, R any](a func(C) A, fn func(A) R) *Builder[C, R] {
	return typed[C, R]([]Derivation[C]{Input(a)}, fn, func(v ...any) R {
		return fn(as[A](v[0]))
	})
}

// Create2 starts a cached selector from two typed derivations.
func Create2[C, A, B, R any](a func(C) A, b func(C) B, fn func(A, B) R) *Builder[C, R] {
	return typed[C, R]([]Derivation[C]{Input(a), Input(b)}, fn, func(v ...any) R {
		return fn(as[A](v[0]), as[B](v[1]))
	})
}

// Create3 starts a cached selector from three typed derivations.
func Create3[C, A, B, D, R any](a func(C) A, b func(C) B, d func(C) D, fn func(A, B, D) R) *Builder[C, R] {
	return typed[C, R]([]Derivation[C]{Input(a), Input(b), Input(d)}, fn, func(v ...any) R {
		return fn(as[A](v[0]), as[B](v[1]), as[D](v[2]))
	})
}

// Create4 starts a cached selector from four typed derivations.
func Create4[C, A, B, D, E, R any](a func(C) A, b func(C) B, d func(C) D, e func(C) E, fn func(A, B, D, E) R) *Builder[C, R] {
	return typed[C, R]([]Derivation[C]{Input(a), Input(b), Input(d), Input(e)}, fn, func(v ...any) R {
		return fn(as[A](v[0]), as[B](v[1]), as[D](v[2]), as[E](v[3]))
	})
}

// Build finishes a cached selector with the resolver that computes its cache
// keys. Every configuration problem is reported here; a selector returned
// without error cannot fail later because of its configuration.
//
// Build calls the creator once to check that it yields an instance.
func Build[C any, K comparable, R any](b *Builder[C, R], resolver Resolver[C, K], opts ...Option) (*CachedSelector[C, K, R], error) {
	if b == nil {
		return nil, &ConfigError{Field: "Builder", Message: "must not be nil"}
	}
	if b.err != nil {
		return nil, b.err
	}
	if resolver == nil {
		return nil, &ConfigError{Field: "Resolver", Message: "must be a non-nil function"}
	}

	cfg := defaultSettings()
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&cfg)
		}
	}

	creator, err := resolveCreator[C, R](cfg)
	if err != nil {
		return nil, err
	}
	if probe := creator(b.inputs, b.combiner); probe == nil {
		return nil, &ConfigError{Field: "SelectorCreator", Message: "returned a nil instance"}
	}

	store, err := cacheinfra.NewStore[K, Memoized[C, R]](cfg.store, nil)
	if err != nil {
		return nil, err
	}

	return &CachedSelector[C, K, R]{
		id:         uuid.New().String(),
		name:       cfg.name,
		resolver:   resolver,
		inputs:     b.inputs,
		combiner:   b.combiner,
		resultFunc: b.resultFunc,
		typed:      b.typed,
		creator:    creator,
		store:      store,
		logger:     cfg.logger,
	}, nil
}

// MustBuild is like Build but panics on a configuration error.
func MustBuild[C any, K comparable, R any](b *Builder[C, R], resolver Resolver[C, K], opts ...Option) *CachedSelector[C, K, R] {
	s, err := Build(b, resolver, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

func resolveCreator[C, R any](cfg settings) (Creator[C, R], error) {
	if !cfg.creatorSet {
		return DefaultCreator[C, R](), nil
	}

	creator, ok := cfg.creator.(Creator[C, R])
	if !ok {
		return nil, &ConfigError{
			Field:   "SelectorCreator",
			Message: fmt.Sprintf("expected %T, got %T", Creator[C, R](nil), cfg.creator),
		}
	}
	if creator == nil {
		return nil, &ConfigError{Field: "SelectorCreator", Message: "must be a non-nil function"}
	}
	return creator, nil
}
