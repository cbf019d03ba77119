package selector

import "sync"

// slot holds one remembered set of derivation values and its result.
type slot[R any] struct {
	values []any
	result R
}

// memoized is the default Memoized implementation. It keeps up to size slots,
// most recently used first; with size 1 it is a single-slot memoizer.
type memoized[C, R any] struct {
	inputs   []Derivation[C]
	combiner Combiner[R]
	equal    EqualFunc
	size     int

	mu             sync.Mutex
	slots          []slot[R]
	recomputations int
}

func newMemoized[C, R any](inputs []Derivation[C], combiner Combiner[R], equal EqualFunc, size int) *memoized[C, R] {
	return &memoized[C, R]{
		inputs:   inputs,
		combiner: combiner,
		equal:    equal,
		size:     size,
		slots:    make([]slot[R], 0, size),
	}
}

// Select runs every derivation outside the lock, then looks for a slot whose
// values all match. Derivations may themselves be cached selectors.
func (m *memoized[C, R]) Select(ctx C) R {
	values := make([]any, len(m.inputs))
	for i, in := range m.inputs {
		values[i] = in(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, s := range m.slots {
		if m.same(s.values, values) {
			if i > 0 {
				copy(m.slots[1:i+1], m.slots[:i])
				m.slots[0] = s
			}
			return s.result
		}
	}

	result := m.combiner(values...)
	m.recomputations++

	if len(m.slots) < m.size {
		m.slots = append(m.slots, slot[R]{})
	}
	copy(m.slots[1:], m.slots[:len(m.slots)-1])
	m.slots[0] = slot[R]{values: values, result: result}

	return result
}

func (m *memoized[C, R]) same(prev, next []any) bool {
	if len(prev) != len(next) {
		return false
	}
	for i := range prev {
		if !m.equal(prev[i], next[i]) {
			return false
		}
	}
	return true
}

func (m *memoized[C, R]) ResultFunc() any {
	return m.combiner
}

func (m *memoized[C, R]) Dependencies() []Derivation[C] {
	return append([]Derivation[C](nil), m.inputs...)
}

func (m *memoized[C, R]) LastResult() (R, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.slots) == 0 {
		var zero R
		return zero, false
	}
	return m.slots[0].result, true
}

func (m *memoized[C, R]) Recomputations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recomputations
}

func (m *memoized[C, R]) ResetRecomputations() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recomputations = 0
}
