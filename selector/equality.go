package selector

import "reflect"

// EqualFunc reports whether two derivation values are the same for
// memoization purposes.
type EqualFunc func(a, b any) bool

// ReferenceEqual is the default equality check. Maps, pointers and channels
// are equal when they point at the same object, slices when they share the
// backing array and length. Other dynamically comparable values use ==. Funcs
// and values that cannot be compared are never equal, so they always cause a
// recomputation.
func ReferenceEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Func:
		return false
	}

	if !va.Comparable() || !vb.Comparable() {
		return false
	}
	return a == b
}

// DeepEqual compares values structurally with reflect.DeepEqual.
func DeepEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
