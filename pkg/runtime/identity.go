package runtime

import "reflect"

// identical reports whether two values are the same by reference semantics:
// == for comparable values, pointer identity for funcs, slices, maps and
// channels. Deep equality is never used; a freshly built slice with equal
// contents is a different value.
func identical(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	ra := reflect.ValueOf(a)
	rb := reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}

	switch ra.Kind() {
	case reflect.Func, reflect.Slice, reflect.Map, reflect.Chan:
		if ra.IsNil() || rb.IsNil() {
			return ra.IsNil() && rb.IsNil()
		}
		return ra.Pointer() == rb.Pointer()
	default:
		if !ra.Type().Comparable() {
			return false
		}
		return a == b
	}
}

// depsChanged compares dependency lists element-wise with identical.
// A nil list means "no dependencies declared": the hook re-fires every
// render. An empty non-nil list never changes after the first render.
func depsChanged(old, new []any) bool {
	if new == nil {
		return true
	}
	if old == nil {
		return true // first render
	}
	if len(old) != len(new) {
		return true
	}
	for i := range new {
		if !identical(old[i], new[i]) {
			return true
		}
	}
	return false
}
