package cmp

// SliceEqual compares two slices element-wise, in order.
// Ordering is significant for twin documents (property lists are
// rendered in declaration order), so no unordered variant is offered.
func SliceEqual[T interface{ Equal(T) bool }](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}

	return true
}

// PointerEqual treats two nil pointers as equal, a nil and a non-nil
// pointer as unequal, and otherwise delegates to Equal.
func PointerEqual[T interface{ Equal(T) bool }](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return (*a).Equal(*b)
}

// DerefEqual is PointerEqual for comparable scalars.
func DerefEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
