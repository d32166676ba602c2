package slices

// Map applies mapper to each element of sli, keeping order.
func Map[T any, R any](sli []T, mapper func(v T) R) []R {
	ret := make([]R, len(sli))
	for nth, v := range sli {
		ret[nth] = mapper(v)
	}
	return ret
}

// RefOf converts slice-of-values to slice-of-pointers.
func RefOf[T any](sli []T) []*T {
	return Map(sli, func(v T) *T { return &v })
}

// DerefOf converts slice-of-pointers to slice-of-values.
func DerefOf[T any](sli []*T) []T {
	return Map(sli, func(v *T) T { return *v })
}

// MapUntilError maps sli with mapper, stopping at the first error.
func MapUntilError[T any, R any](sli []T, mapper func(v T) (R, error)) ([]R, error) {
	ret := make([]R, len(sli))
	for nth, v := range sli {
		r, err := mapper(v)
		if err != nil {
			return nil, err
		}
		ret[nth] = r
	}
	return ret, nil
}

// First returns the first element satisfying pred, or the zero value
// and false when none does.
func First[T any](sli []T, pred func(v T) bool) (T, bool) {
	for _, v := range sli {
		if pred(v) {
			return v, true
		}
	}
	return *new(T), false
}
