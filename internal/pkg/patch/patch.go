// Package patch merges optional request fields over defaults.
package patch

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// Apply overwrites *dst when v is set.
func Apply[T any](dst *T, v *T) {
	*dst = Coalesce(v, *dst)
}
