// Package util holds small generic helpers shared across packages.
package util

// Coalesce returns the first non-zero value, or the zero value if all
// are zero.
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// StringInSlice reports whether s exists in list.
func StringInSlice(s string, list []string) bool {
	for _, entry := range list {
		if entry == s {
			return true
		}
	}
	return false
}
