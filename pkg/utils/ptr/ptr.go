// Package ptr has tiny helpers for pointer literals.
package ptr

// To returns a pointer to v.
func To[T any](v T) *T {
	return &v
}
