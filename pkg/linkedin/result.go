package linkedin

// ListResult is the outcome of a lossy list read. A degraded result carries no items and
// keeps the error that caused it, which has already been logged.
type ListResult[T any] struct {
	Items []T
	Cause error
}

// Ok wraps a successful read.
func Ok[T any](items []T) ListResult[T] {
	if items == nil {
		items = []T{}
	}

	return ListResult[T]{Items: items}
}

// Degraded wraps a failed read as an empty result.
func Degraded[T any](cause error) ListResult[T] {
	return ListResult[T]{Items: []T{}, Cause: cause}
}

// Degraded reports whether the read failed and the items are a placeholder.
func (r ListResult[T]) Degraded() bool {
	return r.Cause != nil
}
