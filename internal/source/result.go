package source

// Result is either a real collection or an explicit degradation with an empty collection.
type Result[T any] struct {
	Items    []T    `json:"-"`
	Degraded bool   `json:"degraded"`
	Reason   string `json:"reason,omitempty"`
}

func Ok[T any](items []T) Result[T] {
	if items == nil {
		items = []T{}
	}
	return Result[T]{Items: items}
}

func Degraded[T any](reason string) Result[T] {
	return Result[T]{Items: []T{}, Degraded: true, Reason: reason}
}

// Requested reports whether the result was part of the load.
func (r Result[T]) Requested() bool {
	return r.Items != nil
}
