package domain

// Status is the load state of an asynchronously fetched collection.
type Status int

const (
	StatusPending Status = iota // request dispatched, no result yet
	StatusSuccess               // resolved with at least one item
	StatusEmpty                 // resolved with zero items
	StatusFailed                // request failed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSuccess:
		return "success"
	case StatusEmpty:
		return "empty"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Collection is an async-loaded list and its load state. The zero value is
// a pending, empty collection.
type Collection[T any] struct {
	Status Status
	Data   []T
	Err    error
}

// Pending returns a collection whose request is in flight.
func Pending[T any]() Collection[T] {
	return Collection[T]{Status: StatusPending}
}

// Resolved returns a collection holding data. An empty slice resolves to
// StatusEmpty.
func Resolved[T any](data []T) Collection[T] {
	if len(data) == 0 {
		return Collection[T]{Status: StatusEmpty, Data: []T{}}
	}
	return Collection[T]{Status: StatusSuccess, Data: data}
}

// Failed returns a collection whose request failed.
func Failed[T any](err error) Collection[T] {
	return Collection[T]{Status: StatusFailed, Err: err}
}

// FromResult converts a fetch result into a collection.
func FromResult[T any](data []T, err error) Collection[T] {
	if err != nil {
		return Failed[T](err)
	}
	return Resolved(data)
}

// Ready reports whether the collection resolved, with or without data.
// Pending and failed collections are never ready.
func (c Collection[T]) Ready() bool {
	return c.Status == StatusSuccess || c.Status == StatusEmpty
}
