// Package types holds the wire types shared by the Cleanaid admin client:
// the response envelope, pagination metadata and the resource DTOs mirrored
// from the backend schema.
package types

// Envelope is the canonical response shape every client call returns.
//
// When Success is false, Data must not be treated as a list result; callers
// check OK before using it.
type Envelope[T any] struct {
	Data       T               `json:"data" yaml:"data"`
	Success    bool            `json:"success" yaml:"success"`
	Message    string          `json:"message,omitempty" yaml:"message,omitempty"`
	Pagination *PaginationMeta `json:"pagination,omitempty" yaml:"pagination,omitempty"`
}

// OK reports whether the server marked the response successful.
func (e Envelope[T]) OK() bool {
	return e.Success
}

// Paginated reports whether the response carried pagination metadata.
func (e Envelope[T]) Paginated() bool {
	return e.Pagination != nil
}

// StatusUpdate is the body of every PATCH .../status call.
type StatusUpdate struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}
