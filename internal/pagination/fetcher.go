package pagination

import "context"

// Page is one response from a paginated source.
type Page[T any] struct {
	Items       []T
	CurrentPage int
	TotalPages  int
}

// HasNext reports whether the source advertised more pages after this one.
func (p Page[T]) HasNext() bool {
	return p.CurrentPage < p.TotalPages
}

// Fetcher retrieves one page. Implementations perform a single round trip and
// leave retry decisions to the caller.
type Fetcher[T any] interface {
	FetchPage(ctx context.Context, cursor, pageSize int) (Page[T], error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc[T any] func(ctx context.Context, cursor, pageSize int) (Page[T], error)

// FetchPage calls f.
func (f FetcherFunc[T]) FetchPage(ctx context.Context, cursor, pageSize int) (Page[T], error) {
	return f(ctx, cursor, pageSize)
}
