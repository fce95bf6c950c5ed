package contentreader

import (
	"context"

	"html-reader/internal/domain/data"
)

// ContentReader sequences fetch then parse for a single request. It holds no
// state between calls, so concurrent use needs no locking; the interface
// exists so transports and tests can substitute implementations.
type ContentReader interface {
	FetchWebContent(ctx context.Context, request *data.FetchRequest) (*data.FetchResult, error)
}
