package networker

import (
	"context"

	"html-reader/internal/domain/data"
)

// RawResponse is the transport-level view of a fetched page. On a non-2xx
// final status Fetch returns both a populated RawResponse and an HTTP-kind
// error, so callers that want the error body can still reach it.
type RawResponse struct {
	Body          []byte
	Status        int
	FinalURL      string
	ContentType   string
	ContentLength int64
	LastModified  string
}

type Networker interface {
	Fetch(ctx context.Context, request *data.FetchRequest) (*RawResponse, error)
}
