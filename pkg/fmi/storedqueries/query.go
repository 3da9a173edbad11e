package storedqueries

import (
	"bytes"
	"context"
	"net/url"

	"fmiopen/pkg/fmi"
)

// Query fetches the stored query catalog.
type Query struct {
	baseURL    string
	httpClient fmi.HTTPClient
}

// NewQuery creates a stored query catalog query against the given WFS
// endpoint.
func NewQuery(baseURL string, client fmi.HTTPClient) *Query {
	return &Query{baseURL: baseURL, httpClient: client}
}

// Get lists and describes the stored queries, returning a fresh immutable
// snapshot. Two requests are issued, one per WFS operation.
func (q *Query) Get(ctx context.Context) (*Catalog, error) {
	list, err := q.fetch(ctx, "listStoredQueries")
	if err != nil {
		return nil, err
	}
	describe, err := q.fetch(ctx, "describeStoredQueries")
	if err != nil {
		return nil, err
	}
	return ParseCatalog(bytes.NewReader(list), bytes.NewReader(describe))
}

func (q *Query) fetch(ctx context.Context, request string) ([]byte, error) {
	params := url.Values{}
	params.Set("service", "WFS")
	params.Set("version", "2.0.0")
	params.Set("request", request)
	return fmi.Fetch(ctx, q.httpClient, q.baseURL+"?"+params.Encode())
}
