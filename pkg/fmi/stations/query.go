package stations

import (
	"bytes"
	"context"
	"net/url"

	"fmiopen/pkg/fmi"
)

// StoredQueryID is the fixed stored query the station register lives under.
const StoredQueryID = "fmi::ef::stations"

// Query fetches the station catalog.
type Query struct {
	baseURL    string
	httpClient fmi.HTTPClient
}

// NewQuery creates a station catalog query against the given WFS endpoint.
func NewQuery(baseURL string, client fmi.HTTPClient) *Query {
	return &Query{baseURL: baseURL, httpClient: client}
}

// Get fetches the register and returns a fresh immutable snapshot. There
// is no caching across calls; the caller decides when to re-fetch.
func (q *Query) Get(ctx context.Context) (*Catalog, error) {
	params := url.Values{}
	params.Set("service", "WFS")
	params.Set("version", "2.0.0")
	params.Set("request", "getFeature")
	params.Set("storedquery_id", StoredQueryID)

	body, err := fmi.Fetch(ctx, q.httpClient, q.baseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}
	return ParseCatalog(bytes.NewReader(body))
}
