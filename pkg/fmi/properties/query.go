package properties

import (
	"bytes"
	"context"
	"net/url"

	"fmiopen/pkg/fmi"
)

// Query fetches the observable property catalog from the metadata service.
type Query struct {
	metaURL    string
	httpClient fmi.HTTPClient
}

// NewQuery creates an observable property query against the given metadata
// endpoint.
func NewQuery(metaURL string, client fmi.HTTPClient) *Query {
	return &Query{metaURL: metaURL, httpClient: client}
}

// Get fetches the observation and forecast listings and returns a fresh
// immutable snapshot.
func (q *Query) Get(ctx context.Context) (*Catalog, error) {
	observation, err := q.fetch(ctx, "observation")
	if err != nil {
		return nil, err
	}
	forecast, err := q.fetch(ctx, "forecast")
	if err != nil {
		return nil, err
	}
	return &Catalog{observation: observation, forecast: forecast}, nil
}

func (q *Query) fetch(ctx context.Context, kind string) ([]ObservableProperty, error) {
	params := url.Values{}
	params.Set("observableProperty", kind)

	body, err := fmi.Fetch(ctx, q.httpClient, q.metaURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}
	return ParseProperties(bytes.NewReader(body))
}
