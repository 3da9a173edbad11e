package storedqueries

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"fmiopen/pkg/fmi"
)

// ParseCatalog joins a listStoredQueries document with its matching
// describeStoredQueries document by query id. A listed query without a
// description violates the service contract.
func ParseCatalog(list, describe io.Reader) (*Catalog, error) {
	var lr listResponse
	if err := xml.NewDecoder(list).Decode(&lr); err != nil {
		return nil, fmt.Errorf("%w: %v", fmi.ErrMalformedResponse, err)
	}
	var dr describeResponse
	if err := xml.NewDecoder(describe).Decode(&dr); err != nil {
		return nil, fmt.Errorf("%w: %v", fmi.ErrMalformedResponse, err)
	}

	descriptions := make(map[string]description, len(dr.Descriptions))
	for _, d := range dr.Descriptions {
		descriptions[d.ID] = d
	}

	queries := make([]StoredQuery, 0, len(lr.Queries))
	for _, q := range lr.Queries {
		d, ok := descriptions[q.ID]
		if !ok {
			return nil, fmt.Errorf("%w: no description for stored query %s",
				fmi.ErrMalformedResponse, q.ID)
		}
		params := make([]Param, 0, len(d.Parameters))
		for _, p := range d.Parameters {
			params = append(params, Param{
				Name:     p.Name,
				Type:     p.Type,
				Title:    strings.TrimSpace(p.Title),
				Abstract: strings.TrimSpace(p.Abstract),
			})
		}
		queries = append(queries, StoredQuery{
			ID:                q.ID,
			Title:             strings.TrimSpace(q.Title),
			Abstract:          strings.TrimSpace(d.Abstract),
			ReturnFeatureType: strings.TrimSpace(q.ReturnFeatureType),
			Params:            params,
		})
	}
	return &Catalog{queries: queries}, nil
}
