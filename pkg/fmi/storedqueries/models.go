package storedqueries

import (
	"fmt"
	"regexp"
	"strings"

	"fmiopen/pkg/fmi"
)

// Param is one declared parameter of a stored query.
type Param struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Abstract string `json:"abstract"`
}

func (p Param) String() string {
	return fmt.Sprintf("%s: %s", p.Name, p.Type)
}

// StoredQuery describes one queryable API: its id, human description, the
// parameters it takes, and the feature type it returns (for example a
// simple feature versus a multiplexed multipoint coverage).
type StoredQuery struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Abstract          string  `json:"abstract"`
	ReturnFeatureType string  `json:"return_feature_type"`
	Params            []Param `json:"params"`
}

func (q StoredQuery) String() string {
	return fmt.Sprintf("[%s]: %s", q.ID, q.Title)
}

func (q StoredQuery) matches(re *regexp.Regexp) bool {
	return re.MatchString(q.ID) || re.MatchString(q.Title) || re.MatchString(q.Abstract)
}

// Catalog is an immutable snapshot of the stored query listing.
type Catalog struct {
	queries []StoredQuery
}

// All returns the stored queries in catalog order.
func (c *Catalog) All() []StoredQuery {
	out := make([]StoredQuery, len(c.queries))
	copy(out, c.queries)
	return out
}

// Len returns the number of stored queries in the snapshot.
func (c *Catalog) Len() int {
	return len(c.queries)
}

// FindByID returns the first stored query whose id contains the given
// fragment.
func (c *Catalog) FindByID(id string) (StoredQuery, bool) {
	for _, q := range c.queries {
		if strings.Contains(q.ID, id) {
			return q, true
		}
	}
	return StoredQuery{}, false
}

// FindMatches returns the stored queries whose id, title or abstract
// matches the pattern, preserving catalog order. Matching is
// case-insensitive regexp search; an empty result is valid.
func (c *Catalog) FindMatches(pattern string) ([]StoredQuery, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", fmi.ErrInvalidPattern, err)
	}
	var out []StoredQuery
	for _, q := range c.queries {
		if q.matches(re) {
			out = append(out, q)
		}
	}
	return out, nil
}
