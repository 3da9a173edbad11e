package properties

import (
	"fmt"
	"regexp"

	"fmiopen/pkg/fmi"
)

// ObservableProperty is a named quantity that can appear as a column in a
// decoded response. Unit is empty for dimensionless quantities.
type ObservableProperty struct {
	ID             string `json:"id"`
	Label          string `json:"label"`
	BasePhenomenon string `json:"base_phenomenon"`
	Unit           string `json:"unit,omitempty"`
}

func (p ObservableProperty) String() string {
	s := fmt.Sprintf("[%s]: %s", p.ID, p.Label)
	if p.Unit != "" {
		s += fmt.Sprintf(" (%s)", p.Unit)
	}
	return s
}

func (p ObservableProperty) matches(re *regexp.Regexp) bool {
	return re.MatchString(p.ID) || re.MatchString(p.Label) ||
		re.MatchString(p.BasePhenomenon) || re.MatchString(p.Unit)
}

// Scope restricts a search to one applicability set.
type Scope int

const (
	ScopeAll Scope = iota
	ScopeObservations
	ScopeForecasts
)

// Catalog is an immutable snapshot of the observable property listings,
// one set for observations and one for forecasts.
type Catalog struct {
	observation []ObservableProperty
	forecast    []ObservableProperty
}

// Observations returns the observation properties in catalog order.
func (c *Catalog) Observations() []ObservableProperty {
	out := make([]ObservableProperty, len(c.observation))
	copy(out, c.observation)
	return out
}

// Forecasts returns the forecast properties in catalog order.
func (c *Catalog) Forecasts() []ObservableProperty {
	out := make([]ObservableProperty, len(c.forecast))
	copy(out, c.forecast)
	return out
}

// FindByID looks a property up by its short code, preferring the
// observation set.
func (c *Catalog) FindByID(id string) (ObservableProperty, bool) {
	for _, p := range c.observation {
		if p.ID == id {
			return p, true
		}
	}
	for _, p := range c.forecast {
		if p.ID == id {
			return p, true
		}
	}
	return ObservableProperty{}, false
}

// FindMatches returns the properties in scope whose id, label, phenomenon
// or unit matches the pattern, preserving catalog order (observations
// before forecasts). Matching is case-insensitive regexp search; an empty
// result is valid.
func (c *Catalog) FindMatches(pattern string, scope Scope) ([]ObservableProperty, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", fmi.ErrInvalidPattern, err)
	}
	var out []ObservableProperty
	if scope == ScopeAll || scope == ScopeObservations {
		for _, p := range c.observation {
			if p.matches(re) {
				out = append(out, p)
			}
		}
	}
	if scope == ScopeAll || scope == ScopeForecasts {
		for _, p := range c.forecast {
			if p.matches(re) {
				out = append(out, p)
			}
		}
	}
	return out, nil
}
