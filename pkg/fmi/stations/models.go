package stations

import (
	"fmt"
	"regexp"
	"sort"
	"time"

	"fmiopen/pkg/fmi"
)

// Kind classifies what a station measures.
type Kind string

const (
	KindWeather    Kind = "weather"
	KindRadiation  Kind = "radiation"
	KindAirQuality Kind = "airquality"
)

// The service labels station networks with Finnish titles; air quality
// stations appear under two of them.
var kindTitles = map[Kind][]string{
	KindWeather:   {"Automaattinen sääasema"},
	KindRadiation: {"Auringonsäteilyasema"},
	KindAirQuality: {
		"Ilmanlaadun tausta-asema",
		"Kolmannen osapuolen ilmanlaadun havaintoasema",
	},
}

// Station is one monitoring facility. FMISID is the service's stable
// numeric identifier and is unique within a catalog snapshot. Kinds holds
// the raw network titles the station belongs to.
type Station struct {
	FMISID   int        `json:"fmisid"`
	Name     string     `json:"name"`
	GeoID    string     `json:"geoid,omitempty"`
	Region   string     `json:"region,omitempty"`
	Location fmi.Point  `json:"location"`
	Begin    time.Time  `json:"begin"`
	End      *time.Time `json:"end,omitempty"`
	Kinds    []string   `json:"kinds"`
}

// Is reports whether the station belongs to any network of the given kind.
func (s Station) Is(kind Kind) bool {
	for _, title := range kindTitles[kind] {
		for _, k := range s.Kinds {
			if k == title {
				return true
			}
		}
	}
	return false
}

func (s Station) String() string {
	return fmt.Sprintf("[%d]: %s", s.FMISID, s.Name)
}

// Catalog is an immutable snapshot of the station register. Each Get
// produces a fresh catalog; search methods are pure filters over it.
type Catalog struct {
	stations []Station
}

// All returns the stations in catalog order.
func (c *Catalog) All() []Station {
	out := make([]Station, len(c.stations))
	copy(out, c.stations)
	return out
}

// Len returns the number of stations in the snapshot.
func (c *Catalog) Len() int {
	return len(c.stations)
}

// ByFMISID looks up a station by its identifier.
func (c *Catalog) ByFMISID(fmisid int) (Station, bool) {
	for _, s := range c.stations {
		if s.FMISID == fmisid {
			return s, true
		}
	}
	return Station{}, false
}

// FindMatches returns the stations whose name matches the pattern,
// preserving catalog order. Matching is case-insensitive regexp search;
// an empty result is valid.
func (c *Catalog) FindMatches(pattern string) ([]Station, error) {
	re, err := compilePattern(pattern)
	if err != nil {
		return nil, err
	}
	var out []Station
	for _, s := range c.stations {
		if re.MatchString(s.Name) {
			out = append(out, s)
		}
	}
	return out, nil
}

// Weather returns weather stations whose name matches the pattern
// (empty pattern matches all), sorted by name.
func (c *Catalog) Weather(pattern string) ([]Station, error) {
	return c.filterKind(KindWeather, pattern)
}

// Radiation returns solar radiation stations, see Weather.
func (c *Catalog) Radiation(pattern string) ([]Station, error) {
	return c.filterKind(KindRadiation, pattern)
}

// AirQuality returns air quality stations, see Weather.
func (c *Catalog) AirQuality(pattern string) ([]Station, error) {
	return c.filterKind(KindAirQuality, pattern)
}

func (c *Catalog) filterKind(kind Kind, pattern string) ([]Station, error) {
	re, err := compilePattern(pattern)
	if err != nil {
		return nil, err
	}
	var out []Station
	for _, s := range c.stations {
		if s.Is(kind) && re.MatchString(s.Name) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func compilePattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", fmi.ErrInvalidPattern, err)
	}
	return re, nil
}
