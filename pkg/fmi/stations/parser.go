package stations

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"fmiopen/pkg/fmi"
)

// ParseCatalog decodes a station register document into a catalog
// snapshot. Duplicate fmisids keep the first occurrence so the snapshot
// invariant holds.
func ParseCatalog(r io.Reader) (*Catalog, error) {
	var fc featureCollection
	if err := xml.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("%w: %v", fmi.ErrMalformedResponse, err)
	}

	seen := make(map[int]bool)
	stations := make([]Station, 0, len(fc.Members))
	for _, m := range fc.Members {
		station, err := parseStation(m.Facility)
		if err != nil {
			return nil, err
		}
		if seen[station.FMISID] {
			continue
		}
		seen[station.FMISID] = true
		stations = append(stations, station)
	}
	return &Catalog{stations: stations}, nil
}

func parseStation(f facility) (Station, error) {
	fmisid, err := strconv.Atoi(strings.TrimSpace(f.Identifier))
	if err != nil {
		return Station{}, fmt.Errorf("%w: station identifier %q is not an fmisid",
			fmi.ErrMalformedResponse, f.Identifier)
	}

	names := namesByCodeSpace(f.Names)
	name, ok := names["name"]
	if !ok {
		return Station{}, fmt.Errorf("%w: station %d has no name", fmi.ErrMalformedResponse, fmisid)
	}

	location, err := parsePoint(f.Point)
	if err != nil {
		return Station{}, fmt.Errorf("%w: station %d: %v", fmi.ErrMalformedResponse, fmisid, err)
	}

	begin, err := time.Parse(time.RFC3339, strings.TrimSpace(f.Activity.BeginPosition))
	if err != nil {
		return Station{}, fmt.Errorf("%w: station %d has unparseable begin time %q",
			fmi.ErrMalformedResponse, fmisid, f.Activity.BeginPosition)
	}
	var end *time.Time
	if endStr := strings.TrimSpace(f.Activity.EndPosition); endStr != "" {
		t, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			return Station{}, fmt.Errorf("%w: station %d has unparseable end time %q",
				fmi.ErrMalformedResponse, fmisid, endStr)
		}
		end = &t
	}

	kinds := make([]string, 0, len(f.BelongsTo))
	for _, n := range f.BelongsTo {
		if n.Title != "" {
			kinds = append(kinds, n.Title)
		}
	}

	return Station{
		FMISID:   fmisid,
		Name:     name,
		GeoID:    names["geoid"],
		Region:   names["region"],
		Location: location,
		Begin:    begin,
		End:      end,
		Kinds:    kinds,
	}, nil
}

// namesByCodeSpace indexes the facility's names by the last path segment
// of their codeSpace (name, geoid, region).
func namesByCodeSpace(names []gmlName) map[string]string {
	out := make(map[string]string, len(names))
	for _, n := range names {
		if n.CodeSpace == "" {
			continue
		}
		parts := strings.Split(n.CodeSpace, "/")
		out[parts[len(parts)-1]] = strings.TrimSpace(n.Value)
	}
	return out
}

func parsePoint(p gmlPoint) (fmi.Point, error) {
	fields := strings.Fields(p.Pos)
	if len(fields) < 2 {
		return fmi.Point{}, fmt.Errorf("position %q does not hold a coordinate pair", p.Pos)
	}
	lat, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return fmi.Point{}, fmt.Errorf("unparseable latitude %q", fields[0])
	}
	lon, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return fmi.Point{}, fmt.Errorf("unparseable longitude %q", fields[1])
	}
	return fmi.Point{Lat: lat, Lon: lon, SRS: p.SrsName}, nil
}
