package fmi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Stored query ids for every supported domain/mode pair. Weather and
// radiation forecasts share the MEPS surface model output; callers
// disambiguate with the parameter filter, not the query id.
var storedQueryIDs = map[Domain]map[Mode]string{
	Weather: {
		ModeObservation: "fmi::observations::weather::multipointcoverage",
		ModeForecast:    "fmi::forecast::meps::surface::point::multipointcoverage",
	},
	Radiation: {
		ModeObservation: "fmi::observations::radiation::multipointcoverage",
		ModeForecast:    "fmi::forecast::meps::surface::point::multipointcoverage",
	},
	AirQuality: {
		ModeObservation: "urban::observations::airquality::hourly::multipointcoverage",
		ModeForecast:    "fmi::forecast::silam::airquality::surface::point::multipointcoverage",
	},
}

// StoredQueryID maps a domain/mode pair to its stored query id.
func StoredQueryID(domain Domain, mode Mode) (string, error) {
	id, ok := storedQueryIDs[domain][mode]
	if !ok {
		return "", fmt.Errorf("%w: no stored query for %s/%s", ErrUnsupportedQuery, domain, mode)
	}
	return id, nil
}

const (
	// Default time window for observation requests with no explicit range.
	observationWindow = 24 * time.Hour
	// Default horizon for forecast requests with no explicit range.
	forecastHorizon = 48 * time.Hour

	// Upstream limit: at most this many resolution steps per request.
	maxStepsPerChunk = 168

	timestampFormat = "2006-01-02T15:04:05Z"
)

// Request describes one time-series query. StartTime and EndTime are
// optional; nil resolves to a domain-appropriate window at call time.
// A nil Parameters slice requests the service's default parameter set,
// which is different from an empty one: an explicitly empty list (for
// example the output of a filter that matched nothing) is a caller error.
type Request struct {
	Domain     Domain
	Mode       Mode
	StationID  int

	StartTime  *time.Time
	EndTime    *time.Time
	Resolution time.Duration // zero means one hour
	Parameters []string

	// Strict makes a well-formed zero-record response an error instead of
	// an empty result.
	Strict bool
}

// normalized is a Request with defaults resolved and inputs validated,
// ready to encode into stored query parameters.
type normalized struct {
	queryID    string
	fmisid     int
	start, end time.Time
	step       time.Duration
	parameters []string
	strict     bool
}

// normalize validates the request and resolves defaults against now.
// It is pure: the request is not modified and no I/O happens here.
func (r Request) normalize(now time.Time) (normalized, error) {
	queryID, err := StoredQueryID(r.Domain, r.Mode)
	if err != nil {
		return normalized{}, err
	}

	step := r.Resolution
	if step == 0 {
		step = time.Hour
	}
	if err := validateResolution(r.Domain, r.Mode, step); err != nil {
		return normalized{}, err
	}

	start, end := resolveRange(r.Mode, r.StartTime, r.EndTime, now)
	if start.After(end) {
		return normalized{}, fmt.Errorf("%w: start time %s after end time %s",
			ErrInvalidQuery, start.Format(timestampFormat), end.Format(timestampFormat))
	}

	if r.Parameters != nil && len(r.Parameters) == 0 {
		return normalized{}, fmt.Errorf("%w: parameter list is empty", ErrInvalidQuery)
	}

	fmisid := r.StationID
	if fmisid == 0 {
		fmisid = DefaultStation(r.Domain)
	}

	return normalized{
		queryID:    queryID,
		fmisid:     fmisid,
		start:      start.UTC(),
		end:        end.UTC(),
		step:       step,
		parameters: r.Parameters,
		strict:     r.Strict,
	}, nil
}

func resolveRange(mode Mode, start, end *time.Time, now time.Time) (time.Time, time.Time) {
	if start != nil && end != nil {
		return *start, *end
	}
	now = now.Truncate(time.Minute)
	var s, e time.Time
	if mode == ModeForecast {
		s, e = now, now.Add(forecastHorizon)
	} else {
		s, e = now.Add(-observationWindow), now
	}
	if start != nil {
		s = *start
	}
	if end != nil {
		e = *end
	}
	return s, e
}

// validateResolution enforces the granularities the stored queries accept.
// Sub-hour steps must divide the hour, super-hour steps must be whole hours
// dividing a day, and hourly air quality observations do not go below an
// hour. Misaligned steps fail instead of being rounded.
func validateResolution(domain Domain, mode Mode, step time.Duration) error {
	if step <= 0 {
		return fmt.Errorf("%w: resolution must be positive, got %s", ErrInvalidQuery, step)
	}
	if step%time.Minute != 0 {
		return fmt.Errorf("%w: resolution %s is not a whole number of minutes", ErrInvalidQuery, step)
	}
	if domain == AirQuality && mode == ModeObservation && step < time.Hour {
		return fmt.Errorf("%w: air quality observations support at most hourly resolution, got %s",
			ErrInvalidQuery, step)
	}
	switch {
	case step < time.Hour:
		if time.Hour%step != 0 {
			return fmt.Errorf("%w: resolution %s must divide one hour", ErrInvalidQuery, step)
		}
	case step > time.Hour:
		if step%time.Hour != 0 || (24*time.Hour)%step != 0 {
			return fmt.Errorf("%w: resolution %s must be whole hours dividing 24 hours", ErrInvalidQuery, step)
		}
	}
	return nil
}

// values encodes the normalized request as stored query parameters for one
// chunk. The timestep is expressed in minutes, as the service expects.
func (n normalized) values(start, end time.Time) url.Values {
	params := url.Values{}
	params.Set("request", "getFeature")
	params.Set("storedquery_id", n.queryID)
	params.Set("fmisid", strconv.Itoa(n.fmisid))
	params.Set("starttime", start.UTC().Format(timestampFormat))
	params.Set("endtime", end.UTC().Format(timestampFormat))
	params.Set("timestep", strconv.Itoa(int(n.step/time.Minute)))
	if n.parameters != nil {
		params.Set("parameters", strings.Join(n.parameters, ","))
	}
	return params
}

// window is one chunk of a long time range.
type window struct {
	start, end time.Time
}

// chunkLimits splits [start, end] into windows of at most maxStepsPerChunk
// resolution steps (and at most a week), so a single request never exceeds
// the upstream response size limits. Consecutive windows are separated by
// one step to avoid duplicate boundary records.
func chunkLimits(start, end time.Time, step time.Duration) []window {
	steps := (7 * 24 * time.Hour) / step
	if steps > maxStepsPerChunk {
		steps = maxStepsPerChunk
	}
	span := time.Duration(steps) * step

	var windows []window
	for cur := start; !cur.After(end); cur = cur.Add(span + step) {
		chunkEnd := cur.Add(span)
		if chunkEnd.After(end) {
			chunkEnd = end
		}
		windows = append(windows, window{start: cur, end: chunkEnd})
	}
	return windows
}
