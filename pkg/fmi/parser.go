package fmi

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// DecodeObservations parses a feature-response document into observations.
// Output ordering is stable: input tuple order, then declared field order
// within a tuple. Decoding is deterministic and side-effect-free; zero
// records is a valid outcome and returns an empty result, not an error.
func DecodeObservations(r io.Reader) ([]Observation, error) {
	var fc FeatureCollection
	if err := xml.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	var observations []Observation
	for _, member := range fc.Members {
		obs, err := decodeCoverage(member.GridSeriesObservation.Result.MultiPointCoverage)
		if err != nil {
			return nil, err
		}
		observations = append(observations, obs...)
	}
	return observations, nil
}

// decodeCoverage decodes one multipoint coverage: field order from the
// rangeType, payload and separators from the rangeSet data block.
func decodeCoverage(cov MultiPointCoverage) ([]Observation, error) {
	payload := strings.TrimSpace(cov.RangeSet.DataBlock.TupleList.Value)
	if payload == "" {
		return nil, nil
	}

	parameters := parameterColumns(cov.RangeType.DataRecord.Fields)
	if len(parameters) == 0 {
		return nil, fmt.Errorf("%w: data block has no declared fields", ErrMalformedResponse)
	}

	tuples, err := splitTuples(cov.RangeSet.DataBlock.TupleList, payload)
	if err != nil {
		return nil, err
	}

	observations := make([]Observation, 0, len(tuples)*len(parameters))
	for _, tuple := range tuples {
		if len(tuple) != len(parameters)+1 {
			return nil, fmt.Errorf("%w: tuple has %d fields, declared field order expects %d",
				ErrMalformedResponse, len(tuple), len(parameters)+1)
		}
		ts, err := parseTimestamp(tuple[0])
		if err != nil {
			return nil, err
		}
		for i, parameter := range parameters {
			value, err := strconv.ParseFloat(tuple[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: unparseable value %q for %s",
					ErrMalformedResponse, tuple[i+1], parameter)
			}
			observations = append(observations, Observation{
				Time:      ts,
				Parameter: parameter,
				Value:     value,
			})
		}
	}
	return observations, nil
}

// parameterColumns returns the declared columns that carry values. The
// timestamp occupies the first tuple slot; when the declaration names it
// explicitly as a leading time field, it is skipped.
func parameterColumns(fields []Field) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	if len(names) > 0 && isTimeField(names[0]) {
		names = names[1:]
	}
	return names
}

func isTimeField(name string) bool {
	switch strings.ToLower(name) {
	case "time", "timestamp", "unixtime", "epoch":
		return true
	}
	return false
}

// splitTuples splits the payload using the separators the response itself
// declares. Absent attributes select the default whitespace encoding
// (non-empty lines are tuples, whitespace separates fields); an attribute
// that is declared but empty is a structural violation.
func splitTuples(tl TupleList, payload string) ([][]string, error) {
	if tl.TupleSeparator == nil && tl.FieldSeparator == nil {
		var tuples [][]string
		for _, line := range strings.Split(payload, "\n") {
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			tuples = append(tuples, fields)
		}
		return tuples, nil
	}

	tupleSep, err := separator(tl.TupleSeparator, " ")
	if err != nil {
		return nil, err
	}
	fieldSep, err := separator(tl.FieldSeparator, ",")
	if err != nil {
		return nil, err
	}

	parts := strings.Split(payload, tupleSep)
	// A terminal separator leaves one trailing empty tuple; it is not a record.
	if len(parts) > 0 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}

	tuples := make([][]string, 0, len(parts))
	for _, part := range parts {
		fields := strings.Split(strings.TrimSpace(part), fieldSep)
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		tuples = append(tuples, fields)
	}
	return tuples, nil
}

func separator(declared *string, fallback string) (string, error) {
	if declared == nil {
		return fallback, nil
	}
	if *declared == "" {
		return "", fmt.Errorf("%w: declared separator is empty", ErrMalformedResponse)
	}
	return *declared, nil
}

// parseTimestamp accepts the two representations the service uses: Unix
// seconds and RFC 3339. The result is always UTC.
func parseTimestamp(s string) (time.Time, error) {
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: unparseable timestamp %q", ErrMalformedResponse, s)
	}
	return ts.UTC(), nil
}
