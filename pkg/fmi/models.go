package fmi

import (
	"fmt"
	"math"
	"time"
)

// Observation is a single decoded value: one (timestamp, parameter) pair.
// A value the service reported as missing is math.NaN.
type Observation struct {
	Time      time.Time `json:"time"`
	Parameter string    `json:"parameter"`
	Value     float64   `json:"value"`
}

// Missing reports whether the service returned the missing-value sentinel
// for this observation.
func (o Observation) Missing() bool {
	return math.IsNaN(o.Value)
}

func (o Observation) String() string {
	return fmt.Sprintf("%s %s=%v", o.Time.Format(time.RFC3339), o.Parameter, o.Value)
}

// Domain selects the kind of quantity queried.
type Domain string

const (
	Weather    Domain = "weather"
	Radiation  Domain = "radiation"
	AirQuality Domain = "airquality"
)

// Mode selects between measured and modelled data.
type Mode string

const (
	ModeObservation Mode = "observation"
	ModeForecast    Mode = "forecast"
)

// Point is a geographic position with its declared projection.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	SRS string  `json:"srs,omitempty"`
}

// Default stations used when a request does not name one.
const (
	// DefaultWeatherStation is Helsinki Kaisaniemi.
	DefaultWeatherStation = 100971
	// DefaultRadiationStation is Helsinki Kumpula.
	DefaultRadiationStation = 101004
	// DefaultAirQualityStation is Helsinki Kallio 2.
	DefaultAirQualityStation = 100662
)

// DefaultStation returns the default fmisid for a domain.
func DefaultStation(domain Domain) int {
	switch domain {
	case Radiation:
		return DefaultRadiationStation
	case AirQuality:
		return DefaultAirQualityStation
	default:
		return DefaultWeatherStation
	}
}
