package fmi

import (
	"encoding/xml"
)

// FeatureCollection is the root element of a WFS getFeature response.
type FeatureCollection struct {
	XMLName        xml.Name        `xml:"FeatureCollection"`
	NumberMatched  string          `xml:"numberMatched,attr"`
	NumberReturned string          `xml:"numberReturned,attr"`
	TimeStamp      string          `xml:"timeStamp,attr"`
	Members        []FeatureMember `xml:"member"`
}

// FeatureMember wraps one observation bundle.
type FeatureMember struct {
	GridSeriesObservation GridSeriesObservation `xml:"GridSeriesObservation"`
}

// GridSeriesObservation carries the metadata and result coverage for one
// station/parameter bundle.
type GridSeriesObservation struct {
	GmlID            string           `xml:"id,attr"`
	PhenomenonTime   PhenomenonTime   `xml:"phenomenonTime"`
	ObservedProperty ObservedProperty `xml:"observedProperty"`
	Result           Result           `xml:"result"`
}

// PhenomenonTime contains the time period the observations cover.
type PhenomenonTime struct {
	TimePeriod TimePeriod `xml:"TimePeriod"`
}

// TimePeriod is a begin/end position pair.
type TimePeriod struct {
	BeginPosition string `xml:"beginPosition"`
	EndPosition   string `xml:"endPosition"`
}

// ObservedProperty references the requested parameter set.
type ObservedProperty struct {
	Href string `xml:"href,attr"`
}

// Result holds the multipoint coverage with the embedded data payload.
type Result struct {
	MultiPointCoverage MultiPointCoverage `xml:"MultiPointCoverage"`
}

// MultiPointCoverage pairs the payload (rangeSet) with its declared field
// order (rangeType).
type MultiPointCoverage struct {
	GmlID     string    `xml:"id,attr"`
	DomainSet DomainSet `xml:"domainSet"`
	RangeSet  RangeSet  `xml:"rangeSet"`
	RangeType RangeType `xml:"rangeType"`
}

// DomainSet declares the sampled positions.
type DomainSet struct {
	SimpleMultiPoint SimpleMultiPoint `xml:"SimpleMultiPoint"`
}

// SimpleMultiPoint carries the position list as space-separated text.
type SimpleMultiPoint struct {
	SrsName   string `xml:"srsName,attr"`
	Positions string `xml:"positions"`
}

// RangeSet contains the data block.
type RangeSet struct {
	DataBlock DataBlock `xml:"DataBlock"`
}

// DataBlock contains the tuple-encoded payload.
type DataBlock struct {
	TupleList TupleList `xml:"doubleOrNilReasonTupleList"`
}

// TupleList is the delimited-text payload together with its declared
// separators. The service states its own encoding per response: ts
// delimits tuples, cs delimits fields within a tuple. Absent attributes
// select the default whitespace encoding; pointers keep "absent" and
// "declared empty" distinguishable.
type TupleList struct {
	TupleSeparator *string `xml:"ts,attr"`
	FieldSeparator *string `xml:"cs,attr"`
	Decimal        string  `xml:"decimal,attr"`
	Value          string  `xml:",chardata"`
}

// RangeType declares the field order of the payload.
type RangeType struct {
	DataRecord DataRecord `xml:"DataRecord"`
}

// DataRecord lists the payload columns in order.
type DataRecord struct {
	Fields []Field `xml:"field"`
}

// Field is one declared payload column.
type Field struct {
	Name string `xml:"name,attr"`
	Href string `xml:"href,attr"`
}

// ExceptionReport is the OWS error document the service returns instead of
// a feature collection when a request is rejected.
type ExceptionReport struct {
	XMLName    xml.Name    `xml:"ExceptionReport"`
	Exceptions []Exception `xml:"Exception"`
}

// Exception is a single error entry in an ExceptionReport.
type Exception struct {
	ExceptionCode string   `xml:"exceptionCode,attr"`
	ExceptionText []string `xml:"ExceptionText"`
}
