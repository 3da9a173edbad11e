package stations

import (
	"encoding/xml"
)

type featureCollection struct {
	XMLName xml.Name `xml:"FeatureCollection"`
	Members []member `xml:"member"`
}

type member struct {
	Facility facility `xml:"EnvironmentalMonitoringFacility"`
}

type facility struct {
	GmlID      string     `xml:"id,attr"`
	Identifier string     `xml:"identifier"`
	Names      []gmlName  `xml:"name"`
	Point      gmlPoint   `xml:"representativePoint>Point"`
	Activity   timePeriod `xml:"operationalActivityPeriod>OperationalActivityPeriod>activityTime>TimePeriod"`
	BelongsTo  []network  `xml:"belongsTo"`
}

type gmlName struct {
	CodeSpace string `xml:"codeSpace,attr"`
	Value     string `xml:",chardata"`
}

type gmlPoint struct {
	SrsName string `xml:"srsName,attr"`
	Pos     string `xml:"pos"`
}

type timePeriod struct {
	BeginPosition string `xml:"beginPosition"`
	EndPosition   string `xml:"endPosition"`
}

type network struct {
	Title string `xml:"title,attr"`
}
