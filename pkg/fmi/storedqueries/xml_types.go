package storedqueries

import (
	"encoding/xml"
)

type listResponse struct {
	XMLName xml.Name      `xml:"ListStoredQueriesResponse"`
	Queries []listedQuery `xml:"StoredQuery"`
}

type listedQuery struct {
	ID                string `xml:"id,attr"`
	Title             string `xml:"Title"`
	ReturnFeatureType string `xml:"ReturnFeatureType"`
}

type describeResponse struct {
	XMLName      xml.Name      `xml:"DescribeStoredQueriesResponse"`
	Descriptions []description `xml:"StoredQueryDescription"`
}

type description struct {
	ID         string         `xml:"id,attr"`
	Abstract   string         `xml:"Abstract"`
	Parameters []parameterXML `xml:"Parameter"`
}

type parameterXML struct {
	Name     string `xml:"name,attr"`
	Type     string `xml:"type,attr"`
	Title    string `xml:"Title"`
	Abstract string `xml:"Abstract"`
}
