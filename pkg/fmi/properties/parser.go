package properties

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"fmiopen/pkg/fmi"
)

type componentList struct {
	Components []component `xml:"component"`
}

type component struct {
	Property propertyXML `xml:"ObservableProperty"`
}

type propertyXML struct {
	ID             string `xml:"id,attr"`
	Label          string `xml:"label"`
	BasePhenomenon string `xml:"basePhenomenon"`
	UOM            struct {
		Unit string `xml:"uom,attr"`
	} `xml:"uom"`
}

// ParseProperties decodes one observable property listing.
func ParseProperties(r io.Reader) ([]ObservableProperty, error) {
	var doc componentList
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", fmi.ErrMalformedResponse, err)
	}

	out := make([]ObservableProperty, 0, len(doc.Components))
	for _, c := range doc.Components {
		p := c.Property
		if p.ID == "" {
			return nil, fmt.Errorf("%w: observable property without id", fmi.ErrMalformedResponse)
		}
		out = append(out, ObservableProperty{
			ID:             p.ID,
			Label:          strings.TrimSpace(p.Label),
			BasePhenomenon: strings.TrimSpace(p.BasePhenomenon),
			Unit:           p.UOM.Unit,
		})
	}
	return out, nil
}
