// Package availxml decodes AvailRQ XML documents into the typed tree the
// validator consumes. It is shape-only: values travel as raw strings and
// every business rule stays out of this package.
package availxml

import (
	"encoding/xml"
	"fmt"
	"strings"

	"hotelavail/internal/domain"
)

type Parser struct{}

func New() *Parser { return &Parser{} }

// Wire model. Element and attribute names follow the upstream AvailRQ schema;
// pointer fields keep absent nodes distinguishable from present-but-empty
// ones. timeoutMilliseconds is carried by real requests but ignored here.
type availRQ struct {
	XMLName      xml.Name      `xml:"AvailRQ"`
	Language     *string       `xml:"source>languageCode"`
	OptionsQuota *string       `xml:"optionsQuota"`
	Parameters   []parameter   `xml:"Configuration>Parameters>Parameter"`
	SearchType   *string       `xml:"SearchType"`
	StartDate    *string       `xml:"StartDate"`
	EndDate      *string       `xml:"EndDate"`
	Currency     *string       `xml:"Currency"`
	Nationality  *string       `xml:"Nationality"`
	Market       *string       `xml:"Market"`
	Destinations []destination `xml:"AvailDestinations"`
	Rooms        []room        `xml:"Paxes"`
}

type parameter struct {
	Username  string `xml:"username,attr"`
	Password  string `xml:"password,attr"`
	CompanyID string `xml:"CompanyID,attr"`
}

type destination struct {
	Code string `xml:",chardata"`
}

type room struct {
	Occupants []occupant `xml:"Pax"`
}

type occupant struct {
	Age *string `xml:"age,attr"`
}

// Parse decodes one AvailRQ payload. Undecodable input, including a wrong
// root element, wraps domain.ErrMalformedDocument.
func (p *Parser) Parse(data []byte) (domain.AvailabilityDocument, error) {
	var rq availRQ
	if err := xml.Unmarshal(data, &rq); err != nil {
		return domain.AvailabilityDocument{}, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}

	doc := domain.AvailabilityDocument{
		Language:     trimmed(rq.Language),
		OptionsQuota: trimmed(rq.OptionsQuota),
		SearchType:   trimmed(rq.SearchType),
		StartDate:    trimmed(rq.StartDate),
		EndDate:      trimmed(rq.EndDate),
		Currency:     trimmed(rq.Currency),
		Nationality:  trimmed(rq.Nationality),
		Market:       trimmed(rq.Market),
	}
	// Only the first Parameter block carries credentials; extras are ignored.
	if len(rq.Parameters) > 0 {
		first := rq.Parameters[0]
		doc.Parameters = &domain.ParameterNode{
			Username:  first.Username,
			Password:  first.Password,
			CompanyID: first.CompanyID,
		}
	}
	for _, d := range rq.Destinations {
		doc.Destinations = append(doc.Destinations, domain.DestinationNode{Code: strings.TrimSpace(d.Code)})
	}
	for _, r := range rq.Rooms {
		node := domain.RoomNode{}
		for _, o := range r.Occupants {
			node.Occupants = append(node.Occupants, domain.OccupantNode{Age: o.Age})
		}
		doc.Rooms = append(doc.Rooms, node)
	}
	return doc, nil
}

// trimmed drops the whitespace pretty-printed documents carry inside element
// text while preserving the absent-vs-present distinction.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
