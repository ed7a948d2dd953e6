package domain

// AvailabilityDocument is the typed form of one inbound AvailRQ document as
// produced by a DocumentParser. Values travel as raw strings; pointer fields
// record element and attribute presence, with nil meaning the node was absent
// from the document, so the validator can tell an omitted field from a
// present-but-empty or invalid one.
type AvailabilityDocument struct {
	Language     *string
	OptionsQuota *string
	Parameters   *ParameterNode
	SearchType   *string
	StartDate    *string
	EndDate      *string
	Currency     *string
	Nationality  *string
	Market       *string
	Destinations []DestinationNode
	Rooms        []RoomNode
}

// ParameterNode holds the credential attributes of the first Parameter
// element. Absent attributes surface as empty strings; the distinction does
// not matter here because empty credentials are rejected either way.
type ParameterNode struct {
	Username  string
	Password  string
	CompanyID string
}

type DestinationNode struct {
	Code string
}

type RoomNode struct {
	Occupants []OccupantNode
}

// OccupantNode is one Pax element. Age is nil when the age attribute is
// missing entirely.
type OccupantNode struct {
	Age *string
}
