package domain

import "time"

// SearchType selects between a one-destination lookup and a multi-destination
// fan-out. The two literals are the only accepted values.
type SearchType string

const (
	SearchSingle   SearchType = "Single"
	SearchMultiple SearchType = "Multiple"
)

// Category splits occupants into children and adults by age.
type Category string

const (
	CategoryChild Category = "Child"
	CategoryAdult Category = "Adult"
)

type Credentials struct {
	Username  string
	Password  string
	CompanyID string
}

type Destination struct {
	Code string
}

type Occupant struct {
	Age      int
	Category Category
}

// RoomOccupancy is the validated guest list of one room.
type RoomOccupancy struct {
	Occupants []Occupant
}

// Children counts the occupants classified as children.
func (r RoomOccupancy) Children() int {
	n := 0
	for _, o := range r.Occupants {
		if o.Category == CategoryChild {
			n++
		}
	}
	return n
}

// Adults counts the occupants classified as adults.
func (r RoomOccupancy) Adults() int {
	return len(r.Occupants) - r.Children()
}

// ValidatedRequest is the fully rule-checked form of one availability
// request: every field has passed its checks or been resolved to a default.
// Instances come out of validation and are treated as immutable afterwards.
type ValidatedRequest struct {
	Language     string
	OptionsQuota int
	Credentials  Credentials
	SearchType   SearchType
	Destinations []Destination
	StayStart    time.Time
	StayEnd      time.Time
	Currency     string
	Nationality  string
	Market       string
	Rooms        []RoomOccupancy
}
