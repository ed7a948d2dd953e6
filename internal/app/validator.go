package app

import (
	"strconv"
	"time"

	"hotelavail/internal/domain"
)

// dateLayout is the wire format of StartDate and EndDate.
const dateLayout = "02/01/2006"

// RequestValidator applies the availability business rules to a parsed
// document. Checks run in a fixed order and the first violated rule wins, so
// a request failing several rules always reports the same one.
type RequestValidator struct {
	rules domain.Rules
	now   func() time.Time
}

func NewRequestValidator(rules domain.Rules) *RequestValidator {
	return NewRequestValidatorAt(rules, time.Now)
}

// NewRequestValidatorAt pins the clock the date rules compare against.
// Production code uses NewRequestValidator; tests inject a fixed clock to
// keep the advance-window checks deterministic.
func NewRequestValidatorAt(rules domain.Rules, now func() time.Time) *RequestValidator {
	return &RequestValidator{rules: rules, now: now}
}

// Validate runs the full rule cascade over doc and returns the typed request.
// Every returned error is a domain.RuleViolation.
func (v *RequestValidator) Validate(doc domain.AvailabilityDocument) (domain.ValidatedRequest, error) {
	var req domain.ValidatedRequest

	// 1) Language: absent falls back to the default, anything present must be
	// on the allow-list. Invalid codes never default.
	lang := v.rules.DefaultLanguage
	if doc.Language != nil {
		lang = *doc.Language
	}
	if !v.rules.LanguageAllowed(lang) {
		return req, domain.InvalidLanguageError{Code: lang}
	}
	req.Language = lang

	// 2) Credentials: the first Parameter block must carry all three
	// attributes non-empty.
	if doc.Parameters == nil ||
		doc.Parameters.Password == "" || doc.Parameters.Username == "" || doc.Parameters.CompanyID == "" {
		return req, domain.MissingCredentialsError{}
	}
	req.Credentials = domain.Credentials{
		Username:  doc.Parameters.Username,
		Password:  doc.Parameters.Password,
		CompanyID: doc.Parameters.CompanyID,
	}

	// 3) Search type and destination count.
	st, err := v.searchType(doc.SearchType)
	if err != nil {
		return req, err
	}
	switch st {
	case domain.SearchSingle:
		if len(doc.Destinations) != 1 {
			return req, domain.DestinationCountError{SearchType: st, Count: len(doc.Destinations), Limit: 1}
		}
	case domain.SearchMultiple:
		if len(doc.Destinations) > v.rules.MaxDestinations {
			return req, domain.DestinationCountError{SearchType: st, Count: len(doc.Destinations), Limit: v.rules.MaxDestinations}
		}
	}
	req.SearchType = st
	req.Destinations = destinations(doc.Destinations)

	// 4) Dates: both must parse, the stay must start after the advance window
	// and run for the minimum number of nights.
	start, err := parseDate("StartDate", doc.StartDate)
	if err != nil {
		return req, err
	}
	end, err := parseDate("EndDate", doc.EndDate)
	if err != nil {
		return req, err
	}
	earliest := today(v.now()).AddDate(0, 0, v.rules.MinAdvanceDays)
	if !start.After(earliest) {
		return req, domain.StartDateTooSoonError{MinAdvance: v.rules.MinAdvanceDays}
	}
	nights := int(end.Sub(start) / (24 * time.Hour))
	if nights < v.rules.MinStayNights {
		return req, domain.StayTooShortError{Nights: nights, Min: v.rules.MinStayNights}
	}
	req.StayStart, req.StayEnd = start, end

	// 5) Options quota: absent or non-positive defaults, then the ceiling
	// applies.
	quota, err := v.optionsQuota(doc.OptionsQuota)
	if err != nil {
		return req, err
	}
	req.OptionsQuota = quota

	// 6) Currency, nationality and market resolve silently: invalid values
	// fall back to defaults instead of failing.
	req.Currency = v.rules.ResolveCurrency(deref(doc.Currency))
	req.Nationality = v.rules.ResolveNationality(deref(doc.Nationality))
	req.Market = v.rules.ResolveMarket(deref(doc.Market))

	// 7) Rooms and occupants.
	rooms, err := v.rooms(doc.Rooms)
	if err != nil {
		return req, err
	}
	req.Rooms = rooms

	return req, nil
}

func (v *RequestValidator) searchType(raw *string) (domain.SearchType, error) {
	if raw != nil {
		switch st := domain.SearchType(*raw); st {
		case domain.SearchSingle, domain.SearchMultiple:
			return st, nil
		}
	}
	return "", domain.InvalidSearchTypeError{Value: deref(raw)}
}

func (v *RequestValidator) optionsQuota(raw *string) (int, error) {
	quota := 0
	if raw != nil && *raw != "" {
		n, err := strconv.Atoi(*raw)
		if err != nil {
			return 0, domain.InvalidQuotaError{Value: *raw}
		}
		quota = n
	}
	if quota < 1 {
		quota = v.rules.DefaultOptionsQuota
	}
	if quota > v.rules.MaxOptionsQuota {
		return 0, domain.QuotaExceededError{Quota: quota, Limit: v.rules.MaxOptionsQuota}
	}
	return quota, nil
}

func (v *RequestValidator) rooms(nodes []domain.RoomNode) ([]domain.RoomOccupancy, error) {
	if len(nodes) > v.rules.MaxRooms {
		return nil, domain.RoomCountError{Count: len(nodes), Limit: v.rules.MaxRooms}
	}
	out := make([]domain.RoomOccupancy, 0, len(nodes))
	for i, node := range nodes {
		// Capacity is per room, not cumulative across the request.
		if len(node.Occupants) > v.rules.MaxRoomGuests {
			return nil, domain.RoomCapacityError{Room: i + 1, Count: len(node.Occupants), Limit: v.rules.MaxRoomGuests}
		}
		room := domain.RoomOccupancy{Occupants: make([]domain.Occupant, 0, len(node.Occupants))}
		for _, occ := range node.Occupants {
			age, err := occupantAge(i+1, occ.Age)
			if err != nil {
				return nil, err
			}
			room.Occupants = append(room.Occupants, domain.Occupant{Age: age, Category: v.rules.Category(age)})
		}
		if v.rules.EnforceChildAccompaniment && room.Children() > 0 && room.Adults() == 0 {
			return nil, domain.UnaccompaniedChildrenError{Room: i + 1}
		}
		out = append(out, room)
	}
	return out, nil
}

// occupantAge reads the age attribute of one Pax. A missing attribute counts
// as age zero.
func occupantAge(room int, raw *string) (int, error) {
	if raw == nil {
		return 0, nil
	}
	age, err := strconv.Atoi(*raw)
	if err != nil || age < 0 {
		return 0, domain.InvalidOccupantAgeError{Room: room, Value: deref(raw)}
	}
	return age, nil
}

func parseDate(field string, raw *string) (time.Time, error) {
	if raw == nil || *raw == "" {
		return time.Time{}, domain.InvalidDateError{Field: field, Value: deref(raw)}
	}
	t, err := time.Parse(dateLayout, *raw)
	if err != nil {
		return time.Time{}, domain.InvalidDateError{Field: field, Value: *raw}
	}
	return t, nil
}

// today truncates now to midnight UTC so the advance-window rule does not
// depend on the time of day the request arrives.
func today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func destinations(nodes []domain.DestinationNode) []domain.Destination {
	out := make([]domain.Destination, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, domain.Destination{Code: n.Code})
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
