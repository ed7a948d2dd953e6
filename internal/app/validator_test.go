package app_test

import (
	"errors"
	"testing"
	"time"

	"hotelavail/internal/app"
	"hotelavail/internal/domain"
)

// fixedNow pins the validator clock: "today" is 2025-03-10, so the earliest
// acceptable stay start is 2025-03-13.
var fixedNow = time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

func newValidator() *app.RequestValidator {
	return app.NewRequestValidatorAt(domain.DefaultRules(), func() time.Time { return fixedNow })
}

func newValidatorWith(rules domain.Rules) *app.RequestValidator {
	return app.NewRequestValidatorAt(rules, func() time.Time { return fixedNow })
}

// validDoc mirrors a typical inbound document: Multiple search over three
// destinations, two rooms, market absent.
func validDoc() domain.AvailabilityDocument {
	return domain.AvailabilityDocument{
		Language:     ptr("en"),
		OptionsQuota: ptr("20"),
		Parameters:   &domain.ParameterNode{Username: "traveler", Password: "secret", CompanyID: "123456"},
		SearchType:   ptr("Multiple"),
		StartDate:    ptr("13/03/2025"),
		EndDate:      ptr("16/03/2025"),
		Currency:     ptr("USD"),
		Nationality:  ptr("US"),
		Destinations: []domain.DestinationNode{{Code: "BCN"}, {Code: "MAD"}, {Code: "AGP"}},
		Rooms: []domain.RoomNode{
			{Occupants: []domain.OccupantNode{{Age: ptr("10")}, {Age: ptr("3")}}},
			{Occupants: []domain.OccupantNode{{Age: ptr("35")}, {Age: ptr("2")}}},
		},
	}
}

func ptr[T any](v T) *T { return &v }

func TestValidate_FullDocument(t *testing.T) {
	req, err := newValidator().Validate(validDoc())
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	if req.Language != "en" {
		t.Fatalf("language: %q", req.Language)
	}
	if req.Credentials.Username != "traveler" || req.Credentials.Password != "secret" || req.Credentials.CompanyID != "123456" {
		t.Fatalf("credentials: %+v", req.Credentials)
	}
	if req.SearchType != domain.SearchMultiple || len(req.Destinations) != 3 {
		t.Fatalf("search: %s with %d destinations", req.SearchType, len(req.Destinations))
	}
	if req.Destinations[0].Code != "BCN" {
		t.Fatalf("destinations: %+v", req.Destinations)
	}
	if !req.StayStart.Equal(time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)) ||
		!req.StayEnd.Equal(time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("stay: %v - %v", req.StayStart, req.StayEnd)
	}
	if req.OptionsQuota != 20 {
		t.Fatalf("quota: %d", req.OptionsQuota)
	}
	if req.Currency != "USD" || req.Nationality != "US" {
		t.Fatalf("currency/nationality: %s/%s", req.Currency, req.Nationality)
	}
	// Market was absent and resolves to the default.
	if req.Market != "ES" {
		t.Fatalf("market: %q", req.Market)
	}
	if len(req.Rooms) != 2 {
		t.Fatalf("rooms: %+v", req.Rooms)
	}
	first := req.Rooms[0]
	if first.Occupants[0].Age != 10 || first.Occupants[0].Category != domain.CategoryAdult {
		t.Fatalf("occupant 0: %+v", first.Occupants[0])
	}
	if first.Occupants[1].Age != 3 || first.Occupants[1].Category != domain.CategoryChild {
		t.Fatalf("occupant 1: %+v", first.Occupants[1])
	}
}

func TestValidate_LanguageDefaultsOnlyWhenAbsent(t *testing.T) {
	doc := validDoc()
	doc.Language = nil
	req, err := newValidator().Validate(doc)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if req.Language != "en" {
		t.Fatalf("absent language should default to en, got %q", req.Language)
	}

	// A present invalid code hard-fails; it never falls back.
	for _, bad := range []string{"zz", "", "EN"} {
		doc := validDoc()
		doc.Language = ptr(bad)
		_, err := newValidator().Validate(doc)
		var le domain.InvalidLanguageError
		if !errors.As(err, &le) {
			t.Fatalf("language %q: got %v, want InvalidLanguageError", bad, err)
		}
		if le.Code != bad {
			t.Fatalf("language %q: error carries %q", bad, le.Code)
		}
	}
}

func TestValidate_LanguageCheckedFirst(t *testing.T) {
	doc := validDoc()
	doc.Language = ptr("zz")
	doc.Parameters = nil // would also fail, but language wins
	_, err := newValidator().Validate(doc)
	if got := domain.ViolationRule(err); got != "invalid_language" {
		t.Fatalf("rule: %q", got)
	}
}

func TestValidate_MissingCredentials(t *testing.T) {
	mutate := []func(*domain.AvailabilityDocument){
		func(d *domain.AvailabilityDocument) { d.Parameters = nil },
		func(d *domain.AvailabilityDocument) { d.Parameters.Password = "" },
		func(d *domain.AvailabilityDocument) { d.Parameters.Username = "" },
		func(d *domain.AvailabilityDocument) { d.Parameters.CompanyID = "" },
	}
	for i, m := range mutate {
		doc := validDoc()
		m(&doc)
		_, err := newValidator().Validate(doc)
		if !errors.As(err, &domain.MissingCredentialsError{}) {
			t.Fatalf("case %d: got %v, want MissingCredentialsError", i, err)
		}
	}
}

func TestValidate_CredentialsCheckedBeforeSearchType(t *testing.T) {
	doc := validDoc()
	doc.Parameters = nil
	doc.SearchType = nil
	_, err := newValidator().Validate(doc)
	if got := domain.ViolationRule(err); got != "missing_credentials" {
		t.Fatalf("rule: %q", got)
	}
}

func TestValidate_SearchTypeRequired(t *testing.T) {
	for _, bad := range []*string{nil, ptr(""), ptr("Both"), ptr("single")} {
		doc := validDoc()
		doc.SearchType = bad
		_, err := newValidator().Validate(doc)
		var se domain.InvalidSearchTypeError
		if !errors.As(err, &se) {
			t.Fatalf("search type %v: got %v, want InvalidSearchTypeError", bad, err)
		}
	}
}

func TestValidate_SingleNeedsExactlyOneDestination(t *testing.T) {
	doc := validDoc()
	doc.SearchType = ptr("Single")
	_, err := newValidator().Validate(doc) // three destinations
	var de domain.DestinationCountError
	if !errors.As(err, &de) || de.SearchType != domain.SearchSingle {
		t.Fatalf("got %v", err)
	}
	if de.Error() != "If SearchType is 'Single', there must be exactly one destination." {
		t.Fatalf("message: %q", de.Error())
	}

	doc.Destinations = doc.Destinations[:1]
	if _, err := newValidator().Validate(doc); err != nil {
		t.Fatalf("one destination should pass: %v", err)
	}

	doc.Destinations = nil
	if _, err := newValidator().Validate(doc); !errors.As(err, &de) {
		t.Fatalf("zero destinations: got %v", err)
	}
}

func TestValidate_MultipleDestinationLimit(t *testing.T) {
	doc := validDoc()
	doc.Destinations = make([]domain.DestinationNode, 10)
	if _, err := newValidator().Validate(doc); err != nil {
		t.Fatalf("ten destinations should pass: %v", err)
	}

	doc.Destinations = make([]domain.DestinationNode, 11)
	_, err := newValidator().Validate(doc)
	var de domain.DestinationCountError
	if !errors.As(err, &de) || de.Limit != 10 {
		t.Fatalf("got %v", err)
	}
	if de.Error() != "If SearchType is 'Multiple', there can be a maximum of 10 destinations." {
		t.Fatalf("message: %q", de.Error())
	}
}

func TestValidate_DateFormat(t *testing.T) {
	cases := []struct {
		name  string
		start *string
		end   *string
		field string
	}{
		{"iso start", ptr("2025-03-13"), ptr("16/03/2025"), "StartDate"},
		{"garbage end", ptr("13/03/2025"), ptr("soon"), "EndDate"},
		{"absent start", nil, ptr("16/03/2025"), "StartDate"},
		{"empty end", ptr("13/03/2025"), ptr(""), "EndDate"},
	}
	for _, tc := range cases {
		doc := validDoc()
		doc.StartDate, doc.EndDate = tc.start, tc.end
		_, err := newValidator().Validate(doc)
		var de domain.InvalidDateError
		if !errors.As(err, &de) {
			t.Fatalf("%s: got %v, want InvalidDateError", tc.name, err)
		}
		if de.Field != tc.field {
			t.Fatalf("%s: field %q, want %q", tc.name, de.Field, tc.field)
		}
	}
}

func TestValidate_StartDateAdvanceWindow(t *testing.T) {
	// today+2 is still inside the window and rejected
	doc := validDoc()
	doc.StartDate = ptr("12/03/2025")
	doc.EndDate = ptr("15/03/2025")
	_, err := newValidator().Validate(doc)
	if !errors.As(err, &domain.StartDateTooSoonError{}) {
		t.Fatalf("got %v, want StartDateTooSoonError", err)
	}

	// today+3 is the first acceptable start
	doc.StartDate = ptr("13/03/2025")
	doc.EndDate = ptr("16/03/2025")
	if _, err := newValidator().Validate(doc); err != nil {
		t.Fatalf("err: %v", err)
	}

	// a past date fails the same rule
	doc.StartDate = ptr("01/01/2020")
	if _, err := newValidator().Validate(doc); !errors.As(err, &domain.StartDateTooSoonError{}) {
		t.Fatalf("past start: got %v", err)
	}
}

func TestValidate_MinimumStay(t *testing.T) {
	doc := validDoc()
	doc.EndDate = ptr("15/03/2025") // two nights
	_, err := newValidator().Validate(doc)
	var se domain.StayTooShortError
	if !errors.As(err, &se) || se.Nights != 2 {
		t.Fatalf("got %v", err)
	}

	// end before start is a negative stay, rejected by the same rule
	doc.EndDate = ptr("12/03/2025")
	if _, err := newValidator().Validate(doc); !errors.As(err, &se) {
		t.Fatalf("inverted range: got %v", err)
	}

	doc.EndDate = ptr("16/03/2025") // exactly three nights
	if _, err := newValidator().Validate(doc); err != nil {
		t.Fatalf("three nights should pass: %v", err)
	}
}

func TestValidate_DatesCheckedBeforeQuota(t *testing.T) {
	doc := validDoc()
	doc.StartDate = ptr("not a date")
	doc.OptionsQuota = ptr("999")
	_, err := newValidator().Validate(doc)
	if got := domain.ViolationRule(err); got != "invalid_date" {
		t.Fatalf("rule: %q", got)
	}
}

func TestValidate_OptionsQuota(t *testing.T) {
	cases := []struct {
		raw  *string
		want int
	}{
		{nil, 20},       // absent -> default
		{ptr(""), 20},   // empty -> default
		{ptr("0"), 20},  // non-positive -> default
		{ptr("-5"), 20}, // non-positive -> default
		{ptr("1"), 1},
		{ptr("50"), 50}, // ceiling inclusive
	}
	for _, tc := range cases {
		doc := validDoc()
		doc.OptionsQuota = tc.raw
		req, err := newValidator().Validate(doc)
		if err != nil {
			t.Fatalf("quota %v: err: %v", tc.raw, err)
		}
		if req.OptionsQuota != tc.want {
			t.Fatalf("quota %v: got %d, want %d", tc.raw, req.OptionsQuota, tc.want)
		}
	}

	doc := validDoc()
	doc.OptionsQuota = ptr("51")
	if _, err := newValidator().Validate(doc); !errors.As(err, &domain.QuotaExceededError{}) {
		t.Fatalf("51: got %v, want QuotaExceededError", err)
	}

	doc.OptionsQuota = ptr("abc")
	if _, err := newValidator().Validate(doc); !errors.As(err, &domain.InvalidQuotaError{}) {
		t.Fatalf("abc: got %v, want InvalidQuotaError", err)
	}
}

func TestValidate_SilentFallbacks(t *testing.T) {
	doc := validDoc()
	doc.Currency = ptr("JPY")
	doc.Nationality = ptr("FR")
	doc.Market = ptr("DE")
	req, err := newValidator().Validate(doc)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if req.Currency != "EUR" || req.Nationality != "US" || req.Market != "ES" {
		t.Fatalf("fallbacks: %s/%s/%s", req.Currency, req.Nationality, req.Market)
	}

	doc.Currency = nil
	doc.Nationality = nil
	doc.Market = ptr("US")
	req, err = newValidator().Validate(doc)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if req.Currency != "EUR" || req.Nationality != "US" || req.Market != "US" {
		t.Fatalf("mixed: %s/%s/%s", req.Currency, req.Nationality, req.Market)
	}
}

func TestValidate_RoomCount(t *testing.T) {
	doc := validDoc()
	doc.Rooms = make([]domain.RoomNode, 6)
	_, err := newValidator().Validate(doc)
	var re domain.RoomCountError
	if !errors.As(err, &re) || re.Count != 6 {
		t.Fatalf("got %v", err)
	}

	doc.Rooms = make([]domain.RoomNode, 5)
	if _, err := newValidator().Validate(doc); err != nil {
		t.Fatalf("five empty rooms should pass: %v", err)
	}
}

func TestValidate_RoomCapacityIsPerRoom(t *testing.T) {
	four := func() domain.RoomNode {
		return domain.RoomNode{Occupants: []domain.OccupantNode{
			{Age: ptr("30")}, {Age: ptr("28")}, {Age: ptr("8")}, {Age: ptr("4")},
		}}
	}

	// 4+4 occupants across two rooms is fine; only a single room may not
	// exceed the cap.
	doc := validDoc()
	doc.Rooms = []domain.RoomNode{four(), four()}
	if _, err := newValidator().Validate(doc); err != nil {
		t.Fatalf("err: %v", err)
	}

	six := domain.RoomNode{Occupants: []domain.OccupantNode{
		{Age: ptr("30")}, {Age: ptr("30")}, {Age: ptr("30")},
		{Age: ptr("30")}, {Age: ptr("30")}, {Age: ptr("30")},
	}}
	doc.Rooms = []domain.RoomNode{four(), six}
	_, err := newValidator().Validate(doc)
	var ce domain.RoomCapacityError
	if !errors.As(err, &ce) || ce.Room != 2 || ce.Count != 6 {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_OccupantAges(t *testing.T) {
	doc := validDoc()
	doc.Rooms = []domain.RoomNode{{Occupants: []domain.OccupantNode{
		{Age: nil}, // missing attribute counts as age zero
		{Age: ptr("5")},
		{Age: ptr("6")},
	}}}
	req, err := newValidator().Validate(doc)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	occ := req.Rooms[0].Occupants
	if occ[0].Age != 0 || occ[0].Category != domain.CategoryChild {
		t.Fatalf("missing age: %+v", occ[0])
	}
	if occ[1].Category != domain.CategoryChild || occ[2].Category != domain.CategoryAdult {
		t.Fatalf("boundary: %+v", occ)
	}

	for _, bad := range []string{"x", "-1", "3.5", ""} {
		doc := validDoc()
		doc.Rooms = []domain.RoomNode{{Occupants: []domain.OccupantNode{{Age: ptr(bad)}}}}
		_, err := newValidator().Validate(doc)
		var ae domain.InvalidOccupantAgeError
		if !errors.As(err, &ae) {
			t.Fatalf("age %q: got %v, want InvalidOccupantAgeError", bad, err)
		}
	}
}

func TestValidate_ChildAccompaniment(t *testing.T) {
	childrenOnly := []domain.RoomNode{{Occupants: []domain.OccupantNode{{Age: ptr("4")}, {Age: ptr("2")}}}}

	// default rules: computed but not enforced
	doc := validDoc()
	doc.Rooms = childrenOnly
	req, err := newValidator().Validate(doc)
	if err != nil {
		t.Fatalf("enforcement off: %v", err)
	}
	if req.Rooms[0].Children() != 2 || req.Rooms[0].Adults() != 0 {
		t.Fatalf("counts: %+v", req.Rooms[0])
	}

	// switched on: a children-only room is rejected
	rules := domain.DefaultRules()
	rules.EnforceChildAccompaniment = true
	doc = validDoc()
	doc.Rooms = childrenOnly
	_, err = newValidatorWith(rules).Validate(doc)
	var ue domain.UnaccompaniedChildrenError
	if !errors.As(err, &ue) || ue.Room != 1 {
		t.Fatalf("got %v", err)
	}

	// an adult in the room satisfies the rule
	doc.Rooms = []domain.RoomNode{{Occupants: []domain.OccupantNode{{Age: ptr("4")}, {Age: ptr("30")}}}}
	if _, err := newValidatorWith(rules).Validate(doc); err != nil {
		t.Fatalf("accompanied children: %v", err)
	}
}

func TestValidate_NoRoomsIsValid(t *testing.T) {
	doc := validDoc()
	doc.Rooms = nil
	req, err := newValidator().Validate(doc)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(req.Rooms) != 0 {
		t.Fatalf("rooms: %+v", req.Rooms)
	}
}
