package domain

// Rules is the fixed business configuration for availability validation and
// pricing: allow-lists, limits, defaults and the pricing stub. Build one with
// DefaultRules, adjust fields before first use, and treat it as read-only
// afterwards; the validator and the builder both receive it by value.
type Rules struct {
	AllowedCurrencies    map[string]struct{}
	AllowedNationalities map[string]struct{}
	AllowedMarkets       map[string]struct{}
	AllowedLanguages     map[string]struct{}

	DefaultLanguage    string
	DefaultCurrency    string
	DefaultNationality string
	DefaultMarket      string

	// MaxDestinations bounds "Multiple" searches; "Single" always requires
	// exactly one destination.
	MaxDestinations int
	MaxRooms        int
	MaxRoomGuests   int

	MaxOptionsQuota     int
	DefaultOptionsQuota int

	// ChildAgeMax is the oldest age still classified as a child.
	ChildAgeMax int

	// MinAdvanceDays is the number of full days between today and the stay
	// start that is still rejected: a start date must be strictly later than
	// today+MinAdvanceDays.
	MinAdvanceDays int
	MinStayNights  int

	// EnforceChildAccompaniment rejects rooms holding children without an
	// adult. Off by default: the upstream integration computes the counts but
	// has never enforced the rule, and switching it on is a product decision.
	EnforceChildAccompaniment bool

	Pricing Pricing
}

// Pricing carries the fixed per-offer price source. A real deployment would
// resolve net price and markup per destination from a pricing backend; this
// integration prices every offer from one configured block.
type Pricing struct {
	NetPrice          float64
	NetCurrency       string
	MarkupPercent     float64
	ExchangeRate      float64
	SupplierHotelCode string
}

// DefaultRules returns the production rule set.
func DefaultRules() Rules {
	return Rules{
		AllowedCurrencies:    set("EUR", "USD", "GBP"),
		AllowedNationalities: set("US", "GB", "CA"),
		AllowedMarkets:       set("US", "GB", "CA", "ES"),
		AllowedLanguages:     set("en", "fr", "de", "es"),

		DefaultLanguage:    "en",
		DefaultCurrency:    "EUR",
		DefaultNationality: "US",
		DefaultMarket:      "ES",

		MaxDestinations: 10,
		MaxRooms:        5,
		MaxRoomGuests:   5,

		MaxOptionsQuota:     50,
		DefaultOptionsQuota: 20,

		ChildAgeMax:    5,
		MinAdvanceDays: 2,
		MinStayNights:  3,

		Pricing: Pricing{
			NetPrice:          132.42,
			NetCurrency:       "USD",
			MarkupPercent:     3.2,
			ExchangeRate:      1.0,
			SupplierHotelCode: "39971881",
		},
	}
}

func set(values ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (r Rules) LanguageAllowed(code string) bool {
	_, ok := r.AllowedLanguages[code]
	return ok
}

// ResolveCurrency returns v when it is an allowed currency and the default
// otherwise. Absent and invalid values fall back alike; currency never fails
// validation.
func (r Rules) ResolveCurrency(v string) string {
	if _, ok := r.AllowedCurrencies[v]; ok {
		return v
	}
	return r.DefaultCurrency
}

// ResolveNationality mirrors ResolveCurrency for nationality codes.
func (r Rules) ResolveNationality(v string) string {
	if _, ok := r.AllowedNationalities[v]; ok {
		return v
	}
	return r.DefaultNationality
}

// ResolveMarket mirrors ResolveCurrency for market codes.
func (r Rules) ResolveMarket(v string) string {
	if _, ok := r.AllowedMarkets[v]; ok {
		return v
	}
	return r.DefaultMarket
}

// Category classifies an occupant by age.
func (r Rules) Category(age int) Category {
	if age <= r.ChildAgeMax {
		return CategoryChild
	}
	return CategoryAdult
}
