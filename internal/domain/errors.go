package domain

import (
	"errors"
	"fmt"
)

// ErrMalformedDocument marks request payloads the parser could not decode at
// all. These are transport-level failures, not business-rule violations, and
// callers surface them differently.
var ErrMalformedDocument = errors.New("malformed availability document")

// RuleViolation is implemented by every business-rule error produced during
// request validation. Rule returns a stable snake_case identifier suitable
// for metric labels and programmatic handling; Error keeps the human-readable
// message the integration has always returned to callers.
type RuleViolation interface {
	error
	Rule() string
}

// IsRuleViolation reports whether err is (or wraps) a business-rule
// violation.
func IsRuleViolation(err error) bool {
	var rv RuleViolation
	return errors.As(err, &rv)
}

// ViolationRule returns the rule identifier carried by err, or "" when err is
// not a rule violation.
func ViolationRule(err error) string {
	var rv RuleViolation
	if errors.As(err, &rv) {
		return rv.Rule()
	}
	return ""
}

// InvalidLanguageError rejects a language code outside the allow-list. An
// absent language falls back to the default instead; only present, unknown
// codes reach this error.
type InvalidLanguageError struct {
	Code string
}

func (e InvalidLanguageError) Error() string {
	return fmt.Sprintf("Invalid language code: %s", e.Code)
}

func (InvalidLanguageError) Rule() string { return "invalid_language" }

// MissingCredentialsError rejects requests whose Parameter block is absent or
// has any of the three credential attributes empty.
type MissingCredentialsError struct{}

func (MissingCredentialsError) Error() string {
	return "Missing required parameters: password, username, or CompanyID."
}

func (MissingCredentialsError) Rule() string { return "missing_credentials" }

// InvalidSearchTypeError rejects an absent or unrecognized SearchType.
type InvalidSearchTypeError struct {
	Value string
}

func (InvalidSearchTypeError) Error() string {
	return "SearchType must be either 'Single' or 'Multiple'."
}

func (InvalidSearchTypeError) Rule() string { return "invalid_search_type" }

// DestinationCountError rejects a destination list that does not fit the
// search type: exactly one for Single, at most Limit for Multiple.
type DestinationCountError struct {
	SearchType SearchType
	Count      int
	Limit      int
}

func (e DestinationCountError) Error() string {
	if e.SearchType == SearchSingle {
		return "If SearchType is 'Single', there must be exactly one destination."
	}
	return fmt.Sprintf("If SearchType is 'Multiple', there can be a maximum of %d destinations.", e.Limit)
}

func (DestinationCountError) Rule() string { return "destination_count" }

// InvalidDateError rejects a stay date that is absent or not in DD/MM/YYYY
// form. Field names the offending element, StartDate or EndDate.
type InvalidDateError struct {
	Field string
	Value string
}

func (e InvalidDateError) Error() string {
	return fmt.Sprintf("%s must be a valid date in DD/MM/YYYY format.", e.Field)
}

func (InvalidDateError) Rule() string { return "invalid_date" }

// StartDateTooSoonError rejects stays starting on or before today plus the
// minimum advance window.
type StartDateTooSoonError struct {
	MinAdvance int
}

func (e StartDateTooSoonError) Error() string {
	return fmt.Sprintf("Start date must be at least %d days after today.", e.MinAdvance)
}

func (StartDateTooSoonError) Rule() string { return "start_date_too_soon" }

// StayTooShortError rejects stays shorter than the minimum number of nights.
// An end date before the start date fails here as well.
type StayTooShortError struct {
	Nights int
	Min    int
}

func (e StayTooShortError) Error() string {
	return fmt.Sprintf("Stay duration must be at least %d nights.", e.Min)
}

func (StayTooShortError) Rule() string { return "stay_too_short" }

// InvalidQuotaError rejects an optionsQuota value that is not a whole number.
type InvalidQuotaError struct {
	Value string
}

func (InvalidQuotaError) Error() string {
	return "OptionsQuota must be a whole number."
}

func (InvalidQuotaError) Rule() string { return "invalid_quota" }

// QuotaExceededError rejects an optionsQuota above the allowed ceiling.
type QuotaExceededError struct {
	Quota int
	Limit int
}

func (e QuotaExceededError) Error() string {
	return fmt.Sprintf("OptionsQuota must be no greater than %d.", e.Limit)
}

func (QuotaExceededError) Rule() string { return "quota_exceeded" }

// RoomCountError rejects requests with more rooms than allowed.
type RoomCountError struct {
	Count int
	Limit int
}

func (e RoomCountError) Error() string {
	return fmt.Sprintf("Number of rooms cannot exceed %d.", e.Limit)
}

func (RoomCountError) Rule() string { return "room_count" }

// RoomCapacityError rejects a single room holding more occupants than
// allowed. Room is the 1-based room position in the document.
type RoomCapacityError struct {
	Room  int
	Count int
	Limit int
}

func (e RoomCapacityError) Error() string {
	return fmt.Sprintf("Number of passengers in a room cannot exceed %d.", e.Limit)
}

func (RoomCapacityError) Rule() string { return "room_capacity" }

// InvalidOccupantAgeError rejects a Pax age attribute that is present but not
// a non-negative whole number.
type InvalidOccupantAgeError struct {
	Room  int
	Value string
}

func (InvalidOccupantAgeError) Error() string {
	return "Pax age must be a non-negative whole number."
}

func (InvalidOccupantAgeError) Rule() string { return "invalid_occupant_age" }

// UnaccompaniedChildrenError rejects a room that holds children but no adult.
// Only produced when accompaniment enforcement is switched on.
type UnaccompaniedChildrenError struct {
	Room int
}

func (e UnaccompaniedChildrenError) Error() string {
	return fmt.Sprintf("Room %d has children but no accompanying adult.", e.Room)
}

func (UnaccompaniedChildrenError) Rule() string { return "unaccompanied_children" }
