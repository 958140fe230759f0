// Package domain holds the core travel-assistant types shared by every
// layer: the structured travel query, the dialogue session and the offer
// model. It has no dependencies on the other internal packages.
package domain

import (
	"fmt"
	"time"
)

// CabinClass is the requested service class, in the vocabulary the upstream
// search APIs accept
type CabinClass string

const (
	CabinEconomy        CabinClass = "ECONOMY"
	CabinPremiumEconomy CabinClass = "PREMIUM_ECONOMY"
	CabinBusiness       CabinClass = "BUSINESS"
	CabinFirst          CabinClass = "FIRST"
)

// Field names one required query field
type Field string

const (
	FieldOrigin      Field = "origin"
	FieldDestination Field = "destination"
	FieldDate        Field = "date"
)

// FieldReason pairs a missing field with the user-facing reason used when
// asking for it
type FieldReason struct {
	Field  Field  `json:"field"`
	Reason string `json:"reason"`
}

// TravelQuery is the structured trip built up across chat turns. Location
// fields hold IATA codes; a zero time means the field was not given. A
// flexible query carries a date range instead of exact dates and is searched
// through the calendar providers.
type TravelQuery struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`

	DepartureDate time.Time `json:"departure_date,omitempty"`
	ReturnDate    time.Time `json:"return_date,omitempty"`

	Flexible       bool      `json:"flexible"`
	DateRangeStart time.Time `json:"date_range_start,omitempty"`
	DateRangeEnd   time.Time `json:"date_range_end,omitempty"`

	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`

	Cabin CabinClass `json:"cabin,omitempty"`

	// Confirmed is set once the user explicitly approved this query for search
	Confirmed bool `json:"confirmed"`
}

// HasDates reports whether the query carries any usable date: an exact
// departure or a flexible range
func (q TravelQuery) HasDates() bool {
	if q.Flexible {
		return !q.DateRangeStart.IsZero() && !q.DateRangeEnd.IsZero()
	}
	return !q.DepartureDate.IsZero()
}

// MissingFields lists the required fields still absent, in the fixed order
// the assistant asks for them
func (q TravelQuery) MissingFields() []FieldReason {
	var missing []FieldReason
	if q.Origin == "" {
		missing = append(missing, FieldReason{Field: FieldOrigin, Reason: "de onde você vai sair"})
	}
	if q.Destination == "" {
		missing = append(missing, FieldReason{Field: FieldDestination, Reason: "para onde você quer ir"})
	}
	if !q.HasDates() {
		missing = append(missing, FieldReason{Field: FieldDate, Reason: "quando você quer viajar"})
	}
	return missing
}

// Complete reports whether the query can be searched
func (q TravelQuery) Complete() bool {
	return len(q.MissingFields()) == 0
}

// PassengerCount returns the total traveller count, defaulting to one adult
func (q TravelQuery) PassengerCount() int {
	total := q.Adults + q.Children + q.Infants
	if total == 0 {
		return 1
	}
	return total
}

// Fingerprint identifies the trip by route and dates. Two queries with equal
// fingerprints are answered by the same search result: passenger and cabin
// tweaks alone do not invalidate cached offers, a route or date change does.
func (q TravelQuery) Fingerprint() string {
	date := q.DepartureDate.Format("2006-01-02")
	if q.Flexible {
		date = fmt.Sprintf("%s..%s",
			q.DateRangeStart.Format("2006-01-02"), q.DateRangeEnd.Format("2006-01-02"))
	} else if !q.ReturnDate.IsZero() {
		date = fmt.Sprintf("%s..%s", date, q.ReturnDate.Format("2006-01-02"))
	}
	return fmt.Sprintf("%s|%s|%s", q.Origin, q.Destination, date)
}
