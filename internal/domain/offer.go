package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Leg is one flight segment of an offer
type Leg struct {
	DepartureCode string    `json:"departure_code"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalCode   string    `json:"arrival_code"`
	ArrivalTime   time.Time `json:"arrival_time"`
	Carrier       string    `json:"carrier"`
	FlightNumber  string    `json:"flight_number"`
}

// Offer is a single priced itinerary returned by an upstream provider. A
// redirect placeholder is a synthetic zero-price offer pointing at a generic
// search page, produced when no provider returned real offers.
type Offer struct {
	ID                  string          `json:"id"`
	Price               decimal.Decimal `json:"price"`
	Currency            string          `json:"currency"`
	Carrier             string          `json:"carrier"`
	Legs                []Leg           `json:"legs"`
	Source              string          `json:"source"`
	BookingURL          string          `json:"booking_url,omitempty"`
	RedirectPlaceholder bool            `json:"redirect_placeholder"`
}

// SearchResult is the outcome of one aggregator run, offers cheapest first
type SearchResult struct {
	Offers    []Offer     `json:"offers"`
	Query     TravelQuery `json:"query"`
	Source    string      `json:"source"`
	Timestamp time.Time   `json:"timestamp"`
}

// ChatReply is what one chat turn returns to the HTTP layer
type ChatReply struct {
	Message   string  `json:"message"`
	Offers    []Offer `json:"offers"`
	ShowPanel bool    `json:"show_panel"`
	SessionID string  `json:"session_id"`
}
