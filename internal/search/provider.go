package search

import (
	"context"
	"time"

	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/domain"
)

// RawLeg is one segment as reported by an upstream provider
type RawLeg struct {
	DepartureCode string
	DepartureTime time.Time
	ArrivalCode   string
	ArrivalTime   time.Time
	Carrier       string
	FlightNumber  string
}

// RawOffer is an un-normalized priced itinerary from an upstream provider.
// PriceAmount stays a string until normalization so provider adapters never
// deal with decimal parsing themselves.
type RawOffer struct {
	PriceAmount string
	Currency    string
	Carrier     string
	Legs        []RawLeg
	BookingURL  string
}

// OfferProvider is one upstream pricing source. The core depends only on
// this interface, never on a vendor SDK.
type OfferProvider interface {
	// Name identifies the provider in results and logs
	Name() string

	// IsConfigured reports whether the provider has credentials to be called
	IsConfigured() bool

	// Fetch returns raw offers for the query. An error or an empty slice
	// both mean "try the next provider" to the aggregator.
	Fetch(ctx context.Context, query domain.TravelQuery) ([]RawOffer, error)
}
