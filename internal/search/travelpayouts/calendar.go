package travelpayouts

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/domain"
	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/search"
)

// CalendarProvider answers flexible queries from the departure-date price
// calendar. It is the first provider in the flexible cascade.
type CalendarProvider struct {
	client *Client
}

// NewCalendarProvider creates the calendar provider
func NewCalendarProvider(client *Client) *CalendarProvider {
	return &CalendarProvider{client: client}
}

// Name returns the provider identifier
func (p *CalendarProvider) Name() string {
	return "travelpayouts-calendar"
}

// IsConfigured reports whether the shared client has a token
func (p *CalendarProvider) IsConfigured() bool {
	return p.client.Configured()
}

type calendarResponse struct {
	Success bool `json:"success"`
	Data    map[string]struct {
		Price        int    `json:"price"`
		Airline      string `json:"airline"`
		FlightNumber int    `json:"flight_number"`
		DepartureAt  string `json:"departure_at"`
		ReturnAt     string `json:"return_at"`
	} `json:"data"`
}

// Fetch lists calendar prices for the month of the query's range start and
// keeps the dates inside the flexible range
func (p *CalendarProvider) Fetch(ctx context.Context, query domain.TravelQuery) ([]search.RawOffer, error) {
	params := url.Values{}
	params.Set("origin", query.Origin)
	params.Set("destination", query.Destination)
	params.Set("depart_date", query.DateRangeStart.Format("2006-01"))
	params.Set("calendar_type", "departure_date")
	params.Set("currency", "brl")

	var body calendarResponse
	if err := p.client.get(ctx, "/v1/prices/calendar", params, &body); err != nil {
		return nil, err
	}
	if !body.Success {
		return nil, fmt.Errorf("travelpayouts calendar reported failure")
	}

	var raw []search.RawOffer
	for date, entry := range body.Data {
		if entry.Price <= 0 {
			continue
		}
		departAt := entry.DepartureAt
		if departAt == "" {
			departAt = date
		}
		depart, ok := parseDeparture(departAt)
		if !ok || !inRange(depart, query.DateRangeStart, query.DateRangeEnd) {
			continue
		}
		raw = append(raw, search.RawOffer{
			PriceAmount: fmt.Sprintf("%d", entry.Price),
			Currency:    "BRL",
			Carrier:     entry.Airline,
			Legs: []search.RawLeg{{
				DepartureCode: query.Origin,
				DepartureTime: depart,
				ArrivalCode:   query.Destination,
				Carrier:       entry.Airline,
				FlightNumber:  fmt.Sprintf("%s%d", entry.Airline, entry.FlightNumber),
			}},
		})
	}

	return raw, nil
}
