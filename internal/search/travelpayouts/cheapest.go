package travelpayouts

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/domain"
	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/search"
)

// CheapestProvider answers flexible queries from the cheapest-tickets
// endpoint. It runs after the calendar provider.
type CheapestProvider struct {
	client *Client
}

// NewCheapestProvider creates the cheapest-tickets provider
func NewCheapestProvider(client *Client) *CheapestProvider {
	return &CheapestProvider{client: client}
}

// Name returns the provider identifier
func (p *CheapestProvider) Name() string {
	return "travelpayouts-cheapest"
}

// IsConfigured reports whether the shared client has a token
func (p *CheapestProvider) IsConfigured() bool {
	return p.client.Configured()
}

type cheapestResponse struct {
	Success bool `json:"success"`
	Data    map[string]map[string]struct {
		Price        int    `json:"price"`
		Airline      string `json:"airline"`
		FlightNumber int    `json:"flight_number"`
		DepartureAt  string `json:"departure_at"`
		ReturnAt     string `json:"return_at"`
	} `json:"data"`
}

// Fetch lists the cheapest tickets for the month of the query's range start
func (p *CheapestProvider) Fetch(ctx context.Context, query domain.TravelQuery) ([]search.RawOffer, error) {
	params := url.Values{}
	params.Set("origin", query.Origin)
	params.Set("destination", query.Destination)
	params.Set("depart_date", query.DateRangeStart.Format("2006-01"))
	params.Set("currency", "brl")

	var body cheapestResponse
	if err := p.client.get(ctx, "/v1/prices/cheap", params, &body); err != nil {
		return nil, err
	}
	if !body.Success {
		return nil, fmt.Errorf("travelpayouts cheapest reported failure")
	}

	var raw []search.RawOffer
	for _, byIndex := range body.Data {
		for _, entry := range byIndex {
			if entry.Price <= 0 {
				continue
			}
			depart, ok := parseDeparture(entry.DepartureAt)
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
	}

	return raw, nil
}
