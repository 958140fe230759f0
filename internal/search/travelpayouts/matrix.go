package travelpayouts

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/domain"
	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/search"
)

// MatrixProvider answers flexible queries from the month price matrix. It is
// the last, cheapest fallback of the flexible cascade.
type MatrixProvider struct {
	client *Client
}

// NewMatrixProvider creates the month-matrix provider
func NewMatrixProvider(client *Client) *MatrixProvider {
	return &MatrixProvider{client: client}
}

// Name returns the provider identifier
func (p *MatrixProvider) Name() string {
	return "travelpayouts-matrix"
}

// IsConfigured reports whether the shared client has a token
func (p *MatrixProvider) IsConfigured() bool {
	return p.client.Configured()
}

type matrixResponse struct {
	Success bool `json:"success"`
	Data    []struct {
		DepartDate string `json:"depart_date"`
		ReturnDate string `json:"return_date"`
		Value      int    `json:"value"`
		Gate       string `json:"gate"`
	} `json:"data"`
}

// Fetch lists month-matrix prices for the month of the query's range start
func (p *MatrixProvider) Fetch(ctx context.Context, query domain.TravelQuery) ([]search.RawOffer, error) {
	params := url.Values{}
	params.Set("origin", query.Origin)
	params.Set("destination", query.Destination)
	params.Set("month", query.DateRangeStart.Format("2006-01")+"-01")
	params.Set("currency", "brl")
	params.Set("show_to_affiliates", "true")

	var body matrixResponse
	if err := p.client.get(ctx, "/v2/prices/month-matrix", params, &body); err != nil {
		return nil, err
	}
	if !body.Success {
		return nil, fmt.Errorf("travelpayouts month-matrix reported failure")
	}

	var raw []search.RawOffer
	for _, entry := range body.Data {
		if entry.Value <= 0 {
			continue
		}
		depart, ok := parseDeparture(entry.DepartDate)
		if !ok || !inRange(depart, query.DateRangeStart, query.DateRangeEnd) {
			continue
		}
		raw = append(raw, search.RawOffer{
			PriceAmount: fmt.Sprintf("%d", entry.Value),
			Currency:    "BRL",
			Legs: []search.RawLeg{{
				DepartureCode: query.Origin,
				DepartureTime: depart,
				ArrivalCode:   query.Destination,
			}},
		})
	}

	return raw, nil
}
