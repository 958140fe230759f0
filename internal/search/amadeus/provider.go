// Package amadeus implements the specific-date offer provider on top of the
// Amadeus Flight Offers Search API.
package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/domain"
	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/search"
)

const segmentTimeLayout = "2006-01-02T15:04:05"

// Provider implements search.OfferProvider for Amadeus
type Provider struct {
	apiKey    string
	apiSecret string
	baseURL   string
	client    *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewProvider creates an Amadeus provider. baseURL defaults to the test
// environment; production deployments override it in config.
func NewProvider(apiKey, apiSecret, baseURL string) *Provider {
	if baseURL == "" {
		baseURL = "https://test.api.amadeus.com"
	}
	return &Provider{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    &http.Client{Timeout: 60 * time.Second},
	}
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return "amadeus"
}

// IsConfigured checks if the provider has credentials
func (p *Provider) IsConfigured() bool {
	return p.apiKey != "" && p.apiSecret != ""
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type offersResponse struct {
	Data []struct {
		Itineraries []struct {
			Segments []struct {
				Departure struct {
					IataCode string `json:"iataCode"`
					At       string `json:"at"`
				} `json:"departure"`
				Arrival struct {
					IataCode string `json:"iataCode"`
					At       string `json:"at"`
				} `json:"arrival"`
				CarrierCode string `json:"carrierCode"`
				Number      string `json:"number"`
			} `json:"segments"`
		} `json:"itineraries"`
		Price struct {
			GrandTotal string `json:"grandTotal"`
			Currency   string `json:"currency"`
		} `json:"price"`
		ValidatingAirlineCodes []string `json:"validatingAirlineCodes"`
	} `json:"data"`
}

// Fetch searches flight offers for a fixed-date query
func (p *Provider) Fetch(ctx context.Context, query domain.TravelQuery) ([]search.RawOffer, error) {
	token, err := p.token(ctx)
	if err != nil {
		return nil, fmt.Errorf("amadeus auth: %w", err)
	}

	params := url.Values{}
	params.Set("originLocationCode", query.Origin)
	params.Set("destinationLocationCode", query.Destination)
	params.Set("departureDate", query.DepartureDate.Format("2006-01-02"))
	if !query.ReturnDate.IsZero() {
		params.Set("returnDate", query.ReturnDate.Format("2006-01-02"))
	}
	adults := query.Adults
	if adults == 0 {
		adults = 1
	}
	params.Set("adults", strconv.Itoa(adults))
	if query.Children > 0 {
		params.Set("children", strconv.Itoa(query.Children))
	}
	if query.Infants > 0 {
		params.Set("infants", strconv.Itoa(query.Infants))
	}
	if query.Cabin != "" {
		params.Set("travelClass", string(query.Cabin))
	}
	params.Set("currencyCode", "BRL")
	params.Set("max", "10")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.baseURL+"/v2/shopping/flight-offers?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("amadeus returned status %d", resp.StatusCode)
	}

	var offers offersResponse
	if err := json.NewDecoder(resp.Body).Decode(&offers); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	raw := make([]search.RawOffer, 0, len(offers.Data))
	for _, o := range offers.Data {
		var legs []search.RawLeg
		for _, it := range o.Itineraries {
			for _, seg := range it.Segments {
				depart, err := time.Parse(segmentTimeLayout, seg.Departure.At)
				if err != nil {
					continue
				}
				arrive, err := time.Parse(segmentTimeLayout, seg.Arrival.At)
				if err != nil {
					continue
				}
				legs = append(legs, search.RawLeg{
					DepartureCode: seg.Departure.IataCode,
					DepartureTime: depart,
					ArrivalCode:   seg.Arrival.IataCode,
					ArrivalTime:   arrive,
					Carrier:       seg.CarrierCode,
					FlightNumber:  seg.CarrierCode + seg.Number,
				})
			}
		}
		carrier := ""
		if len(o.ValidatingAirlineCodes) > 0 {
			carrier = o.ValidatingAirlineCodes[0]
		}
		raw = append(raw, search.RawOffer{
			PriceAmount: o.Price.GrandTotal,
			Currency:    o.Price.Currency,
			Carrier:     carrier,
			Legs:        legs,
		})
	}

	return raw, nil
}

// token returns a cached OAuth token, refreshing it via the client
// credentials grant when expired
func (p *Provider) token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.accessToken != "" && time.Now().Before(p.tokenExpiry) {
		return p.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", p.apiKey)
	form.Set("client_secret", p.apiSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/v1/security/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	p.accessToken = tok.AccessToken
	// refresh one minute before the reported expiry
	p.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn-60) * time.Second)

	return p.accessToken, nil
}
