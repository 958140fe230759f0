// Package travelpayouts implements the flexible-date provider family on top
// of the TravelPayouts data API: the departure-date calendar, the cheapest
// tickets endpoint and the month matrix. The three endpoints share one
// authenticated client and are registered with the aggregator in that order.
package travelpayouts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const departureTimeLayout = "2006-01-02T15:04:05Z07:00"

// Client is the shared TravelPayouts API client
type Client struct {
	token   string
	baseURL string
	http    *http.Client
}

// NewClient creates a TravelPayouts client. baseURL defaults to the public
// API host.
func NewClient(token, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.travelpayouts.com"
	}
	return &Client{
		token:   token,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// Configured reports whether an access token is present
func (c *Client) Configured() bool {
	return c.token != ""
}

// get performs an authenticated GET and decodes the JSON body into out
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Access-Token", c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("travelpayouts returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// parseDeparture accepts both the RFC3339-ish timestamps and bare dates the
// data API mixes across endpoints
func parseDeparture(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(departureTimeLayout, value); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// inRange reports whether the date falls inside the inclusive range
func inRange(date, start, end time.Time) bool {
	if start.IsZero() || end.IsZero() {
		return true
	}
	return !date.Before(start) && date.Before(end.AddDate(0, 0, 1))
}
