// Package search aggregates flight offers from an ordered cascade of
// upstream providers. Providers are always attempted in their fixed priority
// order and a later provider is never consulted once an earlier one produced
// usable offers; later entries are deliberately cheaper or slower fallbacks,
// so the ordering is a contract, not an optimization.
package search

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/domain"
)

// ErrIncompleteQuery is returned when Search is invoked with required fields
// missing. This indicates a dialogue bug upstream, not a runtime condition:
// callers must validate before searching.
var ErrIncompleteQuery = errors.New("search: travel query is missing required fields")

// redirectSource names the synthetic provider used when every upstream
// source came back empty
const redirectSource = "redirect"

// Aggregator cascades over offer providers and normalizes their results
type Aggregator struct {
	fixed       []OfferProvider
	flexible    []OfferProvider
	timeout     time.Duration
	redirectURL string
}

// NewAggregator creates an aggregator. fixed is the provider order for
// specific-date queries, flexible the order for date-range queries. timeout
// bounds each individual provider call. redirectURL is the generic search
// widget the placeholder offer points at.
func NewAggregator(fixed, flexible []OfferProvider, timeout time.Duration, redirectURL string) *Aggregator {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Aggregator{
		fixed:       fixed,
		flexible:    flexible,
		timeout:     timeout,
		redirectURL: redirectURL,
	}
}

// Search tries each provider for the query's mode in order and returns the
// first non-empty normalized result. When every provider errors or returns
// nothing, the result carries exactly one redirect-placeholder offer so the
// caller always has something renderable.
func (a *Aggregator) Search(ctx context.Context, query domain.TravelQuery) (*domain.SearchResult, error) {
	if !query.Complete() {
		return nil, ErrIncompleteQuery
	}

	providers := a.fixed
	mode := "fixed"
	if query.Flexible {
		providers = a.flexible
		mode = "flexible"
	}

	for _, p := range providers {
		if !p.IsConfigured() {
			log.Debug().Str("provider", p.Name()).Msg("provider not configured, skipping")
			continue
		}

		raw, err := a.fetch(ctx, p, query)
		if err != nil {
			log.Warn().Err(err).Str("provider", p.Name()).Str("mode", mode).Msg("provider failed, trying next")
			continue
		}

		offers := normalizeOffers(raw, p.Name())
		if len(offers) == 0 {
			log.Debug().Str("provider", p.Name()).Msg("provider returned no usable offers")
			continue
		}

		log.Info().
			Str("provider", p.Name()).
			Str("mode", mode).
			Int("offers", len(offers)).
			Msg("search satisfied")

		return &domain.SearchResult{
			Offers:    offers,
			Query:     query,
			Source:    p.Name(),
			Timestamp: time.Now(),
		}, nil
	}

	log.Info().Str("mode", mode).Msg("all providers exhausted, returning redirect placeholder")
	return &domain.SearchResult{
		Offers:    []domain.Offer{a.redirectOffer(query)},
		Query:     query,
		Source:    redirectSource,
		Timestamp: time.Now(),
	}, nil
}

// ProviderInfo describes one registered provider
type ProviderInfo struct {
	Name       string `json:"name"`
	Mode       string `json:"mode"`
	Configured bool   `json:"configured"`
}

// ProvidersInfo lists the registered providers in cascade order per mode
func (a *Aggregator) ProvidersInfo() []ProviderInfo {
	infos := make([]ProviderInfo, 0, len(a.fixed)+len(a.flexible))
	for _, p := range a.fixed {
		infos = append(infos, ProviderInfo{Name: p.Name(), Mode: "fixed", Configured: p.IsConfigured()})
	}
	for _, p := range a.flexible {
		infos = append(infos, ProviderInfo{Name: p.Name(), Mode: "flexible", Configured: p.IsConfigured()})
	}
	return infos
}

// fetch calls one provider with its own timeout. A panic inside a provider
// adapter is recovered and reported as an error so the cascade continues.
func (a *Aggregator) fetch(ctx context.Context, p OfferProvider, query domain.TravelQuery) (raw []RawOffer, err error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			raw = nil
			err = fmt.Errorf("provider %s panicked: %v", p.Name(), r)
		}
	}()

	return p.Fetch(ctx, query)
}

// redirectOffer synthesizes the zero-price placeholder pointing at the
// generic search page for the query's route
func (a *Aggregator) redirectOffer(query domain.TravelQuery) domain.Offer {
	link := a.redirectURL
	if u, err := url.Parse(a.redirectURL); err == nil {
		q := u.Query()
		q.Set("origin", query.Origin)
		q.Set("destination", query.Destination)
		if !query.DepartureDate.IsZero() {
			q.Set("depart_date", query.DepartureDate.Format("2006-01-02"))
		}
		if !query.ReturnDate.IsZero() {
			q.Set("return_date", query.ReturnDate.Format("2006-01-02"))
		}
		u.RawQuery = q.Encode()
		link = u.String()
	}

	return domain.Offer{
		ID:                  newOfferID(),
		Currency:            "BRL",
		Source:              redirectSource,
		BookingURL:          link,
		RedirectPlaceholder: true,
	}
}
