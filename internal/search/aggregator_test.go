package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/domain"
)

// stubProvider counts its calls and returns canned results
type stubProvider struct {
	name       string
	configured bool
	offers     []RawOffer
	err        error
	panics     bool
	calls      int
}

func (s *stubProvider) Name() string       { return s.name }
func (s *stubProvider) IsConfigured() bool { return s.configured }

func (s *stubProvider) Fetch(_ context.Context, _ domain.TravelQuery) ([]RawOffer, error) {
	s.calls++
	if s.panics {
		panic("provider exploded")
	}
	return s.offers, s.err
}

func rawOffer(price, carrier string) RawOffer {
	return RawOffer{PriceAmount: price, Currency: "BRL", Carrier: carrier}
}

func fixedQuery() domain.TravelQuery {
	return domain.TravelQuery{
		Origin:        "GRU",
		Destination:   "GIG",
		DepartureDate: time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
	}
}

func flexibleQuery() domain.TravelQuery {
	return domain.TravelQuery{
		Origin:         "GRU",
		Destination:    "GIG",
		Flexible:       true,
		DepartureDate:  time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		DateRangeStart: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		DateRangeEnd:   time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestSearch_IncompleteQuery(t *testing.T) {
	a := NewAggregator(nil, nil, time.Second, "https://example.com/search")

	_, err := a.Search(context.Background(), domain.TravelQuery{Origin: "GRU"})

	assert.ErrorIs(t, err, ErrIncompleteQuery)
}

func TestSearch_FirstProviderWins(t *testing.T) {
	first := &stubProvider{name: "first", configured: true, offers: []RawOffer{rawOffer("500.00", "G3")}}
	second := &stubProvider{name: "second", configured: true, offers: []RawOffer{rawOffer("100.00", "LA")}}
	a := NewAggregator([]OfferProvider{first, second}, nil, time.Second, "https://example.com/search")

	result, err := a.Search(context.Background(), fixedQuery())

	require.NoError(t, err)
	assert.Equal(t, "first", result.Source)
	require.Len(t, result.Offers, 1)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls, "a later provider is never consulted after a hit")
}

func TestSearch_CascadeFallsThrough(t *testing.T) {
	t.Run("on error", func(t *testing.T) {
		broken := &stubProvider{name: "broken", configured: true, err: errors.New("upstream 500")}
		good := &stubProvider{name: "good", configured: true, offers: []RawOffer{rawOffer("300.00", "AD")}}
		a := NewAggregator([]OfferProvider{broken, good}, nil, time.Second, "https://example.com/search")

		result, err := a.Search(context.Background(), fixedQuery())

		require.NoError(t, err)
		assert.Equal(t, "good", result.Source)
		assert.Equal(t, 1, broken.calls)
	})

	t.Run("on empty result", func(t *testing.T) {
		empty := &stubProvider{name: "empty", configured: true}
		good := &stubProvider{name: "good", configured: true, offers: []RawOffer{rawOffer("300.00", "AD")}}
		a := NewAggregator([]OfferProvider{empty, good}, nil, time.Second, "https://example.com/search")

		result, err := a.Search(context.Background(), fixedQuery())

		require.NoError(t, err)
		assert.Equal(t, "good", result.Source)
	})

	t.Run("on panic", func(t *testing.T) {
		angry := &stubProvider{name: "angry", configured: true, panics: true}
		good := &stubProvider{name: "good", configured: true, offers: []RawOffer{rawOffer("300.00", "AD")}}
		a := NewAggregator([]OfferProvider{angry, good}, nil, time.Second, "https://example.com/search")

		result, err := a.Search(context.Background(), fixedQuery())

		require.NoError(t, err)
		assert.Equal(t, "good", result.Source)
	})

	t.Run("unconfigured providers are skipped without a call", func(t *testing.T) {
		unset := &stubProvider{name: "unset", configured: false, offers: []RawOffer{rawOffer("1.00", "G3")}}
		good := &stubProvider{name: "good", configured: true, offers: []RawOffer{rawOffer("300.00", "AD")}}
		a := NewAggregator([]OfferProvider{unset, good}, nil, time.Second, "https://example.com/search")

		result, err := a.Search(context.Background(), fixedQuery())

		require.NoError(t, err)
		assert.Equal(t, "good", result.Source)
		assert.Equal(t, 0, unset.calls)
	})
}

func TestSearch_ModeSelectsCascade(t *testing.T) {
	fixed := &stubProvider{name: "fixed", configured: true, offers: []RawOffer{rawOffer("500.00", "G3")}}
	flex := &stubProvider{name: "flex", configured: true, offers: []RawOffer{rawOffer("200.00", "LA")}}
	a := NewAggregator([]OfferProvider{fixed}, []OfferProvider{flex}, time.Second, "https://example.com/search")

	result, err := a.Search(context.Background(), flexibleQuery())

	require.NoError(t, err)
	assert.Equal(t, "flex", result.Source)
	assert.Equal(t, 0, fixed.calls)
}

func TestSearch_RedirectFallback(t *testing.T) {
	broken := &stubProvider{name: "broken", configured: true, err: errors.New("down")}
	empty := &stubProvider{name: "empty", configured: true}
	a := NewAggregator([]OfferProvider{broken, empty}, nil, time.Second, "https://www.aviasales.com/search")

	query := fixedQuery()
	query.ReturnDate = time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)
	result, err := a.Search(context.Background(), query)

	require.NoError(t, err)
	assert.Equal(t, "redirect", result.Source)
	require.Len(t, result.Offers, 1, "exactly one placeholder, never zero offers")

	offer := result.Offers[0]
	assert.True(t, offer.RedirectPlaceholder)
	assert.True(t, offer.Price.IsZero())
	assert.Equal(t, "BRL", offer.Currency)
	assert.Contains(t, offer.BookingURL, "origin=GRU")
	assert.Contains(t, offer.BookingURL, "destination=GIG")
	assert.Contains(t, offer.BookingURL, "depart_date=2025-05-10")
	assert.Contains(t, offer.BookingURL, "return_date=2025-05-20")
}

func TestNormalizeOffers(t *testing.T) {
	depart := time.Date(2025, 5, 10, 8, 0, 0, 0, time.UTC)

	t.Run("sorted by price then legs then departure", func(t *testing.T) {
		raw := []RawOffer{
			{PriceAmount: "350.00", Currency: "BRL", Carrier: "G3", Legs: []RawLeg{
				{DepartureCode: "GRU", DepartureTime: depart},
				{DepartureCode: "CNF", DepartureTime: depart.Add(4 * time.Hour)},
			}},
			{PriceAmount: "350.00", Currency: "BRL", Carrier: "LA", Legs: []RawLeg{
				{DepartureCode: "GRU", DepartureTime: depart.Add(2 * time.Hour)},
			}},
			{PriceAmount: "199.90", Currency: "BRL", Carrier: "AD", Legs: []RawLeg{
				{DepartureCode: "GRU", DepartureTime: depart},
			}},
		}

		offers := normalizeOffers(raw, "amadeus")

		require.Len(t, offers, 3)
		assert.Equal(t, "AD", offers[0].Carrier, "cheapest first")
		assert.Equal(t, "LA", offers[1].Carrier, "price tie broken by fewer legs")
		assert.Equal(t, "G3", offers[2].Carrier)
		assert.Equal(t, "amadeus", offers[2].Source)
	})

	t.Run("unparseable and negative prices are dropped", func(t *testing.T) {
		raw := []RawOffer{
			{PriceAmount: "abc", Currency: "BRL"},
			{PriceAmount: "-10", Currency: "BRL"},
			{PriceAmount: "10.50", Currency: "BRL", Carrier: "G3"},
		}

		offers := normalizeOffers(raw, "test")

		require.Len(t, offers, 1)
		assert.Equal(t, "10.50", offers[0].Price.StringFixed(2))
	})

	t.Run("carrier falls back to the first leg", func(t *testing.T) {
		raw := []RawOffer{
			{PriceAmount: "100", Currency: "BRL", Legs: []RawLeg{{Carrier: "TP", DepartureCode: "LIS"}}},
		}

		offers := normalizeOffers(raw, "test")

		require.Len(t, offers, 1)
		assert.Equal(t, "TP", offers[0].Carrier)
	})
}

func TestProvidersInfo(t *testing.T) {
	a := NewAggregator(
		[]OfferProvider{&stubProvider{name: "amadeus", configured: true}},
		[]OfferProvider{
			&stubProvider{name: "calendar", configured: false},
			&stubProvider{name: "cheapest", configured: false},
		},
		time.Second, "https://example.com/search",
	)

	infos := a.ProvidersInfo()

	require.Len(t, infos, 3)
	assert.Equal(t, ProviderInfo{Name: "amadeus", Mode: "fixed", Configured: true}, infos[0])
	assert.Equal(t, "calendar", infos[1].Name, "cascade order is preserved")
	assert.Equal(t, "flexible", infos[1].Mode)
}
