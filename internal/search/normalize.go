package search

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/domain"
)

// normalizeOffers maps a provider's raw results into the offer model and
// sorts them ascending by price, ties broken by fewer legs, then by earliest
// departure. Offers whose price does not parse are dropped.
func normalizeOffers(raw []RawOffer, source string) []domain.Offer {
	offers := make([]domain.Offer, 0, len(raw))
	for _, r := range raw {
		price, err := decimal.NewFromString(r.PriceAmount)
		if err != nil || price.IsNegative() {
			continue
		}

		legs := make([]domain.Leg, 0, len(r.Legs))
		for _, l := range r.Legs {
			legs = append(legs, domain.Leg{
				DepartureCode: l.DepartureCode,
				DepartureTime: l.DepartureTime,
				ArrivalCode:   l.ArrivalCode,
				ArrivalTime:   l.ArrivalTime,
				Carrier:       l.Carrier,
				FlightNumber:  l.FlightNumber,
			})
		}

		carrier := r.Carrier
		if carrier == "" && len(legs) > 0 {
			carrier = legs[0].Carrier
		}

		offers = append(offers, domain.Offer{
			ID:         newOfferID(),
			Price:      price,
			Currency:   r.Currency,
			Carrier:    carrier,
			Legs:       legs,
			Source:     source,
			BookingURL: r.BookingURL,
		})
	}

	sort.SliceStable(offers, func(i, j int) bool {
		if c := offers[i].Price.Cmp(offers[j].Price); c != 0 {
			return c < 0
		}
		if len(offers[i].Legs) != len(offers[j].Legs) {
			return len(offers[i].Legs) < len(offers[j].Legs)
		}
		return firstDeparture(offers[i]).Before(firstDeparture(offers[j]))
	})

	return offers
}

func firstDeparture(o domain.Offer) time.Time {
	if len(o.Legs) == 0 {
		return time.Time{}
	}
	return o.Legs[0].DepartureTime
}

func newOfferID() string {
	return uuid.New().String()
}
