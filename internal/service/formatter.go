package service

import (
	"fmt"

	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/domain"
	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/lookup"
)

// Formatter turns a search result into the short chat message plus the
// structured payload the results panel renders
type Formatter struct {
	lookup *lookup.Service
}

// NewFormatter creates a result formatter
func NewFormatter(l *lookup.Service) *Formatter {
	return &Formatter{lookup: l}
}

// Format builds the chat reply for a search result. An empty result hides
// the panel; a redirect placeholder points the user at the booking link;
// real offers are summarized by count and lowest price.
func (f *Formatter) Format(result *domain.SearchResult) *domain.ChatReply {
	if result == nil || len(result.Offers) == 0 {
		return &domain.ChatReply{
			Message:   "Desculpe, não encontrei voos para esses parâmetros. Quer tentar outras datas ou outro destino?",
			ShowPanel: false,
		}
	}

	origin := f.lookup.DisplayName(result.Query.Origin)
	destination := f.lookup.DisplayName(result.Query.Destination)

	if len(result.Offers) == 1 && result.Offers[0].RedirectPlaceholder {
		return &domain.ChatReply{
			Message: fmt.Sprintf(
				"Não consegui preços diretos para %s → %s agora, mas você pode ver as opções disponíveis no link de busca ao lado.",
				origin, destination),
			Offers:    result.Offers,
			ShowPanel: true,
		}
	}

	cheapest := result.Offers[0]
	carrier := f.lookup.AirlineName(cheapest.Carrier)
	msg := fmt.Sprintf(
		"Encontrei %d voos de %s para %s a partir de %s %s pela %s. Veja os detalhes no painel ao lado!",
		len(result.Offers), origin, destination,
		cheapest.Price.StringFixed(2), cheapest.Currency, carrier)
	if len(result.Offers) == 1 {
		msg = fmt.Sprintf(
			"Encontrei 1 voo de %s para %s por %s %s pela %s. Veja os detalhes no painel ao lado!",
			origin, destination, cheapest.Price.StringFixed(2), cheapest.Currency, carrier)
	}

	return &domain.ChatReply{
		Message:   msg,
		Offers:    result.Offers,
		ShowPanel: true,
	}
}
