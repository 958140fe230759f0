// Package llm phrases the assistant's collecting and confirming replies. The
// dialogue step is the single gate: generation is only reachable for prompt
// and confirmation turns, never while a search is running, so the model can
// never fabricate offer data.
package llm

import (
	"context"

	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/domain"
)

// Kind selects what the reply must accomplish
type Kind string

const (
	// KindAskMissing asks the user for the missing required fields
	KindAskMissing Kind = "ask_missing"
	// KindConfirm asks the user to confirm the collected query
	KindConfirm Kind = "confirm"
)

// Request carries the dialogue context a generator may use to phrase a reply
type Request struct {
	Kind    Kind
	Query   domain.TravelQuery
	Missing []domain.FieldReason
	History []domain.HistoryEntry

	// resolved display names, so generators never need the lookup service
	OriginName      string
	DestinationName string
}

// Generator produces one assistant reply for a collecting or confirming turn
type Generator interface {
	// Name returns the generator identifier
	Name() string

	// IsConfigured checks if the generator can be called
	IsConfigured() bool

	// Generate phrases the reply for the request
	Generate(ctx context.Context, req Request) (string, error)
}
