package llm

import (
	"context"
	"fmt"
	"strings"
)

// Canned is the deterministic fallback generator. It is always configured
// and is used both when no model is set up and when the model errors.
type Canned struct{}

// NewCanned creates the canned generator
func NewCanned() *Canned {
	return &Canned{}
}

// Name returns the generator identifier
func (c *Canned) Name() string {
	return "canned"
}

// IsConfigured always reports true; the canned generator needs nothing
func (c *Canned) IsConfigured() bool {
	return true
}

// Generate builds a fixed-template reply in Portuguese
func (c *Canned) Generate(_ context.Context, req Request) (string, error) {
	switch req.Kind {
	case KindAskMissing:
		reasons := make([]string, 0, len(req.Missing))
		for _, m := range req.Missing {
			reasons = append(reasons, m.Reason)
		}
		return "Para buscar seu voo ainda preciso saber: " + strings.Join(reasons, " e "), nil

	case KindConfirm:
		return fmt.Sprintf(
			"Perfeito! Vou buscar voos de %s para %s %s. Posso buscar? Responda \"sim\" para confirmar.",
			req.OriginName, req.DestinationName, describeDates(req),
		), nil
	}

	return "", fmt.Errorf("unknown request kind: %s", req.Kind)
}

func describeDates(req Request) string {
	q := req.Query
	if q.Flexible && !q.DateRangeStart.IsZero() {
		return fmt.Sprintf("entre %s e %s",
			q.DateRangeStart.Format("02/01/2006"), q.DateRangeEnd.Format("02/01/2006"))
	}
	if !q.ReturnDate.IsZero() {
		return fmt.Sprintf("de %s a %s",
			q.DepartureDate.Format("02/01/2006"), q.ReturnDate.Format("02/01/2006"))
	}
	return "em " + q.DepartureDate.Format("02/01/2006")
}
