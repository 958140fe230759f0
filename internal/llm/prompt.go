package llm

import (
	"fmt"
	"strings"
)

// BuildPrompt assembles the model prompt for a collecting or confirming
// turn. The model only ever phrases a question; every fact it may mention is
// injected here from the structured query.
func BuildPrompt(req Request) string {
	var b strings.Builder

	b.WriteString("Você é a Avi, uma assistente de viagens simpática e objetiva. ")
	b.WriteString("Responda em uma ou duas frases, em português. ")
	b.WriteString("Nunca invente preços, companhias ou voos.\n\n")

	if len(req.History) > 0 {
		b.WriteString("Conversa até aqui:\n")
		start := len(req.History) - 6
		if start < 0 {
			start = 0
		}
		for _, h := range req.History[start:] {
			fmt.Fprintf(&b, "%s: %s\n", h.Speaker, h.Text)
		}
		b.WriteString("\n")
	}

	if req.OriginName != "" {
		fmt.Fprintf(&b, "Origem já informada: %s\n", req.OriginName)
	}
	if req.DestinationName != "" {
		fmt.Fprintf(&b, "Destino já informado: %s\n", req.DestinationName)
	}

	switch req.Kind {
	case KindAskMissing:
		b.WriteString("\nPergunte ao usuário, de forma natural, apenas o que falta:\n")
		for _, m := range req.Missing {
			fmt.Fprintf(&b, "- %s\n", m.Reason)
		}
	case KindConfirm:
		fmt.Fprintf(&b, "\nResuma a viagem (%s) e peça uma confirmação explícita antes de buscar.\n",
			describeDates(req))
	}

	return b.String()
}
