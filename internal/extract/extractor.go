// Package extract parses one chat message into TravelQuery fields. The
// extractor is table driven: each concern (places, dates, passengers, cabin)
// is an ordered list of pattern families and the first family that matches
// wins. Extraction never fails; a message with nothing recognizable returns
// the prior query unchanged.
package extract

import (
	"regexp"
	"strconv"
	"time"

	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/domain"
	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/lookup"
)

const maxPassengers = 9

// Extractor merges travel details found in free text into a TravelQuery
type Extractor struct {
	lookup *lookup.Service

	// now is swapped in tests to pin relative-date resolution
	now func() time.Time
}

// New creates an extractor backed by the given lookup service
func New(l *lookup.Service) *Extractor {
	return &Extractor{lookup: l, now: time.Now}
}

// placePattern is one prepositional pattern family for origin or destination.
// The captured phrase is only applied when the lookup service resolves it, so
// loose patterns cannot corrupt the query.
type placePattern struct {
	re     *regexp.Regexp
	origin bool
}

var placePatterns = []placePattern{
	// explicit origin markers first
	{re: regexp.MustCompile(`\b(?:saindo de|partindo de|partir de|from)\s+([\p{L}][\p{L} ]*)`), origin: true},
	// destination markers
	{re: regexp.MustCompile(`\b(?:indo para|com destino a|para|to)\s+([\p{L}][\p{L} ]*)`), origin: false},
	// bare "de <place>" is the loosest origin form and runs last
	{re: regexp.MustCompile(`\bde\s+([\p{L}][\p{L} ]*)`), origin: true},
	// "<place> para <place>" shorthand seeds the origin from the left side
	{re: regexp.MustCompile(`^([\p{L}][\p{L} ]*?)\s+(?:para|to)\s+`), origin: true},
}

var passengerPatterns = []struct {
	re    *regexp.Regexp
	apply func(q *domain.TravelQuery, n int)
}{
	{
		re:    regexp.MustCompile(`(\d+)\s*(?:adultos?|adults?|pessoas?|passageiros?|people|passengers?)`),
		apply: func(q *domain.TravelQuery, n int) { q.Adults = n },
	},
	{
		re:    regexp.MustCompile(`(\d+)\s*(?:criancas?|children|child|kids?)`),
		apply: func(q *domain.TravelQuery, n int) { q.Children = n },
	},
	{
		re:    regexp.MustCompile(`(\d+)\s*(?:bebes?|infants?|de colo)`),
		apply: func(q *domain.TravelQuery, n int) { q.Infants = n },
	},
}

var cabinPatterns = []struct {
	re    *regexp.Regexp
	cabin domain.CabinClass
}{
	{re: regexp.MustCompile(`premium`), cabin: domain.CabinPremiumEconomy},
	{re: regexp.MustCompile(`executiva|business`), cabin: domain.CabinBusiness},
	{re: regexp.MustCompile(`primeira classe|primeira|first class`), cabin: domain.CabinFirst},
	{re: regexp.MustCompile(`economica|economy|econo`), cabin: domain.CabinEconomy},
}

// Extract parses the message and merges what it finds over the prior query.
// Every detected field overwrites its counterpart in prior; undetected fields
// are copied unchanged, so information collected in earlier turns is never
// lost.
func (e *Extractor) Extract(message string, prior domain.TravelQuery) domain.TravelQuery {
	q := prior
	text := lookup.Normalize(message)
	if text == "" {
		return q
	}

	e.extractPlaces(text, &q)
	e.extractDates(text, &q)
	e.extractPassengers(text, &q)
	e.extractCabin(text, &q)

	return q
}

func (e *Extractor) extractPlaces(text string, q *domain.TravelQuery) {
	originSet, destSet := false, false
	for _, p := range placePatterns {
		if p.origin && originSet {
			continue
		}
		if !p.origin && destSet {
			continue
		}
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		code, ok := e.lookup.ResolveLocationCode(m[1])
		if !ok {
			continue
		}
		if p.origin {
			q.Origin = code
			originSet = true
		} else {
			q.Destination = code
			destSet = true
		}
	}
}

func (e *Extractor) extractPassengers(text string, q *domain.TravelQuery) {
	for _, p := range passengerPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 {
			continue
		}
		if n > maxPassengers {
			n = maxPassengers
		}
		p.apply(q, n)
	}
}

func (e *Extractor) extractCabin(text string, q *domain.TravelQuery) {
	for _, p := range cabinPatterns {
		if p.re.MatchString(text) {
			q.Cabin = p.cabin
			return
		}
	}
}
