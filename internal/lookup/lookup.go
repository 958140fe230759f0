// Package lookup resolves free-text place names to IATA location codes and
// maps codes back to display names. It is pure and stateless: the tables are
// static and shared by every caller.
package lookup

import (
	"sort"
	"strings"
)

// Service answers location and airline lookups
type Service struct {
	byName   map[string]string
	byCode   map[string]string
	airlines map[string]string
	// keys of byName sorted longest first so "rio de janeiro" wins over "rio"
	names []string
}

// NewService builds the lookup service from the static tables
func NewService() *Service {
	s := &Service{
		byName:   make(map[string]string, len(cityCodes)),
		byCode:   make(map[string]string, len(cityCodes)),
		airlines: airlineNames,
	}
	for name, code := range cityCodes {
		key := Normalize(name)
		s.byName[key] = code
		if _, ok := s.byCode[code]; !ok {
			s.byCode[code] = name
		}
		s.names = append(s.names, key)
	}
	// airport-level display names override the city alias
	for code, name := range airportNames {
		s.byCode[code] = name
	}
	sort.Slice(s.names, func(i, j int) bool { return len(s.names[i]) > len(s.names[j]) })
	return s
}

// ResolveLocationCode maps free text to an IATA code. It accepts a bare
// three-letter code, an exact city name, or text that begins with a known
// city name (longest name first). Leading articles are dropped so "o rio de
// janeiro" still resolves. ok is false when nothing matched.
func (s *Service) ResolveLocationCode(freeText string) (string, bool) {
	text := Normalize(freeText)
	for text != "" {
		if code, ok := s.resolve(text); ok {
			return code, true
		}
		rest, ok := stripArticle(text)
		if !ok {
			return "", false
		}
		text = rest
	}
	return "", false
}

func (s *Service) resolve(text string) (string, bool) {
	// direct IATA code, e.g. "GRU"
	if len(text) == 3 {
		upper := strings.ToUpper(text)
		if _, ok := s.byCode[upper]; ok {
			return upper, true
		}
	}

	if code, ok := s.byName[text]; ok {
		return code, true
	}

	// partial match: the captured phrase may carry trailing words
	// ("rio de janeiro amanha")
	for _, name := range s.names {
		if strings.HasPrefix(text, name) {
			rest := text[len(name):]
			if rest == "" || rest[0] == ' ' {
				return s.byName[name], true
			}
		}
	}

	// a leading code with trailing words ("gru para ssa")
	if first, _, found := strings.Cut(text, " "); found && len(first) == 3 {
		upper := strings.ToUpper(first)
		if _, ok := s.byCode[upper]; ok {
			return upper, true
		}
	}

	return "", false
}

var articles = map[string]struct{}{
	"o": {}, "a": {}, "os": {}, "as": {},
	"um": {}, "uma": {}, "the": {},
}

// stripArticle drops one leading article word, reporting false when the text
// does not start with one
func stripArticle(text string) (string, bool) {
	first, rest, found := strings.Cut(text, " ")
	if !found {
		return "", false
	}
	if _, ok := articles[first]; !ok {
		return "", false
	}
	return rest, true
}

// DisplayName returns the human name for a location code, or the code itself
// when unknown
func (s *Service) DisplayName(code string) string {
	if name, ok := s.byCode[strings.ToUpper(code)]; ok {
		return name
	}
	return code
}

// AirlineName returns the carrier name for a two-letter airline code, or the
// code itself when unknown
func (s *Service) AirlineName(code string) string {
	if name, ok := s.airlines[strings.ToUpper(code)]; ok {
		return name
	}
	return code
}

// Normalize lowercases text, strips diacritics and collapses whitespace so
// "São Paulo" and "sao  paulo" compare equal
func Normalize(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	var b strings.Builder
	b.Grow(len(text))
	lastSpace := false
	for _, r := range text {
		if folded, ok := diacritics[r]; ok {
			r = folded
		}
		if r == ' ' || r == '\t' {
			if lastSpace {
				continue
			}
			lastSpace = true
			b.WriteRune(' ')
			continue
		}
		lastSpace = false
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

var diacritics = map[rune]rune{
	'á': 'a', 'à': 'a', 'â': 'a', 'ã': 'a', 'ä': 'a',
	'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e',
	'í': 'i', 'ì': 'i', 'î': 'i', 'ï': 'i',
	'ó': 'o', 'ò': 'o', 'ô': 'o', 'õ': 'o', 'ö': 'o',
	'ú': 'u', 'ù': 'u', 'û': 'u', 'ü': 'u',
	'ç': 'c', 'ñ': 'n',
}
