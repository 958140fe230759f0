package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveLocationCode(t *testing.T) {
	s := NewService()

	cases := []struct {
		name string
		text string
		code string
		ok   bool
	}{
		{"exact name", "são paulo", "GRU", true},
		{"exact name without accents", "sao paulo", "GRU", true},
		{"bare iata code", "gru", "GRU", true},
		{"name with trailing words", "rio de janeiro amanhã", "GIG", true},
		{"longest alias wins", "rio de janeiro", "GIG", true},
		{"short alias", "rio", "GIG", true},
		{"leading article", "o rio de janeiro", "GIG", true},
		{"code with trailing words", "gru para ssa", "GRU", true},
		{"unknown place", "atlantis", "", false},
		{"empty", "   ", "", false},
		{"three letter non-code", "the", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, ok := s.ResolveLocationCode(tc.text)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.code, code)
		})
	}
}

func TestDisplayName(t *testing.T) {
	s := NewService()

	assert.Equal(t, "São Paulo (Guarulhos)", s.DisplayName("GRU"))
	assert.Equal(t, "São Paulo (Guarulhos)", s.DisplayName("gru"))
	assert.Equal(t, "XYZ", s.DisplayName("XYZ"), "unknown codes fall back to the code")
}

func TestAirlineName(t *testing.T) {
	s := NewService()

	assert.Equal(t, "LATAM Airlines", s.AirlineName("LA"))
	assert.Equal(t, "ZZ", s.AirlineName("ZZ"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "sao paulo", Normalize("  São   Paulo "))
	assert.Equal(t, "acucar e cafe", Normalize("Açúcar   e Café"))
	assert.Equal(t, "", Normalize("   "))
}
