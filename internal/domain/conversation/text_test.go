package conversation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medihelp/sally-api/internal/domain/conversation"
)

func TestFold_QuitaTildes(t *testing.T) {
	assert.Equal(t, "acetaminofen", conversation.Fold("acetaminofén"))
	assert.Equal(t, "cedula de extranjeria", conversation.Fold("cédula de extranjería"))
	assert.Equal(t, "sin tildes", conversation.Fold("sin tildes"))
}

func TestExtractDocument_CorridaDeDigitos(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"mi documento es 102446996 gracias", "102446996"},
		{"102446996", "102446996"},
		{"12345", ""},                 // menos de 6 dígitos
		{"1234567890123456", ""},      // más de 15 dígitos
		{"sin números aquí", ""},
		{"cel 3001234567 y doc 987654321", "3001234567"}, // gana la primera corrida
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, conversation.ExtractDocument(tc.input), "entrada %q", tc.input)
	}
}

func TestTokenize_PalabrasConTildes(t *testing.T) {
	tokens := conversation.Tokenize("¿Tienen acetaminofén de 500mg?")
	assert.Equal(t, []string{"Tienen", "acetaminofén", "de", "500mg"}, tokens)
}
