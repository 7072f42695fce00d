package conversation

import (
	"regexp"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	documentRe = regexp.MustCompile(`\b\d{6,15}\b`)
	wordRe     = regexp.MustCompile(`[\p{L}\p{N}]+`)
)

// foldTransformer descompone (NFD), elimina marcas diacríticas y recompone
// (NFC): "acetaminofén" -> "acetaminofen".
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold elimina los diacríticos de un texto. Se usa para comparar palabras
// clave del usuario contra el catálogo sin depender de las tildes.
func Fold(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return s
	}
	return out
}

// ExtractDocument devuelve la primera corrida de 6 a 15 dígitos del texto,
// o cadena vacía si no hay ninguna.
func ExtractDocument(input string) string {
	return documentRe.FindString(input)
}

// Tokenize parte el texto en palabras (letras y números, con soporte de
// tildes) para la búsqueda de medicamentos por palabra clave.
func Tokenize(input string) []string {
	return wordRe.FindAllString(input, -1)
}
