package conversation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/medihelp/sally-api/internal/domain/entity"
)

// Step un paso del registro guiado. La secuencia es fija y solo avanza
// hacia adelante: un paso validado nunca se repite, y un paso con entrada
// inválida se vuelve a preguntar sin avanzar el puntero.
type Step string

const (
	StepTipoDocumento  Step = "tipo_documento"
	StepNombre         Step = "nombre"
	StepEmail          Step = "email"
	StepEdad           Step = "edad"
	StepCiudad         Step = "ciudad"
	StepCanalPreferido Step = "canal_preferido"
	StepSede           Step = "sede"
	StepComplete       Step = "complete"
)

// Sequence orden fijo de los pasos de recolección de datos.
var Sequence = []Step{
	StepTipoDocumento,
	StepNombre,
	StepEmail,
	StepEdad,
	StepCiudad,
	StepCanalPreferido,
	StepSede,
}

// TotalSteps número de pasos del registro (sin contar el marcador complete).
const TotalSteps = 7

// ErrUnknownStep el puntero de paso no corresponde a ningún paso conocido.
var ErrUnknownStep = errors.New("paso de registro desconocido")

// Index posición 1-based del paso dentro de la secuencia; 0 si no pertenece.
func (s Step) Index() int {
	for i, step := range Sequence {
		if step == s {
			return i + 1
		}
	}
	return 0
}

// StepOutcome resultado de aplicar la entrada del usuario a un paso.
type StepOutcome struct {
	Valid        bool
	ErrorMessage string // mensaje correctivo cuando Valid es false
	NextPrompt   string // siguiente pregunta cuando Valid es true y no se completó
	Completed    bool   // el puntero llegó a StepComplete
}

// stepHandler valida y normaliza la entrada de un paso. Recibe la lista de
// sedes porque los pasos canal_preferido (arma el menú) y sede (resuelve el
// índice) la necesitan.
type stepHandler func(s *Session, input string, facilities []entity.Facility) StepOutcome

var stepHandlers = map[Step]stepHandler{
	StepTipoDocumento:  applyTipoDocumento,
	StepNombre:         applyNombre,
	StepEmail:          applyEmail,
	StepEdad:           applyEdad,
	StepCiudad:         applyCiudad,
	StepCanalPreferido: applyCanalPreferido,
	StepSede:           applySede,
}

// ApplyStep despacha la entrada al handler del paso actual de la sesión.
// Con entrada inválida el puntero no avanza y el outcome lleva el mensaje
// de error del paso; reenviar la misma entrada produce el mismo resultado.
func ApplyStep(s *Session, input string, facilities []entity.Facility) (StepOutcome, error) {
	handler, ok := stepHandlers[s.CurrentQuestion]
	if !ok {
		return StepOutcome{}, fmt.Errorf("%w: %s", ErrUnknownStep, s.CurrentQuestion)
	}
	return handler(s, input, facilities), nil
}

// ── Handlers por paso ─────────────────────────────────────────────────────────

var nonLettersRe = regexp.MustCompile(`[^A-Z]`)

func applyTipoDocumento(s *Session, input string, _ []entity.Facility) StepOutcome {
	token := nonLettersRe.ReplaceAllString(strings.ToUpper(input), "")
	folded := Fold(strings.ToLower(input))

	isCode := token == entity.DocTypeCC || token == entity.DocTypeCE || token == entity.DocTypeTI
	hasSynonym := strings.Contains(folded, "cedula") ||
		strings.Contains(folded, "ciudadania") ||
		strings.Contains(folded, "extranjeria") ||
		strings.Contains(folded, "identidad")

	if !isCode && !hasSynonym {
		return StepOutcome{ErrorMessage: "Por favor seleccione: CC (Cédula de Ciudadanía), CE (Cédula de Extranjería) o TI (Tarjeta de Identidad)"}
	}

	// El orden importa: la primera cláusula que coincide gana, con CC primero.
	switch {
	case token == entity.DocTypeCC, strings.Contains(folded, "cedula"), strings.Contains(folded, "ciudadania"):
		s.NewUserData.TipoDocumento = entity.DocTypeCC
	case token == entity.DocTypeCE, strings.Contains(folded, "extranjeria"):
		s.NewUserData.TipoDocumento = entity.DocTypeCE
	case token == entity.DocTypeTI, strings.Contains(folded, "identidad"):
		s.NewUserData.TipoDocumento = entity.DocTypeTI
	default:
		s.NewUserData.TipoDocumento = token
	}

	s.CurrentQuestion = StepNombre
	return StepOutcome{Valid: true, NextPrompt: "¿Cuál es su nombre completo?"}
}

var nameRe = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑüÜ\s]+$`)

func applyNombre(s *Session, input string, _ []entity.Facility) StepOutcome {
	trimmed := strings.TrimSpace(input)
	if utf8.RuneCountInString(trimmed) < 2 || !nameRe.MatchString(trimmed) {
		return StepOutcome{ErrorMessage: "Por favor ingrese un nombre válido (mínimo 2 caracteres, solo letras)"}
	}
	s.NewUserData.NombreUsuario = trimmed
	s.CurrentQuestion = StepEmail
	return StepOutcome{Valid: true, NextPrompt: `¿Cuál es su correo electrónico? Si no tiene, escriba "no tengo"`}
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func applyEmail(s *Session, input string, _ []entity.Facility) StepOutcome {
	trimmed := strings.TrimSpace(input)
	lower := strings.ToLower(trimmed)

	// El orden de validación importa: un email bien formado gana sobre la
	// frase de omisión ("no" aparece en dominios como "notengo.com").
	switch {
	case emailRe.MatchString(trimmed):
		email := strings.ToLower(trimmed)
		s.NewUserData.Email = &email
	case strings.Contains(lower, "no") || strings.Contains(lower, "tengo") || strings.Contains(lower, "skip"):
		s.NewUserData.Email = nil
	default:
		return StepOutcome{ErrorMessage: `Por favor ingrese un email válido o escriba "no tengo" si no tiene email`}
	}

	s.CurrentQuestion = StepEdad
	return StepOutcome{Valid: true, NextPrompt: "¿Cuál es su edad?"}
}

var nonDigitsRe = regexp.MustCompile(`\D`)

func applyEdad(s *Session, input string, _ []entity.Facility) StepOutcome {
	edad, err := strconv.Atoi(nonDigitsRe.ReplaceAllString(input, ""))
	if err != nil || edad < 18 || edad > 120 {
		return StepOutcome{ErrorMessage: "Por favor ingrese una edad válida (entre 18 y 120 años)"}
	}
	s.NewUserData.Edad = &edad
	s.CurrentQuestion = StepCiudad
	return StepOutcome{Valid: true, NextPrompt: "¿En qué ciudad vive?"}
}

func applyCiudad(s *Session, input string, _ []entity.Facility) StepOutcome {
	trimmed := strings.TrimSpace(input)
	if utf8.RuneCountInString(trimmed) < 2 {
		return StepOutcome{ErrorMessage: "Por favor ingrese una ciudad válida"}
	}
	s.NewUserData.Ciudad = trimmed
	s.CurrentQuestion = StepCanalPreferido
	return StepOutcome{Valid: true, NextPrompt: "¿Cuál es su canal de comunicación preferido?\n• web\n• whatsapp\n• telefono"}
}

func applyCanalPreferido(s *Session, input string, facilities []entity.Facility) StepOutcome {
	canal := Fold(strings.ToLower(strings.TrimSpace(input)))

	known := canal == entity.ChannelWeb || canal == entity.ChannelWhatsapp || canal == entity.ChannelPhone
	if !known && !strings.Contains(canal, "whats") && !strings.Contains(canal, "telefon") && !strings.Contains(canal, "web") {
		return StepOutcome{ErrorMessage: "Por favor seleccione: web, whatsapp o telefono"}
	}

	switch {
	case strings.Contains(canal, "whats"):
		s.NewUserData.CanalPreferido = entity.ChannelWhatsapp
	case strings.Contains(canal, "telefon"):
		s.NewUserData.CanalPreferido = entity.ChannelPhone
	default:
		s.NewUserData.CanalPreferido = entity.ChannelWeb
	}

	s.CurrentQuestion = StepSede
	return StepOutcome{Valid: true, NextPrompt: FacilityMenu(facilities)}
}

// MaxFacilityIndex índice máximo aceptado al elegir sede.
const MaxFacilityIndex = 50

// facilityMenuLimit sedes mostradas en el menú de selección.
const facilityMenuLimit = 10

func applySede(s *Session, input string, facilities []entity.Facility) StepOutcome {
	n, err := strconv.Atoi(nonDigitsRe.ReplaceAllString(input, ""))
	if err != nil || n < 1 || n > MaxFacilityIndex {
		return StepOutcome{ErrorMessage: "Por favor ingrese un número válido de sede."}
	}
	if n > len(facilities) {
		return StepOutcome{ErrorMessage: "Número de sede no válido. Por favor seleccione un número de la lista."}
	}

	id := facilities[n-1].ID
	s.NewUserData.IDSedePreferida = &id
	s.CurrentQuestion = StepComplete
	return StepOutcome{Valid: true, Completed: true}
}

// FacilityMenu arma el menú numerado de sedes (las primeras 10) que se
// muestra al llegar al paso de selección de sede.
func FacilityMenu(facilities []entity.Facility) string {
	var b strings.Builder
	b.WriteString("Por favor seleccione una sede de las disponibles (escriba el número):\n\n")
	for i, f := range facilities {
		if i >= facilityMenuLimit {
			break
		}
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, f.NombreSede, f.Ciudad)
	}
	b.WriteString("\n¿Cuál sede prefiere? (escriba el número)")
	return b.String()
}
