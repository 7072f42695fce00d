package conversation

import (
	"time"

	"github.com/medihelp/sally-api/internal/domain/entity"
)

// State estado de una sesión conversacional.
type State string

const (
	StateInitialGreeting    State = "initial_greeting"
	StateCollectingUserData State = "collecting_user_data"
	StateUserVerified       State = "user_verified"
	StateUserCreated        State = "user_created"
	StateUserCreationFailed State = "user_creation_failed"
)

// Roles de los turnos de conversación.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// MaxHistoryTurns tope de turnos retenidos por sesión. Al superarlo se
// descartan los turnos más antiguos antes de armar el contexto del modelo,
// para no crecer sin límite hasta chocar con la ventana de contexto.
const MaxHistoryTurns = 40

// Message un turno de la conversación (user o assistant).
type Message struct {
	Role    string
	Content string
}

// RegistrationData datos parciales acumulados durante el registro guiado.
// Crece de forma monótona hasta que el paso actual llega a StepComplete.
type RegistrationData struct {
	TipoDocumento   string
	Documento       string
	NombreUsuario   string
	Email           *string
	Edad            *int
	Ciudad          string
	CanalPreferido  string
	IDSedePreferida *int64
}

// Session contexto conversacional efímero, identificado por un ID opaco.
// Vive en memoria durante la vida del proceso; no se replica entre instancias.
type Session struct {
	ID              string
	State           State
	Document        string
	NewUserData     *RegistrationData
	CurrentQuestion Step
	UserData        *entity.User
	Messages        []Message
	CreatedAt       time.Time
}

// NewSession crea una sesión en estado inicial.
func NewSession(id string) *Session {
	return &Session{
		ID:        id,
		State:     StateInitialGreeting,
		CreatedAt: time.Now(),
	}
}

// Append agrega un turno al historial respetando MaxHistoryTurns:
// si el historial excede el tope, se descartan los turnos más antiguos.
func (s *Session) Append(role, content string) {
	s.Messages = append(s.Messages, Message{Role: role, Content: content})
	if n := len(s.Messages); n > MaxHistoryTurns {
		s.Messages = s.Messages[n-MaxHistoryTurns:]
	}
}

// History devuelve una copia del historial con el turno extra agregado al
// final, aplicando el mismo tope que Append. No modifica la sesión: el
// llamador decide si confirma el turno después de una llamada exitosa.
func (s *Session) History(extra Message) []Message {
	out := make([]Message, 0, len(s.Messages)+1)
	out = append(out, s.Messages...)
	out = append(out, extra)
	if n := len(out); n > MaxHistoryTurns {
		out = out[n-MaxHistoryTurns:]
	}
	return out
}

// BeginRegistration inicializa el flujo de registro para un documento que no
// se encontró en la base de datos.
func (s *Session) BeginRegistration(documento string) {
	s.Document = documento
	s.State = StateCollectingUserData
	s.NewUserData = &RegistrationData{Documento: documento}
	s.CurrentQuestion = StepTipoDocumento
}

// Verify marca la sesión como verificada para un usuario existente.
func (s *Session) Verify(u *entity.User) {
	s.Document = u.Documento
	s.UserData = u
	s.State = StateUserVerified
}
