package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/medihelp/sally-api/internal/application/dto"
	"github.com/medihelp/sally-api/internal/application/ports"
	"github.com/medihelp/sally-api/internal/domain"
	"github.com/medihelp/sally-api/internal/domain/conversation"
	"github.com/medihelp/sally-api/internal/domain/repository"
	"github.com/medihelp/sally-api/pkg/logger"
)

// turnHandler procesa un turno del usuario para un estado de sesión dado.
type turnHandler func(ctx context.Context, sess *conversation.Session, input string) (*dto.TurnResponse, error)

// AssistantUseCase orquesta la conversación con Sally: resolución de
// identidad por documento, registro guiado y consultas médicas con
// contexto del catálogo. Despacha cada turno según el estado de la sesión
// mediante una tabla de handlers por estado.
type AssistantUseCase struct {
	sessions repository.SessionStore
	users    repository.UserRepository
	catalog  repository.CatalogRepository
	queries  repository.QueryLogRepository
	llm      ports.CompletionService
	log      *logger.Logger

	// now inyectable para probar el saludo por franja horaria.
	now func() time.Time

	handlers map[conversation.State]turnHandler
}

// NewAssistantUseCase construye el orquestador con sus puertos.
func NewAssistantUseCase(
	sessions repository.SessionStore,
	users repository.UserRepository,
	catalog repository.CatalogRepository,
	queries repository.QueryLogRepository,
	llm ports.CompletionService,
	log *logger.Logger,
) *AssistantUseCase {
	uc := &AssistantUseCase{
		sessions: sessions,
		users:    users,
		catalog:  catalog,
		queries:  queries,
		llm:      llm,
		log:      log,
		now:      time.Now,
	}
	uc.handlers = map[conversation.State]turnHandler{
		conversation.StateInitialGreeting:    uc.handleDocumentIntake,
		conversation.StateCollectingUserData: uc.handleRegistrationTurn,
		conversation.StateUserVerified:       uc.handleConsultation,
		conversation.StateUserCreated:        uc.handleConsultation,
		conversation.StateUserCreationFailed: uc.handleCreationFailed,
	}
	return uc
}

// StartConversation crea una sesión nueva en estado inicial y devuelve el
// saludo según la hora del día.
func (uc *AssistantUseCase) StartConversation(_ context.Context) *dto.StartConversationResponse {
	id := newSessionID()
	sess := conversation.NewSession(id)
	uc.sessions.Set(sess)

	uc.log.Info().Str("session_id", id).Msg("sesión conversacional creada")

	return &dto.StartConversationResponse{
		SessionID: id,
		Message:   conversation.WelcomeMessage(uc.now()),
	}
}

// PostMessage procesa un turno del usuario sobre una sesión existente.
// Errores de protocolo (sesión inexistente, entrada vacía, estado
// desconocido) se devuelven como errores de dominio para que el transporte
// responda 400; los errores de validación conversacional viajan dentro de
// la respuesta con status error_input.
func (uc *AssistantUseCase) PostMessage(ctx context.Context, sessionID, input string) (*dto.TurnResponse, error) {
	sess, ok := uc.sessions.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return nil, domain.ErrInvalidInput
	}

	uc.log.Debug().
		Str("session_id", sessionID).
		Str("state", string(sess.State)).
		Msg("turno recibido")

	handler, ok := uc.handlers[sess.State]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidSessionState, sess.State)
	}
	return handler(ctx, sess, input)
}

// handleDocumentIntake primer turno: extraer el número de documento y
// resolver la identidad. Usuario existente pasa a verificado; desconocido
// inicia el registro guiado.
func (uc *AssistantUseCase) handleDocumentIntake(ctx context.Context, sess *conversation.Session, input string) (*dto.TurnResponse, error) {
	documento := conversation.ExtractDocument(input)
	if documento == "" {
		return &dto.TurnResponse{
			SessionID: sess.ID,
			Reply:     "Por favor ingrese su número de documento de identidad (solo números).",
			Status:    dto.StatusAwaitingDocument,
		}, nil
	}

	user, err := uc.users.FindByDocument(ctx, documento)
	if err != nil {
		// Fallo de almacenamiento: se degrada a "no encontrado" para el flujo,
		// pero se registra aparte para distinguirlo operacionalmente.
		uc.log.Error().Err(err).Str("documento", documento).Msg("búsqueda de usuario falló")
		user = nil
	}

	if user != nil {
		sess.Verify(user)
		uc.sessions.Set(sess)

		if err := uc.users.TouchLastAccess(ctx, user.ID); err != nil {
			uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("no se pudo actualizar ultimo_acceso")
		}

		return &dto.TurnResponse{
			SessionID: sess.ID,
			Reply: fmt.Sprintf("¡Hola %s! Es un gusto atenderle nuevamente. ¿En qué puedo ayudarle hoy con sus medicamentos?",
				user.NombreUsuario),
			Status: dto.StatusUserVerified,
			UserData: &dto.UserSummary{
				Nombre:    user.NombreUsuario,
				Documento: user.Documento,
			},
		}, nil
	}

	sess.BeginRegistration(documento)
	uc.sessions.Set(sess)

	return &dto.TurnResponse{
		SessionID: sess.ID,
		Reply: fmt.Sprintf("No encontré su documento %s en nuestro sistema. Vamos a registrarlo paso a paso.\n\n"+
			"¿Qué tipo de documento es?\n• CC para Cédula de Ciudadanía\n• CE para Cédula de Extranjería\n• TI para Tarjeta de Identidad",
			documento),
		Status:   dto.StatusRegistrationStarted,
		Progress: &dto.Progress{Step: 1, Total: conversation.TotalSteps},
	}, nil
}

// handleCreationFailed la creación del usuario falló en un turno anterior;
// el flujo es un callejón sin salida que exige reiniciar con el documento.
func (uc *AssistantUseCase) handleCreationFailed(_ context.Context, sess *conversation.Session, _ string) (*dto.TurnResponse, error) {
	return &dto.TurnResponse{
		SessionID:      sess.ID,
		Reply:          "Lo siento, hubo un error al crear su perfil en el sistema. Por favor, inicie una nueva conversación y proporcione su documento de identidad.",
		Status:         dto.StatusError,
		ActionRequired: "restart",
	}, nil
}

// newSessionID genera un identificador de sesión opaco. El prefijo "mh2"
// distingue los IDs del asistente en logs y trazas.
func newSessionID() string {
	return "mh2" + strings.ReplaceAll(uuid.New().String(), "-", "")
}
