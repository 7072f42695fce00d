package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/medihelp/sally-api/internal/application/dto"
	"github.com/medihelp/sally-api/internal/domain/conversation"
	"github.com/medihelp/sally-api/internal/domain/entity"
)

// unavailableReply respuesta estática cuando no hay credencial del modelo.
const unavailableReply = "Servicio de consultas temporalmente no disponible. Por favor intente más tarde."

// fallbackReply cuando el modelo devuelve una respuesta vacía.
const fallbackReply = "Disculpe, no pude procesar su consulta. ¿Puede repetir su pregunta?"

// minKeywordLength longitud mínima de una palabra para buscarla en inventario.
const minKeywordLength = 4

// queryLogTimeout tope de la escritura asíncrona del registro de consulta.
const queryLogTimeout = 5 * time.Second

// inventoryMatch resultado de la búsqueda por palabra clave: el término que
// coincidió y sus líneas de inventario con ubicación.
type inventoryMatch struct {
	Term  string
	Lines []entity.InventoryLine
}

// handleConsultation responde una consulta médica de un usuario verificado.
// Arma un prompt acotado a los datos del catálogo (el modelo no puede
// afirmar disponibilidad que no esté en los datos suministrados), envía el
// historial completo de la sesión y confirma los turnos solo si la llamada
// al modelo tuvo éxito, de modo que un fallo deja la sesión intacta para
// reintentar la misma pregunta.
func (uc *AssistantUseCase) handleConsultation(ctx context.Context, sess *conversation.Session, input string) (*dto.TurnResponse, error) {
	if !uc.llm.Enabled() {
		return &dto.TurnResponse{
			SessionID: sess.ID,
			Reply:     unavailableReply,
			Status:    dto.StatusServiceUnavailable,
		}, nil
	}

	start := time.Now()
	userTurn := conversation.Message{Role: conversation.RoleUser, Content: input}

	// Lecturas completas del dataset de referencia: frescura sobre latencia.
	// Un fallo de lectura degrada a lista vacía (registrado) sin tumbar la consulta.
	meds := uc.listMedications(ctx)
	inventory := uc.listInventory(ctx)
	facilities := uc.listFacilities(ctx)
	insurers := uc.listInsurers(ctx)

	match := uc.findInventoryMatch(ctx, input)

	system := buildSystemPrompt(sess.UserData, meds, inventory, facilities, insurers, match)
	messages := append([]conversation.Message{{Role: "system", Content: system}}, sess.History(userTurn)...)

	reply, err := uc.llm.Complete(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("consulta médica: %w", err)
	}
	if reply == "" {
		reply = fallbackReply
	}

	sess.Messages = sess.History(userTurn)
	sess.Append(conversation.RoleAssistant, reply)
	uc.sessions.Set(sess)

	uc.logQueryAsync(sess.UserData, input, time.Since(start), match != nil)

	resp := &dto.TurnResponse{
		SessionID: sess.ID,
		Reply:     reply,
		Status:    dto.StatusMedicalConsultation,
		User:      sess.UserData.NombreUsuario,
	}
	if match != nil {
		n := len(match.Lines)
		resp.MedicamentoConsultado = match.Term
		resp.UbicacionesEncontradas = &n
	}
	return resp, nil
}

// findInventoryMatch busca la primera palabra de la consulta (longitud >= 4)
// que coincida con un nombre comercial o principio activo del inventario.
// Corto circuito: se detiene en la primera palabra con resultados.
func (uc *AssistantUseCase) findInventoryMatch(ctx context.Context, input string) *inventoryMatch {
	for _, word := range conversation.Tokenize(input) {
		if utf8.RuneCountInString(word) < minKeywordLength {
			continue
		}
		term := conversation.Fold(strings.ToLower(word))
		lines, err := uc.catalog.SearchInventory(ctx, term)
		if err != nil {
			uc.log.Error().Err(err).Str("term", term).Msg("búsqueda de inventario falló")
			continue
		}
		if len(lines) > 0 {
			uc.log.Debug().Str("term", term).Int("ubicaciones", len(lines)).Msg("medicamento encontrado en inventario")
			return &inventoryMatch{Term: term, Lines: lines}
		}
	}
	return nil
}

// logQueryAsync registra la consulta con mejor esfuerzo, fuera del camino de
// la respuesta: el fallo se loguea y nunca afecta lo que recibe el usuario.
func (uc *AssistantUseCase) logQueryAsync(user *entity.User, term string, elapsed time.Duration, disponible bool) {
	if user == nil || user.ID == "" {
		return
	}

	canal := user.CanalPreferido
	if canal == "" {
		canal = entity.ChannelWeb
	}
	if utf8.RuneCountInString(term) > entity.MaxQueryTermLength {
		term = string([]rune(term)[:entity.MaxQueryTermLength])
	}

	entry := &entity.QueryLog{
		IDUsuario:         user.ID,
		FechaHora:         time.Now(),
		Canal:             canal,
		TerminoBuscado:    term,
		Respuesta:         "Procesando...",
		TiempoRespuestaMs: int(elapsed.Milliseconds()),
		Disponible:        disponible,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), queryLogTimeout)
		defer cancel()
		if err := uc.queries.Create(ctx, entry); err != nil {
			uc.log.Error().Err(err).Str("user_id", entry.IDUsuario).Msg("registro de consulta falló")
		}
	}()
}

// ── Lecturas degradadas del catálogo ─────────────────────────────────────────

func (uc *AssistantUseCase) listMedications(ctx context.Context) []entity.Medication {
	out, err := uc.catalog.ListMedications(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("consulta de medicamentos falló")
		return nil
	}
	return out
}

func (uc *AssistantUseCase) listInventory(ctx context.Context) []entity.InventoryLine {
	out, err := uc.catalog.ListInventory(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("consulta de inventario falló")
		return nil
	}
	return out
}

func (uc *AssistantUseCase) listFacilities(ctx context.Context) []entity.Facility {
	out, err := uc.catalog.ListFacilities(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("consulta de sedes falló")
		return nil
	}
	return out
}

func (uc *AssistantUseCase) listInsurers(ctx context.Context) []entity.Insurer {
	out, err := uc.catalog.ListInsurers(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("consulta de EPS falló")
		return nil
	}
	return out
}
