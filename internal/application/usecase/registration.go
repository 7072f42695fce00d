package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/medihelp/sally-api/internal/application/dto"
	"github.com/medihelp/sally-api/internal/domain/conversation"
	"github.com/medihelp/sally-api/internal/domain/entity"
)

// handleRegistrationTurn avanza el registro guiado un paso con la entrada
// del usuario. Entrada inválida no mueve el puntero y devuelve el mensaje
// correctivo del paso; al completar el último paso se crea el usuario.
func (uc *AssistantUseCase) handleRegistrationTurn(ctx context.Context, sess *conversation.Session, input string) (*dto.TurnResponse, error) {
	var facilities []entity.Facility
	if sess.CurrentQuestion == conversation.StepCanalPreferido || sess.CurrentQuestion == conversation.StepSede {
		var err error
		facilities, err = uc.catalog.ListFacilities(ctx)
		if err != nil {
			// Lectura degradada: sin sedes el paso de selección rechazará
			// cualquier índice, pero la conversación no se cae.
			uc.log.Error().Err(err).Msg("consulta de sedes para registro falló")
			facilities = nil
		}
	}

	outcome, err := conversation.ApplyStep(sess, input, facilities)
	if err != nil {
		return nil, err
	}

	if !outcome.Valid {
		return &dto.TurnResponse{
			SessionID: sess.ID,
			Reply:     outcome.ErrorMessage,
			Status:    dto.StatusErrorInput,
			Progress:  &dto.Progress{Step: sess.CurrentQuestion.Index(), Total: conversation.TotalSteps},
		}, nil
	}

	if outcome.Completed {
		return uc.completeRegistration(ctx, sess)
	}

	uc.sessions.Set(sess)

	return &dto.TurnResponse{
		SessionID: sess.ID,
		Reply:     outcome.NextPrompt,
		Status:    dto.StatusCollectingData,
		Progress:  &dto.Progress{Step: sess.CurrentQuestion.Index(), Total: conversation.TotalSteps},
	}, nil
}

// completeRegistration materializa los datos recolectados en un usuario
// persistido. La inserción es atómica: un documento duplicado (carrera con
// otra sesión u otro canal) devuelve ErrDuplicate sin doble verificación.
func (uc *AssistantUseCase) completeRegistration(ctx context.Context, sess *conversation.Session) (*dto.TurnResponse, error) {
	user, err := buildUser(sess.NewUserData)
	if err == nil {
		err = uc.users.CreateIfAbsent(ctx, user)
	}

	if err != nil {
		uc.log.Error().Err(err).Str("documento", sess.Document).Msg("creación de usuario falló")
		sess.State = conversation.StateUserCreationFailed
		uc.sessions.Set(sess)

		return &dto.TurnResponse{
			SessionID:      sess.ID,
			Reply:          "Lo siento, hubo un error al crear su perfil en el sistema. Por favor, intente nuevamente proporcionando su documento de identidad.",
			Status:         dto.StatusError,
			ActionRequired: "restart",
		}, nil
	}

	uc.log.Info().
		Str("user_id", user.ID).
		Str("documento", user.Documento).
		Msg("usuario creado desde el asistente")

	sess.UserData = user
	sess.State = conversation.StateUserCreated
	uc.sessions.Set(sess)

	return &dto.TurnResponse{
		SessionID: sess.ID,
		Reply:     registrationSummary(user),
		Status:    dto.StatusRegistrationComplete,
		UserData: &dto.UserSummary{
			ID:        user.ID,
			Nombre:    user.NombreUsuario,
			Documento: user.Documento,
		},
	}, nil
}

// buildUser valida los campos obligatorios y completa los valores por
// defecto del registro: rol fijo, estado activo y credencial provisional
// (nombre sin espacios + sufijo aleatorio de dos cifras).
func buildUser(data *conversation.RegistrationData) (*entity.User, error) {
	if data == nil || data.Documento == "" || data.NombreUsuario == "" {
		return nil, errors.New("faltan datos requeridos: documento y nombre")
	}

	tipoDoc := data.TipoDocumento
	if tipoDoc == "" {
		tipoDoc = entity.DocTypeCC
	}
	canal := data.CanalPreferido
	if canal == "" {
		canal = entity.ChannelWeb
	}

	var ciudad *string
	if data.Ciudad != "" {
		ciudad = &data.Ciudad
	}

	suffix := rand.Intn(100) + 1
	passwordHash := strings.ReplaceAll(data.NombreUsuario, " ", "") + fmt.Sprint(suffix)

	return &entity.User{
		ID:              uuid.New().String(),
		TipoDocumento:   tipoDoc,
		Documento:       data.Documento,
		NombreUsuario:   data.NombreUsuario,
		Email:           data.Email,
		PasswordHash:    passwordHash,
		Edad:            data.Edad,
		Ciudad:          ciudad,
		CanalPreferido:  canal,
		IDSedePreferida: data.IDSedePreferida,
		IDRol:           entity.DefaultRoleID,
		Estado:          "activo",
		FechaCreacion:   time.Now(),
	}, nil
}

// registrationSummary arma la confirmación del registro con los datos
// suministrados; los campos omitidos no se listan.
func registrationSummary(u *entity.User) string {
	var b strings.Builder
	fmt.Fprintf(&b, "¡Perfecto %s! Su registro se completó exitosamente.\n\nDatos registrados:\n", u.NombreUsuario)
	fmt.Fprintf(&b, "• Documento: %s (%s)\n", u.Documento, u.TipoDocumento)
	if u.Edad != nil {
		fmt.Fprintf(&b, "• Edad: %d años\n", *u.Edad)
	}
	if u.Ciudad != nil {
		fmt.Fprintf(&b, "• Ciudad: %s\n", *u.Ciudad)
	}
	fmt.Fprintf(&b, "• Canal preferido: %s\n", u.CanalPreferido)
	if u.Email != nil {
		fmt.Fprintf(&b, "• Email: %s\n", *u.Email)
	}
	b.WriteString("\nAhora puede consultarme sobre medicamentos disponibles en nuestras farmacias. ¿En qué puedo ayudarle?")
	return b.String()
}
