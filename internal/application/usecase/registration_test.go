package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medihelp/sally-api/internal/application/dto"
	"github.com/medihelp/sally-api/internal/domain/conversation"
	"github.com/medihelp/sally-api/internal/domain/entity"
)

func registrationFacilities() []entity.Facility {
	return []entity.Facility{
		{ID: 10, NombreSede: "Sede Norte", Ciudad: "Bogotá"},
		{ID: 20, NombreSede: "Sede Centro", Ciudad: "Medellín"},
		{ID: 30, NombreSede: "Sede Sur", Ciudad: "Cali"},
	}
}

// beginRegistration lleva una sesión nueva hasta el primer paso del registro.
func (f *fixture) beginRegistration(t *testing.T, documento string) string {
	t.Helper()
	id := f.startSession(t)
	out, err := f.uc.PostMessage(context.Background(), id, documento)
	require.NoError(t, err)
	require.Equal(t, dto.StatusRegistrationStarted, out.Status)
	return id
}

func TestRegistro_FlujoCompletoCreaUsuario(t *testing.T) {
	f := newFixture()
	f.catalog.facilities = registrationFacilities()
	id := f.beginRegistration(t, "102446996")

	turns := []struct {
		input  string
		status string
		step   int
	}{
		{"CC", dto.StatusCollectingData, 2},
		{"Maria Perez", dto.StatusCollectingData, 3},
		{"no tengo", dto.StatusCollectingData, 4},
		{"65", dto.StatusCollectingData, 5},
		{"Bogota", dto.StatusCollectingData, 6},
		{"whatsapp", dto.StatusCollectingData, 7},
	}
	for _, turn := range turns {
		out, err := f.uc.PostMessage(context.Background(), id, turn.input)
		require.NoError(t, err, "entrada %q", turn.input)
		assert.Equal(t, turn.status, out.Status, "entrada %q", turn.input)
		require.NotNil(t, out.Progress, "entrada %q", turn.input)
		assert.Equal(t, turn.step, out.Progress.Step, "entrada %q", turn.input)
		assert.Equal(t, 7, out.Progress.Total)
	}

	// Último paso: elegir la sede 2 completa el registro.
	out, err := f.uc.PostMessage(context.Background(), id, "2")
	require.NoError(t, err)
	assert.Equal(t, dto.StatusRegistrationComplete, out.Status)
	assert.Contains(t, out.Reply, "Maria Perez")
	require.NotNil(t, out.UserData)
	assert.Equal(t, "102446996", out.UserData.Documento)

	require.Len(t, f.users.created, 1)
	user := f.users.created[0]
	assert.Equal(t, entity.DocTypeCC, user.TipoDocumento)
	assert.Equal(t, "Maria Perez", user.NombreUsuario)
	assert.Nil(t, user.Email)
	require.NotNil(t, user.Edad)
	assert.Equal(t, 65, *user.Edad)
	require.NotNil(t, user.Ciudad)
	assert.Equal(t, "Bogota", *user.Ciudad)
	assert.Equal(t, entity.ChannelWhatsapp, user.CanalPreferido)
	require.NotNil(t, user.IDSedePreferida)
	assert.Equal(t, int64(20), *user.IDSedePreferida)
	assert.Equal(t, entity.DefaultRoleID, user.IDRol)
	assert.Equal(t, "activo", user.Estado)
	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, user.PasswordHash)

	// La sesión queda lista para consultas médicas.
	sess, _ := f.sessions.Get(id)
	assert.Equal(t, conversation.StateUserCreated, sess.State)
	assert.Same(t, user, sess.UserData)
}

func TestRegistro_EntradaInvalidaNoAvanza(t *testing.T) {
	f := newFixture()
	id := f.beginRegistration(t, "102446996")

	out, err := f.uc.PostMessage(context.Background(), id, "pasaporte")
	require.NoError(t, err)

	assert.Equal(t, dto.StatusErrorInput, out.Status)
	require.NotNil(t, out.Progress)
	assert.Equal(t, 1, out.Progress.Step)

	// Reenviar la misma entrada produce el mismo resultado.
	again, err := f.uc.PostMessage(context.Background(), id, "pasaporte")
	require.NoError(t, err)
	assert.Equal(t, out.Reply, again.Reply)

	sess, _ := f.sessions.Get(id)
	assert.Equal(t, conversation.StepTipoDocumento, sess.CurrentQuestion)
}

func TestRegistro_EdadFueraDeRango(t *testing.T) {
	f := newFixture()
	id := f.beginRegistration(t, "102446996")

	for _, input := range []string{"CC", "Maria Perez", "no tengo"} {
		_, err := f.uc.PostMessage(context.Background(), id, input)
		require.NoError(t, err)
	}

	out, err := f.uc.PostMessage(context.Background(), id, "17")
	require.NoError(t, err)
	assert.Equal(t, dto.StatusErrorInput, out.Status)
	assert.Contains(t, out.Reply, "18")

	out, err = f.uc.PostMessage(context.Background(), id, "18")
	require.NoError(t, err)
	assert.Equal(t, dto.StatusCollectingData, out.Status)
}

func TestRegistro_DocumentoDuplicadoFallaCreacion(t *testing.T) {
	// Carrera con otra sesión: el documento ya existe al llegar al último
	// paso. La sesión queda en estado fallido y solo acepta reinicio.
	f := newFixture()
	f.catalog.facilities = registrationFacilities()
	id := f.beginRegistration(t, "102446996")

	for _, input := range []string{"CC", "Maria Perez", "no tengo", "65", "Bogota", "web"} {
		_, err := f.uc.PostMessage(context.Background(), id, input)
		require.NoError(t, err)
	}

	// Otro canal registra el mismo documento antes del último turno.
	f.users.byDocumento["102446996"] = existingUser("102446996")

	out, err := f.uc.PostMessage(context.Background(), id, "1")
	require.NoError(t, err)

	assert.Equal(t, dto.StatusError, out.Status)
	assert.Equal(t, "restart", out.ActionRequired)

	sess, _ := f.sessions.Get(id)
	assert.Equal(t, conversation.StateUserCreationFailed, sess.State)

	// Todo turno posterior repite la instrucción de reinicio.
	next, err := f.uc.PostMessage(context.Background(), id, "102446996")
	require.NoError(t, err)
	assert.Equal(t, "restart", next.ActionRequired)
}

func TestRegistro_EmailValidoSeNormaliza(t *testing.T) {
	f := newFixture()
	id := f.beginRegistration(t, "102446996")

	for _, input := range []string{"CC", "Maria Perez"} {
		_, err := f.uc.PostMessage(context.Background(), id, input)
		require.NoError(t, err)
	}

	out, err := f.uc.PostMessage(context.Background(), id, "Maria.Perez@Example.COM")
	require.NoError(t, err)
	assert.Equal(t, dto.StatusCollectingData, out.Status)

	sess, _ := f.sessions.Get(id)
	require.NotNil(t, sess.NewUserData.Email)
	assert.Equal(t, "maria.perez@example.com", *sess.NewUserData.Email)
}

func TestBuildUser_RequiereDocumentoYNombre(t *testing.T) {
	_, err := buildUser(nil)
	assert.Error(t, err)

	_, err = buildUser(&conversation.RegistrationData{Documento: "123"})
	assert.Error(t, err)

	user, err := buildUser(&conversation.RegistrationData{Documento: "123", NombreUsuario: "Ana Ruiz"})
	require.NoError(t, err)
	assert.Equal(t, entity.DocTypeCC, user.TipoDocumento, "tipo de documento por defecto")
	assert.Equal(t, entity.ChannelWeb, user.CanalPreferido, "canal por defecto")
	assert.Nil(t, user.Ciudad)
}
