package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medihelp/sally-api/internal/application/dto"
	"github.com/medihelp/sally-api/internal/domain"
	"github.com/medihelp/sally-api/internal/domain/conversation"
	"github.com/medihelp/sally-api/internal/domain/entity"
	"github.com/medihelp/sally-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de los puertos
// ──────────────────────────────────────────────────────────────────────────────

type fakeSessions struct {
	mu sync.Mutex
	m  map[string]*conversation.Session
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{m: make(map[string]*conversation.Session)}
}

func (f *fakeSessions) Get(id string) (*conversation.Session, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.m[id]
	return s, ok
}

func (f *fakeSessions) Set(s *conversation.Session) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.m[s.ID] = s
}

func (f *fakeSessions) Delete(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.m, id)
}

type fakeUsers struct {
	byDocumento map[string]*entity.User
	findErr     error
	createErr   error
	created     []*entity.User
	touched     []string
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byDocumento: make(map[string]*entity.User)}
}

func (f *fakeUsers) FindByDocument(_ context.Context, documento string) (*entity.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.byDocumento[documento], nil
}

func (f *fakeUsers) CreateIfAbsent(_ context.Context, user *entity.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byDocumento[user.Documento]; ok {
		return domain.ErrDuplicate
	}
	f.byDocumento[user.Documento] = user
	f.created = append(f.created, user)
	return nil
}

func (f *fakeUsers) List(_ context.Context) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(f.byDocumento))
	for _, u := range f.byDocumento {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUsers) TouchLastAccess(_ context.Context, id string) error {
	f.touched = append(f.touched, id)
	return nil
}

type fakeCatalog struct {
	meds       []entity.Medication
	insurers   []entity.Insurer
	facilities []entity.Facility
	inventory  []entity.InventoryLine

	// searchHits término normalizado -> líneas devueltas por SearchInventory.
	searchHits map[string][]entity.InventoryLine
	searched   []string
}

func (f *fakeCatalog) ListMedications(context.Context) ([]entity.Medication, error) {
	return f.meds, nil
}

func (f *fakeCatalog) ListInsurers(context.Context) ([]entity.Insurer, error) {
	return f.insurers, nil
}

func (f *fakeCatalog) ListFacilities(context.Context) ([]entity.Facility, error) {
	return f.facilities, nil
}

func (f *fakeCatalog) ListInventory(context.Context) ([]entity.InventoryLine, error) {
	return f.inventory, nil
}

func (f *fakeCatalog) SearchInventory(_ context.Context, term string) ([]entity.InventoryLine, error) {
	f.searched = append(f.searched, term)
	return f.searchHits[term], nil
}

func (f *fakeCatalog) ListEquivalences(context.Context) ([]entity.Equivalence, error) {
	return nil, nil
}

func (f *fakeCatalog) ListRoles(context.Context) ([]entity.Role, error) {
	return nil, nil
}

type fakeQueryLogs struct {
	mu      sync.Mutex
	entries []entity.QueryLog
}

func (f *fakeQueryLogs) Create(_ context.Context, log *entity.QueryLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, *log)
	return nil
}

func (f *fakeQueryLogs) List(context.Context) ([]entity.QueryLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.QueryLog(nil), f.entries...), nil
}

func (f *fakeQueryLogs) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

type fakeLLM struct {
	enabled bool
	reply   string
	err     error
	last    []conversation.Message
}

func (f *fakeLLM) Complete(_ context.Context, messages []conversation.Message) (string, error) {
	f.last = messages
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeLLM) Enabled() bool { return f.enabled }

// ──────────────────────────────────────────────────────────────────────────────
// Armado del caso de uso bajo prueba
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc       *AssistantUseCase
	sessions *fakeSessions
	users    *fakeUsers
	catalog  *fakeCatalog
	queries  *fakeQueryLogs
	llm      *fakeLLM
}

func newFixture() *fixture {
	f := &fixture{
		sessions: newFakeSessions(),
		users:    newFakeUsers(),
		catalog:  &fakeCatalog{searchHits: make(map[string][]entity.InventoryLine)},
		queries:  &fakeQueryLogs{},
		llm:      &fakeLLM{enabled: true, reply: "Respuesta del modelo"},
	}
	f.uc = NewAssistantUseCase(f.sessions, f.users, f.catalog, f.queries, f.llm, logger.Nop())
	return f
}

// startSession crea una sesión vía el caso de uso y devuelve su ID.
func (f *fixture) startSession(t *testing.T) string {
	t.Helper()
	out := f.uc.StartConversation(context.Background())
	require.NotEmpty(t, out.SessionID)
	return out.SessionID
}

func existingUser(documento string) *entity.User {
	edad := 70
	return &entity.User{
		ID:             "user-1",
		TipoDocumento:  entity.DocTypeCC,
		Documento:      documento,
		NombreUsuario:  "Carlos Gomez",
		Edad:           &edad,
		CanalPreferido: entity.ChannelWeb,
		IDRol:          entity.DefaultRoleID,
		Estado:         "activo",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Inicio de conversación
// ──────────────────────────────────────────────────────────────────────────────

func TestStartConversation_CreaSesionConSaludo(t *testing.T) {
	f := newFixture()

	out := f.uc.StartConversation(context.Background())

	assert.True(t, strings.HasPrefix(out.SessionID, "mh2"), "el ID de sesión debe llevar el prefijo mh2")
	assert.Contains(t, out.Message, "Sally")
	assert.Contains(t, out.Message, "documento")

	sess, ok := f.sessions.Get(out.SessionID)
	require.True(t, ok)
	assert.Equal(t, conversation.StateInitialGreeting, sess.State)
}

func TestStartConversation_IDsUnicos(t *testing.T) {
	f := newFixture()
	a := f.uc.StartConversation(context.Background())
	b := f.uc.StartConversation(context.Background())
	assert.NotEqual(t, a.SessionID, b.SessionID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores de protocolo
// ──────────────────────────────────────────────────────────────────────────────

func TestPostMessage_SesionInexistente(t *testing.T) {
	f := newFixture()

	_, err := f.uc.PostMessage(context.Background(), "no-existe", "hola")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestPostMessage_MensajeVacio(t *testing.T) {
	f := newFixture()
	id := f.startSession(t)

	_, err := f.uc.PostMessage(context.Background(), id, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPostMessage_EstadoDesconocido(t *testing.T) {
	f := newFixture()
	id := f.startSession(t)

	sess, _ := f.sessions.Get(id)
	sess.State = conversation.State("corrupto")

	_, err := f.uc.PostMessage(context.Background(), id, "hola")
	assert.ErrorIs(t, err, domain.ErrInvalidSessionState)
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolución de identidad por documento
// ──────────────────────────────────────────────────────────────────────────────

func TestDocumentIntake_SinDigitosPideDocumento(t *testing.T) {
	f := newFixture()
	id := f.startSession(t)

	out, err := f.uc.PostMessage(context.Background(), id, "hola buenas tardes")
	require.NoError(t, err)

	assert.Equal(t, dto.StatusAwaitingDocument, out.Status)
	assert.Contains(t, out.Reply, "documento")

	// La sesión no cambia de estado: el siguiente turno vuelve a intentar.
	sess, _ := f.sessions.Get(id)
	assert.Equal(t, conversation.StateInitialGreeting, sess.State)
}

func TestDocumentIntake_DocumentoDesconocidoIniciaRegistro(t *testing.T) {
	f := newFixture()
	id := f.startSession(t)

	out, err := f.uc.PostMessage(context.Background(), id, "mi documento es 102446996")
	require.NoError(t, err)

	assert.Equal(t, dto.StatusRegistrationStarted, out.Status)
	assert.Contains(t, out.Reply, "102446996")
	assert.Contains(t, out.Reply, "CC")
	require.NotNil(t, out.Progress)
	assert.Equal(t, 1, out.Progress.Step)
	assert.Equal(t, 7, out.Progress.Total)

	sess, _ := f.sessions.Get(id)
	assert.Equal(t, conversation.StateCollectingUserData, sess.State)
	assert.Equal(t, "102446996", sess.Document)
	assert.Equal(t, conversation.StepTipoDocumento, sess.CurrentQuestion)
}

func TestDocumentIntake_UsuarioExistenteVerifica(t *testing.T) {
	f := newFixture()
	f.users.byDocumento["102446996"] = existingUser("102446996")
	id := f.startSession(t)

	out, err := f.uc.PostMessage(context.Background(), id, "102446996")
	require.NoError(t, err)

	assert.Equal(t, dto.StatusUserVerified, out.Status)
	assert.Contains(t, out.Reply, "Carlos Gomez")
	require.NotNil(t, out.UserData)
	assert.Equal(t, "Carlos Gomez", out.UserData.Nombre)
	assert.Equal(t, "102446996", out.UserData.Documento)

	assert.Equal(t, []string{"user-1"}, f.users.touched)

	sess, _ := f.sessions.Get(id)
	assert.Equal(t, conversation.StateUserVerified, sess.State)
	require.NotNil(t, sess.UserData)
}

func TestDocumentIntake_FalloDeLecturaDegradaARegistro(t *testing.T) {
	// Un fallo de almacenamiento en la búsqueda no tumba la conversación:
	// se trata como documento no encontrado.
	f := newFixture()
	f.users.findErr = errors.New("db caída")
	id := f.startSession(t)

	out, err := f.uc.PostMessage(context.Background(), id, "102446996")
	require.NoError(t, err)
	assert.Equal(t, dto.StatusRegistrationStarted, out.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Estado de creación fallida
// ──────────────────────────────────────────────────────────────────────────────

func TestCreationFailed_ExigeReinicio(t *testing.T) {
	f := newFixture()
	id := f.startSession(t)

	sess, _ := f.sessions.Get(id)
	sess.State = conversation.StateUserCreationFailed

	out, err := f.uc.PostMessage(context.Background(), id, "cualquier cosa")
	require.NoError(t, err)

	assert.Equal(t, dto.StatusError, out.Status)
	assert.Equal(t, "restart", out.ActionRequired)
	assert.Contains(t, out.Reply, "nueva conversación")
}
